package render

import (
	"log"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	pkgutil "ModelVision/shared/pkg/util"
	"ModelVision/shared/scene"
	"ModelVision/shared/util"
)

// visual é o estado de GPU espelhado de um ator registrado: o token resolvido
// para um modelo e a aparência derivada das entries.
type visual struct {
	token   string
	version uint32
	tint    rl.Color
	visible bool
}

// Renderer espelha o conteúdo do SceneRendering em modelos raylib.
// Eventos do registro chegam de qualquer goroutine via HandleEvent; todo o
// trabalho de GPU acontece na thread de render, dirigido pelas filas.
type Renderer struct {
	models  map[string]rl.Model // cache de malha por token de modelo
	visuals map[int32]*visual

	dirty *util.DirtyQueue[int32]

	// Fila de purga: remoções chegam da rede e só podem tocar a GPU aqui.
	purge     []int32
	purgeLock pkgutil.SpinLock

	Wireframe bool

	drawCount int // atores desenhados no último frame
}

// NewRenderer cria o renderer com os caches vazios.
func NewRenderer() *Renderer {
	return &Renderer{
		models:  make(map[string]rl.Model),
		visuals: make(map[int32]*visual),
		dirty:   util.NewDirtyQueue[int32](),
	}
}

// HandleEvent recebe um evento do registro de cena. Seguro para chamar fora
// da thread de render; só enfileira.
func (r *Renderer) HandleEvent(e scene.UpdateEvent) {
	switch e.Kind {
	case scene.ActorAdded, scene.ActorUpdated:
		r.dirty.Push(e.Key)
	case scene.ActorRemoved:
		r.purgeLock.Lock()
		r.purge = append(r.purge, e.Key)
		r.purgeLock.Unlock()
	}
}

// ProcessPurge descarta os visuais de atores removidos. Chamar por frame,
// na thread de render.
func (r *Renderer) ProcessPurge() {
	r.purgeLock.Lock()
	batch := r.purge
	r.purge = nil
	r.purgeLock.Unlock()

	for _, key := range batch {
		delete(r.visuals, key)
	}
}

// DrawCount retorna quantos atores foram desenhados no último frame.
func (r *Renderer) DrawCount() int { return r.drawCount }

// Draw desenha todos os atores registrados cuja layer casa com a máscara.
// Atores além de maxDist do olho da câmera são descartados (0 desativa o
// culling por distância).
func (r *Renderer) Draw(reg *scene.SceneRendering, layerMask uint32, eye mgl32.Vec3, maxDist float32) {
	// Aplica o lote de atores sujos antes de desenhar
	for _, key := range r.dirty.Drain() {
		if a := reg.Get(key); a != nil {
			r.refresh(key, reg.Version(key), a)
		}
	}

	maxDistSq := maxDist * maxDist

	r.drawCount = 0
	reg.ForEach(layerMask, func(key int32, a scene.Renderable) {
		v, ok := r.visuals[key]
		if !ok || v.version != reg.Version(key) {
			v = r.refresh(key, reg.Version(key), a)
		}
		if !v.visible {
			return
		}

		pos := a.Position()
		if maxDist > 0 && util.DistSq(pos, eye) > maxDistSq {
			return
		}
		scale := a.Scale()
		model := r.resolveModel(v.token)

		rlPos := rl.Vector3{X: pos.X(), Y: pos.Y(), Z: pos.Z()}
		rlScale := rl.Vector3{X: scale.X(), Y: scale.Y(), Z: scale.Z()}
		axis := rl.Vector3{X: 0, Y: 1, Z: 0}

		if r.Wireframe {
			rl.DrawModelWiresEx(model, rlPos, axis, 0, rlScale, v.tint)
		} else {
			rl.DrawModelEx(model, rlPos, axis, 0, rlScale, v.tint)
		}
		r.drawCount++
	})
}

// refresh reconstrói o visual de um ator a partir das entries atuais.
func (r *Renderer) refresh(key int32, version uint32, a scene.Renderable) *visual {
	v := &visual{
		token:   a.ModelToken(),
		version: version,
		tint:    rl.White,
	}

	// A primeira entry visível com material dá o tint do modelo; um modelo
	// sem nenhuma entry visível não é desenhado.
	for _, entry := range a.Entries() {
		if !entry.Visible {
			continue
		}
		v.visible = true
		if entry.Material != nil {
			c := entry.Material.Params().BaseColor
			v.tint = rl.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
		}
		break
	}
	if len(a.Entries()) == 0 {
		// Sem entries o ator desenha com o material default
		v.visible = true
	}

	r.visuals[key] = v
	return v
}

// resolveModel devolve (e cacheia) o modelo raylib para um token.
// Tokens "MODEL:FORMA" geram primitivas; desconhecidos caem no cubo.
func (r *Renderer) resolveModel(token string) rl.Model {
	if m, ok := r.models[token]; ok {
		return m
	}

	var mesh rl.Mesh
	switch shape(token) {
	case "CUBE":
		mesh = rl.GenMeshCube(1, 1, 1)
	case "SPHERE":
		mesh = rl.GenMeshSphere(0.5, 16, 16)
	case "PLANE":
		mesh = rl.GenMeshPlane(1, 1, 1, 1)
	case "CYLINDER", "TREE":
		mesh = rl.GenMeshCylinder(0.3, 1.5, 12)
	case "CONE":
		mesh = rl.GenMeshCone(0.5, 1, 12)
	default:
		log.Printf("[Render] Token de modelo desconhecido %q, usando cubo", token)
		mesh = rl.GenMeshCube(1, 1, 1)
	}

	model := rl.LoadModelFromMesh(mesh)
	r.models[token] = model
	return model
}

func shape(token string) string {
	if i := strings.LastIndex(token, ":"); i >= 0 {
		return token[i+1:]
	}
	return token
}

// Unload libera todos os modelos da GPU. Chamar no shutdown.
func (r *Renderer) Unload() {
	for token, model := range r.models {
		rl.UnloadModel(model)
		delete(r.models, token)
	}
	log.Println("[Render] Modelos descarregados da GPU")
}
