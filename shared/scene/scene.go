package scene

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
)

// Scene é o container raiz do grafo de atores. Toda transição de estado de
// ator (enable/disable, layer, transform, hierarquia) passa por aqui, para
// que os hooks de ciclo de vida sejam invocados via interface no tipo
// concreto certo.
//
// A cena assume um único escritor: o dono da cena serializa as chamadas.
type Scene struct {
	Name string

	rendering *SceneRendering
	actors    []Actor
}

// NewScene cria uma cena vazia com um registro de renderização próprio.
func NewScene(name string) *Scene {
	return &Scene{
		Name:      name,
		rendering: NewSceneRendering(),
	}
}

// Rendering retorna o registro de renderização da cena.
func (s *Scene) Rendering() *SceneRendering { return s.rendering }

// Actors retorna a lista plana de atores da cena.
func (s *Scene) Actors() []Actor { return s.actors }

// Add insere o ator na cena em estado desabilitado.
// Atores de outra cena precisam ser removidos de lá primeiro.
func (s *Scene) Add(a Actor) {
	b := a.base()
	if b.scene != nil {
		log.Printf("[Scene] Ator %q já pertence à cena %q, ignorando Add", a.Name(), b.scene.Name)
		return
	}
	b.scene = s
	s.actors = append(s.actors, a)
}

// Spawn insere e habilita o ator em uma chamada.
func (s *Scene) Spawn(a Actor) {
	s.Add(a)
	s.SetEnabled(a, true)
}

// Remove desabilita o ator (se preciso), solta o pai e tira a subárvore da
// cena.
func (s *Scene) Remove(a Actor) {
	b := a.base()
	if b.scene != s {
		return
	}

	if b.enabled {
		s.SetEnabled(a, false)
	}

	if b.parent != nil {
		s.detachChild(b.parent, a)
		b.parent = nil
	}

	for _, child := range b.children {
		child.base().parent = nil
		s.Remove(child)
	}
	b.children = nil

	for i, other := range s.actors {
		if other == a {
			s.actors = append(s.actors[:i], s.actors[i+1:]...)
			break
		}
	}
	b.scene = nil
}

// SetEnabled dirige a máquina de estados do ator. A transição invoca o hook
// do tipo concreto exatamente uma vez; chamadas redundantes são no-op.
func (s *Scene) SetEnabled(a Actor, enabled bool) {
	b := a.base()
	if b.scene != s || b.enabled == enabled {
		return
	}
	b.enabled = enabled
	if enabled {
		a.OnEnable()
	} else {
		a.OnDisable()
	}
}

// SetLayer muda a layer de classificação e notifica o ator se houve mudança.
func (s *Scene) SetLayer(a Actor, layer Layer) {
	if !layer.Valid() {
		log.Printf("[Scene] Layer inválida %d para %q, ignorando", layer, a.Name())
		return
	}
	b := a.base()
	if b.layer == layer {
		return
	}
	b.layer = layer
	a.OnLayerChanged()
}

// SetPosition move o ator e dispara o hook de transform.
func (s *Scene) SetPosition(a Actor, pos mgl32.Vec3) {
	b := a.base()
	if b.position == pos {
		return
	}
	b.position = pos
	a.OnTransformChanged()
}

// SetParent reparenta o ator. Passar nil desanexa.
func (s *Scene) SetParent(child, parent Actor) {
	cb := child.base()
	if cb.parent == parent {
		return
	}
	if cb.parent != nil {
		s.detachChild(cb.parent, child)
	}
	cb.parent = parent
	if parent != nil {
		pb := parent.base()
		pb.children = append(pb.children, child)
	}
}

func (s *Scene) detachChild(parent, child Actor) {
	pb := parent.base()
	for i, c := range pb.children {
		if c == child {
			pb.children = append(pb.children[:i], pb.children[i+1:]...)
			return
		}
	}
}

// FindByName retorna o primeiro ator com o nome dado, ou nil.
func (s *Scene) FindByName(name string) Actor {
	for _, a := range s.actors {
		if a.Name() == name {
			return a
		}
	}
	return nil
}

// FindByLayer retorna todos os atores na layer dada.
func (s *Scene) FindByLayer(layer Layer) []Actor {
	var result []Actor
	for _, a := range s.actors {
		if a.Layer() == layer {
			result = append(result, a)
		}
	}
	return result
}

// Update roda um tick de simulação nos atores habilitados.
func (s *Scene) Update(dt float32) {
	for _, a := range s.actors {
		if a.IsEnabled() {
			a.Update(dt)
		}
	}
}
