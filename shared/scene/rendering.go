package scene

import "fmt"

// KeyNone é o valor sentinela de uma chave de registro: o ator não está
// registrado no SceneRendering.
const KeyNone int32 = -1

// Renderable é o que o registro de renderização armazena: um ator que expõe
// entries de material e um token de modelo para o renderer resolver a malha.
type Renderable interface {
	Actor
	Entries() []ModelInstanceEntry
	ModelToken() string
}

// UpdateKind identifica o tipo de evento emitido pelo registro.
type UpdateKind int32

const (
	ActorAdded UpdateKind = iota
	ActorUpdated
	ActorRemoved
)

// UpdateEvent descreve uma mudança no registro, consumida pelo renderer
// (rebuild de draw list) e pelo broadcaster do servidor (sync de viewers).
type UpdateEvent struct {
	Kind  UpdateKind
	Key   int32
	Actor Renderable
}

// renderSlot é o armazenamento de um ator registrado. O índice do slot é a
// chave opaca devolvida ao ator; a versão cresce a cada update para o
// renderer detectar conteúdo obsoleto.
type renderSlot struct {
	actor    Renderable
	version  uint32
	occupied bool
}

// SceneRendering é o índice de atores renderizáveis de uma cena. O renderer
// enumera os slots ocupados filtrando por layer; os atores mantêm a própria
// chave e chamam Add/Remove/Update nas transições de ciclo de vida.
//
// As chaves são recicladas por free list, então uma chave só é válida entre
// o AddActor que a devolveu e o RemoveActor correspondente.
type SceneRendering struct {
	slots []renderSlot
	free  []int32
	count int

	onEvent func(UpdateEvent)
}

// NewSceneRendering cria um registro vazio.
func NewSceneRendering() *SceneRendering {
	return &SceneRendering{
		slots: make([]renderSlot, 0, 64),
	}
}

// SetEventHandler instala o callback chamado a cada Add/Update/Remove.
// O callback roda na goroutine que mutou a cena e deve ser barato
// (tipicamente só enfileira em um DirtyQueue ou RingBuffer).
func (r *SceneRendering) SetEventHandler(fn func(UpdateEvent)) {
	r.onEvent = fn
}

func (r *SceneRendering) emit(kind UpdateKind, key int32, a Renderable) {
	if r.onEvent != nil {
		r.onEvent(UpdateEvent{Kind: kind, Key: key, Actor: a})
	}
}

// AddActor registra o ator e retorna a chave do slot alocado.
func (r *SceneRendering) AddActor(a Renderable) int32 {
	var key int32
	if n := len(r.free); n > 0 {
		key = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		key = int32(len(r.slots))
		r.slots = append(r.slots, renderSlot{})
	}

	slot := &r.slots[key]
	slot.actor = a
	slot.version = 1
	slot.occupied = true
	r.count++

	r.emit(ActorAdded, key, a)
	return key
}

// RemoveActor desregistra o ator. A chave volta para a free list e deixa de
// ser válida imediatamente.
func (r *SceneRendering) RemoveActor(a Renderable, key int32) {
	r.mustMatch(a, key)

	r.slots[key] = renderSlot{}
	r.free = append(r.free, key)
	r.count--

	r.emit(ActorRemoved, key, a)
}

// UpdateActor marca o conteúdo do ator como alterado (material, layer,
// transform). O renderer usa a versão do slot para invalidar caches.
func (r *SceneRendering) UpdateActor(a Renderable, key int32) {
	r.mustMatch(a, key)

	r.slots[key].version++
	r.emit(ActorUpdated, key, a)
}

// mustMatch valida chave e ator. Chave fora de faixa, slot vago ou ator
// trocado indicam bug do chamador; falhar rápido evita corromper o índice.
func (r *SceneRendering) mustMatch(a Renderable, key int32) {
	if key < 0 || int(key) >= len(r.slots) || !r.slots[key].occupied {
		panic(fmt.Sprintf("scene: chave de registro inválida: %d", key))
	}
	if r.slots[key].actor != a {
		panic(fmt.Sprintf("scene: chave %d pertence a outro ator", key))
	}
}

// Count retorna o número de atores registrados.
func (r *SceneRendering) Count() int { return r.count }

// Get retorna o ator registrado na chave, ou nil se o slot estiver vago.
func (r *SceneRendering) Get(key int32) Renderable {
	if key < 0 || int(key) >= len(r.slots) || !r.slots[key].occupied {
		return nil
	}
	return r.slots[key].actor
}

// Version retorna a versão atual do slot (0 se vago).
func (r *SceneRendering) Version(key int32) uint32 {
	if key < 0 || int(key) >= len(r.slots) || !r.slots[key].occupied {
		return 0
	}
	return r.slots[key].version
}

// ForEach enumera os atores registrados cuja layer casa com a máscara.
func (r *SceneRendering) ForEach(layerMask uint32, fn func(key int32, a Renderable)) {
	for i := range r.slots {
		if !r.slots[i].occupied {
			continue
		}
		a := r.slots[i].actor
		if a.Layer().Mask()&layerMask == 0 {
			continue
		}
		fn(int32(i), a)
	}
}
