package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddERemove(t *testing.T) {
	s := NewScene("teste")

	a := NewModelInstanceActor("a", "MODEL:CUBE")
	s.Add(a)
	assert.Equal(t, s, a.Scene())
	assert.Len(t, s.Actors(), 1)

	s.Remove(a)
	assert.Nil(t, a.Scene())
	assert.Len(t, s.Actors(), 0)
}

func TestRemoveDesabilitaAntes(t *testing.T) {
	s := NewScene("teste")

	a := NewModelInstanceActor("a", "MODEL:CUBE")
	s.Spawn(a)
	require.NotEqual(t, KeyNone, a.RenderKey())

	s.Remove(a)
	assert.Equal(t, KeyNone, a.RenderKey())
	assert.Equal(t, 0, s.Rendering().Count())
}

func TestRemoveSubarvore(t *testing.T) {
	s := NewScene("teste")

	pai := NewModelInstanceActor("pai", "MODEL:CUBE")
	filho := NewModelInstanceActor("filho", "MODEL:CUBE")
	s.Spawn(pai)
	s.Spawn(filho)
	s.SetParent(filho, pai)

	s.Remove(pai)
	assert.Len(t, s.Actors(), 0)
	assert.Nil(t, filho.Scene())
	assert.Nil(t, filho.Parent())
	assert.Equal(t, 0, s.Rendering().Count())
}

func TestReparentar(t *testing.T) {
	s := NewScene("teste")

	raiz := NewActorBase("raiz")
	outro := NewActorBase("outro")
	filho := NewModelInstanceActor("filho", "MODEL:CUBE")
	s.Add(raiz)
	s.Add(outro)
	s.Add(filho)

	s.SetParent(filho, raiz)
	assert.Equal(t, Actor(raiz), filho.Parent())
	assert.Len(t, raiz.Children(), 1)

	s.SetParent(filho, outro)
	assert.Len(t, raiz.Children(), 0)
	assert.Len(t, outro.Children(), 1)

	s.SetParent(filho, nil)
	assert.Nil(t, filho.Parent())
	assert.Len(t, outro.Children(), 0)
}

func TestFindByNameELayer(t *testing.T) {
	s := NewScene("teste")

	a := NewModelInstanceActor("muro", "MODEL:CUBE")
	b := NewModelInstanceActor("arvore", "MODEL:TREE")
	s.Spawn(a)
	s.Spawn(b)
	s.SetLayer(b, LayerProps)

	assert.Equal(t, Actor(a), s.FindByName("muro"))
	assert.Nil(t, s.FindByName("inexistente"))
	assert.Len(t, s.FindByLayer(LayerProps), 1)
	assert.Len(t, s.FindByLayer(LayerDefault), 1)
}

// tickActor conta os ticks recebidos enquanto habilitado.
type tickActor struct {
	ActorBase
	ticks int
}

func (a *tickActor) Update(dt float32) { a.ticks++ }

func TestUpdateSoTicaHabilitados(t *testing.T) {
	s := NewScene("teste")

	a := &tickActor{ActorBase: *NewActorBase("a")}
	b := &tickActor{ActorBase: *NewActorBase("b")}
	s.Spawn(a)
	s.Add(b) // nunca habilitado

	s.Update(0.016)
	s.Update(0.016)

	assert.Equal(t, 2, a.ticks)
	assert.Equal(t, 0, b.ticks)
}

func TestAddDuplicadoIgnorado(t *testing.T) {
	s := NewScene("teste")
	outra := NewScene("outra")

	a := NewModelInstanceActor("a", "MODEL:CUBE")
	s.Add(a)
	outra.Add(a) // pertence a s; ignorado

	assert.Equal(t, s, a.Scene())
	assert.Len(t, outra.Actors(), 0)
}
