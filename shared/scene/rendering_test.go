package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChavesRecicladas(t *testing.T) {
	s := NewScene("teste")
	r := s.Rendering()

	a := NewModelInstanceActor("a", "MODEL:CUBE")
	b := NewModelInstanceActor("b", "MODEL:CUBE")
	s.Spawn(a)
	s.Spawn(b)

	keyB := b.RenderKey()
	s.SetEnabled(b, false)

	// O slot liberado é reutilizado pelo próximo registro
	cActor := NewModelInstanceActor("c", "MODEL:CUBE")
	s.Spawn(cActor)
	assert.Equal(t, keyB, cActor.RenderKey())
	assert.Equal(t, 2, r.Count())
}

func TestVersaoCresceComUpdate(t *testing.T) {
	s := NewScene("teste")
	r := s.Rendering()

	a := NewModelInstanceActor("a", "MODEL:CUBE")
	s.Spawn(a)
	key := a.RenderKey()

	v1 := r.Version(key)
	require.NotZero(t, v1)

	s.SetLayer(a, LayerProps)
	assert.Equal(t, v1+1, r.Version(key))
}

func TestChaveObsoletaFalhaRapido(t *testing.T) {
	s := NewScene("teste")
	r := s.Rendering()

	a := NewModelInstanceActor("a", "MODEL:CUBE")
	s.Spawn(a)
	key := a.RenderKey()
	s.SetEnabled(a, false)

	// Depois do RemoveActor a chave não é mais do ator
	require.Panics(t, func() { r.UpdateActor(a, key) })
	require.Panics(t, func() { r.UpdateActor(a, 999) })
	require.Panics(t, func() { r.UpdateActor(a, KeyNone) })
}

func TestEnumeracaoFiltraPorLayer(t *testing.T) {
	s := NewScene("teste")
	r := s.Rendering()

	terreno := NewModelInstanceActor("terreno", "MODEL:PLANE")
	unidade := NewModelInstanceActor("unidade", "MODEL:CUBE")
	s.Spawn(terreno)
	s.Spawn(unidade)
	s.SetLayer(terreno, LayerTerrain)
	s.SetLayer(unidade, LayerUnits)

	var vistos []string
	r.ForEach(LayerUnits.Mask(), func(key int32, a Renderable) {
		vistos = append(vistos, a.Name())
	})
	assert.Equal(t, []string{"unidade"}, vistos)

	vistos = nil
	r.ForEach(LayerTerrain.Mask()|LayerUnits.Mask(), func(key int32, a Renderable) {
		vistos = append(vistos, a.Name())
	})
	assert.Len(t, vistos, 2)
}

func TestGetDepoisDeRemover(t *testing.T) {
	s := NewScene("teste")
	r := s.Rendering()

	a := NewModelInstanceActor("a", "MODEL:CUBE")
	s.Spawn(a)
	key := a.RenderKey()
	require.NotNil(t, r.Get(key))

	s.SetEnabled(a, false)
	assert.Nil(t, r.Get(key))
	assert.Zero(t, r.Version(key))
}
