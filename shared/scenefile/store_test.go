package scenefile

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ModelVision/shared/assets"
	"ModelVision/shared/scene"
)

func testLibrary() *assets.Library {
	lib := assets.NewEmptyLibrary()
	lib.Register(assets.NewLoadedMaterial("pedra", assets.DefaultParams()))
	lib.Register(assets.NewLoadedMaterial("madeira", assets.DefaultParams()))
	return lib
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenPath(filepath.Join(t.TempDir(), "teste.mv"), "teste")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSalvaECarregaCena(t *testing.T) {
	store := openTestStore(t)
	lib := testLibrary()

	sc := scene.NewScene("teste")
	muro := scene.NewModelInstanceActor("muro", "MODEL:CUBE")
	entry := scene.DefaultEntry()
	entry.Material = lib.Get("pedra")
	muro.SetEntries([]scene.ModelInstanceEntry{entry})
	sc.Spawn(muro)
	sc.SetLayer(muro, scene.LayerProps)
	sc.SetPosition(muro, mgl32.Vec3{1, 2, 3})

	require.NoError(t, store.SaveScene(sc))

	carregada, err := store.LoadScene("teste", lib)
	require.NoError(t, err)
	require.Len(t, carregada.Actors(), 1)

	ator := carregada.FindByName("muro")
	require.NotNil(t, ator)
	assert.True(t, ator.IsEnabled())
	assert.Equal(t, scene.LayerProps, ator.Layer())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, ator.Position())

	mi := ator.(*scene.ModelInstanceActor)
	assert.Equal(t, "MODEL:CUBE", mi.ModelToken())
	require.Len(t, mi.Entries(), 1)
	assert.Equal(t, "pedra", mi.Entry(0).Material.Name())

	// Ator habilitado no save volta registrado no load
	assert.Equal(t, 1, carregada.Rendering().Count())
}

func TestInstanciaVirtualSobreviveAoSave(t *testing.T) {
	store := openTestStore(t)
	lib := testLibrary()

	sc := scene.NewScene("teste")
	caixa := scene.NewModelInstanceActor("caixa", "MODEL:CUBE")
	entry := scene.DefaultEntry()
	entry.Material = lib.Get("madeira")
	caixa.SetEntries([]scene.ModelInstanceEntry{entry})
	sc.Spawn(caixa)

	inst := caixa.CreateAndSetVirtualMaterialInstance(0)
	require.NotNil(t, inst)
	inst.SetBaseColor([4]uint8{90, 50, 20, 255})

	require.NoError(t, store.SaveScene(sc))

	carregada, err := store.LoadScene("teste", lib)
	require.NoError(t, err)

	mi := carregada.FindByName("caixa").(*scene.ModelInstanceActor)
	mat := mi.Entry(0).Material
	assert.True(t, mat.IsVirtual())
	assert.Equal(t, [4]uint8{90, 50, 20, 255}, mat.Params().BaseColor)
}

func TestAtorDesabilitadoNaoRegistra(t *testing.T) {
	store := openTestStore(t)
	lib := testLibrary()

	sc := scene.NewScene("teste")
	a := scene.NewModelInstanceActor("dormindo", "MODEL:CUBE")
	sc.Add(a) // nunca habilitado

	require.NoError(t, store.SaveScene(sc))

	carregada, err := store.LoadScene("teste", lib)
	require.NoError(t, err)
	require.Len(t, carregada.Actors(), 1)
	assert.False(t, carregada.Actors()[0].IsEnabled())
	assert.Equal(t, 0, carregada.Rendering().Count())
}

func TestSaveRemoveAtoresOrfaos(t *testing.T) {
	store := openTestStore(t)
	lib := testLibrary()

	sc := scene.NewScene("teste")
	a := scene.NewModelInstanceActor("a", "MODEL:CUBE")
	b := scene.NewModelInstanceActor("b", "MODEL:CUBE")
	sc.Spawn(a)
	sc.Spawn(b)
	require.NoError(t, store.SaveScene(sc))

	sc.Remove(b)
	require.NoError(t, store.SaveScene(sc))

	carregada, err := store.LoadScene("teste", lib)
	require.NoError(t, err)
	assert.Len(t, carregada.Actors(), 1)
	assert.Nil(t, carregada.FindByName("b"))
}

func TestSaveAtualizaAtorExistente(t *testing.T) {
	store := openTestStore(t)
	lib := testLibrary()

	sc := scene.NewScene("teste")
	a := scene.NewModelInstanceActor("a", "MODEL:CUBE")
	sc.Spawn(a)
	require.NoError(t, store.SaveScene(sc))

	sc.SetPosition(a, mgl32.Vec3{5, 0, 0})
	require.NoError(t, store.SaveScene(sc))

	carregada, err := store.LoadScene("teste", lib)
	require.NoError(t, err)
	require.Len(t, carregada.Actors(), 1)
	assert.Equal(t, float32(5), carregada.Actors()[0].Position().X())
}

func TestReceiveDecalsSobreviveAoSave(t *testing.T) {
	store := openTestStore(t)
	lib := testLibrary()

	sc := scene.NewScene("teste")
	chao := scene.NewModelInstanceActor("chao", "MODEL:PLANE")
	entry := scene.DefaultEntry()
	entry.Material = lib.Get("pedra")
	entry.ReceiveDecals = false
	chao.SetEntries([]scene.ModelInstanceEntry{entry})
	sc.Spawn(chao)

	require.NoError(t, store.SaveScene(sc))

	carregada, err := store.LoadScene("teste", lib)
	require.NoError(t, err)

	mi := carregada.FindByName("chao").(*scene.ModelInstanceActor)
	require.Len(t, mi.Entries(), 1)
	assert.False(t, mi.Entry(0).ReceiveDecals)
}
