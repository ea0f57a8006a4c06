package scene

import (
	"fmt"

	"ModelVision/shared/assets"
)

// ShadowsCastingMode controla como um slot projeta sombras.
type ShadowsCastingMode int32

const (
	ShadowsDisabled ShadowsCastingMode = iota
	ShadowsStaticOnly
	ShadowsDynamicOnly
	ShadowsAll
)

// ModelInstanceEntry é o vínculo de material de um slot renderizável do
// modelo. A posição no slice é a identidade do slot (slot 0 = primeira seção
// da malha). O tipo é comparável por valor; a detecção de mudança em
// SetEntries depende disso.
type ModelInstanceEntry struct {
	Material      assets.Material
	ShadowsMode   ShadowsCastingMode
	Visible       bool
	ReceiveDecals bool
}

// DefaultEntry retorna uma entry visível sem material atribuído.
func DefaultEntry() ModelInstanceEntry {
	return ModelInstanceEntry{
		ShadowsMode:   ShadowsAll,
		Visible:       true,
		ReceiveDecals: true,
	}
}

// ModelInstanceActor é um ator que possui um modelo renderizável: uma lista
// ordenada de entries (material por slot) e o registro correspondente no
// SceneRendering da cena, mantido em sincronia com qualquer mudança.
type ModelInstanceActor struct {
	ActorBase

	modelToken        string
	entries           []ModelInstanceEntry
	sceneRenderingKey int32
}

// NewModelInstanceActor cria o ator com a lista de entries vazia e sem
// registro de renderização.
func NewModelInstanceActor(name, modelToken string) *ModelInstanceActor {
	return &ModelInstanceActor{
		ActorBase:         *NewActorBase(name),
		modelToken:        modelToken,
		sceneRenderingKey: KeyNone,
	}
}

// ModelToken retorna o token que o renderer resolve para uma malha.
func (m *ModelInstanceActor) ModelToken() string { return m.modelToken }

// Entries retorna a lista de entries atual. O slice é interno; mutações
// passam pelos setters para manter o registro sincronizado.
func (m *ModelInstanceActor) Entries() []ModelInstanceEntry { return m.entries }

// Entry retorna a entry do slot dado.
func (m *ModelInstanceActor) Entry(entryIndex int) ModelInstanceEntry {
	return m.entries[entryIndex]
}

// RenderKey retorna a chave de registro atual (KeyNone se não registrado).
func (m *ModelInstanceActor) RenderKey() int32 { return m.sceneRenderingKey }

// SetEntries substitui a lista de entries, redimensionando para o tamanho do
// valor novo. Toda posição é sobrescrita; se ao menos uma diferir da antiga e
// o ator estiver registrado, o registro recebe exatamente um update.
func (m *ModelInstanceActor) SetEntries(value []ModelInstanceEntry) {
	anyChanged := len(m.entries) != len(value)

	if cap(m.entries) < len(value) {
		grown := make([]ModelInstanceEntry, len(value))
		copy(grown, m.entries)
		m.entries = grown
	} else {
		m.entries = m.entries[:len(value)]
	}

	for i := range value {
		anyChanged = anyChanged || m.entries[i] != value[i]
		m.entries[i] = value[i]
	}

	if anyChanged && m.sceneRenderingKey != KeyNone {
		m.Rendering().UpdateActor(m, m.sceneRenderingKey)
	}
}

// SetMaterial atribui o material ao slot dado. Índice fora de
// [0, len(entries)) é violação de contrato e derruba o processo antes de
// qualquer mutação. Atribuir o material que já está no slot é no-op: nenhum
// update de registro é emitido.
func (m *ModelInstanceActor) SetMaterial(entryIndex int, material assets.Material) {
	if entryIndex < 0 || entryIndex >= len(m.entries) {
		panic(fmt.Sprintf("scene: entry %d fora do intervalo [0, %d)", entryIndex, len(m.entries)))
	}
	if m.entries[entryIndex].Material == material {
		return
	}
	m.entries[entryIndex].Material = material
	if m.sceneRenderingKey != KeyNone {
		m.Rendering().UpdateActor(m, m.sceneRenderingKey)
	}
}

// CreateAndSetVirtualMaterialInstance troca o material do slot por uma
// instância virtual recém-criada dele e a retorna. Retorna nil, sem mutar a
// entry, se o slot não tem material ou se a espera de carga do asset falhar.
// A instância pertence ao sistema de materiais; o ator só guarda a referência.
func (m *ModelInstanceActor) CreateAndSetVirtualMaterialInstance(entryIndex int) *assets.MaterialInstance {
	material := m.entries[entryIndex].Material
	if material == nil {
		return nil
	}
	if err := material.WaitForLoaded(); err != nil {
		return nil
	}

	result := material.CreateVirtualInstance()
	m.entries[entryIndex].Material = result
	if m.sceneRenderingKey != KeyNone {
		m.Rendering().UpdateActor(m, m.sceneRenderingKey)
	}
	return result
}

// OnLayerChanged propaga a mudança de layer para o registro, que pode filtrar
// atores por layer.
func (m *ModelInstanceActor) OnLayerChanged() {
	if m.sceneRenderingKey != KeyNone {
		m.Rendering().UpdateActor(m, m.sceneRenderingKey)
	}
}

// OnTransformChanged propaga a nova posição para o registro.
func (m *ModelInstanceActor) OnTransformChanged() {
	if m.sceneRenderingKey != KeyNone {
		m.Rendering().UpdateActor(m, m.sceneRenderingKey)
	}
}

// OnEnable registra o ator no SceneRendering e só então delega para o base.
// A ordem importa: o registro vê o ator antes do base marcá-lo ativo.
func (m *ModelInstanceActor) OnEnable() {
	if r := m.Rendering(); r != nil {
		m.sceneRenderingKey = r.AddActor(m)
	}

	// Base
	m.ActorBase.OnEnable()
}

// OnDisable delega para o base primeiro e remove o registro por último,
// espelhando a ordem do OnEnable.
func (m *ModelInstanceActor) OnDisable() {
	// Base
	m.ActorBase.OnDisable()

	if m.sceneRenderingKey != KeyNone {
		m.Rendering().RemoveActor(m, m.sceneRenderingKey)
		m.sceneRenderingKey = KeyNone
	}
}
