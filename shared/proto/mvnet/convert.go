package mvnet

import (
	"ModelVision/shared/assets"
	"ModelVision/shared/scene"
)

// CaptureActor tira uma foto do estado renderizável de um ator para envio.
// Instâncias virtuais viajam como nome do asset base + cor resolvida; o
// viewer recria a instância localmente a partir da própria biblioteca.
func CaptureActor(key int32, a scene.Renderable) ActorState {
	pos := a.Position()
	st := ActorState{
		Key:        key,
		Name:       a.Name(),
		ModelToken: a.ModelToken(),
		Layer:      int32(a.Layer()),
		X:          pos.X(),
		Y:          pos.Y(),
		Z:          pos.Z(),
	}

	for _, entry := range a.Entries() {
		es := EntryState{
			Visible:       entry.Visible,
			ShadowsMode:   int32(entry.ShadowsMode),
			ReceiveDecals: entry.ReceiveDecals,
		}
		switch mat := entry.Material.(type) {
		case nil:
		case *assets.MaterialInstance:
			es.Virtual = true
			es.MaterialName = mat.Base().Name()
			es.BaseColor = PackColor(mat.Params().BaseColor)
			es.HasColor = true
		default:
			es.MaterialName = mat.Name()
		}
		st.Entries = append(st.Entries, es)
	}
	return st
}

// RestoreEntries reconstrói as entries de um ActorState usando a biblioteca
// local do viewer. Materiais desconhecidos caem no fallback.
func RestoreEntries(st *ActorState, lib *assets.Library) []scene.ModelInstanceEntry {
	entries := make([]scene.ModelInstanceEntry, 0, len(st.Entries))
	for _, es := range st.Entries {
		entry := scene.DefaultEntry()
		entry.Visible = es.Visible
		entry.ShadowsMode = scene.ShadowsCastingMode(es.ShadowsMode)
		entry.ReceiveDecals = es.ReceiveDecals

		var base *assets.MaterialAsset
		if es.MaterialName != "" {
			base = lib.Get(es.MaterialName)
		}
		if base == nil {
			base = lib.Fallback()
		}

		if es.Virtual {
			inst := base.CreateVirtualInstance()
			if es.HasColor {
				inst.SetBaseColor(UnpackColor(es.BaseColor))
			}
			entry.Material = inst
		} else {
			entry.Material = base
		}
		entries = append(entries, entry)
	}
	return entries
}
