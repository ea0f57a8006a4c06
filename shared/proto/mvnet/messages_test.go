package mvnet

import (
	"testing"

	"ModelVision/shared/assets"
	"ModelVision/shared/pkg/protowire"
	"ModelVision/shared/scene"
)

func TestEnvelopeCarregaQualquerPayload(t *testing.T) {
	status := &ServerStatus{Message: "pronto", SceneName: "default", ActorCount: 3}
	data := Wrap(EnvServerStatus, status)

	var env Envelope
	if err := env.Unmarshal(data); err != nil {
		t.Fatalf("Envelope.Unmarshal: %v", err)
	}
	if env.Type != EnvServerStatus {
		t.Errorf("Type = %d, want EnvServerStatus", env.Type)
	}

	var got ServerStatus
	if err := got.Unmarshal(env.Payload); err != nil {
		t.Fatalf("ServerStatus.Unmarshal: %v", err)
	}
	if got != *status {
		t.Errorf("roundtrip divergiu: %+v", got)
	}
}

func TestChaveZeroSobrevive(t *testing.T) {
	// Chave 0 é válida no registro; o campo é forçado no wire para não
	// colapsar com "ausente".
	msg := &ActorRemoveMessage{Key: 0}
	var got ActorRemoveMessage
	got.Key = -5 // valor lixo para detectar campo ausente
	if err := got.Unmarshal(msg.Marshal()); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Key != 0 {
		t.Errorf("Key = %d, want 0", got.Key)
	}
}

func TestCampoDesconhecidoIgnorado(t *testing.T) {
	// Mensagem de versão futura: campo extra deve ser pulado sem erro
	e := protowire.NewEncoder()
	e.EncodeString(1, "cena")
	e.EncodeVarint(99, 42)
	e.EncodeString(98, "novidade")

	var req ClientRequestScene
	if err := req.Unmarshal(e.Bytes()); err != nil {
		t.Fatalf("Unmarshal com campos extras: %v", err)
	}
	if req.SceneName != "cena" {
		t.Errorf("SceneName = %q, want cena", req.SceneName)
	}
}

func TestPackUnpackColor(t *testing.T) {
	c := [4]uint8{10, 20, 30, 255}
	if got := UnpackColor(PackColor(c)); got != c {
		t.Errorf("UnpackColor(PackColor()) = %v, want %v", got, c)
	}
}

func TestCaptureERestoreDeAtor(t *testing.T) {
	s := scene.NewScene("teste")
	base := assets.NewLoadedMaterial("pedra", assets.DefaultParams())

	actor := scene.NewModelInstanceActor("muro", "MODEL:CUBE")
	entry := scene.DefaultEntry()
	entry.Material = base
	actor.SetEntries([]scene.ModelInstanceEntry{entry})
	s.Spawn(actor)

	inst := actor.CreateAndSetVirtualMaterialInstance(0)
	inst.SetBaseColor([4]uint8{200, 10, 10, 255})

	st := CaptureActor(actor.RenderKey(), actor)
	if st.Name != "muro" || st.ModelToken != "MODEL:CUBE" {
		t.Fatalf("captura errada: %+v", st)
	}
	if len(st.Entries) != 1 || !st.Entries[0].Virtual || st.Entries[0].MaterialName != "pedra" {
		t.Fatalf("entry capturada errada: %+v", st.Entries)
	}

	// Roundtrip pelo wire
	var wired ActorState
	if err := wired.Unmarshal(st.Marshal()); err != nil {
		t.Fatalf("ActorState.Unmarshal: %v", err)
	}

	// Restaura no lado do viewer com uma biblioteca que conhece "pedra"
	lib := assets.NewEmptyLibrary()
	lib.Register(assets.NewLoadedMaterial("pedra", assets.DefaultParams()))

	entries := RestoreEntries(&wired, lib)
	if len(entries) != 1 {
		t.Fatalf("RestoreEntries devolveu %d entries", len(entries))
	}
	mat := entries[0].Material
	if !mat.IsVirtual() {
		t.Error("material restaurado deveria ser instância virtual")
	}
	if mat.Params().BaseColor != [4]uint8{200, 10, 10, 255} {
		t.Errorf("cor do override perdida: %v", mat.Params().BaseColor)
	}
}

func TestReceiveDecalsFalseSobreviveRoundTrip(t *testing.T) {
	actor := scene.NewModelInstanceActor("parede", "MODEL:CUBE")
	entry := scene.DefaultEntry()
	entry.Material = assets.NewLoadedMaterial("pedra", assets.DefaultParams())
	entry.ReceiveDecals = false
	actor.SetEntries([]scene.ModelInstanceEntry{entry})

	st := CaptureActor(0, actor)

	var wired ActorState
	if err := wired.Unmarshal(st.Marshal()); err != nil {
		t.Fatalf("ActorState.Unmarshal: %v", err)
	}

	entries := RestoreEntries(&wired, assets.NewEmptyLibrary())
	if len(entries) != 1 {
		t.Fatalf("RestoreEntries devolveu %d entries", len(entries))
	}
	if entries[0].ReceiveDecals {
		t.Error("ReceiveDecals = true após roundtrip, want false")
	}
}

func TestOverridePretoTransparenteNaoColapsaComAusente(t *testing.T) {
	s := scene.NewScene("teste")
	actor := scene.NewModelInstanceActor("vidro", "MODEL:CUBE")
	entry := scene.DefaultEntry()
	entry.Material = assets.NewLoadedMaterial("pedra", assets.DefaultParams())
	actor.SetEntries([]scene.ModelInstanceEntry{entry})
	s.Spawn(actor)

	inst := actor.CreateAndSetVirtualMaterialInstance(0)
	inst.SetBaseColor([4]uint8{0, 0, 0, 0})

	st := CaptureActor(actor.RenderKey(), actor)
	if !st.Entries[0].HasColor {
		t.Fatal("override capturado deveria marcar HasColor")
	}

	var wired ActorState
	if err := wired.Unmarshal(st.Marshal()); err != nil {
		t.Fatalf("ActorState.Unmarshal: %v", err)
	}

	lib := assets.NewEmptyLibrary()
	lib.Register(assets.NewLoadedMaterial("pedra", assets.DefaultParams()))

	entries := RestoreEntries(&wired, lib)
	if got := entries[0].Material.Params().BaseColor; got != [4]uint8{0, 0, 0, 0} {
		t.Errorf("cor do override = %v, want (0,0,0,0)", got)
	}
}

func TestRestoreComMaterialDesconhecidoUsaFallback(t *testing.T) {
	st := ActorState{
		Entries: []EntryState{{MaterialName: "inexistente", Visible: true}},
	}
	lib := assets.NewEmptyLibrary()

	entries := RestoreEntries(&st, lib)
	if entries[0].Material != assets.Material(lib.Fallback()) {
		t.Error("material desconhecido deveria cair no fallback")
	}
}
