package assets

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestWaitForLoadedSemCarga(t *testing.T) {
	a := NewMaterialAsset("pendente", DefaultParams())
	if err := a.WaitForLoaded(); err == nil {
		t.Error("WaitForLoaded em asset Unloaded deveria falhar, não bloquear")
	}
	if a.State() != StateUnloaded {
		t.Errorf("State = %d, want StateUnloaded", a.State())
	}
}

func TestWaitForLoadedBloqueiaAteCompletar(t *testing.T) {
	a := NewMaterialAsset("lento", DefaultParams())
	if !a.BeginLoad() {
		t.Fatal("BeginLoad deveria retornar true na primeira chamada")
	}
	if a.BeginLoad() {
		t.Error("BeginLoad repetido deveria retornar false")
	}

	var wg sync.WaitGroup
	results := make([]error, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = a.WaitForLoaded()
		}(i)
	}

	// A carga termina depois que os waiters já estão bloqueados
	time.Sleep(10 * time.Millisecond)
	a.CompleteLoad(nil)
	wg.Wait()

	for i, err := range results {
		if err != nil {
			t.Errorf("waiter %d: %v", i, err)
		}
	}
	if a.State() != StateLoaded {
		t.Errorf("State = %d, want StateLoaded", a.State())
	}
}

func TestWaitForLoadedPropagaFalha(t *testing.T) {
	sentinela := errors.New("disco corrompido")
	a := NewMaterialAsset("ruim", DefaultParams())
	a.BeginLoad()
	a.CompleteLoad(sentinela)

	err := a.WaitForLoaded()
	if err == nil || !errors.Is(err, sentinela) {
		t.Errorf("WaitForLoaded = %v, want wrap de %v", err, sentinela)
	}
	if a.State() != StateFailed {
		t.Errorf("State = %d, want StateFailed", a.State())
	}
}

func TestInstanciaVirtualCopiaParametros(t *testing.T) {
	p := DefaultParams()
	p.BaseColor = [4]uint8{10, 20, 30, 255}
	a := NewLoadedMaterial("base", p)

	inst := a.CreateVirtualInstance()
	if !inst.IsVirtual() {
		t.Error("instância deveria ser virtual")
	}
	if inst.Base() != a {
		t.Error("Base() deveria apontar para o asset de origem")
	}
	if inst.Params() != p {
		t.Errorf("instância deveria copiar os parâmetros: %+v", inst.Params())
	}

	// Override fica restrito à instância
	inst.SetBaseColor([4]uint8{255, 0, 0, 255})
	if a.Params().BaseColor != p.BaseColor {
		t.Error("override da instância vazou para o asset compartilhado")
	}

	// WaitForLoaded delega para o asset base
	if err := inst.WaitForLoaded(); err != nil {
		t.Errorf("WaitForLoaded da instância: %v", err)
	}
}

func TestInstanciaDeInstanciaHerdaOverrides(t *testing.T) {
	a := NewLoadedMaterial("base", DefaultParams())
	primeira := a.CreateVirtualInstance()
	primeira.SetRoughness(0.25)

	segunda := primeira.CreateVirtualInstance()
	if segunda.Base() != a {
		t.Error("instância derivada deveria apontar para o mesmo asset base")
	}
	if segunda.Params().Roughness != 0.25 {
		t.Errorf("Roughness = %f, want 0.25", segunda.Params().Roughness)
	}
}

func TestDuasInstanciasSaoDistintas(t *testing.T) {
	a := NewLoadedMaterial("base", DefaultParams())
	i1 := a.CreateVirtualInstance()
	i2 := a.CreateVirtualInstance()
	if i1 == i2 {
		t.Error("cada CreateVirtualInstance deveria devolver uma instância nova")
	}
}
