package assets

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// LoadState representa o estado de carregamento de um asset de material.
type LoadState int32

const (
	StateUnloaded LoadState = iota // Ainda não entrou na fila de carga
	StateLoading                   // IO em andamento (goroutine de carga)
	StateLoaded                    // Pronto para uso
	StateFailed                    // Carga falhou (arquivo ausente, parse inválido)
)

// Params são os parâmetros resolvidos de um material (estilo PBR simplificado).
type Params struct {
	BaseColor [4]uint8 // RGBA
	Emissive  [4]uint8 // RGBA
	Roughness float32
	Metalness float32
	Texture   string // Caminho relativo da textura difusa (vazio = cor sólida)
}

// DefaultParams retorna parâmetros de material branco opaco.
func DefaultParams() Params {
	return Params{
		BaseColor: [4]uint8{255, 255, 255, 255},
		Roughness: 1.0,
	}
}

// Material é a visão que o sistema de cena tem de um material, seja ele o
// asset compartilhado da biblioteca ou uma instância virtual por ator.
type Material interface {
	// Name retorna o nome único do material.
	Name() string
	// WaitForLoaded bloqueia até a carga terminar. Retorna erro se o material
	// nunca entrou em carga ou se a carga falhou. Este é o único ponto de
	// suspensão consumido pelo sistema de cena.
	WaitForLoaded() error
	// CreateVirtualInstance cria uma cópia privada dos parâmetros, permitindo
	// overrides por ator sem afetar os demais usuários do asset.
	CreateVirtualInstance() *MaterialInstance
	// Params retorna os parâmetros resolvidos atuais.
	Params() Params
	// IsVirtual indica se este material é uma instância por ator.
	IsVirtual() bool
}

// MaterialAsset é o material compartilhado carregado da biblioteca.
// O ciclo de vida é Unloaded -> Loading -> (Loaded | Failed); as transições
// acontecem na goroutine de carga da Library.
type MaterialAsset struct {
	name  string
	state atomic.Int32

	mu      sync.Mutex
	params  Params
	loadErr error
	done    chan struct{} // fechado quando a carga termina (sucesso ou falha)
}

// NewMaterialAsset cria um asset ainda não carregado com os parâmetros da definição.
func NewMaterialAsset(name string, params Params) *MaterialAsset {
	return &MaterialAsset{
		name:   name,
		params: params,
		done:   make(chan struct{}),
	}
}

// NewLoadedMaterial cria um asset já em estado Loaded.
// Usado para materiais procedurais que não dependem de IO (fallback, grid).
func NewLoadedMaterial(name string, params Params) *MaterialAsset {
	a := NewMaterialAsset(name, params)
	a.state.Store(int32(StateLoading))
	a.CompleteLoad(nil)
	return a
}

// Name retorna o nome único do material.
func (a *MaterialAsset) Name() string { return a.name }

// State retorna o estado atual de carregamento.
func (a *MaterialAsset) State() LoadState {
	return LoadState(a.state.Load())
}

// BeginLoad marca o asset como em carga. Retorna false se a carga já começou.
func (a *MaterialAsset) BeginLoad() bool {
	return a.state.CompareAndSwap(int32(StateUnloaded), int32(StateLoading))
}

// CompleteLoad finaliza a carga, com err == nil em caso de sucesso.
// Deve ser chamado exatamente uma vez pela goroutine de carga.
func (a *MaterialAsset) CompleteLoad(err error) {
	a.mu.Lock()
	a.loadErr = err
	a.mu.Unlock()

	if err != nil {
		a.state.Store(int32(StateFailed))
	} else {
		a.state.Store(int32(StateLoaded))
	}
	close(a.done)
}

// WaitForLoaded bloqueia até a carga terminar.
func (a *MaterialAsset) WaitForLoaded() error {
	switch a.State() {
	case StateUnloaded:
		// Nunca entrou em carga: esperar aqui bloquearia para sempre.
		return fmt.Errorf("material %q não está em carga", a.name)
	case StateLoaded:
		return nil
	}

	<-a.done

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loadErr != nil {
		return fmt.Errorf("material %q falhou ao carregar: %w", a.name, a.loadErr)
	}
	return nil
}

// Params retorna os parâmetros resolvidos do asset.
func (a *MaterialAsset) Params() Params {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.params
}

// IsVirtual retorna false: o asset é o material compartilhado da biblioteca.
func (a *MaterialAsset) IsVirtual() bool { return false }

// CreateVirtualInstance cria uma instância virtual com cópia dos parâmetros atuais.
func (a *MaterialAsset) CreateVirtualInstance() *MaterialInstance {
	return &MaterialInstance{
		base:   a,
		name:   a.name + " (Instance)",
		params: a.Params(),
	}
}

// MaterialInstance é uma cópia privada de um MaterialAsset com overrides por
// ator. A base permanece compartilhada; só os parâmetros são copiados.
type MaterialInstance struct {
	base *MaterialAsset
	name string

	mu     sync.Mutex
	params Params
}

// Name retorna o nome da instância (derivado do asset base).
func (m *MaterialInstance) Name() string { return m.name }

// Base retorna o asset compartilhado do qual a instância deriva.
func (m *MaterialInstance) Base() *MaterialAsset { return m.base }

// WaitForLoaded delega para o asset base; a instância em si não tem IO próprio.
func (m *MaterialInstance) WaitForLoaded() error {
	return m.base.WaitForLoaded()
}

// Params retorna os parâmetros da instância (com overrides aplicados).
func (m *MaterialInstance) Params() Params {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params
}

// IsVirtual retorna true.
func (m *MaterialInstance) IsVirtual() bool { return true }

// SetBaseColor sobrescreve a cor base apenas desta instância.
func (m *MaterialInstance) SetBaseColor(c [4]uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params.BaseColor = c
}

// SetRoughness sobrescreve a rugosidade apenas desta instância.
func (m *MaterialInstance) SetRoughness(v float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params.Roughness = v
}

// CreateVirtualInstance cria outra instância a partir do mesmo asset base,
// herdando os overrides atuais desta.
func (m *MaterialInstance) CreateVirtualInstance() *MaterialInstance {
	return &MaterialInstance{
		base:   m.base,
		name:   m.base.name + " (Instance)",
		params: m.Params(),
	}
}
