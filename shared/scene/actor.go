package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Actor é a unidade básica do grafo de cena: transform, layer, hierarquia
// pai/filho e o ciclo de vida enable/disable. Os hooks On* são invocados
// pelo framework de cena (Scene) nas transições de estado; tipos concretos
// sobrescrevem os hooks e delegam para o ActorBase embutido.
type Actor interface {
	Name() string
	Layer() Layer
	Position() mgl32.Vec3
	Scale() mgl32.Vec3
	IsEnabled() bool
	Scene() *Scene
	Parent() Actor
	Children() []Actor

	// Hooks de ciclo de vida (chamados pela Scene, nunca diretamente).
	OnEnable()
	OnDisable()
	OnLayerChanged()
	OnTransformChanged()

	// Update roda uma vez por tick da cena enquanto o ator está habilitado.
	Update(dt float32)

	base() *ActorBase
}

// ActorBase implementa o estado e o comportamento padrão de um Actor.
// Tipos concretos embutem ActorBase e sobrescrevem os hooks que precisam.
type ActorBase struct {
	name     string
	layer    Layer
	position mgl32.Vec3
	scale    mgl32.Vec3

	enabled bool // estado desejado, controlado pela Scene
	active  bool // true entre o fim do OnEnable e o início do OnDisable

	scene    *Scene
	parent   Actor
	children []Actor
}

// NewActorBase cria um ator vazio (usado como agrupador na hierarquia).
func NewActorBase(name string) *ActorBase {
	return &ActorBase{
		name:  name,
		scale: mgl32.Vec3{1, 1, 1},
	}
}

func (b *ActorBase) base() *ActorBase { return b }

// Name retorna o nome do ator.
func (b *ActorBase) Name() string { return b.name }

// SetName renomeia o ator.
func (b *ActorBase) SetName(name string) { b.name = name }

// Layer retorna a layer de classificação atual.
func (b *ActorBase) Layer() Layer { return b.layer }

// Position retorna a posição no espaço do mundo.
func (b *ActorBase) Position() mgl32.Vec3 { return b.position }

// Scale retorna a escala local.
func (b *ActorBase) Scale() mgl32.Vec3 { return b.scale }

// SetScale define a escala local sem notificar a cena.
func (b *ActorBase) SetScale(s mgl32.Vec3) { b.scale = s }

// IsEnabled informa se o ator está habilitado (estado desejado).
func (b *ActorBase) IsEnabled() bool { return b.enabled }

// IsActive informa se o ator completou o OnEnable e ainda não iniciou o
// OnDisable. Durante o registro no SceneRendering este flag ainda é false;
// durante a remoção ele já voltou a ser false.
func (b *ActorBase) IsActive() bool { return b.active }

// Scene retorna a cena dona do ator, ou nil se ainda não foi adicionado.
func (b *ActorBase) Scene() *Scene { return b.scene }

// Parent retorna o pai na hierarquia, ou nil para atores raiz.
func (b *ActorBase) Parent() Actor { return b.parent }

// Children retorna os filhos diretos.
func (b *ActorBase) Children() []Actor { return b.children }

// Rendering retorna o registro de renderização da cena dona, ou nil.
func (b *ActorBase) Rendering() *SceneRendering {
	if b.scene == nil {
		return nil
	}
	return b.scene.rendering
}

// OnEnable é o comportamento base da transição disabled->enabled.
// Tipos derivados que sobrescrevem devem delegar para cá ao final.
func (b *ActorBase) OnEnable() {
	b.active = true
}

// OnDisable é o comportamento base da transição enabled->disabled.
// Tipos derivados que sobrescrevem devem delegar para cá no início.
func (b *ActorBase) OnDisable() {
	b.active = false
}

// OnLayerChanged é chamado após a layer do ator mudar. Base: nada a fazer.
func (b *ActorBase) OnLayerChanged() {}

// OnTransformChanged é chamado após a posição/escala mudar via Scene. Base: nada.
func (b *ActorBase) OnTransformChanged() {}

// Update roda a cada tick. Base: nada a fazer.
func (b *ActorBase) Update(dt float32) {}
