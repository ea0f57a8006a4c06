package app

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"ModelVision/cliente/internal/camera"
	"ModelVision/cliente/internal/client"
	"ModelVision/cliente/internal/render"
	"ModelVision/shared/assets"
	"ModelVision/shared/config"
	"ModelVision/shared/scene"
)

// AppState representa os estados possíveis da aplicação.
type AppState int

const (
	StateLoading    AppState = iota // Conectando / aguardando snapshot
	StateViewing                    // Visualizando a cena
	StatePaused                     // Pausado
)

// App é o viewer ModelVision: mantém um espelho local da cena do servidor e
// desenha tudo que o registro de renderização enumera.
type App struct {
	Config *config.Config
	State  AppState

	Cam *camera.Controller

	lib       *assets.Library
	mirror    *scene.Scene
	remote    map[int32]*scene.ModelInstanceActor // por chave do servidor
	renderer  *render.Renderer
	netClient *client.NetworkClient

	// Máscara de layers visíveis, alternável em runtime
	layerMask uint32

	frameCount int
	statusMsg  string
}

// New cria uma nova instância do viewer.
func New(cfg *config.Config) *App {
	return &App{
		Config:    cfg,
		State:     StateLoading,
		remote:    make(map[int32]*scene.ModelInstanceActor),
		layerMask: cfg.LayerMask,
		statusMsg: "Conectando ao servidor...",
	}
}

// Run inicia o loop principal do viewer.
func (a *App) Run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro fatal recuperado: %v", r)
			panic(r)
		}
	}()

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(a.Config.WindowWidth, a.Config.WindowHeight, a.Config.WindowTitle)
	rl.SetTraceLogLevel(rl.LogWarning)

	if a.Config.Fullscreen {
		rl.ToggleFullscreen()
	}

	rl.SetTargetFPS(a.Config.TargetFPS)
	rl.SetExitKey(0)

	log.Println("[ModelVision] Janela inicializada com sucesso")
	log.Printf("[ModelVision] Resolução: %dx%d", a.Config.WindowWidth, a.Config.WindowHeight)

	a.Cam = camera.New(a.Config.FOV)

	lib, err := assets.NewLibrary(a.Config.MaterialDir)
	if err != nil {
		log.Printf("[App] Biblioteca de materiais indisponível (%v), usando fallback", err)
		lib = assets.NewEmptyLibrary()
	}
	a.lib = lib

	a.renderer = render.NewRenderer()
	a.renderer.Wireframe = a.Config.WireframeMode

	a.mirror = scene.NewScene(a.Config.SceneName)
	a.mirror.Rendering().SetEventHandler(a.renderer.HandleEvent)

	a.netClient = client.NewNetworkClient(a.Config.ServerURL)
	go a.connectServer()

	for !rl.WindowShouldClose() {
		a.update()
		a.draw()
	}

	a.shutdown()
	rl.CloseWindow()
}

// update atualiza a lógica a cada frame.
func (a *App) update() {
	a.frameCount++
	dt := rl.GetFrameTime()

	// Mensagens da rede são aplicadas aqui, na thread da cena
	a.drainInbox()

	switch a.State {
	case StateLoading, StateViewing:
		a.renderer.ProcessPurge()
		a.updateInput(dt)
		a.Cam.HandleInput(dt)
		a.Cam.Update(dt)
	case StatePaused:
		a.updateInput(dt) // permite detectar ESC para despausar
	}
}

// shutdown realiza a limpeza de recursos.
func (a *App) shutdown() {
	log.Println("[App] Finalizando viewer...")

	a.netClient.Close()
	a.renderer.Unload()

	if err := a.Config.Save(); err != nil {
		log.Printf("[ModelVision] Erro ao salvar configurações: %v", err)
	}
}
