package app

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"ModelVision/cliente/internal/camera"
	"ModelVision/shared/scene"
)

// updateInput processa teclas globais do viewer. O movimento da câmera fica
// em camera.Controller.HandleInput.
func (a *App) updateInput(dt float32) {
	switch {
	case rl.IsKeyPressed(rl.KeyEscape):
		if a.State == StatePaused {
			a.State = StateViewing
		} else if a.State == StateViewing {
			a.State = StatePaused
		}

	case rl.IsKeyPressed(rl.KeyF1):
		a.Config.ShowDebugInfo = !a.Config.ShowDebugInfo

	case rl.IsKeyPressed(rl.KeyG):
		a.Config.ShowGrid = !a.Config.ShowGrid

	case rl.IsKeyPressed(rl.KeyF):
		a.renderer.Wireframe = !a.renderer.Wireframe
		a.Config.WireframeMode = a.renderer.Wireframe

	case rl.IsKeyPressed(rl.KeyTab):
		if a.Cam.Mode == camera.ModePerspective {
			a.Cam.SetMode(camera.ModeOrthographic)
		} else {
			a.Cam.SetMode(camera.ModePerspective)
		}

	case rl.IsKeyPressed(rl.KeyHome):
		a.Cam.Focus(mgl32.Vec3{0, 0, 0})

	case rl.IsKeyPressed(rl.KeyR):
		log.Println("[App] Recarregando cena do servidor...")
		a.netClient.RequestScene(a.Config.SceneName)
	}

	// Teclas 1..6 alternam a visibilidade de cada layer
	for i := int32(0); i < 6; i++ {
		if rl.IsKeyPressed(rl.KeyOne + i) {
			a.toggleLayer(scene.Layer(i))
		}
	}
}

// toggleLayer inverte o bit da layer na máscara de visibilidade.
func (a *App) toggleLayer(l scene.Layer) {
	if !l.Valid() {
		return
	}
	a.layerMask ^= l.Mask()
	a.Config.LayerMask = a.layerMask
	log.Printf("[App] Layer %s: visível=%v", l.Name(), a.layerMask&l.Mask() != 0)
}
