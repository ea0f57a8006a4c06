package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// draw renderiza um frame completo.
func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(24, 26, 32, 255))

	rl.BeginMode3D(a.Cam.RLCamera)

	if a.Config.ShowGrid {
		rl.DrawGrid(64, 1.0)
	}

	a.renderer.Draw(a.mirror.Rendering(), a.layerMask, a.Cam.Eye(), a.Config.DrawDistance)

	rl.EndMode3D()

	a.drawHUD()

	if a.State == StatePaused {
		a.drawPauseOverlay()
	}

	rl.EndDrawing()
}

// drawHUD desenha a barra de status e, se habilitado, as informações de debug.
func (a *App) drawHUD() {
	rl.DrawText(a.statusMsg, 10, 10, 20, rl.RayWhite)

	if a.State == StateLoading {
		dots := (a.frameCount / 30) % 4
		msg := "Aguardando cena"
		for i := 0; i < dots; i++ {
			msg += "."
		}
		rl.DrawText(msg, 10, 36, 20, rl.Gray)
	}

	if !a.Config.ShowDebugInfo {
		return
	}

	h := rl.GetScreenHeight()
	lines := []string{
		fmt.Sprintf("FPS: %d", rl.GetFPS()),
		fmt.Sprintf("Atores: %d (registrados: %d)", len(a.mirror.Actors()), a.mirror.Rendering().Count()),
		fmt.Sprintf("Desenhados: %d", a.renderer.DrawCount()),
		fmt.Sprintf("Zoom: %.1f", a.Cam.CurrentZoom),
		fmt.Sprintf("Layers: %08X", a.layerMask),
		fmt.Sprintf("Conectado: %v", a.netClient.IsConnected()),
	}
	y := int32(h) - int32(len(lines))*22 - 10
	for _, line := range lines {
		rl.DrawText(line, 10, y, 18, rl.Lime)
		y += 22
	}
}

// drawPauseOverlay escurece a tela e mostra o aviso de pausa.
func (a *App) drawPauseOverlay() {
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())

	rl.DrawRectangle(0, 0, w, h, rl.NewColor(0, 0, 0, 140))

	msg := "PAUSADO"
	size := int32(40)
	tw := rl.MeasureText(msg, size)
	rl.DrawText(msg, w/2-tw/2, h/2-size/2, size, rl.RayWhite)
	rl.DrawText("ESC para continuar", w/2-110, h/2+30, 20, rl.Gray)
}
