package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"ModelVision/shared/util"
)

// Mode define o tipo de projeção.
type Mode int

const (
	ModePerspective Mode = iota
	ModeOrthographic
)

// Controller gerencia a câmera orbital do viewer: o alvo é um ponto da cena
// (ou um ator focado) e a posição é derivada de ângulos esféricos + zoom,
// com interpolação suave para não "saltar".
type Controller struct {
	RLCamera rl.Camera3D

	Mode         Mode
	MinZoom      float32
	MaxZoom      float32
	MoveSpeed    float32
	RotateSpeed  float32
	ZoomSpeed    float32
	SmoothFactor float32 // 0.0 a 1.0 (menor = mais suave/lento)

	// Estado alvo (para onde a câmera quer ir)
	TargetLookAt mgl32.Vec3
	TargetZoom   float32
	AngleY       float32 // azimute (radianos)
	AngleX       float32 // elevação (radianos, negativo = olhando de cima)

	// Estado atual (interpolado a cada frame)
	CurrentLookAt mgl32.Vec3
	CurrentZoom   float32
}

// New cria o controlador com enquadramento isométrico padrão.
func New(fov float32) *Controller {
	c := &Controller{
		Mode:         ModePerspective,
		MinZoom:      2.0,
		MaxZoom:      300.0,
		MoveSpeed:    50.0,
		RotateSpeed:  2.0,
		ZoomSpeed:    10.0,
		SmoothFactor: 0.12,

		TargetZoom: 40.0,
		AngleY:     45.0 * rl.Deg2rad,
		AngleX:     -30.0 * rl.Deg2rad,
	}
	c.CurrentLookAt = c.TargetLookAt
	c.CurrentZoom = c.TargetZoom

	c.RLCamera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       fov,
		Projection: rl.CameraPerspective,
	}
	c.recompute()
	return c
}

// Focus centraliza a câmera em um ponto da cena imediatamente.
func (c *Controller) Focus(pos mgl32.Vec3) {
	c.TargetLookAt = pos
	c.CurrentLookAt = pos
	c.recompute()
}

// Update interpola o estado atual na direção do alvo. Chamar a cada frame.
func (c *Controller) Update(dt float32) {
	// Amortecimento normalizado para 60 FPS
	factor := util.Clamp(c.SmoothFactor*60.0*dt, 0, 1)

	delta := c.TargetLookAt.Sub(c.CurrentLookAt).Mul(factor)
	c.CurrentLookAt = c.CurrentLookAt.Add(delta)
	c.CurrentZoom = util.Lerp(c.CurrentZoom, c.TargetZoom, factor)

	c.recompute()
}

// recompute converte ângulos esféricos + zoom na posição cartesiana do raylib.
func (c *Controller) recompute() {
	dist := c.CurrentZoom

	if c.Mode == ModeOrthographic {
		// No ortográfico o "zoom" vira escala via Fovy; a câmera fica longe
		// para não cortar geometria no near plane.
		c.RLCamera.Fovy = c.CurrentZoom * 0.5
		c.RLCamera.Projection = rl.CameraOrthographic
		dist = 250.0
	} else {
		c.RLCamera.Fovy = 45.0
		c.RLCamera.Projection = rl.CameraPerspective
	}

	cosX := float32(math.Cos(float64(c.AngleX)))
	sinX := float32(math.Sin(float64(c.AngleX)))
	cosY := float32(math.Cos(float64(c.AngleY)))
	sinY := float32(math.Sin(float64(c.AngleY)))

	offset := mgl32.Vec3{
		dist * cosX * sinY,
		dist * -sinX, // Y é UP no raylib; olhamos de cima para baixo
		dist * cosX * cosY,
	}
	eye := c.CurrentLookAt.Add(offset)

	c.RLCamera.Position = rl.Vector3{X: eye.X(), Y: eye.Y(), Z: eye.Z()}
	c.RLCamera.Target = rl.Vector3{X: c.CurrentLookAt.X(), Y: c.CurrentLookAt.Y(), Z: c.CurrentLookAt.Z()}
}

// Eye retorna a posição atual da câmera no espaço da cena.
func (c *Controller) Eye() mgl32.Vec3 {
	return mgl32.Vec3{c.RLCamera.Position.X, c.RLCamera.Position.Y, c.RLCamera.Position.Z}
}

// SetMode alterna entre perspectiva e ortográfica.
func (c *Controller) SetMode(mode Mode) {
	c.Mode = mode
	c.recompute()
}

// HandleInput processa mouse e teclado. Retorna true se houve movimento.
func (c *Controller) HandleInput(dt float32) bool {
	moved := false

	// Zoom com scroll
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		moved = true
		c.TargetZoom = util.Clamp(c.TargetZoom-wheel*c.ZoomSpeed, c.MinZoom, c.MaxZoom)
	}

	// Órbita com botão direito
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			moved = true
		}
		c.AngleY -= delta.X * c.RotateSpeed * 0.005
		c.AngleX -= delta.Y * c.RotateSpeed * 0.005

		// Clamp na elevação para não virar de ponta cabeça
		c.AngleX = util.Clamp(c.AngleX, -89.0*rl.Deg2rad, -5.0*rl.Deg2rad)
	}

	// Pan WASD no plano XZ, relativo à direção da câmera
	forward := c.TargetLookAt.Sub(c.Eye())
	forward[1] = 0
	if forward.Len() < 1e-5 {
		return moved
	}
	forward = forward.Normalize()
	right := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()

	// Velocidade proporcional ao zoom: quanto mais alto, mais rápido
	speed := c.MoveSpeed * (c.CurrentZoom / 50.0) * dt

	move := mgl32.Vec3{}
	if rl.IsKeyDown(rl.KeyW) {
		move = move.Add(forward)
	}
	if rl.IsKeyDown(rl.KeyS) {
		move = move.Sub(forward)
	}
	if rl.IsKeyDown(rl.KeyD) {
		move = move.Add(right)
	}
	if rl.IsKeyDown(rl.KeyA) {
		move = move.Sub(right)
	}

	if move.Len() > 0 {
		c.TargetLookAt = c.TargetLookAt.Add(move.Normalize().Mul(speed))
		moved = true
	}
	return moved
}
