package util

import "github.com/go-gl/mathgl/mgl32"

// Lerp realiza interpolação linear entre dois floats.
func Lerp(start, end, amount float32) float32 {
	return start + amount*(end-start)
}

// Clamp limita um float32 ao intervalo [min, max].
func Clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// DistSq retorna a distância quadrada entre dois vetores 3D.
// Usado no culling por distância, onde a raiz quadrada seria desperdício.
func DistSq(v1, v2 mgl32.Vec3) float32 {
	d := v1.Sub(v2)
	return d.Dot(d)
}
