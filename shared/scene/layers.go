package scene

import "strconv"

// Layer classifica um ator para filtros de visibilidade do renderer.
// São 32 layers; a máscara de bits correspondente é usada pelo registro
// de renderização para enumerar só o que o viewer quer ver.
type Layer int32

const (
	LayerDefault Layer = iota
	LayerTerrain
	LayerProps
	LayerUnits
	LayerEffects
	LayerUI

	MaxLayers = 32
)

var layerNames = [...]string{
	LayerDefault: "Default",
	LayerTerrain: "Terrain",
	LayerProps:   "Props",
	LayerUnits:   "Units",
	LayerEffects: "Effects",
	LayerUI:      "UI",
}

// Name retorna o nome da layer, ou "Layer N" para layers sem nome reservado.
func (l Layer) Name() string {
	if l >= 0 && int(l) < len(layerNames) && layerNames[l] != "" {
		return layerNames[l]
	}
	return "Layer " + strconv.Itoa(int(l))
}

// Mask retorna a máscara de bits da layer.
func (l Layer) Mask() uint32 {
	if l < 0 || l >= MaxLayers {
		return 0
	}
	return 1 << uint32(l)
}

// Valid verifica se a layer está no intervalo suportado.
func (l Layer) Valid() bool {
	return l >= 0 && l < MaxLayers
}
