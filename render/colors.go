package render

import "image/color"

var (
	// Black is used for label text and letter box padding
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	// Aqua is the face box and label panel color, #00FFC6
	Aqua = color.RGBA{R: 0, G: 255, B: 198, A: 255}
)
