package roof

import (
	"image/color"
	"strings"
)

// coveringColors maps covering-tag substrings to display colors. The
// list is ordered: the first substring match wins.
var coveringColors = []struct {
	substr string
	color  color.RGBA
}{
	{"tile", color.RGBA{R: 178, G: 74, B: 43, A: 255}},
	{"clay", color.RGBA{R: 178, G: 74, B: 43, A: 255}},
	{"slate", color.RGBA{R: 62, G: 68, B: 76, A: 255}},
	{"metal", color.RGBA{R: 120, G: 130, B: 140, A: 255}},
	{"zinc", color.RGBA{R: 120, G: 130, B: 140, A: 255}},
	{"shingle", color.RGBA{R: 52, G: 48, B: 45, A: 255}},
	{"bitumen", color.RGBA{R: 52, G: 48, B: 45, A: 255}},
	{"gravel", color.RGBA{R: 170, G: 166, B: 158, A: 255}},
	{"green", color.RGBA{R: 96, G: 128, B: 66, A: 255}},
}

// coveringFallback is used for unrecognized covering tags.
var coveringFallback = color.RGBA{R: 140, G: 140, B: 140, A: 255}

// CoveringColor resolves a covering tag to a display color using
// case-insensitive substring matching, with a neutral gray fallback.
func CoveringColor(tag string) color.RGBA {
	needle := strings.ToLower(tag)
	for _, c := range coveringColors {
		if strings.Contains(needle, c.substr) {
			return c.color
		}
	}
	return coveringFallback
}
