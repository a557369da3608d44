package paintbynumber

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// DefaultPreviewTarget is the approximate pixel length of the preview
// image's longer side.
const DefaultPreviewTarget = 1000

// PreviewScale returns the block edge in pixels that renders the longer
// grid side close to DefaultPreviewTarget, never below 1.
func PreviewScale(g Grid) int {
	longer := max(g.Width, g.Height)
	if longer < 1 {
		return 1
	}
	return max(1, DefaultPreviewTarget/longer)
}

// RenderPixelArt expands the grid to a raster preview, one solid
// scale×scale block per cell. Nearest-neighbor upscaling keeps block edges
// sharp and the output contains only palette colors.
func RenderPixelArt(g Grid, palette []PaletteEntry, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	small := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := range g.Height {
		for x := range g.Width {
			c := palette[g.At(x, y)].Color
			small.SetRGBA(x, y, color.RGBA{
				uint8(max(0, min(255, c.R*255))),
				uint8(max(0, min(255, c.G*255))),
				uint8(max(0, min(255, c.B*255))),
				255,
			})
		}
	}
	out := image.NewRGBA(image.Rect(0, 0, g.Width*scale, g.Height*scale))
	draw.NearestNeighbor.Scale(out, out.Bounds(), small, small.Bounds(), draw.Src, nil)
	return out
}
