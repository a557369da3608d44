package paintbynumber

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPalette() []PaletteEntry {
	return []PaletteEntry{
		{Number: 1, Color: rgb(0, 0, 0), Name: "black"},
		{Number: 2, Color: rgb(255, 0, 0), Name: "red"},
		{Number: 3, Color: rgb(255, 255, 255), Name: "white"},
	}
}

func TestRenderPixelArtSize(t *testing.T) {
	t.Parallel()

	g := Grid{Width: 3, Height: 2, Cells: []int{0, 1, 2, 2, 1, 0}}
	art := RenderPixelArt(g, testPalette(), 4)
	assert.Equal(t, 12, art.Bounds().Dx())
	assert.Equal(t, 8, art.Bounds().Dy())

	// Scale below 1 is clamped.
	art = RenderPixelArt(g, testPalette(), 0)
	assert.Equal(t, 3, art.Bounds().Dx())
	assert.Equal(t, 2, art.Bounds().Dy())
}

func TestRenderPixelArtSolidBlocks(t *testing.T) {
	t.Parallel()

	g := Grid{Width: 2, Height: 2, Cells: []int{0, 1, 2, 1}}
	palette := testPalette()
	const scale = 5
	art := RenderPixelArt(g, palette, scale)

	want := map[[2]int]color.RGBA{
		{0, 0}: {0, 0, 0, 255},
		{1, 0}: {255, 0, 0, 255},
		{0, 1}: {255, 255, 255, 255},
		{1, 1}: {255, 0, 0, 255},
	}
	for cell, expect := range want {
		for dy := range scale {
			for dx := range scale {
				got := art.RGBAAt(cell[0]*scale+dx, cell[1]*scale+dy)
				require.Equal(t, expect, got, "cell %v offset (%d,%d)", cell, dx, dy)
			}
		}
	}
}

func TestRenderPixelArtOnlyPaletteColors(t *testing.T) {
	t.Parallel()

	img := bandImage(90, 90,
		color.RGBA{R: 200, A: 255},
		color.RGBA{G: 180, A: 255},
		color.RGBA{B: 220, A: 255},
	)
	grid, palette, err := Quantize(img, 9, 9, DefaultOptions())
	require.NoError(t, err)

	art := RenderPixelArt(grid, palette, PreviewScale(grid))
	seen := map[color.RGBA]struct{}{}
	b := art.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			seen[art.RGBAAt(x, y)] = struct{}{}
		}
	}
	assert.LessOrEqual(t, len(seen), len(palette))
	assert.LessOrEqual(t, len(seen), 3)
}

func TestPreviewScale(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100, PreviewScale(Grid{Width: 10, Height: 10}))
	assert.Equal(t, 50, PreviewScale(Grid{Width: 10, Height: 20}))
	assert.Equal(t, 1, PreviewScale(Grid{Width: 2000, Height: 5}))
	assert.Equal(t, 1, PreviewScale(Grid{Width: 1000, Height: 1000}))
	assert.Equal(t, 1, PreviewScale(Grid{}))
}
