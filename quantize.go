// Package paintbynumber turns a source image into a small quantized cell
// grid with a numbered color palette, and renders that grid as a pixel-art
// preview image and as a printable paint-by-number template document.
package paintbynumber

import (
	"cmp"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"golang.org/x/image/draw"
)

// ErrGridSize reports non-positive grid dimensions.
var ErrGridSize = errors.New("grid dimensions must be positive")

type Options struct {
	// Maximum number of palette entries. An image with fewer distinct
	// colors than the cap yields a smaller palette; no padding.
	MaxColors int
	// Iteration cap for the clustering loop. Values below 1 are treated as
	// 1; convergence usually ends the loop much earlier at these grid
	// sizes.
	MaxIterations int
	// Seed for cluster seeding. Fixed so the same input always produces
	// the same palette and grid.
	Seed int64
}

func DefaultOptions() Options {
	return Options{
		MaxColors:     8,
		MaxIterations: 50,
		Seed:          42,
	}
}

// Grid is the quantized cell grid. Cells holds row-major indices into the
// palette produced alongside it; display numbering is index+1.
type Grid struct {
	Width  int
	Height int
	Cells  []int
}

// At returns the palette index of the cell at column x, row y.
func (g Grid) At(x, y int) int {
	return g.Cells[y*g.Width+x]
}

// PaletteEntry is one numbered color of an image's palette.
type PaletteEntry struct {
	Number int // 1-based, as printed on the template
	Color  colorful.Color
	Name   string
}

// Quantize downsamples img to a width×height cell grid and reduces its
// colors to a numbered palette of at most opt.MaxColors entries. Every cell
// of the returned grid indexes a valid palette entry, and palette entries
// are numbered 1..n from darkest to brightest.
func Quantize(img image.Image, width, height int, opt Options) (Grid, []PaletteEntry, error) {
	if width < 1 || height < 1 {
		return Grid{}, nil, fmt.Errorf("%w: %dx%d", ErrGridSize, width, height)
	}

	// One pixel per cell. Downsampling averages the source region covered
	// by each cell, so the cell keeps its dominant color instead of a
	// single sampled pixel.
	small := image.NewRGBA(image.Rect(0, 0, width, height))
	b := img.Bounds()
	if b.Dx() < width || b.Dy() < height {
		// Grid exceeds the source resolution, interpolate instead.
		draw.CatmullRom.Scale(small, small.Bounds(), img, b, draw.Src, nil)
	} else {
		boxDownsample(small, img)
	}

	obs := make(clusters.Observations, 0, width*height)
	distinct := make(map[uint32]struct{}, width*height)
	for y := range height {
		for x := range width {
			c := small.RGBAAt(x, y)
			distinct[uint32(c.R)<<16|uint32(c.G)<<8|uint32(c.B)] = struct{}{}
			obs = append(obs, clusters.Coordinates{
				float64(c.R) / 255.0,
				float64(c.G) / 255.0,
				float64(c.B) / 255.0,
			})
		}
	}

	k := min(opt.MaxColors, len(distinct))
	if k < 1 {
		k = 1
	}
	cc := partition(obs, k, opt.MaxIterations, opt.Seed)

	colors := make([]colorful.Color, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		colors = append(colors, col)
	}
	if len(colors) == 0 {
		return Grid{}, nil, fmt.Errorf("quantize: clustering produced no palette for %dx%d grid", width, height)
	}
	sortPaletteByLuminance(colors)

	palette := make([]PaletteEntry, len(colors))
	for i, col := range colors {
		palette[i] = PaletteEntry{
			Number: i + 1,
			Color:  col,
			Name:   ColorName(col),
		}
	}

	g := Grid{Width: width, Height: height, Cells: make([]int, width*height)}
	for i, o := range obs {
		coord := o.Coordinates()
		c := colorful.Color{R: coord[0], G: coord[1], B: coord[2]}
		best := 0
		bestD := math.MaxFloat64
		for j := range palette {
			if d := c.DistanceLab(palette[j].Color); d < bestD {
				bestD = d
				best = j
			}
		}
		g.Cells[i] = best
	}
	return g, palette, nil
}

// boxDownsample fills dst with the plain average of the source pixels
// falling into each cell. Flat source regions aligned to the cell raster
// stay exact, which keeps the palettes of simple images small. Requires the
// source to be at least as large as dst in both dimensions.
func boxDownsample(dst *image.RGBA, src image.Image) {
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()
	w := dst.Rect.Dx()
	h := dst.Rect.Dy()

	sum := make([]float64, w*h*3)
	count := make([]int, w*h)
	for sy := range sh {
		cy := sy * h / sh
		for sx := range sw {
			cx := sx * w / sw
			r, g, bl, _ := src.At(b.Min.X+sx, b.Min.Y+sy).RGBA()
			i := cy*w + cx
			sum[i*3] += float64(r >> 8)
			sum[i*3+1] += float64(g >> 8)
			sum[i*3+2] += float64(bl >> 8)
			count[i]++
		}
	}
	for y := range h {
		for x := range w {
			i := y*w + x
			n := float64(count[i])
			dst.SetRGBA(x, y, color.RGBA{
				R: uint8(sum[i*3]/n + 0.5),
				G: uint8(sum[i*3+1]/n + 0.5),
				B: uint8(sum[i*3+2]/n + 0.5),
				A: 255,
			})
		}
	}
}

// sortPaletteByLuminance orders colors from darkest to brightest so entry 1
// is the darkest color. Ties fall back to RGB order to keep the numbering
// stable across runs.
func sortPaletteByLuminance(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		ri, gi, bi := a.LinearRgb()
		rj, gj, bj := b.LinearRgb()
		yi := 0.2126*ri + 0.7152*gi + 0.0722*bi
		yj := 0.2126*rj + 0.7152*gj + 0.0722*bj
		if yi < yj {
			return -1
		}
		if yi > yj {
			return 1
		}
		if a.R != b.R {
			return cmp.Compare(a.R, b.R)
		}
		if a.G != b.G {
			return cmp.Compare(a.G, b.G)
		}
		return cmp.Compare(a.B, b.B)
	})
}
