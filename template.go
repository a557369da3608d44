package paintbynumber

import (
	"io"
	"math"
	"strconv"
	"time"

	"codeberg.org/go-pdf/fpdf"
)

// Template page geometry, US Letter portrait, in inches.
const (
	pageWidth   = 8.5
	gridWidthIn = 8.0 // printed grid width, cells divide this evenly
	titleY      = 0.5
	gridTop     = 1.0  // first page, below the title
	gridTopCont = 0.75 // continuation pages
	pageBottom  = 10.5 // last usable y
)

// Legend geometry: entries stack in columns of six, original template
// convention.
const (
	legendRowH   = 0.28
	legendColW   = 2.6
	legendPerCol = 6
	swatchSize   = 0.2
)

// paginateRows splits rowCount grid rows into per-page row counts. Pages
// hold whole rows only, so no cell is ever split across a page boundary,
// and every page gets at least one row.
func paginateRows(rowCount int, cellSize, firstAvail, contAvail float64) []int {
	if rowCount <= 0 || cellSize <= 0 {
		return nil
	}
	var pages []int
	remaining := rowCount
	avail := firstAvail
	for remaining > 0 {
		n := int(avail / cellSize)
		if n < 1 {
			n = 1
		}
		if n > remaining {
			n = remaining
		}
		pages = append(pages, n)
		remaining -= n
		avail = contAvail
	}
	return pages
}

// RenderTemplate writes the printable template document for the grid to w:
// a paginated outline grid with each cell's palette number, titled after the
// source image, followed by a color key listing every palette entry with a
// filled swatch and its nearest basic color name. Output bytes depend only
// on the grid, palette and title.
func RenderTemplate(w io.Writer, g Grid, palette []PaletteEntry, title string) error {
	doc := fpdf.New("P", "in", "Letter", "")
	// Pin the metadata clock, otherwise identical runs differ.
	doc.SetCreationDate(time.Unix(0, 0).UTC())
	doc.SetTitle(title, true)
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0.25, 0.5, 0.25)

	cell := gridWidthIn / float64(g.Width)
	startX := (pageWidth - float64(g.Width)*cell) / 2
	numberPt := math.Min(cell*72*0.7, 10)

	y := gridTop
	row := 0
	for pi, rows := range paginateRows(g.Height, cell, pageBottom-gridTop, pageBottom-gridTopCont) {
		doc.AddPage()
		y = gridTopCont
		if pi == 0 {
			doc.SetFont("Helvetica", "", 16)
			doc.Text(0.5, titleY, title)
			y = gridTop
		}
		doc.SetFont("Helvetica", "", numberPt)
		doc.SetDrawColor(0, 0, 0)
		doc.SetTextColor(0, 0, 0)
		doc.SetLineWidth(0.01)
		for range rows {
			for x := range g.Width {
				cx := startX + float64(x)*cell
				doc.Rect(cx, y, cell, cell, "D")
				n := strconv.Itoa(g.At(x, row) + 1)
				doc.Text(cx+(cell-doc.GetStringWidth(n))/2, y+cell*0.7, n)
			}
			y += cell
			row++
		}
	}

	renderLegend(doc, palette, startX, y)
	return doc.Output(w)
}

// renderLegend draws the color key below the last grid row, or on a fresh
// page when the remaining space cannot hold it. Each entry shows its
// display number, a filled swatch, the nearest basic color name and the
// hex value, so the user can match paints by eye or by code.
func renderLegend(doc *fpdf.Fpdf, palette []PaletteEntry, startX, gridEnd float64) {
	entryRows := min(len(palette), legendPerCol)
	needed := legendRowH + float64(entryRows+1)*legendRowH

	y := gridEnd + legendRowH
	if y+needed > pageBottom {
		doc.AddPage()
		y = gridTopCont
	}

	doc.SetFont("Helvetica", "", 12)
	doc.SetTextColor(0, 0, 0)
	doc.Text(startX, y, "Color Key:")

	for i, e := range palette {
		col := i / legendPerCol
		rowIdx := i % legendPerCol
		ex := startX + float64(col)*legendColW
		ey := y + float64(rowIdx+1)*legendRowH

		doc.SetTextColor(0, 0, 0)
		doc.Text(ex, ey, strconv.Itoa(e.Number)+":")

		r, g, b := e.Color.RGB255()
		doc.SetFillColor(int(r), int(g), int(b))
		doc.Rect(ex+0.4, ey-swatchSize*0.8, swatchSize, swatchSize, "FD")

		doc.Text(ex+0.75, ey, e.Name)
		doc.Text(ex+1.8, ey, e.Color.Hex())
	}
}
