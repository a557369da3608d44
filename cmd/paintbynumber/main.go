// Command paintbynumber converts every image found in pics/ into a
// pixel-art preview PNG under pixel_art/ and a printable numbered template
// PDF under templates/.
//
// Usage:
//
//	paintbynumber <width> <height>
//
// width and height are the grid dimensions in cells. Outputs for an image
// are overwritten on every run; a failing image is skipped and the batch
// continues.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cenkalti/dominantcolor"

	"github.com/setanarut/paintbynumber"
	"github.com/setanarut/paintbynumber/utils"
)

// Folder conventions, relative to the invocation directory.
const (
	inputDir    = "pics"
	previewDir  = "pixel_art"
	templateDir = "templates"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	width, height, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\nusage: %s <width> <height>\n", err, filepath.Base(os.Args[0]))
		os.Exit(2)
	}
	if err := run(width, height); err != nil {
		slog.Error("processing aborted", "error", err)
		os.Exit(1)
	}
}

func parseArgs(args []string) (width, height int, err error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("expected exactly two arguments, got %d", len(args))
	}
	width, err = strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("width: %w", err)
	}
	height, err = strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("height: %w", err)
	}
	if width < 1 || height < 1 {
		return 0, 0, fmt.Errorf("width and height must be positive, got %dx%d", width, height)
	}
	return width, height, nil
}

func run(width, height int) error {
	names, err := utils.ListImages(inputDir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		slog.Info("no images found, drop .png/.jpg files into the input folder", "folder", inputDir)
		return nil
	}

	slog.Info("processing images", "count", len(names), "grid", fmt.Sprintf("%dx%d", width, height))
	failed := 0
	for _, name := range names {
		if err := process(name, width, height); err != nil {
			slog.Error("skipping image", "image", name, "error", err)
			failed++
		}
	}
	slog.Info("processing complete", "ok", len(names)-failed, "failed", failed)
	return nil
}

// process converts a single input image; its outputs are independent of
// every other image in the batch.
func process(name string, width, height int) error {
	img, err := utils.ReadImage(filepath.Join(inputDir, name))
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	slog.Info("processing", "image", name, "dominant", dominantcolor.Hex(dominantcolor.Find(img)))

	grid, palette, err := paintbynumber.Quantize(img, width, height, paintbynumber.DefaultOptions())
	if err != nil {
		return err
	}

	art := paintbynumber.RenderPixelArt(grid, palette, paintbynumber.PreviewScale(grid))
	artPath := utils.ArtifactPath(previewDir, base, "pixel_art", "png")
	if err := utils.SaveImage(art, artPath); err != nil {
		return err
	}
	slog.Info("created pixel art", "path", artPath, "colors", len(palette))

	tplPath := utils.ArtifactPath(templateDir, base, "template", "pdf")
	err = utils.WriteArtifact(tplPath, func(w io.Writer) error {
		return paintbynumber.RenderTemplate(w, grid, palette, base)
	})
	if err != nil {
		return err
	}
	slog.Info("created template", "path", tplPath)
	return nil
}
