// Package utils provides the filesystem plumbing around the converter:
// input folder enumeration, image decoding, and artifact writing.
package utils

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ImageExts lists the file extensions the input enumerator accepts.
var ImageExts = []string{".jpeg", ".jpg", ".png"}

// ListImages returns the lexicographically sorted names of image files
// directly inside dir (non-recursive). A missing folder is created and
// yields an empty list, so a first run leaves the user a place to drop
// images into.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				return nil, fmt.Errorf("create input folder %s: %w", dir, mkErr)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("read input folder %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(ImageExts, strings.ToLower(filepath.Ext(e.Name()))) {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// ReadImage decodes the image file at path.
func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// ArtifactPath builds the conventional output name
// <dir>/<base>_<suffix>.<ext> for a source image's base name.
func ArtifactPath(dir, base, suffix, ext string) string {
	return filepath.Join(dir, base+"_"+suffix+"."+ext)
}

// WriteArtifact renders one artifact to path, creating the parent folder if
// absent. An existing file is overwritten unconditionally so a re-run
// replaces prior results.
func WriteArtifact(path string, render func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output folder %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// SaveImage writes img to path as PNG with WriteArtifact's overwrite
// semantics.
func SaveImage(img image.Image, path string) error {
	return WriteArtifact(path, func(w io.Writer) error {
		return png.Encode(w, img)
	})
}
