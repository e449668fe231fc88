// Package imaging derives the fixed image ladder of a record directory from
// its source image and inspects the artifacts already on disk.
package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/webp"

	"github.com/bifrost-platform/asset-info-v2/common"
	"github.com/bifrost-platform/asset-info-v2/models"
)

var (
	ErrNoSource          = errors.New("no source image")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// RawSources are hand-supplied raster files that are not part of the
// ladder. They are never written by derivation.
var RawSources = []string{"image.png", "image.jpg", "image.jpeg", "image.webp"}

// Source is the authoritative image of a record directory.
type Source struct {
	Path string
	// Svg is set for vector sources; Width and Height are then zero.
	Svg    bool
	Width  int
	Height int
	Format string
}

func (s Source) Name() string { return filepath.Base(s.Path) }

// FindSource picks the source image of dir: image.svg when present,
// otherwise the largest raster among the raw sources and the ladder PNGs.
// On equal size a raw source wins over a ladder file.
func FindSource(dir string) (Source, error) {
	svgPath := filepath.Join(dir, models.ImageSvg.FileName())
	if common.FileExists(svgPath) {
		return Source{Path: svgPath, Svg: true, Format: "svg"}, nil
	}

	candidates := append([]string(nil), RawSources...)
	for _, t := range models.PngLadder() {
		candidates = append(candidates, t.FileName())
	}

	var best Source
	found := false
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if !common.FileExists(path) {
			continue
		}
		cfg, format, err := decodeConfig(path)
		if err != nil {
			return Source{}, err
		}
		side := max(cfg.Width, cfg.Height)
		if !found || side > max(best.Width, best.Height) {
			best = Source{Path: path, Width: cfg.Width, Height: cfg.Height, Format: format}
			found = true
		}
	}
	if !found {
		return Source{}, fmt.Errorf("%s: %w", dir, ErrNoSource)
	}
	return best, nil
}

func decodeConfig(path string) (image.Config, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, "", err
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if errors.Is(err, image.ErrFormat) {
		return image.Config{}, "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return image.Config{}, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return cfg, format, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if errors.Is(err, image.ErrFormat) {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// Scan reports which ladder files exist in dir.
func Scan(dir string) models.ImageInfo {
	var info models.ImageInfo
	for _, t := range models.AscendingImageTypes() {
		if common.FileExists(filepath.Join(dir, t.FileName())) {
			info.Set(t)
		}
	}
	return info
}

// PngSize returns the pixel dimensions of a PNG file. Other formats are
// rejected even when they carry a .png name.
func PngSize(path string) (int, int, error) {
	cfg, format, err := decodeConfig(path)
	if err != nil {
		return 0, 0, err
	}
	if format != "png" {
		return 0, 0, fmt.Errorf("%s is %s: %w", path, format, ErrUnsupportedFormat)
	}
	return cfg.Width, cfg.Height, nil
}
