package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/image/draw"

	"github.com/bifrost-platform/asset-info-v2/common"
	"github.com/bifrost-platform/asset-info-v2/models"
)

// MinSize is the smallest square a raster source is brought up to.
const MinSize = 32

// SvgRasterSize is the size image.svg is rendered at before the cascade.
const SvgRasterSize = 256

type Options struct {
	// Overwrite rewrites ladder files that already exist.
	Overwrite bool
	// MinSize overrides the package MinSize when positive.
	MinSize int
}

// Result lists the rungs written by one Derive call, ascending.
type Result struct {
	Source  Source
	Created []models.ImageType
}

// DerivationError is a record whose images could not be derived.
type DerivationError struct {
	Dir string
	Err error
}

func (e *DerivationError) Error() string { return fmt.Sprintf("deriving %s: %v", e.Dir, e.Err) }
func (e *DerivationError) Unwrap() error { return e.Err }

// Derive brings dir to the fully derived state from its source image. Only
// missing rungs are written unless opts.Overwrite is set; the source file
// itself is never replaced, except that image.svg is rewritten in place when
// it does not declare the canonical viewport. A directory without any image
// is left alone and yields an empty result.
func Derive(dir string, opts Options) (Result, error) {
	src, err := FindSource(dir)
	if err != nil {
		if errors.Is(err, ErrNoSource) {
			return Result{}, nil
		}
		return Result{}, &DerivationError{Dir: dir, Err: err}
	}
	d := deriver{dir: dir, opts: opts, result: Result{Source: src}}
	if src.Svg {
		err = d.fromSvg()
	} else {
		err = d.fromRaster()
	}
	if err != nil {
		return d.result, &DerivationError{Dir: dir, Err: err}
	}
	slices.Sort(d.result.Created)
	return d.result, nil
}

type deriver struct {
	dir    string
	opts   Options
	result Result
}

func (d *deriver) fromSvg() error {
	content, err := os.ReadFile(d.result.Source.Path)
	if err != nil {
		return err
	}
	normalized, err := NormalizeSvg(content)
	if err != nil {
		return err
	}
	if !bytes.Equal(normalized, content) {
		if err := common.WriteFileAtomic(d.result.Source.Path, normalized, 0o644); err != nil {
			return err
		}
		d.result.Created = append(d.result.Created, models.ImageSvg)
	}
	raster, err := Rasterize(normalized, SvgRasterSize)
	if err != nil {
		return err
	}
	return d.cascade(raster)
}

func (d *deriver) fromRaster() error {
	img, err := decodeFile(d.result.Source.Path)
	if err != nil {
		return err
	}
	minSize := MinSize
	if d.opts.MinSize > 0 {
		minSize = d.opts.MinSize
	}
	return d.cascade(Square(img, minSize))
}

// cascade writes every PNG rung no larger than img, each one scaled from the
// previous rung rather than from img.
func (d *deriver) cascade(img image.Image) error {
	side := img.Bounds().Dx()
	current := img
	for _, t := range models.PngLadder() {
		if t.Size() > side {
			continue
		}
		current = Resize(current, t.Size())
		path := filepath.Join(d.dir, t.FileName())
		if path == d.result.Source.Path {
			continue
		}
		if !d.opts.Overwrite && common.FileExists(path) {
			continue
		}
		content, err := EncodePng(current)
		if err != nil {
			return err
		}
		if err := common.WriteFileAtomic(path, content, 0o644); err != nil {
			return err
		}
		d.result.Created = append(d.result.Created, t)
	}
	return nil
}

// Square centres img on a transparent square canvas whose side is the
// longer edge of img, then scales it up to minSize if smaller.
func Square(img image.Image, minSize int) image.Image {
	b := img.Bounds()
	side := max(b.Dx(), b.Dy())
	var out image.Image = img
	if b.Dx() != b.Dy() || b.Min != (image.Point{}) {
		canvas := image.NewNRGBA(image.Rect(0, 0, side, side))
		offset := image.Pt((side-b.Dx())/2, (side-b.Dy())/2)
		draw.Draw(canvas, image.Rectangle{Min: offset, Max: offset.Add(b.Size())}, img, b.Min, draw.Src)
		out = canvas
	}
	if side < minSize {
		return Resize(out, minSize)
	}
	return out
}

// Resize scales img to size×size with Catmull-Rom. An image already at that
// size is returned as is.
func Resize(img image.Image, size int) image.Image {
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size && b.Min == (image.Point{}) {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func EncodePng(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
