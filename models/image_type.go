package models

import "fmt"

// ImageType is one rung of the image ladder. The constants are declared in
// ascending order; svg counts as the largest.
type ImageType uint8

const (
	ImagePng32 ImageType = iota
	ImagePng64
	ImagePng128
	ImagePng256
	ImageSvg
)

// SvgSize is the canonical viewport of image.svg.
const SvgSize = 128

var imageTypes = [...]struct {
	name string
	file string
	size int
}{
	ImagePng32:  {"png32", "image-32.png", 32},
	ImagePng64:  {"png64", "image-64.png", 64},
	ImagePng128: {"png128", "image-128.png", 128},
	ImagePng256: {"png256", "image-256.png", 256},
	ImageSvg:    {"svg", "image.svg", SvgSize},
}

// AscendingImageTypes returns png32, png64, png128, png256, svg.
func AscendingImageTypes() []ImageType {
	return []ImageType{ImagePng32, ImagePng64, ImagePng128, ImagePng256, ImageSvg}
}

func DescendingImageTypes() []ImageType {
	return []ImageType{ImageSvg, ImagePng256, ImagePng128, ImagePng64, ImagePng32}
}

// PngLadder returns the raster rungs from largest to smallest.
func PngLadder() []ImageType {
	return []ImageType{ImagePng256, ImagePng128, ImagePng64, ImagePng32}
}

func (t ImageType) valid() bool { return int(t) < len(imageTypes) }

func (t ImageType) String() string {
	if !t.valid() {
		return fmt.Sprintf("ImageType(%d)", t)
	}
	return imageTypes[t].name
}

func (t ImageType) FileName() string { return imageTypes[t].file }

// Size is the nominal pixel size for PNG rungs and the viewport for svg.
func (t ImageType) Size() int { return imageTypes[t].size }

func (t ImageType) IsPng() bool { return t != ImageSvg && t.valid() }

func ParseImageType(s string) (ImageType, error) {
	for i, it := range imageTypes {
		if it.name == s {
			return ImageType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown image type %q", s)
}

// PngImageType maps a pixel size to its rung.
func PngImageType(size int) (ImageType, error) {
	for _, t := range PngLadder() {
		if t.Size() == size {
			return t, nil
		}
	}
	return 0, fmt.Errorf("no image type for size %d", size)
}

func ImageTypeFromFileName(name string) (ImageType, bool) {
	for i, it := range imageTypes {
		if it.file == name {
			return ImageType(i), true
		}
	}
	return 0, false
}
