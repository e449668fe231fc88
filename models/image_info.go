package models

import (
	"fmt"
	"strings"
)

// ImageInfo records which ladder artifacts exist for a record. Fields are in
// key order so the encoded object is sorted.
type ImageInfo struct {
	Png128 bool `json:"png128"`
	Png256 bool `json:"png256"`
	Png32  bool `json:"png32"`
	Png64  bool `json:"png64"`
	Svg    bool `json:"svg"`
}

func (i *ImageInfo) flag(t ImageType) *bool {
	switch t {
	case ImagePng32:
		return &i.Png32
	case ImagePng64:
		return &i.Png64
	case ImagePng128:
		return &i.Png128
	case ImagePng256:
		return &i.Png256
	case ImageSvg:
		return &i.Svg
	default:
		panic(fmt.Sprintf("unknown image type %d", t))
	}
}

func (i ImageInfo) Has(t ImageType) bool { return *i.flag(t) }
func (i *ImageInfo) Set(t ImageType)     { *i.flag(t) = true }
func (i *ImageInfo) Unset(t ImageType)   { *i.flag(t) = false }

// Types lists the set flags in ascending ladder order.
func (i ImageInfo) Types() []ImageType {
	var out []ImageType
	for _, t := range AscendingImageTypes() {
		if i.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

func (i ImageInfo) IsEmpty() bool { return len(i.Types()) == 0 }

func (i ImageInfo) String() string {
	names := make([]string, 0, 5)
	for _, t := range i.Types() {
		names = append(names, t.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

// CheckLadder requires the set flags to form a prefix of the ascending
// ladder: once a rung is missing no larger rung may be present.
func (i ImageInfo) CheckLadder() error {
	var missing ImageType
	gap := false
	for _, t := range AscendingImageTypes() {
		switch {
		case !i.Has(t) && !gap:
			gap, missing = true, t
		case i.Has(t) && gap:
			return schemaErr("image-ladder", i.String(), "%s is set but smaller rung %s is not", t, missing)
		}
	}
	return nil
}

func (i *ImageInfo) UnmarshalJSON(data []byte) error {
	var v ImageInfo
	err := decodeObject(data,
		required("png128", &v.Png128),
		required("png256", &v.Png256),
		required("png32", &v.Png32),
		required("png64", &v.Png64),
		required("svg", &v.Svg),
	)
	if err != nil {
		return err
	}
	*i = v
	return nil
}
