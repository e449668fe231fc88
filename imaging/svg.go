package imaging

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/bifrost-platform/asset-info-v2/models"
)

var svgRootRe = regexp.MustCompile(`(?s)<svg\b[^>]*>`)

func svgAttrRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`\s` + name + `\s*=\s*("[^"]*"|'[^']*')`)
}

var (
	svgWidthRe   = svgAttrRe("width")
	svgHeightRe  = svgAttrRe("height")
	svgViewBoxRe = svgAttrRe("viewBox")
)

func svgRoot(content []byte) ([]int, error) {
	loc := svgRootRe.FindIndex(content)
	if loc == nil {
		return nil, fmt.Errorf("no <svg> element: %w", ErrUnsupportedFormat)
	}
	return loc, nil
}

func attr(re *regexp.Regexp, tag []byte) (string, bool) {
	m := re.FindSubmatch(tag)
	if m == nil {
		return "", false
	}
	return string(m[1][1 : len(m[1])-1]), true
}

func parseLength(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	return strconv.ParseFloat(s, 64)
}

// SvgSize returns the width and height declared on the root element.
func SvgSize(content []byte) (float64, float64, error) {
	loc, err := svgRoot(content)
	if err != nil {
		return 0, 0, err
	}
	tag := content[loc[0]:loc[1]]
	ws, okW := attr(svgWidthRe, tag)
	hs, okH := attr(svgHeightRe, tag)
	if !okW || !okH {
		return 0, 0, fmt.Errorf("svg declares no width or height")
	}
	w, err := parseLength(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("svg width %q: %w", ws, err)
	}
	h, err := parseLength(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("svg height %q: %w", hs, err)
	}
	return w, h, nil
}

func SvgFileSize(path string) (float64, float64, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}
	return SvgSize(content)
}

// NormalizeSvg declares the canonical 128 viewport on the root element. The
// original coordinate system is kept as viewBox. Content that is already
// canonical is returned unchanged.
func NormalizeSvg(content []byte) ([]byte, error) {
	loc, err := svgRoot(content)
	if err != nil {
		return nil, err
	}
	tag := content[loc[0]:loc[1]]
	ws, okW := attr(svgWidthRe, tag)
	hs, okH := attr(svgHeightRe, tag)
	viewBox, hasViewBox := attr(svgViewBoxRe, tag)

	if w, h, err := SvgSize(content); err == nil && w == models.SvgSize && h == models.SvgSize && hasViewBox {
		return content, nil
	}
	if !hasViewBox {
		if !okW || !okH {
			return nil, fmt.Errorf("svg has neither viewBox nor width and height: %w", ErrUnsupportedFormat)
		}
		w, err := parseLength(ws)
		if err != nil {
			return nil, fmt.Errorf("svg width %q: %w", ws, err)
		}
		h, err := parseLength(hs)
		if err != nil {
			return nil, fmt.Errorf("svg height %q: %w", hs, err)
		}
		viewBox = fmt.Sprintf("0 0 %s %s", formatLength(w), formatLength(h))
	}

	rest := svgWidthRe.ReplaceAll(tag, nil)
	rest = svgHeightRe.ReplaceAll(rest, nil)
	rest = svgViewBoxRe.ReplaceAll(rest, nil)
	rest = bytes.TrimPrefix(rest, []byte("<svg"))

	var out bytes.Buffer
	out.Grow(len(content) + 64)
	out.Write(content[:loc[0]])
	fmt.Fprintf(&out, `<svg width="%d" height="%d" viewBox="%s"`, models.SvgSize, models.SvgSize, viewBox)
	out.Write(rest)
	out.Write(content[loc[1]:])
	return out.Bytes(), nil
}

func formatLength(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Rasterize renders svg content onto a transparent size×size canvas.
func Rasterize(content []byte, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(content), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parsing svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)
	return img, nil
}
