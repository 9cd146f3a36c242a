package sketch

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Face is the font every host draws text with. Measuring against the same
// face keeps wrapping identical between layout and rendering.
var Face font.Face = basicfont.Face7x13

// LineHeight is the vertical advance between wrapped lines.
const LineHeight = 16

// TextWidth returns the rendered width of s in pixels.
func TextWidth(s string) float64 {
	return float64(font.MeasureString(Face, s).Ceil())
}

// Wrap breaks s into lines no wider than maxWidth. Words longer than a line
// are split by rune. Explicit newlines are kept.
func Wrap(s string, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, w := range words {
			for TextWidth(w) > maxWidth && len([]rune(w)) > 1 {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				head, tail := splitToWidth(w, maxWidth)
				lines = append(lines, head)
				w = tail
			}
			candidate := w
			if line != "" {
				candidate = line + " " + w
			}
			if line != "" && TextWidth(candidate) > maxWidth {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

func splitToWidth(w string, maxWidth float64) (string, string) {
	r := []rune(w)
	n := 1
	for n < len(r) && TextWidth(string(r[:n+1])) <= maxWidth {
		n++
	}
	return string(r[:n]), string(r[n:])
}

// Truncate shortens s with an ellipsis so it fits in maxWidth.
func Truncate(s string, maxWidth float64) string {
	if TextWidth(s) <= maxWidth {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && TextWidth(string(r)+"...") > maxWidth {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

// WrappedHeight is the height of s wrapped to maxWidth.
func WrappedHeight(s string, maxWidth float64) float64 {
	return float64(len(Wrap(s, maxWidth)) * LineHeight)
}
