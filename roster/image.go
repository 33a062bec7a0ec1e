// Package roster renders the weekly pairing list as an image: two bordered
// columns of display names, one row per pair.
package roster

import (
	"bytes"
	"errors"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	marginX    = 30.0
	marginY    = 10.0
	lineHeight = 16.0
)

// Render draws the paired display names and returns the encoded PNG.
func Render(pairs [][2]string) (*bytes.Buffer, error) {
	if len(pairs) == 0 {
		return nil, errors.New("no pairs to draw")
	}

	left := make([]string, len(pairs))
	right := make([]string, len(pairs))
	for i, pair := range pairs {
		left[i] = pair[0]
		right[i] = pair[1]
	}

	measure := gg.NewContext(1, 1)
	measure.SetFontFace(basicfont.Face7x13)
	leftWidth := columnWidth(measure, left)
	rightWidth := columnWidth(measure, right)
	height := float64(len(pairs)) * lineHeight

	dc := gg.NewContext(
		int(leftWidth+rightWidth+marginX*2),
		int(height+marginY*2),
	)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0, 0, 0)
	drawColumn(dc, left, marginX/2)
	drawColumn(dc, right, leftWidth+marginX+marginX/2)

	dc.SetRGB(0.5, 0.5, 0.5)
	dc.DrawRectangle(0, 0, leftWidth+marginX, height+marginY*2)
	dc.DrawRectangle(leftWidth+marginX, 0, rightWidth+marginX, height+marginY*2)
	dc.Stroke()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}

	return &buf, nil
}

func columnWidth(dc *gg.Context, names []string) float64 {
	width := 0.0
	for _, name := range names {
		nameWidth, _ := dc.MeasureString(name)
		if nameWidth > width {
			width = nameWidth
		}
	}
	return width
}

func drawColumn(dc *gg.Context, names []string, x float64) {
	for i, name := range names {
		dc.DrawString(name, x, marginY+float64(i+1)*lineHeight-4)
	}
}
