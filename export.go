package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	titleFontSize       = 48
	descriptionFontSize = 28
	exportLineSpacing   = 1.2
)

// exportPNG renders the draft at canonical postcard dimensions and writes
// it to a timestamped file under dir. Rendering is deterministic for a
// given draft.
func exportPNG(d *Draft, dir string) (string, error) {
	dc := gg.NewContext(postcardWidth, postcardHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if d.Background != "" {
		im, err := gg.LoadImage(d.Background)
		if err != nil {
			return "", fmt.Errorf("load background image: %w", err)
		}
		bounds := im.Bounds()
		dc.Push()
		dc.Scale(
			float64(postcardWidth)/float64(bounds.Dx()),
			float64(postcardHeight)/float64(bounds.Dy()),
		)
		dc.DrawImage(im, 0, 0)
		dc.Pop()
	}

	drawFrame(dc, d.Frame)

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return "", fmt.Errorf("parse font: %w", err)
	}
	drawField(dc, ttf, d.Title, titleFontSize)
	drawField(dc, ttf, d.Description, descriptionFontSize)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("postcard-%s.png", time.Now().Format("20060102-150405")))
	if err := dc.SavePNG(path); err != nil {
		return "", err
	}
	return path, nil
}

// drawFrame fills the edge rectangles the frame spec enables, inset zero.
func drawFrame(dc *gg.Context, f FrameSpec) {
	e := f.Edges()
	if !e.Top && !e.Bottom && !e.Left && !e.Right {
		return
	}
	t := float64(f.Thickness)
	w := float64(postcardWidth)
	h := float64(postcardHeight)

	color := f.Color
	if color == "" {
		color = "#000"
	}
	dc.SetHexColor(color)
	if e.Top {
		dc.DrawRectangle(0, 0, w, t)
	}
	if e.Bottom {
		dc.DrawRectangle(0, h-t, w, t)
	}
	if e.Left {
		dc.DrawRectangle(0, 0, t, h)
	}
	if e.Right {
		dc.DrawRectangle(w-t, 0, t, h)
	}
	dc.Fill()
}

func drawField(dc *gg.Context, ttf *truetype.Font, f TextField, size float64) {
	if f.Value == "" {
		return
	}
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{Size: size}))
	dc.SetHexColor("#000")
	for i, line := range strings.Split(f.Value, "\n") {
		y := float64(f.Position.Y) + float64(i)*size*exportLineSpacing + size
		dc.DrawString(line, float64(f.Position.X), y)
	}
}
