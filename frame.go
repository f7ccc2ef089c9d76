package main

import "github.com/charmbracelet/lipgloss"

type FrameType string

const (
	FrameFull      FrameType = "full"
	FrameTopBottom FrameType = "top-bottom"
	FrameLeftRight FrameType = "left-right"
	FrameNone      FrameType = "none"
)

var frameTypes = []FrameType{FrameFull, FrameTopBottom, FrameLeftRight, FrameNone}

// FrameSpec describes the decorative border drawn around the postcard.
type FrameSpec struct {
	Type      FrameType `json:"type"`
	Thickness int       `json:"thickness"`
	Color     string    `json:"color"`
	Image     string    `json:"image,omitempty"`
}

func defaultFrame() FrameSpec {
	return FrameSpec{Type: FrameFull, Thickness: 1, Color: "#000"}
}

type FrameEdges struct {
	Top    bool
	Bottom bool
	Left   bool
	Right  bool
}

// Edges reports which sides of the canvas the frame covers. A thickness of
// zero renders no visible border regardless of type.
func (f FrameSpec) Edges() FrameEdges {
	if f.Thickness <= 0 {
		return FrameEdges{}
	}
	switch f.Type {
	case FrameFull:
		return FrameEdges{Top: true, Bottom: true, Left: true, Right: true}
	case FrameTopBottom:
		return FrameEdges{Top: true, Bottom: true}
	case FrameLeftRight:
		return FrameEdges{Left: true, Right: true}
	}
	return FrameEdges{}
}

// overlayStyle maps a frame spec to the border style wrapped around the
// rendered canvas. The border sits outside the canvas interior, so it never
// interferes with hit testing or drops on the surface beneath it.
func overlayStyle(f FrameSpec) lipgloss.Style {
	e := f.Edges()
	style := lipgloss.NewStyle()
	if !e.Top && !e.Bottom && !e.Left && !e.Right {
		return style
	}
	border := lipgloss.NormalBorder()
	if f.Thickness >= 3 {
		border = lipgloss.ThickBorder()
	}
	return style.
		Border(border, e.Top, e.Right, e.Bottom, e.Left).
		BorderForeground(lipgloss.Color(f.Color))
}
