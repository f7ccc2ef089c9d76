package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameEdgesTable(t *testing.T) {
	tests := []struct {
		name  string
		frame FrameSpec
		want  FrameEdges
	}{
		{"full", FrameSpec{Type: FrameFull, Thickness: 2}, FrameEdges{Top: true, Bottom: true, Left: true, Right: true}},
		{"top-bottom", FrameSpec{Type: FrameTopBottom, Thickness: 2}, FrameEdges{Top: true, Bottom: true}},
		{"left-right", FrameSpec{Type: FrameLeftRight, Thickness: 2}, FrameEdges{Left: true, Right: true}},
		{"none", FrameSpec{Type: FrameNone, Thickness: 2}, FrameEdges{}},
		{"full but zero thickness", FrameSpec{Type: FrameFull, Thickness: 0}, FrameEdges{}},
		{"top-bottom but zero thickness", FrameSpec{Type: FrameTopBottom, Thickness: 0}, FrameEdges{}},
		{"negative thickness", FrameSpec{Type: FrameFull, Thickness: -3}, FrameEdges{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.frame.Edges())
		})
	}
}

func TestOverlayStyleDeterministic(t *testing.T) {
	frame := FrameSpec{Type: FrameLeftRight, Thickness: 4, Color: "#000"}
	first := overlayStyle(frame).Render("content")
	second := overlayStyle(frame).Render("content")
	assert.Equal(t, first, second)
}

func TestOverlayStyleInvisibleWhenZero(t *testing.T) {
	plain := "content"
	assert.Equal(t, plain, overlayStyle(FrameSpec{Type: FrameFull, Thickness: 0}).Render(plain))
	assert.Equal(t, plain, overlayStyle(FrameSpec{Type: FrameNone, Thickness: 5}).Render(plain))
}
