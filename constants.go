package main

type Mode int

const (
	ModeLoading Mode = iota
	ModeLoginPrompt
	ModeLogin
	ModeCompose
	ModeCanvas
	ModeSubmitted
)

type FieldKind int

const (
	FieldNone FieldKind = iota
	FieldTitle
	FieldDescription
)

func (k FieldKind) String() string {
	switch k {
	case FieldTitle:
		return "title"
	case FieldDescription:
		return "description"
	}
	return "none"
}

const (
	// Canonical postcard dimensions: A4 landscape at 96 dpi (297mm x 210mm).
	postcardWidth  = 1122
	postcardHeight = 794

	// Terminal cells spanned by the canvas interior. Roughly preserves the
	// postcard aspect given the ~1:2 width/height ratio of a terminal cell.
	canvasCols = 62
	canvasRows = 22

	// Fallback drop-centering offsets, in postcard pixels. Used only when
	// the dragged element could not be measured at drag start.
	legacyDropOffsetX = 150
	legacyDropOffsetY = 50
)
