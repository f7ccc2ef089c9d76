package main

import (
	"strings"
)

// Canvas is the postcard surface. It owns the mapping between screen cells
// and canvas-local pixel coordinates, hit testing for drag starts, and the
// conversion of a drop back into a committed element position.
type Canvas struct {
	cols int
	rows int
	// Screen cell of the interior's top-left corner, refreshed on layout so
	// mouse coordinates can be translated into the canvas.
	originCol int
	originRow int
}

func NewCanvas() *Canvas {
	return &Canvas{cols: canvasCols, rows: canvasRows}
}

func (c *Canvas) SetOrigin(col, row int) {
	c.originCol = col
	c.originRow = row
}

func (c *Canvas) pxPerCol() float64 {
	return float64(postcardWidth) / float64(c.cols)
}

func (c *Canvas) pxPerRow() float64 {
	return float64(postcardHeight) / float64(c.rows)
}

// Contains reports whether a screen cell lies on the canvas interior. The
// frame overlay sits outside the interior and therefore never swallows a
// drop.
func (c *Canvas) Contains(col, row int) bool {
	return col >= c.originCol && col < c.originCol+c.cols &&
		row >= c.originRow && row < c.originRow+c.rows
}

// ToLocal converts a screen cell to canvas-local pixels at the cell center.
func (c *Canvas) ToLocal(col, row int) Point {
	return Point{
		X: int((float64(col-c.originCol) + 0.5) * c.pxPerCol()),
		Y: int((float64(row-c.originRow) + 0.5) * c.pxPerRow()),
	}
}

// cellFor converts a canvas-local pixel position to an interior cell.
func (c *Canvas) cellFor(p Point) (int, int) {
	col := int(float64(p.X) / c.pxPerCol())
	row := int(float64(p.Y) / c.pxPerRow())
	if col < 0 {
		col = 0
	}
	if col >= c.cols {
		col = c.cols - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= c.rows {
		row = c.rows - 1
	}
	return col, row
}

func clampToCanvas(p Point) Point {
	if p.X < 0 {
		p.X = 0
	}
	if p.X >= postcardWidth {
		p.X = postcardWidth - 1
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y >= postcardHeight {
		p.Y = postcardHeight - 1
	}
	return p
}

// MeasureHalf returns half the rendered extent of a text element in
// postcard pixels, so a drop can center the element under the pointer. The
// legacy constants cover the degenerate case of unmeasurable text.
func (c *Canvas) MeasureHalf(text string) (int, int) {
	if text == "" {
		return legacyDropOffsetX, legacyDropOffsetY
	}
	lines := strings.Split(text, "\n")
	longest := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > longest {
			longest = n
		}
	}
	halfW := int(float64(longest) * c.pxPerCol() / 2)
	halfH := int(float64(len(lines)) * c.pxPerRow() / 2)
	return halfW, halfH
}

// DropPosition converts a release at a screen cell into the committed
// canvas-local position for an element with the given half extents. The
// second return is false when the release landed outside the canvas, in
// which case no position update may happen.
func (c *Canvas) DropPosition(col, row, halfW, halfH int) (Point, bool) {
	if !c.Contains(col, row) {
		return Point{}, false
	}
	local := c.ToLocal(col, row)
	return clampToCanvas(Point{X: local.X - halfW, Y: local.Y - halfH}), true
}

// HitTest reports which field's rendered extent covers a screen cell.
// Title is checked first, so it wins when both fields overlap a cell.
func (c *Canvas) HitTest(col, row int, d *Draft) FieldKind {
	if !c.Contains(col, row) {
		return FieldNone
	}
	rel := struct{ col, row int }{col - c.originCol, row - c.originRow}
	for _, kind := range []FieldKind{FieldTitle, FieldDescription} {
		f := d.Field(kind)
		if f.Value == "" {
			continue
		}
		startCol, startRow := c.cellFor(f.Position)
		for i, line := range strings.Split(f.Value, "\n") {
			if rel.row != startRow+i {
				continue
			}
			if rel.col >= startCol && rel.col < startCol+len([]rune(line)) {
				return kind
			}
		}
	}
	return FieldNone
}

// Nudge moves a field by whole cells, committing (and therefore clamping)
// on every step.
func (c *Canvas) Nudge(d *Draft, kind FieldKind, dCols, dRows int) {
	if kind == FieldNone {
		return
	}
	f := d.Field(kind)
	p := Point{
		X: f.Position.X + int(float64(dCols)*c.pxPerCol()),
		Y: f.Position.Y + int(float64(dRows)*c.pxPerRow()),
	}
	d.SetPosition(kind, clampToCanvas(p))
}

const (
	ansiFaint   = "\x1b[2m"
	ansiReverse = "\x1b[7m"
	ansiReset   = "\x1b[0m"
)

type cellSpan struct {
	row   int
	col   int
	width int
	code  string
}

// Render draws the canvas interior: both text fields at their positions,
// the dragged field dimmed, a ghost of the payload under the pointer, and
// the frame overlay wrapped around the result.
func (c *Canvas) Render(d *Draft, drag dragState, selected FieldKind) string {
	grid := make([][]rune, c.rows)
	for i := range grid {
		grid[i] = make([]rune, c.cols)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	var spans []cellSpan
	// Description first so the title overdraws it, matching hit-test
	// preference.
	for _, kind := range []FieldKind{FieldDescription, FieldTitle} {
		f := d.Field(kind)
		if f.Value == "" {
			continue
		}
		code := ""
		if drag.active && drag.payload.Kind == kind {
			code = ansiFaint
		} else if selected == kind {
			code = ansiReverse
		}
		startCol, startRow := c.cellFor(f.Position)
		for i, line := range strings.Split(f.Value, "\n") {
			width := c.drawLine(grid, startCol, startRow+i, line)
			if code != "" && width > 0 {
				spans = append(spans, cellSpan{row: startRow + i, col: startCol, width: width, code: code})
			}
		}
	}

	if drag.active && c.Contains(drag.ghostCol, drag.ghostRow) {
		ghostCol := drag.ghostCol - c.originCol
		ghostRow := drag.ghostRow - c.originRow
		for i, line := range strings.Split(drag.payload.Text, "\n") {
			width := c.drawLine(grid, ghostCol, ghostRow+i, line)
			if width > 0 {
				spans = append(spans, cellSpan{row: ghostRow + i, col: ghostCol, width: width, code: ansiFaint})
			}
		}
	}

	lines := make([]string, c.rows)
	for i := range grid {
		lines[i] = styleRow(grid[i], spans, i)
	}
	return overlayStyle(d.Frame).Render(strings.Join(lines, "\n"))
}

// drawLine writes a line of text into the grid, clipped to the interior,
// and returns how many cells it occupied.
func (c *Canvas) drawLine(grid [][]rune, col, row int, line string) int {
	if row < 0 || row >= c.rows {
		return 0
	}
	width := 0
	for i, r := range []rune(line) {
		x := col + i
		if x < 0 {
			continue
		}
		if x >= c.cols {
			break
		}
		grid[row][x] = r
		width++
	}
	return width
}

// styleRow assembles one output line, wrapping any spans that land on this
// row in their ANSI codes.
func styleRow(cells []rune, spans []cellSpan, row int) string {
	var rowSpans []cellSpan
	for _, s := range spans {
		if s.row == row {
			rowSpans = append(rowSpans, s)
		}
	}
	if len(rowSpans) == 0 {
		return string(cells)
	}

	var b strings.Builder
	for i := 0; i < len(cells); {
		matched := false
		for _, s := range rowSpans {
			if s.col == i {
				end := s.col + s.width
				if end > len(cells) {
					end = len(cells)
				}
				b.WriteString(s.code)
				b.WriteString(string(cells[i:end]))
				b.WriteString(ansiReset)
				i = end
				matched = true
				break
			}
		}
		if !matched {
			b.WriteRune(cells[i])
			i++
		}
	}
	return b.String()
}
