package main

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel(t *testing.T) model {
	t.Helper()
	cfg := &Config{ServerURL: "http://localhost:0", HTTPTimeout: 1, ExportDir: t.TempDir()}
	return initialModel(cfg, zerolog.Nop())
}

func loggedInModel(t *testing.T) model {
	t.Helper()
	m := testModel(t)
	next, _ := m.enterComposer(&User{ID: "u1", Username: "ada"})
	return next.(model)
}

func TestLoggedOutUserSeesLoginPromptNotForm(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(sessionMsg{user: nil})
	m = next.(model)

	assert.Equal(t, ModeLoginPrompt, m.mode)
	view := m.View()
	assert.Contains(t, view, "login")
	assert.Contains(t, view, "/login")
	assert.NotContains(t, view, "Create Postcard")
}

func TestSessionErrorDegradesToLoginPrompt(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(sessionMsg{err: errors.New("connection refused")})
	assert.Equal(t, ModeLoginPrompt, next.(model).mode)
}

func TestLoggedInUserEntersComposer(t *testing.T) {
	m := testModel(t)
	next, cmd := m.Update(sessionMsg{user: &User{ID: "u1", Username: "ada"}})
	m = next.(model)

	assert.Equal(t, ModeCompose, m.mode)
	require.NotNil(t, m.draft)
	assert.Equal(t, "u1", m.draft.Owner)
	// The recipients lookup fires on entry.
	assert.NotNil(t, cmd)
}

func TestUsersFetchFailureIsSwallowed(t *testing.T) {
	m := loggedInModel(t)
	next, _ := m.Update(usersLoadedMsg{err: errors.New("boom")})
	m = next.(model)

	assert.Equal(t, ModeCompose, m.mode)
	assert.Empty(t, m.errorMessage)
	assert.Empty(t, m.form.users)
}

func TestUsersPopulateRecipients(t *testing.T) {
	m := loggedInModel(t)
	next, _ := m.Update(usersLoadedMsg{users: []User{{ID: "u2", Username: "grace"}}})
	m = next.(model)
	assert.Len(t, m.form.users, 1)
}

func TestMouseDragDropUpdatesOnlyDraggedField(t *testing.T) {
	m := loggedInModel(t)
	m.draft.SetTitleValue("Hello")
	m.draft.SetDescriptionValue("There")
	m.draft.SetDescriptionPosition(Point{X: 500, Y: 500})
	m.layoutCanvas()

	// Default frame is full, so the interior starts at cell (1,1) and the
	// title sits there.
	m = m.handleMouse(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, m.drag.active)
	assert.Equal(t, FieldTitle, m.drag.payload.Kind)

	m = m.handleMouse(tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionMotion})
	assert.Equal(t, 20, m.drag.ghostCol)

	m = m.handleMouse(tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionRelease})
	assert.False(t, m.drag.active)
	assert.NotEqual(t, Point{}, m.draft.Title.Position)
	assert.Equal(t, Point{X: 500, Y: 500}, m.draft.Description.Position)
}

func TestMouseReleaseOutsideCanvasChangesNothing(t *testing.T) {
	m := loggedInModel(t)
	m.draft.SetTitleValue("Hello")
	m.layoutCanvas()

	m = m.handleMouse(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, m.drag.active)

	m = m.handleMouse(tea.MouseMsg{X: 200, Y: 200, Action: tea.MouseActionRelease})
	assert.False(t, m.drag.active)
	assert.Equal(t, Point{X: 0, Y: 0}, m.draft.Title.Position)
}

func TestMousePressOnEmptyCanvasStartsNoDrag(t *testing.T) {
	m := loggedInModel(t)
	m = m.handleMouse(tea.MouseMsg{X: 30, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.drag.active)
}

func TestSubmitSuccessRoutesToDetail(t *testing.T) {
	m := loggedInModel(t)
	m.submitting = true
	next, _ := m.Update(submitResultMsg{card: &StoredPostcard{ID: "pc-42"}})
	m = next.(model)

	assert.Equal(t, ModeSubmitted, m.mode)
	assert.Equal(t, "/postcard/pc-42", m.route)
	assert.False(t, m.submitting)
	assert.Contains(t, m.View(), "/postcard/pc-42")
}

func TestSubmitFailureKeepsDraftAndReenablesSubmit(t *testing.T) {
	m := loggedInModel(t)
	m.draft.SetTitleValue("Hello")
	m.draft.SetDescriptionValue("There")
	m.submitting = true

	next, _ := m.Update(submitResultMsg{err: errors.New("network down")})
	m = next.(model)

	assert.Equal(t, ModeCompose, m.mode)
	assert.False(t, m.submitting)
	assert.NotEmpty(t, m.errorMessage)
	assert.Equal(t, "Hello", m.draft.Title.Value)
	assert.Equal(t, "There", m.draft.Description.Value)
}

func TestSubmitGateBlocksFromUI(t *testing.T) {
	m := loggedInModel(t)
	// Empty required fields: the submit action must be rejected locally.
	next, cmd := m.trySubmit()
	m = next.(model)

	assert.Nil(t, cmd)
	assert.False(t, m.submitting)
	assert.NotEmpty(t, m.errorMessage)
}

func TestCanvasModeNudgesSelectedField(t *testing.T) {
	m := loggedInModel(t)
	m.draft.SetTitleValue("Hello")
	m.mode = ModeCanvas
	m.selectedField = FieldTitle

	next, _ := m.handleCanvasKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	m = next.(model)
	assert.Greater(t, m.draft.Title.Position.X, 0)
	assert.Equal(t, 0, m.draft.Title.Position.Y)
}

func TestLayoutCanvasTracksFrameEdges(t *testing.T) {
	m := loggedInModel(t)

	m.draft.SetFrame(FrameSpec{Type: FrameFull, Thickness: 1, Color: "#000"})
	m.layoutCanvas()
	assert.Equal(t, 1, m.canvas.originCol)
	assert.Equal(t, 1, m.canvas.originRow)

	m.draft.SetFrame(FrameSpec{Type: FrameTopBottom, Thickness: 1, Color: "#000"})
	m.layoutCanvas()
	assert.Equal(t, 0, m.canvas.originCol)
	assert.Equal(t, 1, m.canvas.originRow)

	m.draft.SetFrame(FrameSpec{Type: FrameNone, Thickness: 1, Color: "#000"})
	m.layoutCanvas()
	assert.Equal(t, 0, m.canvas.originCol)
	assert.Equal(t, 0, m.canvas.originRow)
}
