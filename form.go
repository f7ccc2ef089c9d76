package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formFocus int

const (
	focusTitle formFocus = iota
	focusDescription
	focusRecipients
	focusFrameType
	focusThickness
	focusColor
	focusBackground
	focusAudio
	focusSubmit
	focusCount
)

var (
	labelStyle    = lipgloss.NewStyle().Bold(true)
	focusedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	disabledStyle = lipgloss.NewStyle().Faint(true)
)

// composeForm holds the right-hand panel: every control of the original
// composer form. Widget values are pushed into the draft after each
// update, so the draft is always the single source of truth the canvas
// and the pipeline read.
type composeForm struct {
	focus formFocus

	title       textinput.Model
	description textarea.Model
	thickness   textinput.Model
	color       textinput.Model
	background  textinput.Model
	audio       textinput.Model

	frameType       FrameType
	users           []User
	recipientCursor int
	selected        map[string]bool
}

func newComposeForm() composeForm {
	title := textinput.New()
	title.Placeholder = "Postcard title"
	title.CharLimit = 120
	title.Focus()

	description := textarea.New()
	description.Placeholder = "Write your message..."
	description.SetHeight(4)
	description.CharLimit = 1000

	thickness := textinput.New()
	thickness.SetValue("1")
	thickness.CharLimit = 3

	color := textinput.New()
	color.SetValue("#000")
	color.CharLimit = 16

	background := textinput.New()
	background.Placeholder = "path/to/image.png"

	audio := textinput.New()
	audio.Placeholder = "path/to/audio.mp3"

	return composeForm{
		title:       title,
		description: description,
		thickness:   thickness,
		color:       color,
		background:  background,
		audio:       audio,
		frameType:   FrameFull,
		selected:    map[string]bool{},
	}
}

func (f *composeForm) SetUsers(users []User) {
	f.users = users
	if f.recipientCursor >= len(users) {
		f.recipientCursor = 0
	}
}

func (f *composeForm) Next() {
	f.setFocus((f.focus + 1) % focusCount)
}

func (f *composeForm) Prev() {
	f.setFocus((f.focus + focusCount - 1) % focusCount)
}

func (f *composeForm) setFocus(focus formFocus) {
	f.focus = focus
	inputs := []*textinput.Model{&f.title, &f.thickness, &f.color, &f.background, &f.audio}
	for _, in := range inputs {
		in.Blur()
	}
	f.description.Blur()
	switch focus {
	case focusTitle:
		f.title.Focus()
	case focusDescription:
		f.description.Focus()
	case focusThickness:
		f.thickness.Focus()
	case focusColor:
		f.color.Focus()
	case focusBackground:
		f.background.Focus()
	case focusAudio:
		f.audio.Focus()
	}
}

// Update routes a message to the focused control. Tab navigation, submit
// and mode switches belong to the parent model.
func (f composeForm) Update(msg tea.Msg) (composeForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case focusTitle:
		f.title, cmd = f.title.Update(msg)
	case focusDescription:
		f.description, cmd = f.description.Update(msg)
	case focusThickness:
		f.thickness, cmd = f.thickness.Update(msg)
	case focusColor:
		f.color, cmd = f.color.Update(msg)
	case focusBackground:
		f.background, cmd = f.background.Update(msg)
	case focusAudio:
		f.audio, cmd = f.audio.Update(msg)
	case focusRecipients:
		if key, ok := msg.(tea.KeyMsg); ok {
			f.handleRecipientKey(key)
		}
	case focusFrameType:
		if key, ok := msg.(tea.KeyMsg); ok {
			f.handleFrameTypeKey(key)
		}
	}
	return f, cmd
}

func (f *composeForm) handleRecipientKey(key tea.KeyMsg) {
	switch key.String() {
	case "up", "k":
		if f.recipientCursor > 0 {
			f.recipientCursor--
		}
	case "down", "j":
		if f.recipientCursor < len(f.users)-1 {
			f.recipientCursor++
		}
	case " ", "x":
		if f.recipientCursor < len(f.users) {
			id := f.users[f.recipientCursor].ID
			f.selected[id] = !f.selected[id]
		}
	}
}

func (f *composeForm) handleFrameTypeKey(key tea.KeyMsg) {
	delta := 0
	switch key.String() {
	case "left", "h":
		delta = len(frameTypes) - 1
	case "right", "l", " ":
		delta = 1
	}
	if delta == 0 {
		return
	}
	for i, t := range frameTypes {
		if t == f.frameType {
			f.frameType = frameTypes[(i+delta)%len(frameTypes)]
			return
		}
	}
	f.frameType = frameTypes[0]
}

// Paste cleans clipboard text and inserts it into the focused text control.
func (f *composeForm) Paste(text string) {
	text = cleanClipboardText(text)
	switch f.focus {
	case focusTitle:
		f.title.SetValue(f.title.Value() + singleLine(text))
	case focusDescription:
		f.description.SetValue(f.description.Value() + text)
	case focusBackground:
		f.background.SetValue(singleLine(text))
	case focusAudio:
		f.audio.SetValue(singleLine(text))
	case focusColor:
		f.color.SetValue(singleLine(text))
	}
}

// Sync pushes the widget values into the draft. Each setter touches only
// its own field, so positions set by drops survive every form edit.
func (f *composeForm) Sync(d *Draft) {
	d.SetTitleValue(f.title.Value())
	d.SetDescriptionValue(f.description.Value())
	d.SetBackground(strings.TrimSpace(f.background.Value()))
	d.SetAudio(strings.TrimSpace(f.audio.Value()))

	frame := d.Frame
	frame.Type = f.frameType
	if n, err := strconv.Atoi(strings.TrimSpace(f.thickness.Value())); err == nil && n >= 0 {
		frame.Thickness = n
	}
	if c := strings.TrimSpace(f.color.Value()); c != "" {
		frame.Color = c
	}
	d.SetFrame(frame)

	ids := make([]string, 0, len(f.selected))
	for _, u := range f.users {
		if f.selected[u.ID] {
			ids = append(ids, u.ID)
		}
	}
	d.SetRecipients(ids)
}

func (f *composeForm) View(submitting bool, errorMessage, successMessage string) string {
	var b strings.Builder

	b.WriteString(labelStyle.Render("Create Postcard") + "\n\n")
	if errorMessage != "" {
		b.WriteString(errorStyle.Render(errorMessage) + "\n\n")
	}
	if successMessage != "" {
		b.WriteString(successStyle.Render(successMessage) + "\n\n")
	}

	b.WriteString(f.label(focusTitle, "Title") + "\n")
	b.WriteString(f.title.View() + "\n\n")

	b.WriteString(f.label(focusDescription, "Description") + "\n")
	b.WriteString(f.description.View() + "\n\n")

	b.WriteString(f.label(focusRecipients, "Recipients") + "\n")
	b.WriteString(f.recipientsView() + "\n")

	b.WriteString(f.label(focusFrameType, "Frame type") + " ")
	b.WriteString(string(f.frameType) + "\n")

	b.WriteString(f.label(focusThickness, "Frame thickness") + " ")
	b.WriteString(f.thickness.View() + "\n")

	b.WriteString(f.label(focusColor, "Frame color") + " ")
	b.WriteString(f.color.View() + "\n\n")

	b.WriteString(f.label(focusBackground, "Background image") + " ")
	b.WriteString(f.background.View() + "\n")

	b.WriteString(f.label(focusAudio, "Audio") + " ")
	b.WriteString(f.audio.View() + "\n\n")

	submit := "[ Create Postcard ]"
	if submitting {
		submit = disabledStyle.Render("[ Creating... ]")
	} else if f.focus == focusSubmit {
		submit = focusedStyle.Render(submit)
	}
	b.WriteString(submit + "\n")

	return b.String()
}

func (f *composeForm) label(focus formFocus, text string) string {
	text += ":"
	if f.focus == focus {
		return focusedStyle.Render("> " + text)
	}
	return "  " + text
}

func (f *composeForm) recipientsView() string {
	if len(f.users) == 0 {
		return disabledStyle.Render("  nobody to send to yet") + "\n"
	}
	var b strings.Builder
	for i, u := range f.users {
		mark := "[ ]"
		if f.selected[u.ID] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, u.Username)
		if f.focus == focusRecipients && i == f.recipientCursor {
			line = focusedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
