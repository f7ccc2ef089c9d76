package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := openLogger(cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}

	p := tea.NewProgram(
		initialModel(cfg, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

type model struct {
	cfg    *Config
	log    zerolog.Logger
	client *Client

	width  int
	height int
	mode   Mode

	user  *User
	draft *Draft

	canvas        *Canvas
	form          composeForm
	selectedField FieldKind
	drag          dragState

	loginUsername textinput.Model
	loginPassword textinput.Model
	loginFocus    int
	loginError    string

	submitting     bool
	errorMessage   string
	successMessage string
	route          string
}

func initialModel(cfg *Config, logger zerolog.Logger) model {
	username := textinput.New()
	username.Placeholder = "John Doe"
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	return model{
		cfg:           cfg,
		log:           logger,
		client:        NewClient(cfg, logger),
		mode:          ModeLoading,
		canvas:        NewCanvas(),
		form:          newComposeForm(),
		selectedField: FieldTitle,
		loginUsername: username,
		loginPassword: password,
	}
}

func (m model) Init() tea.Cmd {
	return sessionCmd(m.client)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("session lookup failed")
			m.mode = ModeLoginPrompt
			return m, nil
		}
		if msg.user == nil {
			m.mode = ModeLoginPrompt
			return m, nil
		}
		return m.enterComposer(msg.user)

	case loginResultMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("login failed")
			m.loginError = "Login failed."
			return m, nil
		}
		return m.enterComposer(msg.user)

	case usersLoadedMsg:
		if msg.err != nil {
			// Non-critical: compose continues with nobody to select.
			m.log.Error().Err(msg.err).Msg("fetching users failed")
			return m, nil
		}
		m.form.SetUsers(msg.users)
		return m, nil

	case submitResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("create postcard failed")
			m.errorMessage = submitErrorText(msg.err)
			return m, nil
		}
		m.route = "/postcard/" + msg.card.ID
		m.mode = ModeSubmitted
		m.errorMessage = ""
		return m, nil

	case exportResultMsg:
		if msg.err != nil {
			m.errorMessage = "Export failed: " + msg.err.Error()
		} else {
			m.successMessage = "Exported " + msg.path
		}
		return m, nil

	case tea.MouseMsg:
		if m.mode == ModeCompose || m.mode == ModeCanvas {
			return m.handleMouse(msg), nil
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) enterComposer(user *User) (tea.Model, tea.Cmd) {
	m.user = user
	m.draft = NewDraft(user.ID)
	m.form = newComposeForm()
	m.mode = ModeCompose
	m.selectedField = FieldTitle
	m.drag = dragState{}
	m.submitting = false
	m.errorMessage = ""
	m.successMessage = ""
	m.loginError = ""
	m.layoutCanvas()
	return m, usersCmd(m.client)
}

// layoutCanvas keeps the canvas interior origin in sync with the frame:
// enabled left/top frame edges shift the interior one cell each.
func (m *model) layoutCanvas() {
	e := m.draft.Frame.Edges()
	col, row := 0, 0
	if e.Left {
		col = 1
	}
	if e.Top {
		row = 1
	}
	m.canvas.SetOrigin(col, row)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeLoginPrompt:
		switch msg.String() {
		case "l", "enter":
			m.mode = ModeLogin
			m.loginError = ""
			m.loginFocus = 0
			m.loginUsername.SetValue("")
			m.loginPassword.SetValue("")
			m.loginUsername.Focus()
			m.loginPassword.Blur()
		case "q":
			return m, tea.Quit
		}
		return m, nil

	case ModeLogin:
		return m.handleLoginKey(msg)

	case ModeCompose:
		return m.handleComposeKey(msg)

	case ModeCanvas:
		return m.handleCanvasKey(msg)

	case ModeSubmitted:
		switch msg.String() {
		case "n":
			return m.enterComposer(m.user)
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeLoginPrompt
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab:
		m.loginFocus = 1 - m.loginFocus
		if m.loginFocus == 0 {
			m.loginUsername.Focus()
			m.loginPassword.Blur()
		} else {
			m.loginUsername.Blur()
			m.loginPassword.Focus()
		}
		return m, nil
	case tea.KeyEnter:
		if m.loginUsername.Value() == "" || m.loginPassword.Value() == "" {
			m.loginError = "Username and password are required."
			return m, nil
		}
		m.loginError = ""
		return m, loginCmd(m.client, m.loginUsername.Value(), m.loginPassword.Value())
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.loginUsername, cmd = m.loginUsername.Update(msg)
	} else {
		m.loginPassword, cmd = m.loginPassword.Update(msg)
	}
	return m, cmd
}

func (m model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.form.Next()
		return m, nil
	case "shift+tab":
		m.form.Prev()
		return m, nil
	case "esc":
		m.mode = ModeCanvas
		return m, nil
	case "ctrl+v":
		if text, err := readClipboardText(); err == nil {
			m.form.Paste(text)
			m.form.Sync(m.draft)
			m.layoutCanvas()
		}
		return m, nil
	case "ctrl+e":
		m.successMessage = ""
		return m, exportCmd(m.draft, m.cfg.ExportDir)
	case "enter":
		if m.form.focus == focusSubmit {
			return m.trySubmit()
		}
		if m.form.focus != focusDescription {
			m.form.Next()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	m.form.Sync(m.draft)
	m.layoutCanvas()
	return m, cmd
}

func (m model) handleCanvasKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.mode = ModeCompose
		return m, nil
	case "t":
		m.selectedField = FieldTitle
		return m, nil
	case "d":
		m.selectedField = FieldDescription
		return m, nil
	case "ctrl+e":
		m.successMessage = ""
		return m, exportCmd(m.draft, m.cfg.ExportDir)
	case "h", "left", "H", "shift+left":
		m.canvas.Nudge(m.draft, m.selectedField, -m.getMoveSpeed(msg.String()), 0)
		return m, nil
	case "l", "right", "L", "shift+right":
		m.canvas.Nudge(m.draft, m.selectedField, m.getMoveSpeed(msg.String()), 0)
		return m, nil
	case "k", "up", "K", "shift+up":
		m.canvas.Nudge(m.draft, m.selectedField, 0, -m.getMoveSpeed(msg.String()))
		return m, nil
	case "j", "down", "J", "shift+down":
		m.canvas.Nudge(m.draft, m.selectedField, 0, m.getMoveSpeed(msg.String()))
		return m, nil
	}
	return m, nil
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func (m model) trySubmit() (tea.Model, tea.Cmd) {
	m.form.Sync(m.draft)
	cmd, err := submitDraft(m.client, m.draft, m.submitting)
	if err != nil {
		m.errorMessage = submitErrorText(err)
		return m, nil
	}
	m.submitting = true
	m.errorMessage = ""
	m.successMessage = ""
	return m, cmd
}

func (m model) handleMouse(msg tea.MouseMsg) model {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.drag.active {
			return m
		}
		kind := m.canvas.HitTest(msg.X, msg.Y, m.draft)
		if kind == FieldNone {
			return m
		}
		text := m.draft.Field(kind).Value
		halfW, halfH := m.canvas.MeasureHalf(text)
		m.drag = dragState{
			active:   true,
			payload:  DragPayload{Kind: kind, Text: text},
			halfW:    halfW,
			halfH:    halfH,
			ghostCol: msg.X,
			ghostRow: msg.Y,
		}
		m.selectedField = kind

	case tea.MouseActionMotion:
		if m.drag.active {
			m.drag.ghostCol = msg.X
			m.drag.ghostRow = msg.Y
		}

	case tea.MouseActionRelease:
		if !m.drag.active {
			return m
		}
		if pos, ok := m.canvas.DropPosition(msg.X, msg.Y, m.drag.halfW, m.drag.halfH); ok {
			m.draft.SetPosition(m.drag.payload.Kind, pos)
		}
		m.drag = dragState{}
	}
	return m
}

func (m model) View() string {
	switch m.mode {
	case ModeLoading:
		return "Loading...\n"

	case ModeLoginPrompt:
		return m.loginPromptView()

	case ModeLogin:
		return m.loginView()

	case ModeCompose, ModeCanvas:
		return m.composeView()

	case ModeSubmitted:
		return m.submittedView()
	}
	return ""
}

func (m model) loginPromptView() string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("  To create cards you need to login!") + "\n\n")
	b.WriteString("  Press 'l' to go to /login, 'q' to quit.\n")
	return b.String()
}

func (m model) loginView() string {
	var b strings.Builder
	b.WriteString("\n" + labelStyle.Render("  Login") + "\n\n")
	if m.loginError != "" {
		b.WriteString("  " + errorStyle.Render(m.loginError) + "\n\n")
	}
	b.WriteString("  Username: " + m.loginUsername.View() + "\n")
	b.WriteString("  Password: " + m.loginPassword.View() + "\n\n")
	b.WriteString("  Enter=login, Tab=switch field, Esc=back\n")
	return b.String()
}

func (m model) composeView() string {
	selected := FieldNone
	if m.mode == ModeCanvas {
		selected = m.selectedField
	}
	canvasView := m.canvas.Render(m.draft, m.drag, selected)
	formView := m.form.View(m.submitting, m.errorMessage, m.successMessage)
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, "   ", formView)

	var statusLine string
	if m.mode == ModeCanvas {
		statusLine = fmt.Sprintf("Mode: CANVAS | Moving: %s | t/d=pick field, hjkl/arrows=move (shift=faster), drag with mouse, Ctrl+E=export, Esc=form", m.selectedField)
	} else {
		statusLine = "Mode: COMPOSE | Tab=next field, Enter=advance/submit, Ctrl+V=paste, Ctrl+E=export, Esc=canvas, Ctrl+C=quit"
	}
	return body + "\n" + statusLine
}

func (m model) submittedView() string {
	var b strings.Builder
	b.WriteString("\n" + successStyle.Render("  Postcard created!") + "\n\n")
	b.WriteString("  View it at " + m.route + "\n\n")
	b.WriteString("  Press 'n' to compose another, 'q' to quit.\n")
	return b.String()
}
