// Package editform is the profile edit form: a reducer over FormState and the
// Bubble Tea model that drives it.
package editform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/profile/internal/gateway"
	"github.com/idilsaglam/profile/internal/model"
	"github.com/idilsaglam/profile/internal/session"
	"github.com/idilsaglam/profile/internal/ui"
)

// Gateway reads and updates user records.
type Gateway interface {
	Read(ctx context.Context, userID, token string) (model.User, error)
	Update(ctx context.Context, userID, token string, patch model.Patch) (model.User, error)
}

// NavigateMsg is emitted once an update succeeded.
type NavigateMsg struct {
	UserID string
	Path   string
}

// ProfilePath is where a successful edit redirects to.
func ProfilePath(userID string) string { return "/user/" + userID }

// focus index of the submit button, after the inputs
const focusSubmit = int(fieldCount)

type Model struct {
	gw     Gateway
	sess   session.Session
	userID string
	logger *slog.Logger

	parent context.Context
	ctx    context.Context // mount scope, canceled on teardown
	cancel context.CancelFunc

	state   FormState
	inputs  [fieldCount]textinput.Model
	focus   int
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	width, height int
}

type Option func(*Model)

func WithLogger(l *slog.Logger) Option { return func(m *Model) { m.logger = l } }

// WithContext sets the parent context for gateway calls.
func WithContext(ctx context.Context) Option { return func(m *Model) { m.parent = ctx } }

// New builds the form for userID (the session's own user when empty).
// The load starts with Init.
func New(gw Gateway, sess session.Session, userID string, opts ...Option) Model {
	m := Model{
		gw:     gw,
		sess:   sess,
		userID: userID,
		logger: slog.New(slog.DiscardHandler),
		parent: context.Background(),
		keys:   defaultKeyMap(),
		help:   help.New(),
		width:  80,
		height: 24,
	}
	for _, o := range opts {
		o(&m)
	}
	if m.userID == "" {
		m.userID = sess.UserID
	}
	m.ctx, m.cancel = context.WithCancel(m.parent)

	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 100
		switch Field(i) {
		case FieldName:
			ti.Placeholder = "Nome"
		case FieldEmail:
			ti.Placeholder = "email@exemplo.com"
		case FieldPassword:
			ti.Placeholder = "Senha"
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
			ti.CharLimit = 72
		}
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.MiniDot

	m.state = FormState{Loading: true}
	return m
}

func (m Model) State() FormState { return m.state }
func (m Model) Focused() int     { return m.focus }
func (m Model) UserID() string   { return m.userID }

// Redirect returns the profile path once an update succeeded.
func (m Model) Redirect() (string, bool) {
	if m.state.NavigateTarget == "" {
		return "", false
	}
	return ProfilePath(m.state.NavigateTarget), true
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), textinput.Blink, m.spinner.Tick)
}

func (m Model) load() tea.Cmd {
	gw, ctx, id, token, log := m.gw, m.ctx, m.userID, m.sess.Token, m.logger
	return func() tea.Msg {
		u, err := gw.Read(ctx, id, token)
		if err != nil {
			log.Warn("load user failed", "user_id", id, "err", err)
			return LoadFailed{Message: errMessage(err)}
		}
		log.Debug("user loaded", "user_id", id)
		return LoadSucceeded{User: u}
	}
}

// update is not tied to the mount scope: once sent, a submit runs to the end.
func (m Model) update(patch model.Patch) tea.Cmd {
	gw, ctx, id, token, log := m.gw, m.parent, m.userID, m.sess.Token, m.logger
	return func() tea.Msg {
		u, err := gw.Update(ctx, id, token, patch)
		if err != nil {
			log.Warn("update user failed", "user_id", id, "err", err)
			return SubmitFailed{Message: errMessage(err)}
		}
		// some backends answer without the record; the target is known anyway
		if u.ID == "" {
			u.ID = id
		}
		log.Info("user updated", "user_id", u.ID)
		return SubmitSucceeded{ID: u.ID}
	}
}

func navigate(id string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{UserID: id, Path: ProfilePath(id)} }
}

func errMessage(err error) string {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m = m.dispose()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Next):
			return m.setFocus(m.focus + 1), nil
		case key.Matches(msg, m.keys.Prev):
			return m.setFocus(m.focus - 1), nil
		case key.Matches(msg, m.keys.Enter):
			if m.focus == focusSubmit {
				return m.submit()
			}
			return m.setFocus(m.focus + 1), nil
		}
		return m.updateInput(msg)

	case spinner.TickMsg:
		if !m.state.Loading && !m.state.Submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NavigateMsg:
		return m, tea.Quit

	case Event:
		m.state = Reduce(m.state, msg)
		m = m.syncInputs()
		if _, ok := msg.(SubmitSucceeded); ok && m.state.NavigateTarget != "" {
			return m, navigate(m.state.NavigateTarget)
		}
		return m, nil
	}

	if m.focus < focusSubmit {
		return m.updateInput(msg)
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.state.Submitting || m.state.Disposed || m.state.NavigateTarget != "" {
		return m, nil
	}
	patch := BuildPatch(m.state)
	errs := Validate(m.state)
	if patch.Empty() {
		m.logger.Debug("submitting an empty patch", "user_id", m.userID)
	}
	if errs.Any() {
		// Validation only annotates the form; the update is sent anyway.
		m.logger.Debug("submitting with invalid fields",
			"name", errs.Name.HasError, "email", errs.Email.HasError, "password", errs.Password.HasError)
	}
	m.state = Reduce(m.state, SubmitStarted{Errors: errs})
	return m, tea.Batch(m.update(patch), m.spinner.Tick)
}

func (m Model) dispose() Model {
	m.cancel()
	m.state = Reduce(m.state, Disposed{})
	return m
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus >= focusSubmit {
		return m, nil
	}
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m.state = Reduce(m.state, FieldChanged{Field: Field(m.focus), Value: after})
	}
	return m, cmd
}

func (m Model) setFocus(i int) Model {
	n := focusSubmit + 1
	m.focus = ((i % n) + n) % n
	for j := range m.inputs {
		if j == m.focus {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return m
}

// syncInputs copies state values into the text inputs after a reduce.
func (m Model) syncInputs() Model {
	for i := range m.inputs {
		if v := m.state.Value(Field(i)); m.inputs[i].Value() != v {
			m.inputs[i].SetValue(v)
		}
	}
	return m
}

var labels = [fieldCount]string{"Nome", "Email", "Senha"}

func (m Model) View() string {
	t := ui.Current()
	if target, ok := m.Redirect(); ok {
		return t.Success.Render(fmt.Sprintf("%s Redirecionando para %s", t.SymOK, target)) + "\n"
	}

	var b strings.Builder
	b.WriteString(t.Title.Render("Editar Usuário"))
	switch {
	case m.state.Loading:
		b.WriteString("  " + t.Pending.Render(m.spinner.View()+" carregando…"))
	case m.state.Submitting:
		b.WriteString("  " + t.Pending.Render(m.spinner.View()+" enviando…"))
	}
	b.WriteString("\n\n")

	for i, in := range m.inputs {
		label := "  " + labels[i]
		if i == m.focus {
			label = t.Focused.Render(t.SymCursor + " " + labels[i])
		}
		b.WriteString(label + "\n" + in.View() + "\n")
		if fe := m.state.Errors.Get(Field(i)); fe.HasError {
			b.WriteString(t.Error.Render("  "+fe.Message) + "\n")
		}
		b.WriteString("\n")
	}

	button := "[ Confirmar ]"
	if m.focus == focusSubmit {
		button = t.SymCursor + " " + t.Selected.Render(button)
	} else {
		button = t.Accent.Render(button)
	}
	b.WriteString(button + "\n")

	if m.state.Error != "" {
		b.WriteString("\n" + t.Error.Render(t.SymFail+" "+m.state.Error) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))

	return ui.Panel(b.String())
}
