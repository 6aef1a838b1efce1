package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/weblarek/larek/internal/dom"
	"github.com/weblarek/larek/internal/logging"
	"github.com/weblarek/larek/internal/loop"
	"github.com/weblarek/larek/internal/presenter"
	"github.com/weblarek/larek/internal/tui/styles"
	"github.com/weblarek/larek/internal/util"
)

// Model is the Bubbletea model of the storefront. It owns no storefront
// state: everything it draws is read back from the document, and every key
// becomes a click or an input event on a document element.
type Model struct {
	ctx       context.Context
	presenter *presenter.Presenter
	views     presenter.Views
	queue     *loop.Queue
	logger    *logging.Logger

	focus   *dom.Element
	editing bool
	input   textinput.Model

	width    int
	height   int
	quitting bool
}

// NewModel creates the model. Tasks the presenter schedules on queue run
// as commands.
func NewModel(ctx context.Context, p *presenter.Presenter, queue *loop.Queue, logger *logging.Logger) Model {
	if logger == nil {
		logger = logging.NopLogger()
	}
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		ctx:       ctx,
		presenter: p,
		views:     p.Views(),
		queue:     queue,
		logger:    logger.WithComponent("tui"),
		input:     ti,
	}
}

// Init loads the catalog.
func (m Model) Init() tea.Cmd {
	m.presenter.Start()
	return m.drain()
}

// Update handles key presses, window resizes and finished tasks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case resumeMsg:
		if msg.err != nil {
			m.logger.Error("task panicked", "error", msg.err)
		} else if msg.resume != nil {
			msg.resume()
		}
		m.syncFocus()
		return m, m.drain()

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditingKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "down", "j", "tab":
		m.move(1)
	case "up", "k", "shift+tab":
		m.move(-1)
	case "enter", " ":
		m.activate()
	case "b":
		m.views.Header.BasketButton().Click()
		m.resetFocus()
	case "esc":
		switch {
		case m.views.Modal.IsOpen():
			m.views.Modal.Close()
			m.resetFocus()
		case m.views.Notice.Visible():
			m.views.Notice.Hide()
		}
	}
	m.syncFocus()
	return m, m.drain()
}

func (m Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter, tea.KeyEsc, tea.KeyTab:
		m.editing = false
		m.input.Blur()
		m.syncFocus()
		return m, m.drain()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.focus != nil && m.input.Value() != m.focus.Value() {
		m.focus.Input(m.input.Value())
	}
	m.syncFocus()
	return m, tea.Batch(cmd, m.drain())
}

// activate clicks the focused control, or starts editing it when it is
// a text field.
func (m *Model) activate() {
	if m.focus == nil {
		return
	}
	if m.focus.Tag() == "input" {
		if m.focus.Disabled() {
			return
		}
		m.editing = true
		m.input.SetValue(m.focus.Value())
		m.input.CursorEnd()
		m.input.Focus()
		return
	}

	before := m.views.Modal.Kind()
	wasOpen := m.views.Modal.IsOpen()
	m.focus.Click()
	if m.views.Modal.IsOpen() != wasOpen || m.views.Modal.Kind() != before {
		m.resetFocus()
	}
}

// focusables lists the controls reachable in the current screen: the
// modal when it is open, otherwise the header and the gallery.
func (m Model) focusables() []*dom.Element {
	var out []*dom.Element
	if m.views.Notice.Visible() {
		out = append(out, m.views.Notice.Root().QueryAll(focusSelector)...)
	}
	if m.views.Modal.IsOpen() {
		if content := m.views.Modal.Content(); content != nil {
			out = append(out, content.QueryAll(focusSelector)...)
			if content.Matches(focusSelector) {
				out = append(out, content)
			}
		}
		return append(out, m.views.Modal.Root().QueryAll(".modal__close")...)
	}
	out = append(out, m.views.Header.BasketButton())
	return append(out, m.views.Gallery.Root().Children()...)
}

func (m Model) focusIndex(list []*dom.Element) int {
	if m.focus == nil {
		return -1
	}
	for i, el := range list {
		if el.Same(m.focus) {
			return i
		}
	}
	return -1
}

func (m *Model) move(delta int) {
	list := m.focusables()
	if len(list) == 0 {
		m.focus = nil
		return
	}
	i := m.focusIndex(list)
	if i < 0 {
		m.focus = list[0]
		return
	}
	i = (i + delta + len(list)) % len(list)
	m.focus = list[i]
}

// resetFocus moves focus to the first control of the current screen.
func (m *Model) resetFocus() {
	m.focus = nil
	m.editing = false
	m.input.Blur()
	m.syncFocus()
}

// syncFocus keeps focus on a control that is still on screen.
func (m *Model) syncFocus() {
	list := m.focusables()
	if m.focusIndex(list) >= 0 {
		return
	}
	m.editing = false
	m.input.Blur()
	if len(list) == 0 {
		m.focus = nil
		return
	}
	m.focus = list[0]
}

// drain converts pending presenter tasks to commands.
func (m Model) drain() tea.Cmd {
	if m.queue == nil {
		return nil
	}
	tasks := m.queue.Drain()
	if len(tasks) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(tasks))
	for _, t := range tasks {
		cmds = append(cmds, taskCmd(m.ctx, t))
	}
	return tea.Batch(cmds...)
}

// View renders the page.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	r := renderer{focus: m.focus, editing: m.editing, input: m.input.View(), width: m.contentWidth()}
	var b strings.Builder

	b.WriteString(m.renderHeader(r))
	b.WriteString("\n")
	if m.views.Notice.Visible() {
		b.WriteString(styles.NoticeBox.Render(m.views.Notice.Message()))
		b.WriteString("  ")
		b.WriteString(r.render(m.views.Notice.Root().Query(".notice__close")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.views.Modal.IsOpen() {
		body := lipgloss.JoinVertical(lipgloss.Left,
			r.render(m.views.Modal.Content()),
			"",
			r.render(m.views.Modal.Root().Query(".modal__close")),
		)
		b.WriteString(styles.ModalBox.Render(body))
	} else {
		b.WriteString(m.renderGallery(r))
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

func (m Model) renderHeader(r renderer) string {
	title := styles.Title.Render("WEB-LAREK")
	basket := r.control(m.views.Header.BasketButton())
	if !r.focused(m.views.Header.BasketButton()) {
		basket = "Basket " + styles.Badge.Render(m.views.Header.Counter())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "   ", basket)
}

func (m Model) renderGallery(r renderer) string {
	tiles := m.views.Gallery.Root().Children()
	if len(tiles) == 0 {
		return styles.ContentBox.Render(styles.Subtitle.Render("No products"))
	}
	lines := make([]string, 0, len(tiles))
	for _, tile := range tiles {
		lines = append(lines, util.TruncateANSI(r.control(tile), r.width))
	}
	return styles.ContentBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderHelp() string {
	key := styles.HelpKey.Render
	var parts []string
	if m.editing {
		parts = []string{key("enter") + " done", key("esc") + " done"}
	} else {
		parts = []string{
			key("↑/↓") + " move",
			key("enter") + " select",
			key("b") + " basket",
			key("esc") + " close",
			key("q") + " quit",
		}
	}
	return styles.HelpBar.Render(strings.Join(parts, "  "))
}

// contentWidth is the room left inside a bordered, padded box.
func (m Model) contentWidth() int {
	const chrome = 6 // two borders and two columns of padding per side
	if m.width <= chrome {
		return 0
	}
	return m.width - chrome
}

// State reports the presenter's checkout state.
func (m Model) State() presenter.State {
	return m.presenter.State()
}

// Focus returns the focused control, or nil.
func (m Model) Focus() *dom.Element { return m.focus }

// Editing reports whether a text field is being edited.
func (m Model) Editing() bool { return m.editing }
