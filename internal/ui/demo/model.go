// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package demo is the interactive form shown by "inputlimit demo": one
// LimitedInput per configured field, reconfigured live when the config
// file changes.
package demo

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/inputlimit/internal/config"
	"github.com/jeranaias/inputlimit/internal/grapheme"
	"github.com/jeranaias/inputlimit/internal/ui/components"
	"github.com/jeranaias/inputlimit/internal/ui/styles"
	"github.com/jeranaias/inputlimit/internal/util"
)

// maxInputWidth caps the width of the inputs on wide terminals.
const maxInputWidth = 60

// =============================================================================
// MESSAGES
// =============================================================================

// configUpdateMsg carries a reloaded config. watched is set when it came
// from the watcher channel, which must then be read again.
type configUpdateMsg struct {
	update  config.Update
	watched bool
}

// watcherClosedMsg is sent once the updates channel is closed.
type watcherClosedMsg struct{}

func waitForUpdate(updates <-chan config.Update) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return watcherClosedMsg{}
		}
		return configUpdateMsg{update: u, watched: true}
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Options configure a Model.
type Options struct {
	Config     *config.Config
	ConfigPath string
	// Updates, when set, delivers reloads from a config.Watcher.
	Updates <-chan config.Update
	// Theme defaults to one built from Config.UI.Theme.
	Theme *styles.Theme
}

// Model is the demo form.
type Model struct {
	cfg     *config.Config
	path    string
	updates <-chan config.Update
	theme   *styles.Theme

	inputs []*components.LimitedInput
	focus  int

	keys      KeyMap
	help      help.Model
	status    string
	statusErr bool
	width     int
	quitting  bool
}

// New builds the form. It fails if any configured field does not compile.
func New(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(cfg.UI.Theme)
	}

	m := &Model{
		path:    opts.ConfigPath,
		updates: opts.Updates,
		theme:   theme,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		width:   cfg.UI.Width,
	}
	if _, err := m.applyConfig(cfg); err != nil {
		return nil, err
	}
	if len(m.inputs) == 0 {
		return nil, fmt.Errorf("config declares no fields")
	}
	m.status = fmt.Sprintf("%d fields", len(m.inputs))
	return m, nil
}

// Inputs returns the form inputs in display order.
func (m *Model) Inputs() []*components.LimitedInput { return m.inputs }

// Focused returns the focused input.
func (m *Model) Focused() *components.LimitedInput { return m.inputs[m.focus] }

// Status returns the status line text and whether it reports an error.
func (m *Model) Status() (string, bool) { return m.status, m.statusErr }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.inputs[m.focus].Focus(), waitForUpdate(m.updates))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(min(msg.Width-2, maxInputWidth), 20)
		for _, in := range m.inputs {
			in.SetWidth(m.width)
		}
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case configUpdateMsg:
		cmd := m.handleConfigUpdate(msg.update)
		if msg.watched {
			cmd = tea.Batch(cmd, waitForUpdate(m.updates))
		}
		return m, cmd

	case watcherClosedMsg:
		m.updates = nil
		return m, nil

	case components.FieldChangedMsg:
		log.Printf("FIELD_CHANGED | id=%s field=%s len=%d real_ok=%t", msg.ID, msg.Name, grapheme.Count(msg.Text), msg.RealOK)
		m.setStatus(false, "%s = %q", msg.Name, msg.Text)
		return m, nil

	case components.FieldRejectedMsg:
		log.Printf("EDIT_REJECTED | id=%s field=%s replacement=%q", msg.ID, msg.Name, msg.Replacement)
		m.setStatus(true, "%s rejected %q", msg.Name, util.VisibleText(msg.Replacement))
		return m, nil

	case components.ClipboardErrorMsg:
		log.Printf("CLIPBOARD_FAILED | id=%s field=%s err=%v", msg.ID, msg.Name, msg.Err)
		m.setStatus(true, "%s clipboard: %v", msg.Name, msg.Err)
		return m, nil
	}

	// Cursor blink and similar messages go to the focused input.
	in, cmd := m.inputs[m.focus].Update(msg)
	m.inputs[m.focus] = in
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m, m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.moveFocus(-1)
	case key.Matches(msg, m.keys.ShowReal):
		m.cfg.UI.ShowReal = !m.cfg.UI.ShowReal
		for _, in := range m.inputs {
			in.SetShowReal(m.cfg.UI.ShowReal)
		}
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	}

	in, cmd := m.inputs[m.focus].Update(msg)
	m.inputs[m.focus] = in
	return m, cmd
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	n := len(m.inputs)
	m.focus = ((m.focus+delta)%n + n) % n
	return m.inputs[m.focus].Focus()
}

func (m *Model) reload() tea.Cmd {
	if m.path == "" {
		m.setStatus(true, "no config file to reload")
		return nil
	}
	path := m.path
	return func() tea.Msg {
		cfg, err := config.Load(path)
		return configUpdateMsg{update: config.Update{Config: cfg, Err: err}}
	}
}

func (m *Model) handleConfigUpdate(u config.Update) tea.Cmd {
	if u.Err != nil {
		log.Printf("CONFIG_RELOAD_FAILED | path=%s error=%q", m.path, u.Err)
		m.setStatus(true, "config not reloaded: %v", u.Err)
		return nil
	}
	cmd, err := m.applyConfig(u.Config)
	if err != nil {
		log.Printf("CONFIG_RELOAD_FAILED | path=%s error=%q", m.path, err)
		m.setStatus(true, "config not applied: %v", err)
		return cmd
	}
	log.Printf("CONFIG_RELOAD | path=%s fields=%d", m.path, len(m.inputs))
	m.setStatus(false, "config reloaded (%d fields)", len(m.inputs))
	return cmd
}

// applyConfig reconciles the inputs with cfg. Existing inputs keep their
// text and are revalidated under their new policy; new fields get fresh
// inputs; fields no longer declared are dropped. On error nothing changes.
func (m *Model) applyConfig(cfg *config.Config) (tea.Cmd, error) {
	existing := make(map[string]*components.LimitedInput, len(m.inputs))
	for _, in := range m.inputs {
		existing[in.Name()] = in
	}
	focused := ""
	if len(m.inputs) > 0 {
		focused = m.inputs[m.focus].Name()
	}

	type planned struct {
		fc config.FieldConfig
		in *components.LimitedInput
	}
	plan := make([]planned, 0, len(cfg.Fields))
	for _, fc := range cfg.Fields {
		p, err := fc.Policy()
		if err == nil {
			err = p.Check()
		}
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fc.Name, err)
		}
		plan = append(plan, planned{fc: fc, in: existing[fc.Name]})
	}
	if len(plan) == 0 {
		return nil, fmt.Errorf("config declares no fields")
	}

	width := m.width
	if width <= 0 {
		width = cfg.UI.Width
	}

	var cmds []tea.Cmd
	inputs := make([]*components.LimitedInput, 0, len(plan))
	for _, step := range plan {
		p, _ := step.fc.Policy()
		in := step.in
		if in == nil {
			var err error
			in, err = components.NewLimitedInput(m.theme, components.LimitedInputOptions{
				Name:        step.fc.Name,
				Label:       step.fc.DisplayLabel(),
				Placeholder: step.fc.Placeholder,
				Policy:      p,
				Width:       width,
				ShowReal:    cfg.UI.ShowReal,
			})
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", step.fc.Name, err)
			}
		} else {
			cmd, err := in.Configure(p)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", step.fc.Name, err)
			}
			cmds = append(cmds, cmd)
			in.SetShowReal(cfg.UI.ShowReal)
		}
		inputs = append(inputs, in)
	}

	for _, in := range m.inputs {
		in.Blur()
	}
	m.inputs = inputs
	m.cfg = cfg
	m.focus = 0
	for i, in := range inputs {
		if in.Name() == focused {
			m.focus = i
		}
	}
	cmds = append(cmds, m.inputs[m.focus].Focus())
	return tea.Batch(cmds...), nil
}

func (m *Model) setStatus(isErr bool, format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = isErr
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("inputlimit"))
	if m.path != "" {
		b.WriteString("  " + m.theme.Subtitle.Render(util.Ellipsize(m.path, 40)))
	}
	b.WriteString("\n\n")

	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	statusStyle := m.theme.StatusBar
	indicator := styles.StatusIndicators.Info
	if m.statusErr {
		statusStyle = m.theme.StatusError
		indicator = styles.StatusIndicators.Error
	}
	b.WriteString(statusStyle.Render(indicator + " " + m.status))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return m.theme.Renderer().NewStyle().Padding(0, 1).Render(b.String())
}
