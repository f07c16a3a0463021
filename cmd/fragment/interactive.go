package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	wasmfragment "github.com/wippyai/wasm-fragment"
	"github.com/wippyai/wasm-fragment/host"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Drive the fragment lifecycle from a terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("interactive mode needs a terminal; use the scenario command instead")
		}

		ctx := context.Background()
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.Host.Embedded = true

		a, err := newApp(cfg, log)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		if err := a.start(ctx); err != nil {
			return err
		}

		_, err = tea.NewProgram(newInteractiveModel(a)).Run()
		return err
	},
}

type interactiveModel struct {
	err    error
	app    *app
	last   string
	height textinput.Model
}

func newInteractiveModel(a *app) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = "height: "
	ti.Placeholder = "480"
	ti.SetValue("480")
	ti.CharLimit = 12
	ti.Width = 12
	return &interactiveModel{app: a, height: ti}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

// call issues one lifecycle call. Calls run on the update loop so the
// host never overlaps them.
func (m *interactiveModel) call(op host.Op) {
	ctx := context.Background()
	name := m.app.cfg.Fragment.Name
	orch := m.app.host
	m.last = string(op)

	props := wasmfragment.Props{}
	if raw := strings.TrimSpace(m.height.Value()); raw != "" {
		h, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			m.err = fmt.Errorf("height %q is not a number", raw)
			return
		}
		props[wasmfragment.HeightKey] = h
	}

	switch op {
	case host.OpBootstrap:
		m.err = orch.Bootstrap(ctx, name)
	case host.OpMount:
		m.err = orch.Mount(ctx, name, props)
	case host.OpUpdate:
		m.err = orch.Update(ctx, name, props)
	case host.OpUnmount:
		m.err = orch.Unmount(ctx, name, props)
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.height.Focused() {
			switch msg.String() {
			case "enter", "esc", "tab":
				m.height.Blur()
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.height, cmd = m.height.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab", "h":
			return m, m.height.Focus()
		case "b":
			m.call(host.OpBootstrap)
		case "m":
			m.call(host.OpMount)
		case "u":
			m.call(host.OpUpdate)
		case "x":
			m.call(host.OpUnmount)
		}
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Fragment Host"))
	b.WriteString(" ")
	b.WriteString(m.app.cfg.Fragment.Name)
	b.WriteString("\n\n")

	containerHeight := "unset"
	if px, ok := m.app.geom.Height(); ok {
		containerHeight = strconv.FormatFloat(px, 'f', -1, 64) + "px"
	}

	rows := [][2]string{
		{"state", m.app.adapter.State().String()},
		{"container", m.app.geom.Locator() + " " + containerHeight},
		{"entry runs", strconv.FormatInt(m.app.counter.Runs(), 10)},
		{"faults", strconv.FormatInt(m.app.counter.Faults(), 10)},
	}
	if m.last != "" {
		rows = append(rows, [2]string{"last call", m.last})
	}
	for _, r := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-11s", r[0])))
		b.WriteString(valueStyle.Render(r[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.height.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.height.Focused() {
		b.WriteString(helpStyle.Render("enter done editing • ctrl+c quit"))
	} else {
		b.WriteString(helpStyle.Render("b bootstrap • m mount • u update • x unmount • h edit height • q quit"))
	}
	return b.String()
}
