package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

// guard keeps a panicking picker from taking the terminal down with it.
// A panic in Update ends the program and marks the pick as failed, so Choose
// reports an error instead of a silent cancel.
type guard struct {
	inner  tea.Model
	log    *slog.Logger
	theme  Theme
	failed bool
}

func guardPicker(inner tea.Model, log *slog.Logger) guard {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return guard{inner: inner, log: log, theme: DefaultTheme()}
}

func (g guard) Init() tea.Cmd {
	return g.inner.Init()
}

func (g guard) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	if g.failed {
		return g, tea.Quit
	}

	defer func() {
		if r := recover(); r != nil {
			g.logPanic("update", r)
			g.failed = true
			tm, cmd = g, tea.Quit
		}
	}()

	next, c := g.inner.Update(msg)
	g.inner = next
	return g, c
}

func (g guard) View() (out string) {
	if g.failed {
		return g.theme.Warn.Render("Station picker crashed (see logs)") + "\n"
	}

	defer func() {
		if r := recover(); r != nil {
			g.logPanic("view", r)
			out = g.theme.Warn.Render("Unexpected error (see logs)") + "\n"
		}
	}()
	return g.inner.View()
}

func (g guard) logPanic(where string, r any) {
	g.log.Error("picker.panic",
		"where", where,
		"panic", fmt.Sprint(r),
		"stack", string(debug.Stack()),
	)
}

var _ tea.Model = guard{}
