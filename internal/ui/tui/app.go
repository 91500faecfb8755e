package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evanraalte/nstimes/internal/domain"
)

type stationItem struct {
	station domain.Station
}

func (i stationItem) Title() string       { return i.station.Name }
func (i stationItem) Description() string { return stationDescription(i.station) }
func (i stationItem) FilterValue() string { return i.station.Name }

type model struct {
	theme  Theme
	header string
	list   list.Model

	chosen   *domain.Station
	canceled bool
}

func newModel(header string, candidates []domain.Station) model {
	items := make([]list.Item, 0, len(candidates))
	for _, s := range candidates {
		items = append(items, stationItem{station: s})
	}

	l := list.New(items, list.NewDefaultDelegate(), 60, 16)
	l.Title = "Stations"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return model{
		theme:  DefaultTheme(),
		header: header,
		list:   l,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.canceled = true
			return m, tea.Quit

		case "enter":
			it, ok := m.list.SelectedItem().(stationItem)
			if !ok {
				return m, nil
			}
			s := it.station
			m.chosen = &s
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.chosen != nil || m.canceled {
		return ""
	}
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("nstimes") + "\n" + m.theme.Subtitle.Render(m.header) + "\n"
	help := m.theme.Help.Render("↑/↓ navigate • enter pick • / search • esc cancel")
	return wrap.Render(header + "\n" + m.theme.Card.Render(m.list.View()) + "\n" + help)
}

var errPickerCrashed = errors.New("station picker crashed (see logs)")

// Picker lets the user settle an ambiguous station query in the terminal.
type Picker struct {
	deps Deps
}

func NewPicker(deps Deps) *Picker {
	return &Picker{deps: deps}
}

// Choose shows the candidates of an ambiguous lookup and returns the pick.
// ok is false when the user cancels.
func (p *Picker) Choose(ctx context.Context, field string, lookup domain.StationLookup) (domain.Station, bool, error) {
	if len(lookup.Candidates) == 0 {
		return domain.Station{}, false, nil
	}

	m := newModel(fmt.Sprintf("%q matches %d stations; pick the %s station", lookup.Query, len(lookup.Candidates), field), lookup.Candidates)

	out := p.deps.Output
	if out == nil {
		out = os.Stderr
	}
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(out)}
	if p.deps.Input != nil {
		opts = append(opts, tea.WithInput(p.deps.Input))
	}

	final, err := tea.NewProgram(guardPicker(m, p.deps.Logger), opts...).Run()
	if err != nil {
		return domain.Station{}, false, err
	}
	return result(final)
}

func result(final tea.Model) (domain.Station, bool, error) {
	if g, ok := final.(guard); ok {
		if g.failed {
			return domain.Station{}, false, errPickerCrashed
		}
		final = g.inner
	}

	m, ok := final.(model)
	if !ok || m.chosen == nil {
		return domain.Station{}, false, nil
	}
	return *m.chosen, true, nil
}
