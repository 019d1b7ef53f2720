package picker

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type item string

func (i item) Title() string       { return string(i) }
func (i item) Description() string { return "" }
func (i item) FilterValue() string { return string(i) }

var keys = struct {
	choose key.Binding
	cancel key.Binding
}{
	choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "launch")),
	cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

type model struct {
	list   list.Model
	choice string
}

func newModel(entries []string) model {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = item(e)
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.NormalTitle = normalStyle

	l := list.New(items, delegate, 0, 0)
	l.Title = "Project Manager"
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.choose}
	}

	return model{list: l}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, keys.choose):
			if selected, ok := m.list.SelectedItem().(item); ok {
				m.choice = string(selected)
			}
			return m, tea.Quit
		case key.Matches(msg, keys.cancel):
			m.choice = ""
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	return docStyle.Render(m.list.View())
}
