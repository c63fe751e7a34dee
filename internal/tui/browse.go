package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/todo/internal/model"
	"github.com/Makepad-fr/todo/internal/ui"
)

// listItem adapts model.Item to bubbles/list.Item. New items have no id
// until they are persisted.
type listItem struct {
	item model.Item
}

func (i listItem) Title() string       { return i.item.Title }
func (i listItem) Description() string { return i.item.ShortID() }
func (i listItem) FilterValue() string { return i.item.Title + " " + i.item.Tags }

// Model is the browse screen. Edits stay in memory until the user quits;
// Changes then diffs the final list against what was loaded.
type Model struct {
	list     list.Model
	original []model.Item
	changed  bool
	aborted  bool

	// Inline add
	adding bool            // true when inline add is active
	ti     textinput.Model // shared text input model (used for add & edit)
	addErr string          // last add validation error (shown briefly)

	// Inline edit
	editing   bool // true when inline edit is active
	editIndex int  // index of item being edited
	editErr   string

	// Undo support (single-level)
	canUndo   bool
	undoIndex int
	undoItem  *listItem

	width, height int
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	id := it.item.ShortID()
	if id == "" {
		id = "new   "
	}
	line := fmt.Sprintf("%s %s %s", ui.Current().Muted.Render(id), ui.Box(it.item), ui.TitleText(it.item))
	prefix := "  "
	if index == m.Index() {
		prefix = ui.Current().Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

var (
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "resolve/reopen"))
	deleteBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	undoBind   = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
)

// New builds the browse model over items.
func New(items []model.Item) Model {
	li := make([]list.Item, 0, len(items))
	for _, it := range items {
		li = append(li, listItem{item: it})
	}

	l := list.New(li, itemDelegate{}, 0, 0)
	l.Title = ui.Header(items)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	binds := func() []key.Binding { return []key.Binding{toggleBind, deleteBind, addBind, editBind, undoBind} }
	l.AdditionalShortHelpKeys = binds
	l.AdditionalFullHelpKeys = binds

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New item title..."
	ti.CharLimit = 200

	return Model{
		list:     l,
		original: items,
		ti:       ti,
		width:    80,
		height:   24,
	}
}

// Changed reports whether the user modified anything.
func (m Model) Changed() bool { return m.changed }

// Aborted reports whether the session ended with ctrl+c, in which case its
// changes are dropped.
func (m Model) Aborted() bool { return m.aborted }

// Items returns the current list content.
func (m Model) Items() []model.Item {
	out := make([]model.Item, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if li, ok := it.(listItem); ok {
			out = append(out, li.item)
		}
	}
	return out
}

// Update and View implement Bubble Tea's Model on Model
func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
	}

	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
		m.aborted = true
		return m, tea.Quit
	}

	if m.adding || m.editing {
		return m.updateInput(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch k.String() {
		case "q", "esc":
			return m, tea.Quit
		case " ":
			if li, ok := m.selected(); ok {
				if li.item.Resolved() {
					li.item.Status = model.Open
				} else {
					li.item.Status = model.Resolved
				}
				m.list.SetItem(m.list.GlobalIndex(), li)
				m.refilter()
				m.changed = true
			}
			return m, nil
		case "d":
			if li, ok := m.selected(); ok {
				tmp := li
				m.undoItem = &tmp
				m.undoIndex = m.list.GlobalIndex()
				m.canUndo = true
				m.list.RemoveItem(m.undoIndex)
				m.refilter()
				m.changed = true
			}
			return m, nil
		case "a":
			m.adding = true
			m.addErr = ""
			m.ti.SetValue("")
			m.ti.Placeholder = "New item title..."
			m.ti.Focus()
			return m, nil
		case "e":
			if li, ok := m.selected(); ok {
				m.editing = true
				m.editErr = ""
				m.editIndex = m.list.GlobalIndex()
				m.ti.SetValue(li.item.Title)
				m.ti.CursorEnd()
				m.ti.Placeholder = "Edit item title..."
				m.ti.Focus()
			}
			return m, nil
		case "u":
			if m.canUndo && m.undoItem != nil {
				idx := min(max(m.undoIndex, 0), len(m.list.Items()))
				m.list.InsertItem(idx, *m.undoItem)
				m.refilter()
				m.canUndo = false
				m.undoItem = nil
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				if m.adding {
					m.addErr = "Title cannot be empty"
				} else {
					m.editErr = "Title cannot be empty"
				}
				return m, nil
			}
			if m.adding {
				idx := min(m.list.GlobalIndex()+1, len(m.list.Items()))
				m.list.InsertItem(idx, listItem{item: model.Item{Title: title}})
				m.refilter()
				m.changed = true
			} else if m.editIndex >= 0 && m.editIndex < len(m.list.Items()) {
				if li, ok := m.list.Items()[m.editIndex].(listItem); ok && li.item.Title != title {
					li.item.Title = title
					m.list.SetItem(m.editIndex, li)
					m.refilter()
					m.changed = true
				}
			}
			return m.closeInput(), nil
		case "esc":
			return m.closeInput(), nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) closeInput() Model {
	m.adding = false
	m.editing = false
	m.ti.SetValue("")
	m.ti.Blur()
	return m
}

// selected returns the item under the cursor. With a filter applied the
// cursor indexes the visible items, so mutations go through GlobalIndex.
func (m Model) selected() (listItem, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	return li, ok
}

// refilter recomputes the visible items after the underlying list changed.
// The list only does this asynchronously, which would leave SelectedItem
// stale until the next message.
func (m *Model) refilter() {
	if m.list.FilterState() != list.FilterApplied {
		return
	}
	cur := m.list.Index()
	m.list.SetFilterText(m.list.FilterValue())
	if n := len(m.list.VisibleItems()); n > 0 {
		m.list.Select(min(cur, n-1))
	}
}

func (m Model) View() string {
	listHeight := m.height - 4
	if m.adding || m.editing {
		listHeight = m.height - 6
	}
	m.list.SetSize(m.width-4, max(listHeight, 1))

	content := m.list.View()
	if m.adding || m.editing {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ui.Current().BorderColor).Padding(0, 1)
		title := "Add new item"
		errMsg := m.addErr
		if m.editing {
			title = "Edit item"
			errMsg = m.editErr
		}
		if errMsg != "" {
			title += " - " + ui.Current().Error.Render(errMsg)
		}
		content = content + "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return ui.PanelString([]string{content})
}
