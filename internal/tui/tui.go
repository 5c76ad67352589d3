// Package tui is the interactive browser over lists and items.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todoish/internal/model"
	"github.com/idilsaglam/todoish/internal/store"
)

type pane int

const (
	paneLists pane = iota
	paneItems
)

// listEntry adapts a TodoList to bubbles/list.Item.
type listEntry struct{ l model.TodoList }

func (e listEntry) FilterValue() string { return e.l.Name }

// itemEntry adapts an Item to bubbles/list.Item.
type itemEntry struct{ it model.Item }

func (e itemEntry) FilterValue() string { return e.it.Text }

// undoState remembers the last deletion, one level deep.
type undoState struct {
	item      *model.Item
	itemList  string // owning list id
	itemIndex int

	list      *model.TodoList
	listIndex int
}

type browser struct {
	st *store.Store

	list    list.Model
	pane    pane
	current string // open list id in paneItems

	width, height int

	// Inline add/edit share one text input.
	adding   bool
	editing  bool
	editID   string // item id being edited
	inputErr string
	ti       textinput.Model

	undo *undoState
}

// rowDelegate renders both entry kinds on a single line.
type rowDelegate struct{}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	var line string
	switch e := item.(type) {
	case listEntry:
		dn, pn := e.l.Stats()
		line = fmt.Sprintf("%s %s", e.l.Name,
			mutedStyle.Render(fmt.Sprintf("(%d/%d)", dn, dn+pn)))
	case itemEntry:
		box := mutedStyle.Render(boxUnchecked)
		text := e.it.Text
		if e.it.Important {
			text = importantStyle.Render(text)
		}
		if e.it.Done {
			box = successStyle.Render(boxChecked)
			text = doneStyle.Render(e.it.Text)
		}
		mark := " "
		if e.it.Important {
			mark = importantStyle.Render(markImportant)
		}
		line = fmt.Sprintf("%s %s %s", box, mark, text)
	default:
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// Run starts the Bubble Tea browser. Mutations mark the autosaver dirty;
// the caller flushes it after the program exits.
func Run(st *store.Store, saver *store.Autosaver) error {
	st.OnMutate(func() { saver.Mark(st.Snapshot()) })

	b := newBrowser(st)
	p := tea.NewProgram(b, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newBrowser(st *store.Store) browser {
	l := list.New(nil, rowDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	flagBind := key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "important"))
	undoBind := key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	extra := func() []key.Binding { return []key.Binding{addBind, editBind, flagBind, undoBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	b := browser{st: st, list: l, width: 80, height: 24}
	b.ti = textinput.New()
	b.ti.Prompt = "> "
	b.ti.CharLimit = 200
	b.refresh()
	return b
}

// refresh rebuilds the visible rows and title from the store.
func (b *browser) refresh() {
	switch b.pane {
	case paneLists:
		rows := make([]list.Item, 0, b.st.Len())
		for _, l := range b.st.Lists() {
			rows = append(rows, listEntry{l})
		}
		b.list.SetItems(rows)
		b.list.Title = titleStyle.Render("Todoish") + "  " +
			mutedStyle.Render(fmt.Sprintf("%d lists", b.st.Len()))
		b.list.SetStatusBarItemName("list", "lists")
	case paneItems:
		l, err := b.st.List(b.current)
		if err != nil {
			// open list vanished (deleted); fall back to the lists pane
			b.pane = paneLists
			b.refresh()
			return
		}
		rows := make([]list.Item, 0, len(l.Items))
		for _, it := range l.Items {
			rows = append(rows, itemEntry{it})
		}
		b.list.SetItems(rows)
		dn, pn := l.Stats()
		b.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
			titleStyle.Render(l.Name),
			successStyle.Render("✔"), dn,
			pendingStyle.Render("•"), pn,
			accentStyle.Render("Total"), len(l.Items),
		)
		b.list.SetStatusBarItemName("item", "items")
	}
}

func (b browser) Init() tea.Cmd { return nil }

func (b browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		b.width, b.height = ws.Width, ws.Height
		return b, nil
	}

	if b.adding || b.editing {
		return b.updateInput(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok && !b.list.SettingFilter() {
		switch km.String() {
		case "q", "ctrl+c":
			return b, tea.Quit

		case "esc":
			if b.pane == paneItems {
				b.pane = paneLists
				b.refresh()
				return b, nil
			}
			return b, tea.Quit

		case "enter":
			if b.pane == paneLists {
				if e, ok := b.selectedList(); ok {
					b.pane = paneItems
					b.current = e.ID
					b.refresh()
				}
				return b, nil
			}

		case " ":
			if e, ok := b.selectedItem(); ok {
				if _, err := b.st.ToggleDone(e.ID); err == nil {
					b.refresh()
				}
			}
			return b, nil

		case "i":
			if e, ok := b.selectedItem(); ok {
				if _, err := b.st.ToggleImportant(e.ID); err == nil {
					b.refresh()
				}
			}
			return b, nil

		case "a":
			b.adding = true
			b.inputErr = ""
			b.ti.SetValue("")
			if b.pane == paneLists {
				b.ti.Placeholder = "New list name..."
			} else {
				b.ti.Placeholder = "New item..."
			}
			b.ti.Focus()
			return b, nil

		case "e":
			if e, ok := b.selectedItem(); ok {
				b.editing = true
				b.editID = e.ID
				b.inputErr = ""
				b.ti.SetValue(e.Text)
				b.ti.CursorEnd()
				b.ti.Placeholder = "Edit item..."
				b.ti.Focus()
			}
			return b, nil

		case "d":
			b.deleteSelected()
			return b, nil

		case "u":
			b.applyUndo()
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

func (b browser) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			text := strings.TrimSpace(b.ti.Value())
			if text == "" {
				b.inputErr = "Cannot be empty"
				return b, nil
			}
			if b.editing {
				b.st.RenameItem(b.editID, text)
			} else if b.pane == paneLists {
				b.st.CreateList(text)
			} else {
				b.st.AddItem(b.current, text)
			}
			b.closeInput()
			b.refresh()
			return b, nil
		case "esc":
			b.closeInput()
			return b, nil
		}
	}
	var cmd tea.Cmd
	b.ti, cmd = b.ti.Update(msg)
	return b, cmd
}

func (b *browser) closeInput() {
	b.adding = false
	b.editing = false
	b.editID = ""
	b.inputErr = ""
	b.ti.SetValue("")
	b.ti.Blur()
}

func (b *browser) selectedList() (model.TodoList, bool) {
	if e, ok := b.list.SelectedItem().(listEntry); ok {
		return e.l, true
	}
	return model.TodoList{}, false
}

func (b *browser) selectedItem() (model.Item, bool) {
	if e, ok := b.list.SelectedItem().(itemEntry); ok {
		return e.it, true
	}
	return model.Item{}, false
}

func (b *browser) deleteSelected() {
	idx := b.list.Index()
	switch b.pane {
	case paneLists:
		if l, ok := b.selectedList(); ok {
			snapshot := l.Clone()
			if err := b.st.DeleteList(l.ID); err == nil {
				b.undo = &undoState{list: &snapshot, listIndex: idx}
				b.refresh()
			}
		}
	case paneItems:
		if it, ok := b.selectedItem(); ok {
			snapshot := it
			if err := b.st.DeleteItem(it.ID); err == nil {
				b.undo = &undoState{item: &snapshot, itemList: b.current, itemIndex: idx}
				b.refresh()
			}
		}
	}
}

func (b *browser) applyUndo() {
	u := b.undo
	if u == nil {
		return
	}
	switch {
	case u.list != nil:
		b.st.RestoreList(u.listIndex, *u.list)
	case u.item != nil:
		if err := b.st.RestoreItem(u.itemList, u.itemIndex, *u.item); err != nil {
			return // owning list is gone, nothing to restore into
		}
	}
	b.undo = nil
	b.refresh()
}

func (b browser) View() string {
	listHeight := b.height - 4
	if b.adding || b.editing {
		listHeight = b.height - 6
	}
	b.list.SetSize(b.width-2, listHeight)

	content := b.list.View()
	if b.adding || b.editing {
		title := "Add"
		if b.editing {
			title = "Edit"
		}
		if b.inputErr != "" {
			title += " — " + errorStyle.Render(b.inputErr)
		}
		content += "\n" + panelStyle.Render(title+"\n"+b.ti.View())
	}
	return panelStyle.Render(content)
}
