package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todoish/internal/config"
	"github.com/idilsaglam/todoish/internal/logging"
	"github.com/idilsaglam/todoish/internal/model"
	"github.com/idilsaglam/todoish/internal/store"
	"github.com/idilsaglam/todoish/internal/store/jsonstore"
	"github.com/idilsaglam/todoish/internal/tui"
	"github.com/idilsaglam/todoish/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group bool // item listing grouped by pending/done
}

type app struct {
	cfg config.Config
	log *log.Logger
	opt Options
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}

	logger := logging.New()
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("config unavailable, using defaults", "err", err)
	}
	ui.SetTheme(cfg.Theme)
	if cfg.NoColor {
		ui.SetColorForcing(false, true)
	}
	a := &app{cfg: cfg, log: logger, opt: opt}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "lists":
		return a.doLists()

	case "ls":
		return a.doList(strings.Join(rest, " "))

	case "tui":
		return a.doTUI()

	case "new":
		if len(rest) == 0 {
			ui.Fail("usage: todoish new <name...>")
			return 2
		}
		return a.doNewList(strings.Join(rest, " "))

	case "rm-list":
		if len(rest) == 0 {
			ui.Fail("usage: todoish rm-list <list>")
			return 2
		}
		return a.doRemoveList(strings.Join(rest, " "))

	case "add":
		if len(rest) < 2 {
			ui.Fail("usage: todoish add <list> <text...>")
			return 2
		}
		return a.doAdd(rest[0], strings.Join(rest[1:], " "))

	case "done":
		return a.itemCommand("done", rest, func(st *store.Store, it model.Item) error {
			_, err := st.ToggleDone(it.ID)
			return err
		})

	case "flag":
		return a.itemCommand("flag", rest, func(st *store.Store, it model.Item) error {
			_, err := st.ToggleImportant(it.ID)
			return err
		})

	case "rm":
		return a.itemCommand("rm", rest, func(st *store.Store, it model.Item) error {
			return st.DeleteItem(it.ID)
		})

	case "edit":
		if len(rest) < 3 {
			ui.Fail("usage: todoish edit <list> <index> <text...>")
			return 2
		}
		return a.doEdit(rest[0], rest[1], strings.Join(rest[2:], " "))
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`todoish - offline todo lists

Usage:
  todoish <subcommand> [args]

Subcommands:
  lists                        Show all lists
  ls [list]                    Show one list (or every list when omitted)
  new <name...>                Create a new list
  rm-list <list>               Delete a list and all its items
  add <list> <text...>         Add an item to a list
  done <list> <index>          Toggle completion for item at 1-based index
  flag <list> <index>          Toggle importance for item at 1-based index
  edit <list> <index> <text>   Rename item at 1-based index
  rm <list> <index>            Remove item at 1-based index
  tui                          Interactive browser

Lists are addressed by name or by their 1-based index from ` + "`todoish lists`" + `.

Examples:
  todoish new groceries
  todoish add groceries "Buy milk"
  todoish flag groceries 1
  todoish done 1 2
`)
}

// -------------- store plumbing ----------------

// loadStore reads the data file. Per the error model, a broken file warns
// and starts empty instead of aborting.
func (a *app) loadStore() *store.Store {
	lists, err := jsonstore.Load(a.cfg.DataFile)
	if err != nil {
		a.log.Warn("could not load data, starting empty", "path", a.cfg.DataFile, "err", err)
		return store.New(nil)
	}
	return store.New(lists)
}

// save persists the full state after a mutation.
func (a *app) save(st *store.Store) bool {
	if err := jsonstore.Save(a.cfg.DataFile, st.Lists()); err != nil {
		a.log.Warn("save failed, change not persisted", "path", a.cfg.DataFile, "err", err)
		return false
	}
	return true
}

// resolveList finds a list by exact name first, then by 1-based index.
func resolveList(st *store.Store, ref string) (model.TodoList, bool) {
	for _, l := range st.Lists() {
		if l.Name == ref {
			return l, true
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= st.Len() {
		return st.Lists()[n-1], true
	}
	return model.TodoList{}, false
}

func failNoList(ref string) int {
	ui.Fail("no such list: " + ref)
	fmt.Fprintln(os.Stderr, ui.C(ui.Current().Muted, "Hint: run `todoish lists` to see valid names"))
	return 2
}

func failBadIndex(l model.TodoList, userIndex int) int {
	ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(l.Items), userIndex))
	fmt.Fprintln(os.Stderr, ui.C(ui.Current().Muted, "Hint: run `todoish ls "+l.Name+"` to see valid indexes"))
	return 2
}

// -------------- subcommand impls ----------------

func (a *app) doLists() int {
	st := a.loadStore()
	t := ui.Current()

	var lines []string
	lines = append(lines, ui.C(t.Title, "Lists"))
	lines = append(lines, "")
	if st.Len() == 0 {
		lines = append(lines, ui.C(t.Muted, "no lists"))
	}
	for i, l := range st.Lists() {
		d, p := l.Stats()
		lines = append(lines, fmt.Sprintf("%s %s  %s",
			ui.C("\033[2m", fmt.Sprintf("%2d.", i+1)),
			l.Name,
			ui.C(t.Muted, fmt.Sprintf("%s %d  %s %d", t.SymDone, d, t.SymUnchecked, p)),
		))
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: create with `todoish new groceries`"))
	ui.Panel(lines)
	return 0
}

func (a *app) doList(ref string) int {
	st := a.loadStore()
	if ref == "" {
		for _, l := range st.Lists() {
			a.renderList(l)
		}
		if st.Len() == 0 {
			ui.Panel([]string{ui.C(ui.Current().Muted, "no lists")})
		}
		return 0
	}
	l, ok := resolveList(st, ref)
	if !ok {
		return failNoList(ref)
	}
	a.renderList(l)
	return 0
}

func (a *app) renderList(l model.TodoList) {
	t := ui.Current()
	d, p := l.Stats()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, l.Name),
		ui.C(t.Success, t.SymDone), d,
		ui.C(t.Pending, t.SymUnchecked), p,
		ui.C(t.Accent, "Total"), len(l.Items),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")
	if a.opt.Group {
		lines = append(lines, groupLines(l.Items)...)
	} else {
		lines = append(lines, flatLines(l.Items)...)
	}
	ui.Panel(lines)
}

func (a *app) doNewList(name string) int {
	name = strings.TrimSpace(name)
	if name == "" {
		ui.Fail("new: empty name")
		return 2
	}
	st := a.loadStore()
	st.CreateList(name)
	if !a.save(st) {
		return 1
	}
	ui.OK("created " + name)
	return 0
}

func (a *app) doRemoveList(ref string) int {
	st := a.loadStore()
	l, ok := resolveList(st, ref)
	if !ok {
		return failNoList(ref)
	}
	if err := st.DeleteList(l.ID); err != nil {
		ui.Fail("rm-list: " + err.Error())
		return 1
	}
	if !a.save(st) {
		return 1
	}
	ui.OK("removed " + l.Name)
	return 0
}

func (a *app) doAdd(ref, text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		ui.Fail("add: empty text")
		return 2
	}
	st := a.loadStore()
	l, ok := resolveList(st, ref)
	if !ok {
		return failNoList(ref)
	}
	if _, err := st.AddItem(l.ID, text); err != nil {
		ui.Fail("add: " + err.Error())
		return 1
	}
	if !a.save(st) {
		return 1
	}
	ui.OK("added")
	return 0
}

func (a *app) doEdit(ref, index, text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		ui.Fail("edit: empty text")
		return 2
	}
	return a.itemCommand("edit", []string{ref, index}, func(st *store.Store, it model.Item) error {
		return st.RenameItem(it.ID, text)
	})
}

// itemCommand handles the shared <list> <index> shape: resolve, mutate, save.
func (a *app) itemCommand(name string, args []string, mutate func(*store.Store, model.Item) error) int {
	if len(args) != 2 {
		ui.Fail(fmt.Sprintf("usage: todoish %s <list> <index>", name))
		return 2
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		ui.Fail(name + ": not a number: " + args[1])
		return 2
	}
	st := a.loadStore()
	l, ok := resolveList(st, args[0])
	if !ok {
		return failNoList(args[0])
	}
	if n < 1 || n > len(l.Items) {
		return failBadIndex(l, n)
	}
	if err := mutate(st, l.Items[n-1]); err != nil {
		ui.Fail(name + ": " + err.Error())
		return 1
	}
	if !a.save(st) {
		return 1
	}
	ui.OK(name)
	return 0
}

func (a *app) doTUI() int {
	st := a.loadStore()
	saver := store.NewAutosaver(a.cfg.DataFile, a.cfg.AutosaveDelay(), func(err error) {
		a.log.Warn("autosave failed, changes kept in memory", "err", err)
	})
	if err := tui.Run(st, saver); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	if err := saver.Stop(); err != nil {
		a.log.Warn("final save failed", "path", a.cfg.DataFile, "err", err)
		return 1
	}
	return 0
}

// -------------- rendering helpers --------------

func flatLines(items []model.Item) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		idx := fmt.Sprintf("%2d.", i+1)
		box := t.BoxUnchecked
		color := t.Muted
		if it.Done {
			box, color = t.BoxChecked, t.Success
		}
		mark := " "
		if it.Important {
			mark = ui.C(t.Important, t.MarkImportant)
		}
		text := it.Text
		if len(text) > 80 {
			text = text[:77] + "..."
		}
		if it.Important && !it.Done {
			text = ui.C(t.Important, text)
		}
		out = append(out, fmt.Sprintf("%s %s %s %s",
			ui.C("\033[2m", idx), ui.C(color, box), mark, text))
	}
	return out
}

func groupLines(items []model.Item) []string {
	t := ui.Current()
	var pend, done []model.Item
	for _, it := range items {
		if it.Done {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, ui.C(t.Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
