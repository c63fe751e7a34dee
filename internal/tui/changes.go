package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/todo/internal/model"
)

type ChangeKind int

const (
	Add ChangeKind = iota
	Update
	Remove
)

func (k ChangeKind) String() string {
	switch k {
	case Update:
		return "update"
	case Remove:
		return "remove"
	}
	return "add"
}

// Change is one record operation the browse session asks for.
type Change struct {
	Kind  ChangeKind
	ID    string
	Patch model.Patch
}

// Changes diffs what the session ended with against what it loaded.
// Removals come first, then updates and additions in list order.
func Changes(original, final []model.Item) []Change {
	kept := make(map[string]model.Item, len(final))
	for _, it := range final {
		if it.ID != "" {
			kept[it.ID] = it
		}
	}

	var out []Change
	for _, orig := range original {
		if _, ok := kept[orig.ID]; !ok {
			out = append(out, Change{Kind: Remove, ID: orig.ID})
		}
	}

	byID := make(map[string]model.Item, len(original))
	for _, it := range original {
		byID[it.ID] = it
	}
	for _, it := range final {
		if it.ID == "" {
			p := model.Patch{Title: &it.Title}
			if it.Resolved() {
				st := it.Status
				p.Status = &st
			}
			out = append(out, Change{Kind: Add, Patch: p})
			continue
		}
		orig, ok := byID[it.ID]
		if !ok {
			continue
		}
		var p model.Patch
		if it.Title != orig.Title {
			title := it.Title
			p.Title = &title
		}
		if it.Status != orig.Status {
			st := it.Status
			p.Status = &st
		}
		if !p.Empty() {
			out = append(out, Change{Kind: Update, ID: it.ID, Patch: p})
		}
	}
	return out
}

// Applier is the subset of the tracker a browse session writes through.
type Applier interface {
	Create(p model.Patch) (model.Item, error)
	Edit(prefix string, p model.Patch) (model.Item, error)
	Delete(prefix string) (model.Item, error)
}

// Apply runs every change, continuing past failures, and returns how many
// succeeded along with the joined errors.
func Apply(a Applier, changes []Change) (int, error) {
	var errs []error
	n := 0
	for _, c := range changes {
		var err error
		switch c.Kind {
		case Add:
			_, err = a.Create(c.Patch)
		case Update:
			_, err = a.Edit(c.ID, c.Patch)
		case Remove:
			_, err = a.Delete(c.ID)
		}
		if err != nil {
			target := model.Shorten(c.ID, model.ShortIDLen)
			if target == "" {
				target = "new item"
			}
			errs = append(errs, fmt.Errorf("%s %s: %w", c.Kind, target, err))
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}

// Run shows the browser over items and, once the user quits with q or esc,
// writes the changes through a. Quitting with ctrl+c discards them. It
// returns the number of changes applied.
func Run(a Applier, items []model.Item, opts ...tea.ProgramOption) (int, error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	final, err := tea.NewProgram(New(items), opts...).Run()
	if err != nil {
		return 0, err
	}
	m, ok := final.(Model)
	if !ok || m.Aborted() || !m.Changed() {
		return 0, nil
	}
	return Apply(a, Changes(items, m.Items()))
}
