package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Makepad-fr/todo/internal/model"
)

const maxTitle = 80

// Verbosity picks between one line per item and the full record.
type Verbosity int

const (
	Short Verbosity = iota
	Long
)

// Box returns the checkbox for it in the current theme.
func Box(it model.Item) string {
	if it.Resolved() {
		return current.Success.Render(current.BoxChecked)
	}
	return current.Muted.Render(current.BoxUnchecked)
}

// TitleText is the display title: truncated, with a marker when empty.
func TitleText(it model.Item) string {
	title := it.Title
	if title == "" {
		return current.Muted.Render("(untitled)")
	}
	if r := []rune(title); len(r) > maxTitle {
		title = string(r[:maxTitle-3]) + "..."
	}
	if it.Resolved() {
		return current.Done.Render(title)
	}
	return title
}

// ItemLine renders the short form: short id, checkbox, title.
func ItemLine(it model.Item) string {
	return fmt.Sprintf("%s  %s %s", current.Accent.Render(it.ShortID()), Box(it), TitleText(it))
}

// ItemDetail renders every field of it, one per line.
func ItemDetail(it model.Item) []string {
	label := func(s string) string { return current.Muted.Render(s + ":") }
	lines := []string{
		label("id") + " " + current.Accent.Render(it.ID),
		label("title") + " " + it.Title,
		label("tags") + " " + it.Tags,
		label("date") + " " + it.Date,
		label("priority") + " " + strconv.FormatFloat(it.Priority, 'f', -1, 64),
		label("status") + " " + statusText(it.Status),
		label("description"),
	}
	if it.Description != "" {
		for _, l := range strings.Split(strings.TrimRight(it.Description, "\n"), "\n") {
			lines = append(lines, "  "+l)
		}
	}
	return lines
}

func statusText(st model.Status) string {
	if st == model.Resolved {
		return current.Success.Render(st.String())
	}
	return current.Pending.Render(st.String())
}

// Stats counts resolved and open items.
func Stats(items []model.Item) (resolved, open int) {
	for _, it := range items {
		if it.Resolved() {
			resolved++
		} else {
			open++
		}
	}
	return
}

// Header is the summary line shown above a listing.
func Header(items []model.Item) string {
	d, p := Stats(items)
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		current.Title.Render("Todos"),
		current.Success.Render(current.SymDone), d,
		current.Pending.Render(current.SymPending), p,
		current.Accent.Render("Total"), len(items),
	)
}

// ListLines renders a whole listing: header, progress bar, items.
func ListLines(items []model.Item, v Verbosity) []string {
	d, _ := Stats(items)
	lines := []string{
		Header(items),
		current.Muted.Render(ProgressBar(d, len(items), 28)),
		"",
	}
	if len(items) == 0 {
		return append(lines, current.Muted.Render("no items"))
	}
	return append(lines, itemLines(items, v)...)
}

func itemLines(items []model.Item, v Verbosity) []string {
	var lines []string
	for i, it := range items {
		if v == Long {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, ItemDetail(it)...)
			continue
		}
		lines = append(lines, ItemLine(it))
	}
	return lines
}

// GroupLines renders open items, then resolved ones, under their own
// headings.
func GroupLines(items []model.Item, v Verbosity) []string {
	var open, done []model.Item
	for _, it := range items {
		if it.Resolved() {
			done = append(done, it)
		} else {
			open = append(open, it)
		}
	}
	section := func(name string, group []model.Item) []string {
		lines := []string{current.Accent.Render(name)}
		if len(group) == 0 {
			return append(lines, current.Muted.Render("(none)"))
		}
		return append(lines, itemLines(group, v)...)
	}
	lines := section("Open", open)
	lines = append(lines, "")
	return append(lines, section("Resolved", done)...)
}
