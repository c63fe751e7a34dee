package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Makepad-fr/todo/internal/model"
)

func useTheme(t *testing.T, name string) {
	t.Helper()
	prev := current
	SetTheme(name)
	t.Cleanup(func() { current = prev })
}

func TestSetTheme(t *testing.T) {
	useTheme(t, "NEON")
	assert.Equal(t, "neon", Current().Name)

	SetTheme("does-not-exist")
	assert.Equal(t, "classic", Current().Name)
}

func TestItemLine(t *testing.T) {
	useTheme(t, "mono")

	open := model.Item{ID: "abcdef123456", Title: "Buy milk"}
	assert.Equal(t, "abcdef  [ ] Buy milk", ItemLine(open))

	done := model.Item{ID: "abcdef123456", Title: "Buy milk", Status: model.Resolved}
	assert.Equal(t, "abcdef  [x] Buy milk", ItemLine(done))
}

func TestTitleText(t *testing.T) {
	useTheme(t, "mono")

	assert.Equal(t, "(untitled)", TitleText(model.Item{}))

	long := strings.Repeat("x", 100)
	got := TitleText(model.Item{Title: long})
	assert.Len(t, got, maxTitle)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestItemDetail(t *testing.T) {
	useTheme(t, "mono")

	it := model.Item{
		ID: "abc", Title: "t", Tags: "g", Date: "d",
		Priority: 0.5, Status: model.Resolved, Description: "one\ntwo\n",
	}
	assert.Equal(t, []string{
		"id: abc",
		"title: t",
		"tags: g",
		"date: d",
		"priority: 0.5",
		"status: resolved",
		"description:",
		"  one",
		"  two",
	}, ItemDetail(it))
}

func TestListLines(t *testing.T) {
	useTheme(t, "mono")
	items := []model.Item{
		{ID: "aaaaaa1", Title: "a"},
		{ID: "bbbbbb1", Title: "b", Status: model.Resolved},
	}

	lines := ListLines(items, Short)
	assert.Equal(t, "Todos  x 1  - 1  Total 2", lines[0])
	assert.Contains(t, lines[1], "50%")
	assert.Equal(t, "aaaaaa  [ ] a", lines[3])
	assert.Equal(t, "bbbbbb  [x] b", lines[4])

	empty := ListLines(nil, Short)
	assert.Equal(t, "no items", empty[len(empty)-1])

	long := ListLines(items, Long)
	assert.Contains(t, long, "id: aaaaaa1")
	assert.Contains(t, long, "id: bbbbbb1")
}

func TestProgressBar(t *testing.T) {
	useTheme(t, "mono")
	assert.Equal(t, "#####.....  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, ".....   0%", ProgressBar(0, 0, 1))
}

func TestOKAndFail(t *testing.T) {
	useTheme(t, "mono")
	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "nope")
	Hint(&buf, "try again")
	assert.Equal(t, "x added\n! nope\ntry again\n", buf.String())
}

func TestPanel(t *testing.T) {
	useTheme(t, "mono")
	var buf bytes.Buffer
	Panel(&buf, []string{"hi"})
	assert.Equal(t, "+----+\n| hi |\n+----+\n", buf.String())
}

func TestGroupLines(t *testing.T) {
	useTheme(t, "mono")
	items := []model.Item{
		{ID: "aaaaaa1", Title: "a", Status: model.Resolved},
		{ID: "bbbbbb1", Title: "b"},
	}
	assert.Equal(t, []string{
		"Open",
		"bbbbbb  [ ] b",
		"",
		"Resolved",
		"aaaaaa  [x] a",
	}, GroupLines(items, Short))

	none := GroupLines(items[1:], Short)
	assert.Equal(t, "(none)", none[len(none)-1])
}
