package record

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todo/internal/model"
)

func captureLog() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestDecode_AllFields(t *testing.T) {
	raw := "title: Buy milk\n" +
		"tags: errands\n" +
		"date: 2026-10-18 09:30\n" +
		"priority: 0.75\n" +
		"status: resolved\n" +
		"\n" +
		"two litres\nsemi-skimmed"

	it := Decode(raw, "abc123", nil)

	assert.Equal(t, model.Item{
		ID:          "abc123",
		Title:       "Buy milk",
		Tags:        "errands",
		Date:        "2026-10-18 09:30",
		Priority:    0.75,
		Status:      model.Resolved,
		Description: "two litres\nsemi-skimmed",
	}, it)
}

func TestDecode_KeysInAnyOrder(t *testing.T) {
	raw := "status: open\npriority: 1\ntitle: x\n\nbody"
	it := Decode(raw, "id", nil)
	assert.Equal(t, "x", it.Title)
	assert.Equal(t, 1.0, it.Priority)
	assert.Equal(t, model.Open, it.Status)
	assert.Equal(t, "body", it.Description)
}

func TestDecode_UnknownKeyIsSkipped(t *testing.T) {
	log, buf := captureLog()
	raw := "title: keep me\nfoo: bar\ntags: a\n\ndesc"

	it := Decode(raw, "id", log)

	assert.Equal(t, "keep me", it.Title)
	assert.Equal(t, "a", it.Tags)
	assert.Equal(t, "desc", it.Description)
	assert.Contains(t, buf.String(), "skipping unknown key")
	assert.Contains(t, buf.String(), "key=foo")
}

func TestDecode_LineWithoutSeparatorIsSkipped(t *testing.T) {
	log, buf := captureLog()
	raw := "title: first\nthis line has no separator\ntags: still parsed\n\nbody\nmore"

	it := Decode(raw, "id", log)

	assert.Equal(t, "first", it.Title)
	assert.Equal(t, "still parsed", it.Tags)
	assert.Equal(t, "body\nmore", it.Description)
	assert.Contains(t, buf.String(), "without ':'")
}

func TestDecode_SplitsAtFirstColon(t *testing.T) {
	it := Decode("title: meet at 10:30\n\n", "id", nil)
	assert.Equal(t, "meet at 10:30", it.Title)
}

func TestDecode_KeysAreCaseSensitive(t *testing.T) {
	it := Decode("Title: nope\ntitle: yes\n\n", "id", nil)
	assert.Equal(t, "yes", it.Title)
}

func TestDecode_BadPriorityFallsBackToZero(t *testing.T) {
	log, buf := captureLog()
	it := Decode("priority: high\ntitle: t\n\n", "id", log)
	assert.Equal(t, 0.0, it.Priority)
	assert.Equal(t, "t", it.Title)
	assert.Contains(t, buf.String(), "bad priority")
}

func TestDecode_NonFinitePriorityFallsBackToZero(t *testing.T) {
	for _, v := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "1e400"} {
		t.Run(v, func(t *testing.T) {
			log, buf := captureLog()
			it := Decode("priority: "+v+"\ntitle: t\n\n", "id", log)
			assert.Equal(t, 0.0, it.Priority)
			assert.NoError(t, it.Validate())
			assert.Contains(t, buf.String(), "bad priority")
		})
	}
}

func TestDecode_UnknownStatusIsOpen(t *testing.T) {
	it := Decode("status: closed\n\n", "id", nil)
	assert.Equal(t, model.Open, it.Status)
}

func TestDecode_BodyKeepsBlankLines(t *testing.T) {
	raw := "title: t\n\nline one\n\n\nline four\n"
	it := Decode(raw, "id", nil)
	assert.Equal(t, "line one\n\n\nline four\n", it.Description)
}

func TestDecode_BodyLooksLikeHeaders(t *testing.T) {
	raw := "title: t\n\ntitle: not a header\nstatus: resolved"
	it := Decode(raw, "id", nil)
	assert.Equal(t, "t", it.Title)
	assert.Equal(t, model.Open, it.Status)
	assert.Equal(t, "title: not a header\nstatus: resolved", it.Description)
}

func TestDecode_NoSeparator(t *testing.T) {
	it := Decode("title: t\nstatus: resolved", "id", nil)
	assert.Equal(t, "t", it.Title)
	assert.Equal(t, model.Resolved, it.Status)
	assert.Empty(t, it.Description)
}

func TestDecode_CRLF(t *testing.T) {
	it := Decode("title: windows\r\nstatus: resolved\r\n\r\nbody", "id", nil)
	assert.Equal(t, "windows", it.Title)
	assert.Equal(t, model.Resolved, it.Status)
	assert.Equal(t, "body", it.Description)
}

func TestDecode_LegacyDescriptionHeader(t *testing.T) {
	log, buf := captureLog()
	raw := "title: old\ndate: d\ntags: g\npriority: 0.500000\nstatus: open\ndescription: legacy"

	it := Decode(raw, "id", log)

	assert.Equal(t, "old", it.Title)
	assert.Equal(t, 0.5, it.Priority)
	assert.Empty(t, it.Description)
	assert.Contains(t, buf.String(), "key=description")
}

func TestEncode_Layout(t *testing.T) {
	it := model.Item{
		ID:          "abc",
		Title:       "Write report",
		Tags:        "work",
		Date:        "2026-10-18",
		Priority:    0.5,
		Status:      model.Open,
		Description: "draft first",
	}
	want := "title: Write report\n" +
		"date: 2026-10-18\n" +
		"tags: work\n" +
		"priority: 0.5\n" +
		"status: open\n" +
		"\n" +
		"draft first"
	assert.Equal(t, want, Encode(it))
}

func TestEncode_EmptyDescription(t *testing.T) {
	got := Encode(model.Item{ID: "x", Status: model.Resolved})
	assert.Equal(t, "title: \ndate: \ntags: \npriority: 0\nstatus: resolved\n\n", got)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		item model.Item
	}{
		{"simple", model.Item{ID: "a1", Title: "t", Tags: "x", Date: "d", Priority: 0.5, Description: "body"}},
		{"resolved", model.Item{ID: "a2", Title: "done", Priority: 1, Status: model.Resolved, Description: "ok"}},
		{"multi line", model.Item{ID: "a3", Title: "m", Priority: 0.1234567, Description: "one\ntwo\n\nfour"}},
		{"leading blank body", model.Item{ID: "a4", Title: "m", Priority: 0.3, Description: "\n\nafter gap"}},
		{"trailing newline", model.Item{ID: "a5", Title: "m", Priority: 2.25, Description: "ends\n"}},
		{"colons everywhere", model.Item{ID: "a6", Title: "a:b:c", Tags: "k:v", Date: "10:30", Priority: -1, Description: "x: y"}},
		{"empty", model.Item{ID: "a7"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(Encode(tt.item), tt.item.ID, nil)
			assert.Equal(t, tt.item, got)
		})
	}
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deadbeef.todo")
	require.NoError(t, os.WriteFile(path, []byte("title: from disk\n\nhello"), 0o644))

	it, err := DecodeFile(path, ".todo", nil)
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", it.ID)
	assert.Equal(t, "from disk", it.Title)
	assert.Equal(t, "hello", it.Description)

	_, err = DecodeFile(filepath.Join(dir, "missing.todo"), ".todo", nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIDFromPath(t *testing.T) {
	assert.Equal(t, "abc", IDFromPath(".todo/abc.todo", ".todo"))
	assert.Equal(t, "abc", IDFromPath("abc.todo", ""))
	assert.Equal(t, "abc", IDFromPath("abc", ""))
	assert.Equal(t, "abc", IDFromPath("notes/abc.todo.txt", ".todo.txt"))
	assert.Equal(t, "abc.todo", IDFromPath("notes/abc.todo.txt", ""))
}
