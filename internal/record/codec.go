// Package record converts items to and from their on-disk text form:
// a "key: value" header block, a blank line, then the free-text description.
package record

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Makepad-fr/todo/internal/model"
)

// Header keys, in the order Encode writes them.
const (
	keyTitle    = "title"
	keyDate     = "date"
	keyTags     = "tags"
	keyPriority = "priority"
	keyStatus   = "status"
)

// Decode parses one record. The id is not part of the content; callers pass
// the one derived from the record's location.
//
// Malformed header lines never fail the parse: unknown keys, lines without
// a ':' separator, unparsable priorities and unknown statuses are reported
// on log and skipped. A priority that does not parse decodes as 0.
func Decode(raw, id string, log *slog.Logger) model.Item {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	it := model.Item{ID: id}

	lines := strings.Split(raw, "\n")
	for n, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			it.Description = strings.Join(lines[n+1:], "\n")
			break
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			log.Warn("skipping header line without ':'", "id", id, "line", n+1, "text", line)
			continue
		}
		value = strings.TrimLeft(value, " \t")

		switch key {
		case keyTitle:
			it.Title = value
		case keyTags:
			it.Tags = value
		case keyDate:
			it.Date = value
		case keyPriority:
			p, err := strconv.ParseFloat(value, 64)
			if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
				log.Warn("bad priority, using 0", "id", id, "line", n+1, "value", value)
				p = 0
			}
			it.Priority = p
		case keyStatus:
			st, ok := model.ParseStatus(value)
			if !ok {
				log.Warn("unknown status, using open", "id", id, "line", n+1, "value", value)
			}
			it.Status = st
		default:
			log.Warn("skipping unknown key", "id", id, "line", n+1, "key", key)
		}
	}
	return it
}

// Encode renders it in canonical form. The blank separator line is always
// written, so Decode(Encode(it), it.ID) == it for every valid item.
func Encode(it model.Item) string {
	var b strings.Builder
	writeHeader(&b, keyTitle, it.Title)
	writeHeader(&b, keyDate, it.Date)
	writeHeader(&b, keyTags, it.Tags)
	writeHeader(&b, keyPriority, strconv.FormatFloat(it.Priority, 'f', -1, 64))
	writeHeader(&b, keyStatus, it.Status.String())
	b.WriteString("\n")
	b.WriteString(it.Description)
	return b.String()
}

func writeHeader(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

// DecodeFile reads and decodes the record at path. The id is the file name
// without ext; see IDFromPath.
func DecodeFile(path, ext string, log *slog.Logger) (model.Item, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return model.Item{}, fmt.Errorf("read record: %w", err)
	}
	return Decode(string(b), IDFromPath(path, ext), log), nil
}

// IDFromPath strips the directory and the record extension ext from path.
// An empty ext strips whatever filepath.Ext finds, which is only the last
// dotted suffix.
func IDFromPath(path, ext string) string {
	base := filepath.Base(path)
	if ext == "" {
		ext = filepath.Ext(base)
	}
	return strings.TrimSuffix(base, ext)
}
