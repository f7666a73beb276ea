package tally

import (
	"fmt"
	"io"
	"strings"

	"regscan/internal/format"
)

// Style selects how Render lays out the report.
type Style string

const (
	Plain    Style = "plain"    // one "signature: count" line per entry
	Table    Style = "table"    // box-drawn table with run and configuration spread
	Markdown Style = "markdown" // the same table as Markdown
)

// ParseStyle maps a flag value to a Style.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(s)) {
	case Plain, "":
		return Plain, nil
	case Table:
		return Table, nil
	case Markdown, "md":
		return Markdown, nil
	}
	return "", fmt.Errorf("unknown report style %q (want plain, table or markdown)", s)
}

// NoSignatures is the plain report of an empty tally.
const NoSignatures = "No error signatures found."

// Render writes the frequency report. Output depends only on the tally
// contents, so rescanning an unchanged tree gives identical bytes.
func (t *Tally) Render(w io.Writer, style Style) error {
	entries := t.Entries()
	if style == Plain || style == "" {
		var b strings.Builder
		if len(entries) == 0 {
			b.WriteString(NoSignatures + "\n")
		}
		for _, e := range entries {
			fmt.Fprintf(&b, "%s: %d\n", e.Signature, e.Count)
		}
		_, err := io.WriteString(w, b.String())
		return err
	}

	mode := format.ASCII
	if style == Markdown {
		mode = format.Markdown
	}
	tb := format.NewTable(mode)
	tb.Header("Signature", "Count", "Runs", "Configs")
	for _, e := range entries {
		tb.Row(e.Signature, e.Count, e.Runs, e.Configs)
	}
	tb.Footer("Total", t.Total(), "", "")
	tb.AlignRight(2, 3, 4)
	_, err := io.WriteString(w, tb.String()+"\n")
	return err
}
