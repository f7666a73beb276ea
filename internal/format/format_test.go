package format_test

import (
	"strings"
	"testing"

	"regscan/internal/format"
)

func TestASCII_Table(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Signature", "Count")
	tb.Row("ERR_TIMEOUT", 3)
	tb.Row("ERR_PARITY", 1)
	tb.Footer("Total", 4)
	tb.AlignRight(2)
	out := tb.String()

	for _, want := range []string{"SIGNATURE", "ERR_TIMEOUT", "ERR_PARITY", "TOTAL", "───"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Index(out, "ERR_TIMEOUT") > strings.Index(out, "ERR_PARITY") {
		t.Errorf("rows out of order:\n%s", out)
	}
}

func TestMarkdown_Table(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Signature", "Count")
	tb.Row("ERR_TIMEOUT", 3)
	out := tb.String()

	if !strings.Contains(out, "| Signature") {
		t.Errorf("expected markdown header:\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected markdown separator:\n%s", out)
	}
	if !strings.Contains(out, "| ERR_TIMEOUT") {
		t.Errorf("expected markdown row:\n%s", out)
	}
}

func TestEmptyTable(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("A")
	if out := tb.String(); !strings.Contains(out, "A") {
		t.Errorf("header missing from empty table:\n%s", out)
	}
}
