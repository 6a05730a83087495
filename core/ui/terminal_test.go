package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableAlignsUnicode(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	table := w.NewTable("Business type", "Op. cost")
	table.AddRow("Hotéis", "20.00%")
	table.AddRow("Restauração tradicional", "15.00%")
	table.AddRow("Cadeias")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("Expected 5 lines, got %d:\n%s", len(lines), buf.String())
	}
	col := strings.Index(lines[0], "│")
	for _, line := range []string{lines[2], lines[3], lines[4]} {
		if got := strings.Index(line, "│"); runeOffset(line, got) != runeOffset(lines[0], col) {
			t.Errorf("Misaligned row %q", line)
		}
	}
}

func runeOffset(s string, byteIdx int) int {
	return len([]rune(s[:byteIdx]))
}

func TestColorToggle(t *testing.T) {
	var plain, colored bytes.Buffer
	NewWriter(&plain, true).Success("saved %d", 1)
	NewWriter(&colored, false).Success("saved %d", 1)

	if strings.Contains(plain.String(), "\033[") {
		t.Error("Expected no ANSI codes")
	}
	if !strings.Contains(colored.String(), Green) {
		t.Error("Expected green ANSI code")
	}
	if !strings.Contains(plain.String(), "saved 1") {
		t.Errorf("Unexpected output %q", plain.String())
	}
}
