package metrics

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Metric", "Value"}
	rows := [][]string{
		{"Accuracy", "50.00%"},
		{"Net WPM", "5.70"},
	}

	lines := formatTable(headers, rows, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Metric    Value" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Accuracy 50.00%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Net WPM    5.70" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}
