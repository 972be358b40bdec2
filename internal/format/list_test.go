package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestWriteEntriesPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEntries(&buf, "list.txt", []string{"First line", "Second line"}, Options{Format: "plain"}); err != nil {
		t.Fatalf("WriteEntries returned error: %v", err)
	}
	want := "1. First line\n2. Second line\n"
	if got := buf.String(); got != want {
		t.Fatalf("plain output mismatch\nwant: %q\ngot:  %q", want, got)
	}
}

func TestWriteEntriesPlainEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEntries(&buf, "list.txt", nil, Options{Format: "PLAIN"}); err != nil {
		t.Fatalf("WriteEntries returned error: %v", err)
	}
	if got := buf.String(); got != "list.txt is empty\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestWriteEntriesJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEntries(&buf, "list.txt", []string{"a", ""}, Options{Format: "json"}); err != nil {
		t.Fatalf("WriteEntries returned error: %v", err)
	}

	var payload listPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if payload.Target != "list.txt" || payload.Count != 2 || len(payload.Entries) != 2 || payload.Entries[1] != "" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestWriteEntriesJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEntries(&buf, "list.txt", nil, Options{Format: "json"}); err != nil {
		t.Fatalf("WriteEntries returned error: %v", err)
	}
	if !strings.Contains(buf.String(), `"entries": []`) {
		t.Fatalf("expected empty array, got %s", buf.String())
	}
}

func TestWriteEntriesTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteEntries(&buf, "list.txt", []string{"apple", "Mangoes"}, Options{Format: "table", Width: 60})
	if err != nil {
		t.Fatalf("WriteEntries returned error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"list.txt", "ENTRY", "apple", "Mangoes", "╭"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteEntriesTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEntries(&buf, "list.txt", nil, Options{Width: 60}); err != nil {
		t.Fatalf("WriteEntries returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "(empty)") {
		t.Fatalf("expected placeholder row:\n%s", buf.String())
	}
}

func TestWriteEntriesUnsupported(t *testing.T) {
	if err := WriteEntries(&bytes.Buffer{}, "list.txt", nil, Options{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestDetermineWidth(t *testing.T) {
	if got := determineWidth(nil, 42); got != 42 {
		t.Fatalf("explicit width ignored: %d", got)
	}
	t.Setenv("COLUMNS", "120")
	if got := determineWidth(nil, 0); got != 120 {
		t.Fatalf("COLUMNS ignored: %d", got)
	}
	t.Setenv("COLUMNS", "")
	if got := determineWidth(nil, 0); got != 80 {
		t.Fatalf("fallback width = %d", got)
	}
}
