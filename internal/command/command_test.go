package command

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Command
	}{
		{"single token", "display", Command{Verb: "display"}},
		{"single token uppercase", "DISPLAY", Command{Verb: "display"}},
		{"mixed case verb keeps param case", "ADD Hello World", Command{Verb: "add", Param: "Hello World", HasParam: true}},
		{"inner spacing preserved", "add  two  spaces ", Command{Verb: "add", Param: " two  spaces ", HasParam: true}},
		{"empty param still present", "add ", Command{Verb: "add", Param: "", HasParam: true}},
		{"empty line", "", Command{Verb: ""}},
		{"leading space gives empty verb", " add x", Command{Verb: "", Param: "add x", HasParam: true}},
		{"tab is not a separator", "add\tx", Command{Verb: "add\tx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.line)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestParseSingleTokenProperty(t *testing.T) {
	for _, line := range []string{"exit", "Sort", "SEARCH", "x", "dElEtE", "42"} {
		cmd := Parse(line)
		if cmd.HasParam {
			t.Fatalf("Parse(%q) reported a parameter", line)
		}
		if cmd.Verb != strings.ToLower(line) {
			t.Fatalf("Parse(%q) verb = %q", line, cmd.Verb)
		}
	}
}

func TestParseVerbatimParameterProperty(t *testing.T) {
	rests := []string{"a", "Mixed Case", "  padded  ", "with \"quotes\"", "1 2 3", ""}
	for _, verb := range []string{"add", "SEARCH", "Delete"} {
		for _, rest := range rests {
			cmd := Parse(verb + " " + rest)
			if !cmd.HasParam || cmd.Param != rest {
				t.Fatalf("Parse(%q) param = %q (has=%v), want %q", verb+" "+rest, cmd.Param, cmd.HasParam, rest)
			}
			if cmd.Verb != strings.ToLower(verb) {
				t.Fatalf("Parse(%q) verb = %q", verb+" "+rest, cmd.Verb)
			}
		}
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		line   string
		want   int
		wantOK bool
	}{
		{"delete 2", 2, true},
		{"delete -1", -1, true},
		{"delete +3", 3, true},
		{"delete 0", 0, true},
		{"delete", 0, false},
		{"delete ", 0, false},
		{"delete two", 0, false},
		{"delete 2 ", 0, false},
		{"delete 1.5", 0, false},
		{"delete 99999999999999999999", 0, false},
		{"delete 2147483647", 2147483647, true},
		{"delete 2147483648", 0, false},
		{"delete -2147483648", -2147483648, true},
		{"delete -2147483649", 0, false},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.line).Int()
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("Parse(%q).Int() = (%d, %v), want (%d, %v)", tt.line, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestString(t *testing.T) {
	if got := Parse("ADD Milk").String(); got != "add Milk" {
		t.Fatalf("String() = %q", got)
	}
	if got := Parse("Clear").String(); got != "clear" {
		t.Fatalf("String() = %q", got)
	}
}
