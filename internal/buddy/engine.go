// Package buddy holds the in-memory entry list for one target and applies
// parsed commands to it. Every operation returns the text to show the user
// instead of writing it anywhere.
package buddy

import (
	"fmt"
	"slices"
	"strings"

	"textbuddy/internal/command"

	"golang.org/x/text/cases"
)

// Messages returned by the engine.
const (
	MsgInvalidCommand   = "Invalid command"
	MsgInvalidParameter = "Invalid command parameter"
	MsgInvalidIndex     = "Invalid index"

	msgAdded       = "added to %s: \"%s\""
	msgDeleted     = "deleted from %s: \"%s\""
	msgCleared     = "all content deleted from %s"
	msgEmpty       = "%s is empty"
	msgSortEmpty   = "%s is empty, nothing to sort"
	msgSorted      = "%s sorted"
	msgSearchEmpty = "%s is empty, nothing to search"
	msgNotFound    = "%s not found"
	msgFound       = "word: \"%s\" found in %d entries"
	msgLine        = "%d. %s"
)

// Result is the outcome of executing one command.
type Result struct {
	Message string
	// Exit is set once the exit verb has been seen.
	Exit bool
}

// Engine owns the entry list for a single session. It is not safe for
// concurrent use.
type Engine struct {
	target     string
	entries    []string
	terminated bool
}

// New returns an engine for target seeded with a copy of entries.
func New(target string, entries []string) *Engine {
	list := make([]string, len(entries))
	copy(list, entries)
	return &Engine{target: target, entries: list}
}

// Entries returns a copy of the current list in order.
func (e *Engine) Entries() []string {
	return slices.Clone(e.entries)
}

// Len returns the number of entries.
func (e *Engine) Len() int { return len(e.entries) }

// Terminated reports whether exit has been executed.
func (e *Engine) Terminated() bool { return e.terminated }

// Execute validates cmd against the verb table and runs the matching
// operation. After exit every call returns an empty Result with Exit set.
func (e *Engine) Execute(cmd command.Command) Result {
	if e.terminated {
		return Result{Exit: true}
	}

	switch cmd.Verb {
	case command.VerbExit:
		e.terminated = true
		return Result{Exit: true}
	case command.VerbAdd:
		if !cmd.HasParam {
			return Result{Message: MsgInvalidParameter}
		}
		return Result{Message: e.Add(cmd.Param)}
	case command.VerbDelete:
		index, ok := cmd.Int()
		if !ok {
			return Result{Message: MsgInvalidParameter}
		}
		return Result{Message: e.Delete(index)}
	case command.VerbClear:
		if cmd.HasParam {
			return Result{Message: MsgInvalidParameter}
		}
		return Result{Message: e.Clear()}
	case command.VerbDisplay:
		if cmd.HasParam {
			return Result{Message: MsgInvalidParameter}
		}
		return Result{Message: e.Display()}
	case command.VerbSort:
		if cmd.HasParam {
			return Result{Message: MsgInvalidParameter}
		}
		return Result{Message: e.Sort()}
	case command.VerbSearch:
		if !cmd.HasParam {
			return Result{Message: MsgInvalidParameter}
		}
		return Result{Message: e.Search(cmd.Param)}
	default:
		return Result{Message: MsgInvalidCommand}
	}
}

// Add appends entry verbatim.
func (e *Engine) Add(entry string) string {
	e.entries = append(e.entries, entry)
	return fmt.Sprintf(msgAdded, e.target, entry)
}

// Delete removes the entry at the 1-based position.
func (e *Engine) Delete(position int) string {
	i := position - 1
	if i < 0 || i >= len(e.entries) {
		return MsgInvalidIndex
	}
	removed := e.entries[i]
	e.entries = slices.Delete(e.entries, i, i+1)
	return fmt.Sprintf(msgDeleted, e.target, removed)
}

// Clear drops every entry.
func (e *Engine) Clear() string {
	e.entries = e.entries[:0]
	return fmt.Sprintf(msgCleared, e.target)
}

// Display lists every entry with its 1-based position.
func (e *Engine) Display() string {
	if len(e.entries) == 0 {
		return fmt.Sprintf(msgEmpty, e.target)
	}
	return numbered(e.entries)
}

// Sort orders the entries case-insensitively, breaking ties between
// entries that differ only in case by code point. Equal entries keep
// their relative order.
func (e *Engine) Sort() string {
	if len(e.entries) == 0 {
		return fmt.Sprintf(msgSortEmpty, e.target)
	}
	keys := sortKeys(e.entries)
	slices.SortStableFunc(keys, compareKeys)
	for i, k := range keys {
		e.entries[i] = k.entry
	}
	return fmt.Sprintf(msgSorted, e.target)
}

// Search lists the entries containing term, renumbered from 1.
func (e *Engine) Search(term string) string {
	if len(e.entries) == 0 {
		return fmt.Sprintf(msgSearchEmpty, e.target)
	}

	var matches []string
	for _, entry := range e.entries {
		if strings.Contains(entry, term) {
			matches = append(matches, entry)
		}
	}
	if len(matches) == 0 {
		return fmt.Sprintf(msgNotFound, term)
	}
	return fmt.Sprintf(msgFound, term, len(matches)) + "\n" + numbered(matches)
}

// sortKey pairs an entry with its case-folded form so each entry is folded
// once per Sort.
type sortKey struct {
	folded string
	entry  string
}

func sortKeys(entries []string) []sortKey {
	fold := cases.Fold()
	keys := make([]sortKey, len(entries))
	for i, entry := range entries {
		keys[i] = sortKey{folded: fold.String(entry), entry: entry}
	}
	return keys
}

func compareKeys(a, b sortKey) int {
	if c := strings.Compare(a.folded, b.folded); c != 0 {
		return c
	}
	return strings.Compare(a.entry, b.entry)
}

func numbered(entries []string) string {
	var b strings.Builder
	for i, entry := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, msgLine, i+1, entry)
	}
	return b.String()
}
