// Package command turns a raw input line into a verb and its parameter.
package command

import (
	"strconv"
	"strings"
)

// Recognised verbs. Input verbs are lowercased before comparison.
const (
	VerbExit    = "exit"
	VerbAdd     = "add"
	VerbDelete  = "delete"
	VerbClear   = "clear"
	VerbDisplay = "display"
	VerbSort    = "sort"
	VerbSearch  = "search"
)

// Command is one parsed input line. It is never modified after Parse returns it.
type Command struct {
	// Verb is the first space-delimited token, lowercased.
	Verb string
	// Param is everything after the first space, verbatim.
	Param string
	// HasParam reports whether the line contained a space at all.
	// "add " has an empty but present parameter.
	HasParam bool
}

// Parse splits line at its first space character. The verb is lowercased,
// the parameter keeps its case and inner spacing and is never trimmed.
func Parse(line string) Command {
	verb, param, found := strings.Cut(line, " ")
	return Command{
		Verb:     strings.ToLower(verb),
		Param:    param,
		HasParam: found,
	}
}

// Int converts the parameter to an integer. It reports false when there is
// no parameter or the parameter is not a base-10 literal that fits in 32
// bits.
func (c Command) Int() (int, bool) {
	if !c.HasParam {
		return 0, false
	}
	n, err := strconv.ParseInt(c.Param, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// String reassembles the command the way it was typed, with the verb lowercased.
func (c Command) String() string {
	if !c.HasParam {
		return c.Verb
	}
	return c.Verb + " " + c.Param
}
