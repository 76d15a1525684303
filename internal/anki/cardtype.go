package anki

import (
	"fmt"
	"strconv"
	"strings"
)

// CardType identifies one of the five study activities a record can drill
type CardType int

const (
	TypeMedia          CardType = iota + 1 // recognize the word from picture or audio
	TypeCloze                              // fill the blank in the example sentence
	TypeGrammar                            // cloze with an explanatory prompt
	TypeOrder                              // restore the scrambled word order
	TypeReconstruction                     // reproduce the full sentence
)

// String returns the short name used in progress output
func (t CardType) String() string {
	switch t {
	case TypeMedia:
		return "media"
	case TypeCloze:
		return "cloze"
	case TypeGrammar:
		return "grammar"
	case TypeOrder:
		return "order"
	case TypeReconstruction:
		return "reconstruction"
	default:
		return "unknown"
	}
}

// TypeSet is a selection of card types for one record
type TypeSet map[CardType]bool

// NewTypeSet creates a set containing the given types
func NewTypeSet(types ...CardType) TypeSet {
	s := make(TypeSet)
	for _, t := range types {
		s.Add(t)
	}
	return s
}

// Add puts a type into the set
func (s TypeSet) Add(t CardType) {
	s[t] = true
}

// Has reports whether the set contains the type
func (s TypeSet) Has(t CardType) bool {
	return s[t]
}

// Toggle flips the type in or out of the set
func (s TypeSet) Toggle(t CardType) {
	if s[t] {
		delete(s, t)
	} else {
		s[t] = true
	}
}

// Empty reports whether no type is selected
func (s TypeSet) Empty() bool {
	return len(s) == 0
}

// List returns the selected types in ascending order
func (s TypeSet) List() []CardType {
	var list []CardType
	for t := TypeMedia; t <= TypeReconstruction; t++ {
		if s[t] {
			list = append(list, t)
		}
	}
	return list
}

// String renders the set in the flag syntax, e.g. "2,3"
func (s TypeSet) String() string {
	var parts []string
	for _, t := range s.List() {
		parts = append(parts, strconv.Itoa(int(t)))
	}
	return strings.Join(parts, ",")
}

// Describe returns the type names joined for display, e.g. "cloze, grammar"
func (s TypeSet) Describe() string {
	var names []string
	for _, t := range s.List() {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}

// ParseTypeSet parses a comma separated list of card type numbers like
// "2,3" into a TypeSet.
func ParseTypeSet(input string) (TypeSet, error) {
	s := make(TypeSet)
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < int(TypeMedia) || n > int(TypeReconstruction) {
			return nil, fmt.Errorf("invalid card type %q: must be 1-5", part)
		}
		s.Add(CardType(n))
	}
	if s.Empty() {
		return nil, fmt.Errorf("no card types given")
	}
	return s, nil
}
