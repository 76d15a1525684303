// Package classify suggests card types for vocabulary records. The
// heuristics look at the word (function word or content word, single or
// multi character), the example sentence (length, clause breaks, grammar
// markers) and the attached media. All word lists and thresholds are data:
// they ship with defaults and can be replaced from a YAML file, so tests
// and decks with different conventions can substitute their own.
package classify
