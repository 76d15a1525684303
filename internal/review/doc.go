// Package review drives records through the load, classify, review and
// export pipeline. A Session owns the ordered record list and a cursor;
// callers decide each record with accept or skip, may step back, override
// the suggested card types or regenerate fields, and finally export what
// was accepted. The Session is the only surface the presentation layer
// needs: it wires the cleaner, classifier and generator together.
package review
