// Package processor contains the core conversion logic for Chinese
// vocabulary records. It reads record files, drives the review session,
// and writes the Anki import file. This package serves as the main
// coordinator between the reader, classifier, generator and exporter.
package processor
