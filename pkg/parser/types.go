// Package parser provides history file reading and timestamp parsing.
package parser

// RawLine is one line of a history file.
type RawLine struct {
	// Index is the 0-based position of the line in its document.
	Index int

	// Content is the line text without the trailing newline.
	Content string
}

// Document is a fully read history file.
type Document struct {
	// Source is the file path the lines came from ("-" for stdin).
	Source string

	// Lines holds every line of the source in order.
	Lines []RawLine
}

// Len returns the number of lines in the document.
func (d *Document) Len() int {
	return len(d.Lines)
}
