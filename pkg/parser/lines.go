package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinSource is the source name that reads from standard input.
const StdinSource = "-"

// maxLineSize bounds a single history line.
const maxLineSize = 1024 * 1024

// ReadLines reads a newline-delimited stream to completion.
// A trailing carriage return is dropped from each line.
func ReadLines(ctx context.Context, r io.Reader, source string) (*Document, error) {
	doc := &Document{Source: source}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		// Check for context cancellation every 4096 lines
		if len(doc.Lines)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		doc.Lines = append(doc.Lines, RawLine{
			Index:   len(doc.Lines),
			Content: strings.TrimSuffix(scanner.Text(), "\r"),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}

	return doc, nil
}

// ReadFile reads a whole history file. The file is closed before returning,
// whether or not reading succeeded. A path of "-" reads standard input.
func ReadFile(ctx context.Context, path string) (doc *Document, err error) {
	if path == StdinSource {
		return ReadLines(ctx, os.Stdin, StdinSource)
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening history file %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing history file %s: %w", path, cerr)
		}
	}()

	return ReadLines(ctx, f, path)
}

// ReadFiles reads every path in order.
func ReadFiles(ctx context.Context, paths []string) ([]*Document, error) {
	docs := make([]*Document, 0, len(paths))
	for _, path := range paths {
		doc, err := ReadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
