package parser

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadLines(t *testing.T) {
	input := "DeployBot\r\n09.02.2026 12:23\n\nlast line without newline"

	doc, err := ReadLines(context.Background(), strings.NewReader(input), "history.txt")
	if err != nil {
		t.Fatalf("ReadLines() error = %v", err)
	}

	want := []string{"DeployBot", "09.02.2026 12:23", "", "last line without newline"}
	if doc.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", doc.Len(), len(want))
	}
	for i, w := range want {
		if doc.Lines[i].Index != i {
			t.Errorf("Lines[%d].Index = %d", i, doc.Lines[i].Index)
		}
		if doc.Lines[i].Content != w {
			t.Errorf("Lines[%d].Content = %q, want %q", i, doc.Lines[i].Content, w)
		}
	}
	if doc.Source != "history.txt" {
		t.Errorf("Source = %q", doc.Source)
	}
}

func TestReadLines_Empty(t *testing.T) {
	doc, err := ReadLines(context.Background(), strings.NewReader(""), "empty")
	if err != nil {
		t.Fatalf("ReadLines() error = %v", err)
	}
	if doc.Len() != 0 {
		t.Errorf("Len() = %d, want 0", doc.Len())
	}
}

func TestReadLines_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadLines(ctx, strings.NewReader("a\nb\n"), "x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ReadLines() error = %v, want context.Canceled", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeHistory(t, dir, "history.txt", "one\ntwo\n")

	doc, err := ReadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if doc.Len() != 2 {
		t.Errorf("Len() = %d, want 2", doc.Len())
	}
	if doc.Source != path {
		t.Errorf("Source = %q, want %q", doc.Source, path)
	}
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Error("ReadFile() expected error for missing file")
	}
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeHistory(t, dir, "a.txt", "a1\n")
	b := writeHistory(t, dir, "b.txt", "b1\nb2\n")

	docs, err := ReadFiles(context.Background(), []string{a, b})
	if err != nil {
		t.Fatalf("ReadFiles() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	if docs[1].Len() != 2 {
		t.Errorf("docs[1].Len() = %d, want 2", docs[1].Len())
	}
}
