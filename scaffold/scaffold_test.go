package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewPost(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2015, 8, 12, 10, 0, 0, 0, time.UTC)

	path, err := NewPost(dir, "MVVM with ReactiveCocoa", now)
	if err != nil {
		t.Fatalf("NewPost failed: %v", err)
	}
	if filepath.Base(path) != "2015-08-12-mvvm-with-reactivecocoa.md" {
		t.Errorf("path = %q, want the dated slug filename", path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stub: %v", err)
	}
	got := string(b)
	if !strings.HasPrefix(got, "---\n") {
		t.Errorf("stub should open with front matter: %q", got)
	}
	if !strings.Contains(got, "title: \"MVVM with ReactiveCocoa\"") {
		t.Errorf("stub missing title: %q", got)
	}
	if !strings.Contains(got, "date: 2015-08-12") {
		t.Errorf("stub missing date: %q", got)
	}
	if !strings.Contains(got, "draft: true") {
		t.Errorf("stub should start as a draft: %q", got)
	}
}

func TestNewPostRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2015, 8, 12, 10, 0, 0, 0, time.UTC)

	if _, err := NewPost(dir, "Same Title", now); err != nil {
		t.Fatalf("NewPost failed: %v", err)
	}
	if _, err := NewPost(dir, "Same Title", now); err == nil {
		t.Fatal("second NewPost should refuse to overwrite")
	}
}

func TestNewPostRejectsEmptySlug(t *testing.T) {
	if _, err := NewPost(t.TempDir(), "???", time.Now()); err == nil {
		t.Fatal("want an error for a title with no slug material")
	}
}
