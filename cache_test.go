package site

import (
	"testing"
	"time"
)

func TestCollectionCache(t *testing.T) {
	s := setupTestStore(t)
	docs := []Document{
		{Slug: "visible", Title: "Visible", Date: day("2015-08-12"), Layout: LayoutPost, Body: "a"},
		{Slug: "wip", Title: "WIP", Date: day("2015-08-18"), Layout: LayoutPost, Body: "b", Draft: true},
	}
	if err := s.Publish(docs); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	cache := NewCollectionCache(s, time.Minute)

	public, err := cache.Collection(false)
	if err != nil {
		t.Fatalf("Collection failed: %v", err)
	}
	if public.Len() != 1 {
		t.Errorf("public collection size = %d, want 1", public.Len())
	}
	drafts, err := cache.Collection(true)
	if err != nil {
		t.Fatalf("Collection with drafts failed: %v", err)
	}
	if drafts.Len() != 2 {
		t.Errorf("drafts collection size = %d, want 2", drafts.Len())
	}
}

func TestCollectionCacheInvalidate(t *testing.T) {
	s := setupTestStore(t)
	if err := s.Publish([]Document{{Slug: "one", Title: "One", Date: day("2015-08-12"), Layout: LayoutPost, Body: "x"}}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	cache := NewCollectionCache(s, time.Minute)
	if _, err := cache.Collection(false); err != nil {
		t.Fatalf("Collection failed: %v", err)
	}

	// The cached view must not see a republish until invalidated.
	extra := []Document{
		{Slug: "one", Title: "One", Date: day("2015-08-12"), Layout: LayoutPost, Body: "x"},
		{Slug: "two", Title: "Two", Date: day("2015-08-18"), Layout: LayoutPost, Body: "y"},
	}
	if err := s.Publish(extra); err != nil {
		t.Fatalf("second Publish failed: %v", err)
	}
	c, err := cache.Collection(false)
	if err != nil {
		t.Fatalf("Collection failed: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("stale read size = %d, want the cached 1", c.Len())
	}

	cache.Invalidate()
	c, err = cache.Collection(false)
	if err != nil {
		t.Fatalf("Collection after invalidate failed: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("reloaded size = %d, want 2", c.Len())
	}
}
