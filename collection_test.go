package site

import (
	"errors"
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func post(slug, date string) Document {
	d := Document{Slug: slug, Title: slug, Layout: LayoutPost, SourcePath: "content/" + date + "-" + slug + ".md"}
	if date != "" {
		d.Date = day(date)
	}
	return d
}

func TestAssembleOrdersNewestFirst(t *testing.T) {
	c, issues := Assemble([]Document{
		post("a", "2015-08-12"),
		post("b", "2015-08-18"),
	})
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	docs := c.Documents()
	if len(docs) != 2 || docs[0].Slug != "b" || docs[1].Slug != "a" {
		t.Fatalf("order = %v, want [b a]", docs)
	}

	prev, ok, err := c.Previous("b")
	if err != nil || !ok || prev.Slug != "a" {
		t.Errorf("Previous(b) = %v %v %v, want a", prev.Slug, ok, err)
	}
	if _, ok, err := c.Previous("a"); err != nil || ok {
		t.Errorf("Previous(a) should be an explicit none, got ok=%v err=%v", ok, err)
	}
	next, ok, err := c.Next("a")
	if err != nil || !ok || next.Slug != "b" {
		t.Errorf("Next(a) = %v %v %v, want b", next.Slug, ok, err)
	}
	if _, ok, err := c.Next("b"); err != nil || ok {
		t.Errorf("Next(b) should be an explicit none, got ok=%v err=%v", ok, err)
	}
}

func TestAssembleTieBreaksBySlug(t *testing.T) {
	c, _ := Assemble([]Document{
		post("zeta", "2015-08-12"),
		post("alpha", "2015-08-12"),
	})
	docs := c.Documents()
	if docs[0].Slug != "alpha" || docs[1].Slug != "zeta" {
		t.Errorf("order = [%s %s], want [alpha zeta]", docs[0].Slug, docs[1].Slug)
	}
}

func TestAssembleDetectsDuplicates(t *testing.T) {
	first := post("dup", "2015-08-12")
	second := post("dup", "2015-08-18")
	second.SourcePath = "content/2015-08-18-dup.md"

	// Detection must not depend on input order.
	for _, docs := range [][]Document{{first, second}, {second, first}} {
		c, issues := Assemble(docs)
		if len(issues) != 1 {
			t.Fatalf("issues = %v, want exactly one", issues)
		}
		if issues[0].Kind != ErrDuplicateIdentifier {
			t.Errorf("Kind = %v, want ErrDuplicateIdentifier", issues[0].Kind)
		}
		if c.Len() != 1 {
			t.Errorf("Len = %d, want 1 surviving document", c.Len())
		}
	}
}

func TestByIDNotFound(t *testing.T) {
	c, _ := Assemble([]Document{post("a", "2015-08-12")})
	if _, err := c.ByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, _, err := c.Previous("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Previous err = %v, want ErrNotFound", err)
	}
	if _, _, err := c.Next("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Next err = %v, want ErrNotFound", err)
	}
}

func TestByLayout(t *testing.T) {
	about := Document{Slug: "about", Title: "About", Layout: LayoutPage, SourcePath: "content/about.md"}
	c, _ := Assemble([]Document{post("a", "2015-08-12"), about, post("b", "2015-08-18")})

	posts := c.ByLayout(LayoutPost)
	if len(posts) != 2 {
		t.Fatalf("posts = %v, want 2", posts)
	}
	pages := c.ByLayout(LayoutPage)
	if len(pages) != 1 || pages[0].Slug != "about" {
		t.Fatalf("pages = %v, want [about]", pages)
	}
}

func TestBySeriesOldestFirst(t *testing.T) {
	a := post("a", "2015-08-12")
	a.Series = "mvvm"
	b := post("b", "2015-08-18")
	b.Series = "mvvm"
	other := post("other", "2015-09-01")

	c, _ := Assemble([]Document{b, other, a})
	series := c.BySeries("mvvm")
	if len(series) != 2 || series[0].Slug != "a" || series[1].Slug != "b" {
		t.Fatalf("series = %v, want [a b] oldest first", series)
	}
	if c.BySeries("") != nil {
		t.Errorf("empty series name should match nothing")
	}
}

func TestIndexConsistentWithSequence(t *testing.T) {
	c, _ := Assemble([]Document{post("a", "2015-08-12"), post("b", "2015-08-18"), post("c", "2015-08-01")})
	for _, d := range c.Documents() {
		got, err := c.ByID(d.Slug)
		if err != nil {
			t.Fatalf("ByID(%s) failed: %v", d.Slug, err)
		}
		if got.Slug != d.Slug {
			t.Errorf("index points at %q for sequence entry %q", got.Slug, d.Slug)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}
}
