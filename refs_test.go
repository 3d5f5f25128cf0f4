package site

import (
	"strings"
	"testing"
)

func assembleFor(t *testing.T, docs ...Document) *Collection {
	t.Helper()
	c, issues := Assemble(docs)
	if len(issues) != 0 {
		t.Fatalf("unexpected assemble issues: %v", issues)
	}
	return c
}

func TestResolveBodyReference(t *testing.T) {
	a := post("mvvm-intro", "2015-08-12")
	b := post("mvvm-signals", "2015-08-18")
	b.Body = "As shown in {% post_url 2015-08-12-mvvm-intro %}, signals compose.\n"

	c := assembleFor(t, a, b)
	issues := ResolveReferences(c)
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}

	got, _ := c.ByID("mvvm-signals")
	if len(got.Refs) != 1 {
		t.Fatalf("Refs = %v, want one scanned body reference", got.Refs)
	}
	if got.Refs[0].Target != "mvvm-intro" {
		t.Errorf("Target = %q, want %q", got.Refs[0].Target, "mvvm-intro")
	}
}

func TestResolveBodyReferenceWithoutDatePrefix(t *testing.T) {
	a := post("mvvm-intro", "2015-08-12")
	b := post("mvvm-signals", "2015-08-18")
	b.Body = "See {% post_url mvvm-intro %}.\n"

	c := assembleFor(t, a, b)
	if issues := ResolveReferences(c); len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	got, _ := c.ByID("mvvm-signals")
	if got.Refs[0].Target != "mvvm-intro" {
		t.Errorf("Target = %q, want %q", got.Refs[0].Target, "mvvm-intro")
	}
}

func TestResolveDanglingReference(t *testing.T) {
	a := post("a", "2015-08-12")
	a.Body = "See {% post_url never-written %}.\n"

	c := assembleFor(t, a)
	issues := ResolveReferences(c)
	if len(issues) != 1 {
		t.Fatalf("issues = %v, want exactly one", issues)
	}
	if issues[0].Kind != ErrDanglingReference {
		t.Errorf("Kind = %v, want ErrDanglingReference", issues[0].Kind)
	}
	if issues[0].Path != a.SourcePath {
		t.Errorf("Path = %q, want the referencing document", issues[0].Path)
	}
}

// One dangling reference must not stop resolution for the other documents.
func TestResolveContinuesPastDangling(t *testing.T) {
	a := post("a", "2015-08-12")
	b := post("b", "2015-08-18")
	b.Body = "Broken: {% post_url missing %}.\n"
	d := post("d", "2015-08-20")
	d.Body = "Fine: {% post_url 2015-08-12-a %}.\n"

	c := assembleFor(t, a, b, d)
	issues := ResolveReferences(c)
	if len(issues) != 1 || issues[0].Kind != ErrDanglingReference {
		t.Fatalf("issues = %v, want one dangling reference", issues)
	}
	got, _ := c.ByID("d")
	if got.Refs[0].Target != "a" {
		t.Errorf("Target = %q, want resolution to survive the sibling failure", got.Refs[0].Target)
	}
}

func TestResolveSeriesPrevious(t *testing.T) {
	a := post("mvvm-intro", "2015-08-12")
	a.Series = "mvvm"
	b := post("mvvm-signals", "2015-08-18")
	b.Series = "mvvm"
	b.Refs = []Reference{{Name: "previous", Raw: "previous"}}

	c := assembleFor(t, a, b)
	if issues := ResolveReferences(c); len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	got, _ := c.ByID("mvvm-signals")
	if got.Refs[0].Target != "mvvm-intro" {
		t.Errorf("Target = %q, want the series predecessor", got.Refs[0].Target)
	}
}

func TestResolveSeriesPreviousAtSeriesStart(t *testing.T) {
	a := post("mvvm-intro", "2015-08-12")
	a.Series = "mvvm"
	a.Refs = []Reference{{Name: "previous", Raw: "previous"}}

	c := assembleFor(t, a)
	issues := ResolveReferences(c)
	if len(issues) != 1 || issues[0].Kind != ErrDanglingReference {
		t.Fatalf("issues = %v, want one dangling reference for the series head", issues)
	}
}

func TestResolveExactMatchBeatsSeriesFallback(t *testing.T) {
	// A document whose slug is literally "previous" must win over the
	// series-relative interpretation.
	p := post("previous", "2015-08-01")
	a := post("a", "2015-08-12")
	a.Series = "mvvm"
	b := post("b", "2015-08-18")
	b.Series = "mvvm"
	b.Refs = []Reference{{Name: "previous", Raw: "previous"}}

	c := assembleFor(t, p, a, b)
	if issues := ResolveReferences(c); len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	got, _ := c.ByID("b")
	if got.Refs[0].Target != "previous" {
		t.Errorf("Target = %q, want the exact slug match", got.Refs[0].Target)
	}
}

func TestResolveFollowsSingleAliasHop(t *testing.T) {
	target := post("new-home", "2015-08-12")
	alias := post("old-name", "2015-08-01")
	alias.AliasOf = "new-home"
	ref := post("referrer", "2015-08-18")
	ref.Body = "See {% post_url old-name %}.\n"

	c := assembleFor(t, target, alias, ref)
	if issues := ResolveReferences(c); len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	got, _ := c.ByID("referrer")
	if got.Refs[0].Target != "new-home" {
		t.Errorf("Target = %q, want the alias followed one hop", got.Refs[0].Target)
	}
}

func TestResolveRejectsAliasChain(t *testing.T) {
	final := post("final", "2015-08-12")
	mid := post("mid", "2015-08-05")
	mid.AliasOf = "final"
	old := post("old", "2015-08-01")
	old.AliasOf = "mid"
	ref := post("referrer", "2015-08-18")
	ref.Body = "See {% post_url old %}.\n"

	c := assembleFor(t, final, mid, old, ref)
	issues := ResolveReferences(c)
	if len(issues) != 1 {
		t.Fatalf("issues = %v, want exactly one", issues)
	}
	if issues[0].Kind != ErrUnsupportedReferenceDepth {
		t.Errorf("Kind = %v, want ErrUnsupportedReferenceDepth", issues[0].Kind)
	}
}

func TestResolveAliasToUnknownDocument(t *testing.T) {
	alias := post("old-name", "2015-08-01")
	alias.AliasOf = "vanished"
	ref := post("referrer", "2015-08-18")
	ref.Body = "See {% post_url old-name %}.\n"

	c := assembleFor(t, alias, ref)
	issues := ResolveReferences(c)
	if len(issues) != 1 || issues[0].Kind != ErrDanglingReference {
		t.Fatalf("issues = %v, want one dangling reference", issues)
	}
}

func TestExpandBody(t *testing.T) {
	a := post("mvvm-intro", "2015-08-12")
	b := post("mvvm-signals", "2015-08-18")
	b.Body = "See {% post_url 2015-08-12-mvvm-intro %} and {% post_url missing %}.\n"

	c := assembleFor(t, a, b)
	ResolveReferences(c)

	got, _ := c.ByID("mvvm-signals")
	expanded := ExpandBody(c, got)
	if !strings.Contains(expanded, "/blog/mvvm-intro/") {
		t.Errorf("expanded = %q, want the resolved link inlined", expanded)
	}
	if !strings.Contains(expanded, "{% post_url missing %}") {
		t.Errorf("expanded = %q, want the unresolved token left in place", expanded)
	}
}
