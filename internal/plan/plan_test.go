package plan

import (
	"net/url"
	"strings"
	"testing"
)

func TestResourceLink_SearchFallback(t *testing.T) {
	got := ResourceLink("react hooks")
	if !strings.HasPrefix(got, SearchURL) {
		t.Fatalf("expected search URL, got %q", got)
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse %q: %v", got, err)
	}
	if q := u.Query().Get("q"); q != "react hooks" {
		t.Errorf("q = %q, want %q", q, "react hooks")
	}
}

func TestResourceLink_KeepsRealURLs(t *testing.T) {
	tests := []string{
		"https://example.com",
		"http://example.com/path?x=1",
		"HTTPS://Example.com",
	}
	for _, in := range tests {
		if got := ResourceLink(in); got != in {
			t.Errorf("ResourceLink(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestResourceLink_SchemeWithoutSlashesIsSearched(t *testing.T) {
	got := ResourceLink("ftp example")
	if !strings.HasPrefix(got, SearchURL) {
		t.Errorf("expected search fallback, got %q", got)
	}
}

func TestTotalHours(t *testing.T) {
	p := &LearningPlan{Modules: []Module{
		{EstimatedHours: 4},
		{EstimatedHours: 6.5},
	}}
	if got := p.TotalHours(); got != 10.5 {
		t.Errorf("TotalHours = %v, want 10.5", got)
	}

	var nilPlan *LearningPlan
	if got := nilPlan.TotalHours(); got != 0 {
		t.Errorf("nil TotalHours = %v, want 0", got)
	}
}

func TestClone_IsDeep(t *testing.T) {
	orig := &LearningPlan{
		Goal:          "Learn Go",
		Prerequisites: []string{"basic programming"},
		Modules: []Module{{
			Title:     "Basics",
			KeyTopics: []string{"types"},
			Resources: []Resource{{Title: "Tour", URL: "https://go.dev/tour", Type: "Documentation"}},
		}},
	}

	c := orig.Clone()
	c.Prerequisites[0] = "changed"
	c.Modules[0].KeyTopics[0] = "changed"
	c.Modules[0].Resources[0].Title = "changed"

	if orig.Prerequisites[0] != "basic programming" {
		t.Error("prerequisites shared with clone")
	}
	if orig.Modules[0].KeyTopics[0] != "types" {
		t.Error("key topics shared with clone")
	}
	if orig.Modules[0].Resources[0].Title != "Tour" {
		t.Error("resources shared with clone")
	}
}
