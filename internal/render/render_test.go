package render

import (
	"net/url"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillforge/internal/plan"
)

const wide = 200

func rustPlan() *plan.LearningPlan {
	return &plan.LearningPlan{
		Goal:              "Learn Rust",
		DifficultyLevel:   "Intermediate",
		SummaryMotivation: "Memory safety without a garbage collector.",
		Modules: []plan.Module{
			{
				Title:          "Ownership",
				Description:    "Moves, borrows, lifetimes.",
				EstimatedHours: 8,
				KeyTopics:      []string{"borrowing", "lifetimes"},
				Resources: []plan.Resource{
					{Title: "The Book", URL: "rust book ownership", Type: "Documentation"},
					{Title: "Rustlings", URL: "https://github.com/rust-lang/rustlings", Type: "Course"},
				},
			},
			{
				Title:          "Traits",
				Description:    "Generic programming.",
				EstimatedHours: 6.5,
				KeyTopics:      []string{"traits", "generics"},
			},
		},
	}
}

func plain(s string) string {
	return ansi.Strip(s)
}

func TestPlan_OneSectionPerModuleInOrder(t *testing.T) {
	v := Plan(rustPlan(), wide)

	require.Len(t, v.Timeline, 2)
	assert.Contains(t, plain(v.Timeline[0]), "01. Ownership")
	assert.Contains(t, plain(v.Timeline[1]), "02. Traits")

	all := plain(v.String())
	assert.Less(t, strings.Index(all, "Learn Rust"), strings.Index(all, "Ownership"))
	assert.Less(t, strings.Index(all, "Ownership"), strings.Index(all, "Traits"))
}

func TestPlan_Overview(t *testing.T) {
	p := rustPlan()
	p.TotalEstimatedWeeks = 6
	p.Prerequisites = []string{"basic programming"}

	out := plain(Plan(p, wide).Overview)
	for _, want := range []string{
		"Learn Rust",
		"Intermediate",
		"AI Generated",
		"6 weeks",
		"14.5 Hours total",
		"Memory safety without a garbage collector.",
		"Prerequisites",
		"basic programming",
	} {
		assert.Contains(t, out, want)
	}
}

func TestPlan_OptionalFieldsOmitted(t *testing.T) {
	out := plain(Plan(rustPlan(), wide).String())
	assert.NotContains(t, out, "weeks")
	assert.NotContains(t, out, "Prerequisites")
	assert.NotContains(t, out, "Project")
}

func TestPlan_ModuleDetails(t *testing.T) {
	p := rustPlan()
	p.Modules[0].ProjectIdea = "A borrow-checked linked list"
	entry := plain(Plan(p, wide).Timeline[0])

	for _, want := range []string{
		"8 Hours",
		"Moves, borrows, lifetimes.",
		"Key Topics",
		"✓ borrowing",
		"✓ lifetimes",
		"Resources",
		"The Book  [Documentation]",
		"https://github.com/rust-lang/rustlings",
		"Project",
		"A borrow-checked linked list",
	} {
		assert.Contains(t, entry, want)
	}
	assert.Contains(t, plain(Plan(p, wide).Timeline[1]), "6.5 Hours")
}

func TestPlan_ResourceSearchFallback(t *testing.T) {
	entry := plain(Plan(rustPlan(), wide).Timeline[0])

	var link string
	for _, field := range strings.Fields(entry) {
		if strings.HasPrefix(field, plan.SearchURL) {
			link = field
			break
		}
	}
	require.NotEmpty(t, link, "expected a search link in %q", entry)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "rust book ownership", u.Query().Get("q"))
}

func TestPlan_Nil(t *testing.T) {
	v := Plan(nil, wide)
	assert.Empty(t, v.Overview)
	assert.Empty(t, v.Timeline)
	assert.Empty(t, v.String())
}

func TestPlan_Deterministic(t *testing.T) {
	p := rustPlan()
	assert.Equal(t, Plan(p, 100).String(), Plan(p, 100).String())
}

func TestPlan_EmptyModules(t *testing.T) {
	p := rustPlan()
	p.Modules = nil
	v := Plan(p, wide)
	assert.NotEmpty(t, v.Overview)
	assert.Empty(t, v.Timeline)
}

func TestError(t *testing.T) {
	out := plain(Error("Something went wrong. Please check the backend connection.", wide))
	assert.Contains(t, out, "Something went wrong. Please check the backend connection.")
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "8 Hours", Hours(8))
	assert.Equal(t, "2.5 Hours", Hours(2.5))
	assert.Equal(t, "1 week", Weeks(1))
	assert.Equal(t, "12 weeks", Weeks(12))
}

func TestPlan_LongLinksStayOnOneLine(t *testing.T) {
	const mdn = "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Global_Objects/Array/reduce"
	p := rustPlan()
	p.Modules[0].Resources = []plan.Resource{
		{Title: "Array.reduce", URL: mdn, Type: "Documentation"},
		{Title: "Search", URL: strings.Repeat("iterator adapters and closures ", 4)},
	}

	for _, width := range []int{40, 80, 100} {
		// The link line is indented by four columns.
		require.Less(t, cardInner(width), len(mdn)+4)
		entry := plain(Plan(p, width).Timeline[0])

		assert.Contains(t, entry, mdn, "width %d", width)

		var search string
		for _, line := range strings.Split(entry, "\n") {
			if i := strings.Index(line, plan.SearchURL); i >= 0 {
				search = strings.Fields(line[i:])[0]
			}
		}
		u, err := url.Parse(search)
		require.NoError(t, err, "width %d", width)
		assert.Equal(t, strings.Repeat("iterator adapters and closures ", 4), u.Query().Get("q"), "width %d", width)
	}
}

func TestLink_Hyperlink(t *testing.T) {
	out := Link("https://go.dev")
	assert.Contains(t, out, ansi.SetHyperlink("https://go.dev"))
	assert.Equal(t, "https://go.dev", plain(out))
}
