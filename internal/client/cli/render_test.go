package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/scpcatalog/internal/client/listview"
	"github.com/dmitrijs2005/scpcatalog/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "a b c", truncate("a\n b\t\tc", 10))
	assert.Equal(t, "…", truncate("abc", 1))
	assert.Equal(t, "", truncate("abc", 0))
}

func TestClassBadge(t *testing.T) {
	for _, c := range []models.Class{models.ClassSafe, models.ClassEuclid, models.ClassKeter, "Thaumiel"} {
		assert.Contains(t, classBadge(c), string(c))
	}
}

func TestRenderView(t *testing.T) {
	entries := []models.Entry{
		{ID: "1", Item: "SCP-173", Class: models.ClassEuclid, Description: strings.Repeat("statue ", 40), Image: "http://img"},
		{ID: "2", Item: "SCP-999", Class: models.ClassSafe, Description: "Tickle monster"},
	}
	out := renderView(listview.Derive(entries, listview.SortClass, "", 1), 80)

	assert.Contains(t, out, "SCP-173")
	assert.Contains(t, out, "SCP-999")
	assert.Contains(t, out, "…")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "Page 1 of 1 · 2 matching · sort: class")
	assert.Less(t, strings.Index(out, "SCP-999"), strings.Index(out, "SCP-173"), "Safe sorts first")
}

func TestRenderView_Empty(t *testing.T) {
	out := renderView(listview.Derive(nil, listview.SortNone, "keter", 1), 80)

	assert.Contains(t, out, "No entries found.")
	assert.Contains(t, out, `search: "keter"`)
}

func TestRenderEntry(t *testing.T) {
	out := renderEntry(models.Entry{
		ID: "abc", Item: "SCP-682", Class: models.ClassKeter,
		Description: "Reptile", Containment: "Acid", Image: "http://signed/x", CreatedAt: 1_700_000_000_000,
	}, 60)

	for _, want := range []string{"SCP-682", "Keter", "id: abc", "Reptile", "Acid", "http://signed/x", "2023-11-14T22:13:20Z"} {
		assert.Contains(t, out, want)
	}
}

func TestTerminalWidth(t *testing.T) {
	orig := getTermSize
	t.Cleanup(func() { getTermSize = orig })

	getTermSize = func(int) (int, int, error) { return 0, 0, errors.New("not a terminal") }
	assert.Equal(t, defaultWidth, terminalWidth())

	getTermSize = func(int) (int, int, error) { return 132, 40, nil }
	assert.Equal(t, 132, terminalWidth())
}
