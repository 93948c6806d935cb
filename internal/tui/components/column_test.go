package components

import (
	"fmt"
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func cards(n int) []CardProps {
	out := make([]CardProps, n)
	for i := range out {
		out[i] = CardProps{ID: i + 1, Title: fmt.Sprintf("Card %d", i+1), Meta: "medium"}
	}
	return out
}

func TestRenderColumn_Geometry(t *testing.T) {
	out := RenderColumn(ColumnProps{Name: "Doing", Cards: cards(5), Height: 20})

	assert.Equal(t, 20, lipgloss.Height(out))
	assert.Equal(t, ColumnOuterWidth, lipgloss.Width(out))

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[1], "Doing (5)")
	// first card's title sits one row below the card's top border
	assert.Contains(t, lines[ColumnHeaderLines+1], "Card 1")
	assert.Contains(t, lines[ColumnHeaderLines+CardHeight+1], "Card 2")
}

func TestRenderColumn_ScrollIndicators(t *testing.T) {
	out := RenderColumn(ColumnProps{Name: "Lead", Cards: cards(6), Height: 13, ScrollOffset: 2})

	assert.Equal(t, 2, VisibleCards(13))
	assert.Contains(t, out, "▲ 2 more")
	assert.Contains(t, out, "▼ 2 more")
	assert.Contains(t, out, "Card 3")
	assert.NotContains(t, out, "Card 1")
	assert.NotContains(t, out, "Card 5")
}

func TestRenderColumn_Empty(t *testing.T) {
	out := RenderColumn(ColumnProps{Name: "Won", EmptyText: "No deals", Height: 12})

	assert.Contains(t, out, "Won (0)")
	assert.Contains(t, out, "No deals")
	assert.Equal(t, 12, lipgloss.Height(out))
}

func TestRenderCard_TruncatesTitle(t *testing.T) {
	out := RenderCard(CardProps{Title: strings.Repeat("x", 60), Meta: "Acme · $10.00"})

	assert.Equal(t, CardHeight, lipgloss.Height(out))
	assert.Equal(t, CardWidth, lipgloss.Width(out))
	assert.Contains(t, out, "…")
}

// screenLines splits a rendered canvas into rows without line endings or
// trailing blanks.
func screenLines(out string) []string {
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r ")
	}
	return lines
}

func TestCompose(t *testing.T) {
	base := "aaaaa\nbbbbb\nccccc"

	t.Run("no layers keeps the base", func(t *testing.T) {
		assert.Equal(t, base, Compose(base, nil))
	})

	t.Run("layer replaces the cells it covers", func(t *testing.T) {
		lines := screenLines(Compose(base, LayerAt("XY", 1, 1, 1)))
		assert.Equal(t, []string{"aaaaa", "bXYbb", "ccccc"}, lines)
	})

	t.Run("negative offsets clamp to the origin", func(t *testing.T) {
		out := Compose(base, LayerAt("Z", -4, -2, 1))
		assert.True(t, strings.HasPrefix(out, "Zaaaa"))
	})

	t.Run("centered", func(t *testing.T) {
		lines := screenLines(Compose(base, CenteredLayer("#", 5, 3, 1)))
		assert.Equal(t, "bb#bb", lines[1])
	})

	t.Run("empty content has no layer", func(t *testing.T) {
		assert.Nil(t, LayerAt("", 0, 0, 1))
		assert.Nil(t, CenteredLayer("", 10, 10, 1))
	})
}
