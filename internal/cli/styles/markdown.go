package styles

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// DescriptionWidth is the wrap width of rendered descriptions.
const DescriptionWidth = 72

// renderers caches glamour renderers by wrap width
var renderers sync.Map // map[int]*glamour.TermRenderer

func renderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := renderers.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	actual, _ := renderers.LoadOrStore(width, r)
	return actual.(*glamour.TermRenderer), nil
}

// Markdown renders a card description for the terminal. Rendering errors
// fall back to the raw text.
func Markdown(description string, width int) string {
	if strings.TrimSpace(description) == "" {
		return SubtitleStyle.Italic(true).Render("No description")
	}
	r, err := renderer(width)
	if err != nil {
		return description
	}
	out, err := r.Render(description)
	if err != nil {
		return description
	}
	return strings.Trim(out, "\n")
}
