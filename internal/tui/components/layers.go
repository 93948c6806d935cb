package components

import "charm.land/lipgloss/v2"

// LayerAt places content with its top-left corner at (x, y), clamped to the
// screen origin. It returns nil for empty content.
func LayerAt(content string, x, y, z int) *lipgloss.Layer {
	if content == "" {
		return nil
	}
	return lipgloss.NewLayer(content).X(max(x, 0)).Y(max(y, 0)).Z(z)
}

// CenteredLayer places content in the middle of a width x height screen.
func CenteredLayer(content string, width, height, z int) *lipgloss.Layer {
	if content == "" {
		return nil
	}
	x := (width - lipgloss.Width(content)) / 2
	y := (height - lipgloss.Height(content)) / 2
	return LayerAt(content, x, y, z)
}

// Compose flattens the base view and every non-nil layer above it.
func Compose(base string, layers ...*lipgloss.Layer) string {
	stack := []*lipgloss.Layer{lipgloss.NewLayer(base)}
	for _, l := range layers {
		if l != nil {
			stack = append(stack, l)
		}
	}
	if len(stack) == 1 {
		return base
	}
	return lipgloss.NewCanvas(stack...).Render()
}
