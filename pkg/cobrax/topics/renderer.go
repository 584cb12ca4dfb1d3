package topics

// Renderer formats an embedded help topic for terminal display.
type Renderer interface {
	// Render takes the raw topic content and its file extension and
	// returns the text to print.
	Render(content string, format string) string
}

// PlainRenderer is the default renderer that returns content as-is,
// used when stdout is not a terminal worth styling.
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
