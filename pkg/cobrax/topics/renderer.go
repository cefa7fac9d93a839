package topics

// Renderer formats topic content for display
type Renderer interface {
	// Render formats content; format is the source file extension
	// (e.g. ".md")
	Render(content string, format string) string
}

// PlainRenderer passes content through unchanged
type PlainRenderer struct{}

// Render returns the content as-is
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
