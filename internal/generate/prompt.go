package generate

import "fmt"

const systemPrompt = "You are a technical writer producing self-contained " +
	"study notes in Markdown. Use clear headings, short paragraphs and " +
	"code examples where they help."

// buildPrompt assembles the user prompt for one topic.
func buildPrompt(topic, language, style string) string {
	if language == "" {
		language = "English"
	}
	if style == "" {
		style = "detailed tutorial"
	}
	return fmt.Sprintf(
		"Write a study note about %q.\n"+
			"Language: %s.\n"+
			"Style: %s.\n"+
			"Start with a level-1 heading naming the topic, cover the core "+
			"concepts, common pitfalls and a short summary.",
		topic, language, style)
}
