package harvest

import "fmt"

// plainTextSystemPrompt is shared by both prompt templates. The sanitizer in
// utils/text double-checks the same constraint defensively, since backends
// do not reliably honor formatting instructions.
const plainTextSystemPrompt = "You are a helpful assistant. Return plain text only. " +
	"Do not use markdown, bullet symbols, or prefixed phrases."

// summaryPrompts builds the summarization prompt pair for a piece of news
// content.
func summaryPrompts(content string) (system, user string) {
	user = fmt.Sprintf(
		"Summarize the following news content in 3-5 concise sentences. "+
			"Return only the rewritten text.\n\n%s", content)
	return plainTextSystemPrompt, user
}

// levelPrompts builds the rewrite prompt pair for one CEFR proficiency tier.
func levelPrompts(level, content string) (system, user string) {
	user = fmt.Sprintf(
		"Rewrite the following content for CEFR %s learners. "+
			"Keep facts accurate, use level-appropriate vocabulary and grammar, "+
			"and keep it concise. Return only the rewritten text.\n\n%s", level, content)
	return plainTextSystemPrompt, user
}
