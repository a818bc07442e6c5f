package prompt

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a task planning assistant.
Break the user's task into 4-6 short, actionable steps.
Output one step per line with no numbering, bullets, or extra prose.`

// System returns the fixed instruction sent as the system message.
func System() string {
	return systemPrompt
}

// ForTask builds the user message for a single task title. extra is
// free-text context from the user's preferences and may be empty.
func ForTask(title, extra string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Task: %s\n", title))

	if extra != "" {
		sb.WriteString("\nContext from the user:\n")
		sb.WriteString(extra)
		sb.WriteString("\n")
	}

	sb.WriteString("\nBreak this task into 4-6 short, actionable steps.")

	return sb.String()
}
