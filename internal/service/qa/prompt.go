package qa

import "fmt"

const promptTemplate = `You are a smart AI assistant.
The user uploaded a document. Use the provided document text to answer the question below.

Document content:
"""%s"""

Question: %s

Provide a clear, concise, and helpful answer using reasoning, not just copying text.`

// BuildPrompt embeds the document context and the question verbatim.
func BuildPrompt(context, question string) string {
	return fmt.Sprintf(promptTemplate, context, question)
}
