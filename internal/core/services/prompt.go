package services

import "fmt"

// AnswerPrompt is the instruction handed to model-backed generators for a
// question about a document.
func AnswerPrompt(document, question string) string {
	return fmt.Sprintf("Document name: %s\nUser question: %s\nAnswer the question about this document.",
		document, question)
}

// SummaryPrompt is the instruction handed to model-backed generators when
// summarising a document.
func SummaryPrompt(document string) string {
	return fmt.Sprintf("Summarize the document named '%s'.", document)
}
