package models

const (
	ContextSeparator = "\n---\n"

	NoContextPlaceholder = "No relevant documents found."
)

var (
	// RAGPromptTemplate is interpolated with the formatted context block and
	// the user question, in that order.
	RAGPromptTemplate = `You are a helpful assistant that answers questions based on the provided context from documents.

Context from documents:
%s

Question: %s

Instructions:
- Answer the question using ONLY the information from the context above.
- If the context does not contain enough information to answer the question, say "I cannot find that information in the provided documents" and suggest how the user might rephrase their question.
- Be concise and accurate.
- Do not make up information that is not in the context.

Answer:`
)
