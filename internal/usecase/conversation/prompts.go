package conversation

const assistantName = "DocSense"

// persona is the system instruction shared by every mode.
const persona = "You are " + assistantName + ", a warm and approachable assistant that helps people " +
	"with questions about their documents. Talk naturally and directly, like in a real conversation, " +
	"not like a form letter. Answer greetings politely and offer to help with the document. " +
	"Only repeat the whole summary when asked for it. If the document does not answer a question, " +
	"say so honestly. Stay focused on the document."

// groundedPersona embeds the document excerpt into the persona for structured memory.
func groundedPersona(excerpt string) string {
	return persona + "\n\nYou have access to this document:\n\nDOCUMENT:\n" + excerpt +
		"\n\nAnswer the user's questions using the document."
}

// documentContext is the separate system message carrying the excerpt in the flat modes.
func documentContext(excerpt string) string {
	return "Document: " + excerpt
}
