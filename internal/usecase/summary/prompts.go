package summary

const (
	sectionPrompt = "Write a concise but complete summary of the following text. " +
		"Keep the key points, the main concepts and the important conclusions."

	combinePrompt = "You merge partial summaries into one. The input holds summaries of consecutive " +
		"sections of a single document, in order. Write one coherent, complete summary of the whole document."

	// sectionSeparator joins ordered section summaries in the combine request.
	sectionSeparator = "\n\n--- Next Section ---\n\n"
)
