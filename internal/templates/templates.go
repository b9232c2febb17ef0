package templates

import "strings"

// Names returns all available prompt names.
var Names = []string{"suggest", "organize"}

// Prompt is a system message plus a user message with a {{text}} slot.
type Prompt struct {
	System string
	User   string
}

var prompts = map[string]Prompt{
	"suggest": {
		System: `You are an assistant embedded in a drafting tool.
Based on the user's text, offer exactly one short follow-up question or suggestion that would help them develop the document.
Be brief and direct. Do not explain.`,
		User: "{{text}}",
	},

	"organize": {
		System: `You are a document editing assistant. Reorganize the user's text into a clear, well-structured document.
You may: 1) fix grammar and unclear wording; 2) improve paragraph organization; 3) adjust formatting so it reads cleanly.
Keep the core meaning of the original unchanged.`,
		User: "Please organize the following content:\n\n{{text}}",
	},
}

// Get returns the prompt for the given name with {{text}} replaced.
// Unknown names fall back to the "suggest" prompt.
func Get(name, text string) Prompt {
	p, ok := prompts[name]
	if !ok {
		p = prompts["suggest"]
	}
	p.User = strings.ReplaceAll(p.User, "{{text}}", text)
	return p
}
