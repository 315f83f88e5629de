package chat

import (
	"strings"
	"text/template"
)

const promptTemplate = `
You are an AI assistant that answers questions based on this resume JSON:

{{.Resume}}


User question: {{.Question}}
`

var prompt = template.Must(template.New("prompt").Parse(promptTemplate))

type promptInput struct {
	Resume   string
	Question string
}

// BuildPrompt substitutes the rendered resume and the question verbatim.
func BuildPrompt(resume string, question string) (string, error) {
	var sb strings.Builder
	if err := prompt.Execute(&sb, promptInput{Resume: resume, Question: question}); err != nil {
		return "", err
	}
	return sb.String(), nil
}
