package ai

import (
	"fmt"
	"strings"

	"github.com/mailfold/mailfold/dto"
)

// BuildClassificationPrompt assembles the single prompt handed to the model:
// instruction header, truncation notice, optional class-description hints,
// then the subject and the (already truncated) plain and HTML bodies.
func BuildClassificationPrompt(p dto.ClassificationPrompt, classes []string) string {
	description := p.ClassDescription
	if description == "" {
		description = "None"
	}

	mailContext := fmt.Sprintf(`notes: you only see the first %d characters of the mail txt plain and html

description of the classes(if None try to match the categories closely
and only put in those into a different category than other where you are certain): %s

subject of the mail: %s

text of the mail: %s

html text of the mail: %s`,
		p.MaxTextLength, description, p.Subject, p.Text, p.HTMLText)

	return fmt.Sprintf(`Classify the following text into exactly ONE of these classes: %s
Text to classify: %s
Important:
- Return ONLY the class name, nothing else
- Choose exactly one class from the provided list
- Use the exact class name format as provided
Classification:`,
		strings.Join(classes, ", "), mailContext)
}
