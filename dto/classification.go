package dto

// ClassificationPrompt is the bounded context handed to the classifier. Text
// and HTMLText are expected to already be truncated to MaxTextLength.
type ClassificationPrompt struct {
	Subject          string
	Text             string
	HTMLText         string
	ClassDescription string
	MaxTextLength    int
}
