package validation

// MissingFields reports which of the required keys are absent from the raw
// request payload. Presence is checked on the decoded JSON object, not on the
// bound struct, so an explicit empty value still counts as present.
func MissingFields(payload map[string]interface{}, required ...string) []string {
	var missing []string
	for _, field := range required {
		if _, ok := payload[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}
