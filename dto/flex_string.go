package dto

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// FlexString accepts either a JSON string or a JSON number and stores it as a
// string. Message UIDs arrive in both shapes depending on the caller.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}

	return errors.Errorf("value must be a string or a number, got %s", string(data))
}

func (f FlexString) String() string {
	return string(f)
}
