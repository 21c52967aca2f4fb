package survey

import (
	"encoding/json"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

// AnswerValue is either a single string or a list of strings. Checkbox
// questions collect multiple selections; every other type a single value.
type AnswerValue struct {
	Single string
	Multi  []string
}

// IsMulti reports whether the value carries a list of selections.
func (v AnswerValue) IsMulti() bool {
	return v.Multi != nil
}

// Empty reports whether no answer was given at all.
func (v AnswerValue) Empty() bool {
	return v.Single == "" && len(v.Multi) == 0
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.IsMulti() {
		return json.Marshal(v.Multi)
	}

	return json.Marshal(v.Single)
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		v.Single = single
		v.Multi = nil

		return nil
	}

	var multi []string
	if err := json.Unmarshal(data, &multi); err == nil {
		v.Single = ""
		v.Multi = multi

		return nil
	}

	return fmt.Errorf("%w: answer must be a string or an array of strings", ErrValidation)
}

// Schema describes the string-or-string-array wire shape for the API layer.
func (v AnswerValue) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		OneOf: []*huma.Schema{
			{Type: huma.TypeString},
			{Type: huma.TypeArray, Items: &huma.Schema{Type: huma.TypeString}},
		},
	}
}
