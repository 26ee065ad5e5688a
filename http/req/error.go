package req

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xy-planning-network/writium"
)

// A ValidationError names a field whose value broke a rule.
type ValidationError struct {
	Field string `json:"field"`
	Got   any    `json:"got"`
	Rule  string `json:"rule,omitempty"`
}

func (e ValidationError) String() string {
	return fmt.Sprintf("field=%q rule=%q got=%q", e.Field, e.Rule, fmt.Sprint(e.Got))
}

// ValidationErrors collects every ValidationError found in one payload.
// ValidationErrors unwraps to writium.ErrNotValid.
type ValidationErrors []ValidationError

// Error lists each ValidationError on its own line.
func (v ValidationErrors) Error() string {
	var b strings.Builder
	for i, e := range v {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.String())
	}

	return b.String()
}

// MarshalJSON nests v under "validationErrors", omitted when v is empty.
func (v ValidationErrors) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Errs []ValidationError `json:"validationErrors,omitempty"`
	}{v})
}

func (ValidationErrors) Unwrap() error { return writium.ErrNotValid }
