package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/todolint/internal/engine"
	"github.com/phyten/todolint/internal/model"
)

// WriteNDJSON streams findings as newline-delimited JSON objects.
func WriteNDJSON(w io.Writer, findings []model.Finding) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, f := range findings {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the whole result as one indented document.
func WriteJSON(w io.Writer, res *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if res.Findings == nil {
		copied := *res
		copied.Findings = []model.Finding{}
		res = &copied
	}
	return enc.Encode(res)
}
