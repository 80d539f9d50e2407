package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/handlebauer/workflowy-scraper/internal/output"
	"github.com/handlebauer/workflowy-scraper/internal/workflowy"
)

// BuildJSON serializes roots as a JSON array indented by two spaces.
// Node names keep their markup unescaped and unknown fields are written back.
func BuildJSON(roots []*workflowy.Node) ([]byte, error) {
	if roots == nil {
		roots = []*workflowy.Node{}
	}
	return encodeIndented(roots)
}

func encodeIndented(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatJSON writes roots to the printer as a JSON array.
func FormatJSON(printer *output.Printer, roots []*workflowy.Node) error {
	data, err := BuildJSON(roots)
	if err != nil {
		return output.NewSystemErrorWithCause("failed to encode JSON", err)
	}
	printer.Write(data)
	return nil
}
