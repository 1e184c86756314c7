package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SerializeContent renders document content for the remote service. Strings
// are sent verbatim (they already are a JSON or YAML document); any other
// value is encoded as JSON with sorted object keys, so structurally equal
// content always serializes identically.
func SerializeContent(content interface{}) (string, error) {
	if s, ok := content.(string); ok {
		return s, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(content); err != nil {
		return "", fmt.Errorf("failed to serialize document content: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
