package enrich

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ErrMetadataParse indicates the model output was not a single well-formed
// JSON object after code-fence stripping.
var ErrMetadataParse = errors.New("invalid metadata JSON response")

// ExtractMetadata strips at most one markdown code-fence wrapper from the
// model output and parses the remainder as a single JSON object. It never
// tries to repair malformed JSON or to fish an object out of surrounding
// prose, and it rejects trailing content after the object.
func ExtractMetadata(raw string) (map[string]any, error) {
	clean := strings.TrimSpace(raw)
	if strings.HasPrefix(clean, "```json") {
		clean = clean[len("```json"):]
	}
	if strings.HasPrefix(clean, "```") {
		clean = clean[len("```"):]
	}
	if strings.HasSuffix(clean, "```") {
		clean = clean[:len(clean)-len("```")]
	}
	clean = strings.TrimSpace(clean)

	dec := json.NewDecoder(strings.NewReader(clean))
	var metadata map[string]any
	if err := dec.Decode(&metadata); err != nil {
		return nil, errors.Wrapf(ErrMetadataParse, "parse metadata: %v", err)
	}
	// Decoding the literal null succeeds but leaves the map nil.
	if metadata == nil {
		return nil, errors.Wrap(ErrMetadataParse, "response is not a JSON object")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(ErrMetadataParse, "trailing data after JSON object")
	}
	return metadata, nil
}
