package merge

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// RFC7396Merger implements RFC 7396 JSON Merge Patch
// https://datatracker.ietf.org/doc/html/rfc7396
type RFC7396Merger struct{}

// NewRFC7396Merger creates a new RFC 7396 merger
func NewRFC7396Merger() *RFC7396Merger {
	return &RFC7396Merger{}
}

// Merge applies src to dst as an RFC 7396 JSON Merge Patch.
// Nested objects merge recursively and null members of src delete.
func (m *RFC7396Merger) Merge(dst, src []byte) ([]byte, error) {
	if !IsObject(dst) || !IsObject(src) {
		return nil, ErrNotObject
	}
	result, err := jsonpatch.MergePatch(dst, src)
	if err != nil {
		return nil, fmt.Errorf("RFC7396 merge failed: %w", err)
	}
	return result, nil
}
