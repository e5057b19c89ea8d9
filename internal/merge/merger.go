package merge

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrNotObject is returned when a document is not a JSON object.
var ErrNotObject = errors.New("document is not a JSON object")

// Merger defines the interface for all merge strategies
type Merger interface {
	// Merge combines two JSON object documents
	// dst: the document being merged into
	// src: the document whose members are applied
	// Returns: a newly allocated merged document, neither input is modified
	Merge(dst, src []byte) ([]byte, error)
}

// Global merger instances (stateless, safe to share)
var (
	Assign  Merger = NewAssignMerger()
	RFC7396 Merger = NewRFC7396Merger()
)

// IsObject reports whether doc is well-formed JSON holding an object.
func IsObject(doc []byte) bool {
	return gjson.ValidBytes(doc) && gjson.ParseBytes(doc).IsObject()
}
