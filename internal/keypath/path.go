package keypath

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalid is returned by Validate for malformed slash paths.
var ErrInvalid = errors.New("invalid key path")

// slashPathRegex validates that a slash path:
//   - Starts with /
//   - Does not end with /
//   - Each segment follows JavaScript variable naming rules (starts with letter/_/$, followed by letters/digits/_/$/.)
var slashPathRegex = regexp.MustCompile(`^/([a-zA-Z_$][a-zA-Z0-9_$.]*(/[a-zA-Z_$][a-zA-Z0-9_$.]*)*)?$`)

// IsSlash reports whether path uses the slash form ("/user/id")
// rather than gjson dotted syntax ("user.id").
func IsSlash(path string) bool {
	return strings.HasPrefix(path, "/")
}

// Validate checks a slash path. The root path "/" is valid.
func Validate(path string) error {
	if !slashPathRegex.MatchString(path) {
		return fmt.Errorf("%w %q: must start with /, not end with /, and each segment must follow JavaScript variable naming rules", ErrInvalid, path)
	}
	return nil
}

// ToGjson converts a key path to gjson path format.
// Dotted paths are returned as-is. Slash paths are split by "/" and each
// segment is escaped, so dots inside a segment address a literal member name:
//   - "/" -> ""
//   - "/user" -> "user"
//   - "/user/profile" -> "user.profile"
//   - "/user.info" -> "user\.info"
//   - "user.info" -> "user.info"
func ToGjson(path string) string {
	if !IsSlash(path) {
		return path
	}
	path = path[1:]
	if path == "" {
		return ""
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = Escape(seg)
	}
	return strings.Join(segments, ".")
}

// Escape escapes a single member name for use as one gjson/sjson path component.
func Escape(key string) string {
	for i := 0; i < len(key); i++ {
		if !isSafeChar(key[i]) {
			escaped := make([]byte, 0, len(key)+8)
			escaped = append(escaped, key[:i]...)
			for ; i < len(key); i++ {
				if !isSafeChar(key[i]) {
					escaped = append(escaped, '\\')
				}
				escaped = append(escaped, key[i])
			}
			return string(escaped)
		}
	}
	return key
}

// isSafeChar reports characters that never carry path meaning.
// ':' forces an object key in sjson and "-1" appends to arrays, so both
// ':' and '-' are escaped.
func isSafeChar(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
