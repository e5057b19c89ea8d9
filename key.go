package recmerge

import (
	"github.com/hkloudou/recmerge/internal/keypath"
	"github.com/tidwall/gjson"
)

// KeyResolver extracts the key value that decides group membership.
type KeyResolver interface {
	Resolve(r Record) Value
}

// KeyFunc adapts a plain function to a KeyResolver.
type KeyFunc func(r Record) Value

func (f KeyFunc) Resolve(r Record) Value {
	return f(r)
}

// Field resolves a single top-level member by its literal name.
// No path syntax applies: Field("a.b") looks up the member named "a.b".
type Field string

func (f Field) Resolve(r Record) Value {
	name := string(f)
	found := Absent
	gjson.ParseBytes(r).ForEach(func(k, v gjson.Result) bool {
		if k.Str == name {
			found = Value{res: v}
		}
		return true
	})
	return found
}

// PathResolver looks up a nested path on a record.
type PathResolver func(r Record, path string) Value

// GJSON resolves gjson paths, converting slash paths first.
func GJSON(r Record, path string) Value {
	return Value{res: gjson.GetBytes(r, keypath.ToGjson(path))}
}

type pathKey struct {
	path    string
	resolve PathResolver
}

func (p pathKey) Resolve(r Record) Value {
	return p.resolve(r, p.path)
}

// Path resolves a nested key through gjson. Both "user.id" and
// "/user/id" address the member id of the object user.
func Path(path string) KeyResolver {
	return pathKey{path: path, resolve: GJSON}
}

// ParsePath is like Path but validates slash paths first.
func ParsePath(path string) (KeyResolver, error) {
	if keypath.IsSlash(path) {
		if err := keypath.Validate(path); err != nil {
			return nil, err
		}
	}
	return Path(path), nil
}

// PathWith resolves a nested key through resolve.
func PathWith(path string, resolve PathResolver) KeyResolver {
	return pathKey{path: path, resolve: resolve}
}

func sameKey(key KeyResolver, a, b Record) bool {
	return key.Resolve(a).Equal(key.Resolve(b))
}
