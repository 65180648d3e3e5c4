package funcid

import (
	"fmt"
	"strings"
)

// ID uniquely identifies one callable in the contract registry. It is a plain
// comparable value, safe to use as a map key; two IDs are equal when both
// namespace and name match.
type ID struct {
	Namespace string
	Name      string
}

// New constructs an ID from a namespace and a name.
func New(namespace, name string) ID {
	return ID{Namespace: namespace, Name: name}
}

// String serializes the ID into its canonical "namespace/name" form.
func (id ID) String() string {
	return id.Namespace + "/" + id.Name
}

// Parse converts a canonical "namespace/name" string back into an ID. The
// namespace itself may contain slashes; the split happens at the last one.
func Parse(s string) (ID, error) {
	idx := strings.LastIndex(s, "/")
	if idx <= 0 || idx == len(s)-1 {
		return ID{}, fmt.Errorf("invalid function identifier %q: expected \"namespace/name\"", s)
	}
	return ID{Namespace: s[:idx], Name: s[idx+1:]}, nil
}
