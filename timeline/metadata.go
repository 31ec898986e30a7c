package timeline

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// ErrNoMetadata is returned by DecodeMetadata for a missing key
var ErrNoMetadata = errors.New("no such metadata")

// Metadata is free-form data attached to timeline objects, usually
// produced by whatever deserialized the tree.
type Metadata map[string]interface{}

// Copy returns a deep copy of md. Nested maps and slices are copied;
// other values are shared.
func (md Metadata) Copy() Metadata {
	if md == nil {
		return Metadata{}
	}
	c := make(Metadata, len(md))
	for k, v := range md {
		c[k] = copyValue(v)
	}
	return c
}

func copyValue(v interface{}) interface{} {
	switch v := v.(type) {
	case Metadata:
		return v.Copy()
	case map[string]interface{}:
		return map[string]interface{}(Metadata(v).Copy())
	case []interface{}:
		c := make([]interface{}, len(v))
		for i := range v {
			c[i] = copyValue(v[i])
		}
		return c
	}
	return v
}

// DecodeMetadata decodes the metadata stored under key into out, which
// must be a pointer to a struct, map or slice.
func (n *Node) DecodeMetadata(key string, out interface{}) error {
	v, ok := n.metadata[key]
	if !ok {
		return errors.Wrapf(ErrNoMetadata, "%s %q: key %q", n.kind, n.name, key)
	}
	if err := mapstructure.Decode(v, out); err != nil {
		return errors.Wrapf(err, "decoding metadata %q", key)
	}
	return nil
}
