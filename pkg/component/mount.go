package component

import (
	"fmt"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/surface"
)

// ResolveTarget resolves a host reference to a live node. ref may be:
//   - a string, looked up with Document.Query;
//   - a func() surface.Node resolver;
//   - a surface.Node, used as is.
//
// A reference that resolves to nothing fails with E003, an unsupported
// reference type with E004.
func ResolveTarget(doc surface.Document, ref any) (surface.Node, error) {
	node, err := resolveRef(doc, ref)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, errors.New("E003").WithDetail("no node for host reference " + describeRef(ref))
	}
	return node, nil
}

// resolveMountTarget is ResolveTarget for Make: nil references and failed
// lookups yield a nil node instead of an error.
func resolveMountTarget(doc surface.Document, ref any) (surface.Node, error) {
	if ref == nil {
		return nil, nil
	}
	return resolveRef(doc, ref)
}

func resolveRef(doc surface.Document, ref any) (surface.Node, error) {
	switch v := ref.(type) {
	case string:
		return doc.Query(v), nil
	case func() surface.Node:
		if v == nil {
			return nil, nil
		}
		return v(), nil
	case surface.Node:
		return v, nil
	case nil:
		return nil, nil
	}
	return nil, errors.New("E004").WithDetail(fmt.Sprintf("unsupported host reference of type %T", ref))
}

func describeRef(ref any) string {
	if s, ok := ref.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%T", ref)
}
