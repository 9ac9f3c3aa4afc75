package termbridge

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DecodeTree reads a widget tree from YAML. Every mapping with a kind key
// becomes a node. Other mappings and arrays are kept as attribute values.
//
//	kind: layout
//	direction: vertical
//	constraints: ["len:3", "fill:1"]
//	children:
//	  - {kind: paragraph, text: hello}
//	  - {kind: list, items: [a, b, c], state: files}
func DecodeTree(r io.Reader) (Node, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	v, err := treeValue(doc, "")
	if err != nil {
		return nil, err
	}
	n, ok := v.(Node)
	if !ok {
		return nil, invalidf("decode tree: top level must be a mapping with a kind")
	}
	return n, nil
}

// LoadTree reads a widget tree from a YAML file.
func LoadTree(path string) (Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	n, err := DecodeTree(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

func treeValue(v any, path string) (any, error) {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			if k == "kind" {
				continue
			}
			conv, err := treeValue(item, path+"."+k)
			if err != nil {
				return nil, err
			}
			out[k] = conv
		}
		name, ok := v["kind"]
		if !ok {
			return out, nil
		}
		s, _ := asString(name)
		kind, err := ParseKind(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pathOr(path), err)
		}
		return NewNode(kind, out), nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			conv, err := treeValue(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	}
	return v, nil
}

func pathOr(path string) string {
	if path == "" {
		return "root"
	}
	return path
}

// BindStates replaces named state attributes in a decoded tree with host
// objects, so a file can refer to a ListState the host keeps between
// frames. bind is called for every node whose state attribute is a name;
// a nil result leaves the attribute alone.
func BindStates(n Node, bind func(name string, kind Kind) any) {
	walkTree(n, func(e *Element) {
		v, ok := e.Attr("state")
		if !ok {
			return
		}
		name, ok := v.(string)
		if !ok {
			return
		}
		if s := bind(name, e.Kind()); s != nil {
			e.Set("state", s)
		}
	})
}

func walkTree(v any, fn func(*Element)) {
	switch v := v.(type) {
	case *Element:
		fn(v)
		for _, item := range v.attrs {
			walkTree(item, fn)
		}
	case []any:
		for _, item := range v {
			walkTree(item, fn)
		}
	case map[string]any:
		for _, item := range v {
			walkTree(item, fn)
		}
	}
}
