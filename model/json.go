package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalJSON rejects kinds other than block, mark, inline and text.
func (o *Object) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !Object(s).Valid() {
		return fmt.Errorf("unknown node object %q", s)
	}
	*o = Object(s)
	return nil
}

type valueJSON struct {
	Object   string `json:"object"`
	Document struct {
		Nodes []*Node `json:"nodes"`
	} `json:"document"`
}

// MarshalJSON encodes the fragment as an editor value:
// {"object":"value","document":{"nodes":[...]}}.
func (f Fragment) MarshalJSON() ([]byte, error) {
	v := valueJSON{Object: "value"}
	v.Document.Nodes = f.Content
	if v.Document.Nodes == nil {
		v.Document.Nodes = []*Node{}
	}
	return json.Marshal(v)
}

// UnmarshalJSON accepts either an editor value (see MarshalJSON) or a bare
// array of nodes.
func (f *Fragment) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var nodes []*Node
		if err := json.Unmarshal(trimmed, &nodes); err != nil {
			return err
		}
		f.Content = nodes
		return nil
	}
	var v valueJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Object != "" && v.Object != "value" {
		return fmt.Errorf("unexpected top-level object %q", v.Object)
	}
	f.Content = v.Document.Nodes
	return nil
}

// FragmentFromJSON decodes a document from its JSON form.
func FragmentFromJSON(data []byte) (Fragment, error) {
	var f Fragment
	if err := json.Unmarshal(data, &f); err != nil {
		return Fragment{}, fmt.Errorf("decode document: %w", err)
	}
	return f, nil
}
