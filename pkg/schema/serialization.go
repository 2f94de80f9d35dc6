package schema

import (
	"encoding/json"

	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPI converts the node tree into its kin-openapi representation.
// Object nodes always forbid undeclared properties, so the serialized
// schema promises exactly what Validate enforces.
func (n *Node) OpenAPI() *openapi3.Schema {
	if n == nil {
		return nil
	}

	s := &openapi3.Schema{
		Type:        &openapi3.Types{string(n.Kind)},
		Description: n.Description,
		Format:      n.Format,
		Min:         n.Minimum,
		Max:         n.Maximum,
		MultipleOf:  n.MultipleOf,
	}
	for _, v := range n.Enum {
		s.Enum = append(s.Enum, v)
	}
	if n.Items != nil {
		s.Items = openapi3.NewSchemaRef("", n.Items.OpenAPI())
	}
	if n.Kind == KindObject {
		s.Properties = make(openapi3.Schemas, len(n.Properties))
		for name, child := range n.Properties {
			s.Properties[name] = openapi3.NewSchemaRef("", child.OpenAPI())
		}
		s.Required = append([]string(nil), n.Required...)
		s.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)}
	}
	return s
}

// MarshalJSON renders the node as a JSON Schema document.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.OpenAPI())
}
