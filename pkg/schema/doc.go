// Package schema declares and validates tool argument schemas.
//
// It models the subset of JSON Schema needed to describe tool inputs: typed
// nodes (string, integer, number, boolean, array, object) with descriptions,
// enums, string formats, numeric bounds and multipleOf steps. Schemas are
// built with factory functions and functional options:
//
//	spec := schema.Object(map[string]*schema.Node{
//	    "name": schema.String(schema.Describe("Service name")),
//	    "numReplicas": schema.Integer(
//	        schema.Min(1),
//	        schema.Max(20),
//	    ),
//	    "provider": schema.String(schema.Enum("aws", "gcp", "azure")),
//	}, schema.Required("name", "provider"))
//
//	if err := schema.Validate(spec, args); err != nil {
//	    // err aggregates every violation found
//	}
//
// Validation is all-or-nothing: every violation in the argument object is
// collected into an *AggregateError rather than stopping at the first one,
// and messages carry the path of the offending value ("ipAccessList[0].source").
// Object nodes are strict: arguments not declared in Properties are rejected.
//
// Nodes serialize to JSON Schema through their kin-openapi representation,
// which is what gets advertised to clients during tool registration. The
// serialized form and the validator agree by construction.
package schema
