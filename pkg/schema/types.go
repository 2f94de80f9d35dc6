package schema

// Kind identifies which JSON type a Node describes.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// FormatUUID marks a string argument that must be a canonical RFC 4122 UUID.
const FormatUUID = "uuid"

// Node is one node of an argument schema tree. A tool's input schema is a
// Node of KindObject; nested objects and arrays reuse the same type.
type Node struct {
	Kind        Kind
	Description string

	// String constraints.
	Format string
	Enum   []string

	// Numeric constraints. Nil means unconstrained.
	Minimum    *float64
	Maximum    *float64
	MultipleOf *float64

	// Array element schema.
	Items *Node

	// Object members. Names absent from Properties are rejected.
	Properties map[string]*Node
	Required   []string
}

// Option configures a Node under construction.
type Option func(*Node)

// --- Factory Functions ---

// String creates a string node.
func String(opts ...Option) *Node { return newNode(KindString, opts) }

// Integer creates an integer node. JSON numbers are accepted when whole.
func Integer(opts ...Option) *Node { return newNode(KindInteger, opts) }

// Number creates a numeric node accepting integers and floats.
func Number(opts ...Option) *Node { return newNode(KindNumber, opts) }

// Bool creates a boolean node.
func Bool(opts ...Option) *Node { return newNode(KindBoolean, opts) }

// Array creates an array node whose elements validate against items.
func Array(items *Node, opts ...Option) *Node {
	n := newNode(KindArray, opts)
	n.Items = items
	return n
}

// Object creates an object node with the given member schemas.
func Object(properties map[string]*Node, opts ...Option) *Node {
	n := newNode(KindObject, opts)
	n.Properties = properties
	return n
}

func newNode(kind Kind, opts []Option) *Node {
	n := &Node{Kind: kind}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// --- Options ---

// Describe attaches a human-readable description.
func Describe(text string) Option {
	return func(n *Node) { n.Description = text }
}

// Format constrains a string node to a named format, e.g. FormatUUID.
func Format(format string) Option {
	return func(n *Node) { n.Format = format }
}

// Enum restricts a string node to a fixed set of values.
func Enum(values ...string) Option {
	return func(n *Node) { n.Enum = values }
}

// Min sets an inclusive lower bound on a numeric node.
func Min(value float64) Option {
	return func(n *Node) { n.Minimum = &value }
}

// Max sets an inclusive upper bound on a numeric node.
func Max(value float64) Option {
	return func(n *Node) { n.Maximum = &value }
}

// MultipleOf requires a numeric value to be an exact multiple of step.
func MultipleOf(step float64) Option {
	return func(n *Node) { n.MultipleOf = &step }
}

// Required marks object members that must be present.
func Required(names ...string) Option {
	return func(n *Node) { n.Required = names }
}

// IsRequired reports whether name is a required member of an object node.
func (n *Node) IsRequired(name string) bool {
	for _, r := range n.Required {
		if r == name {
			return true
		}
	}
	return false
}
