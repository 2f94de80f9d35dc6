// Package registry holds the tool catalog and the dispatch pipeline that
// turns validated invocations into upstream REST calls.
package registry

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/tidecloud/tidebridge/pkg/domain"
	"github.com/tidecloud/tidebridge/pkg/ports"
	"github.com/tidecloud/tidebridge/pkg/schema"
)

// BodyFunc extracts the upstream request body from validated arguments.
type BodyFunc func(args map[string]any) (any, error)

// Definition declares one tool: its input schema and how a validated
// invocation maps onto an upstream REST call.
//
// PathTemplate names its parameters in braces ("/v1/organizations/{organizationId}");
// every parameter must be declared as a required string in Schema, which is
// checked at registration so a tool can never reach the upstream with a
// missing path segment. When BuildBody is nil, POST and PATCH tools send all
// non-path arguments as the body and other methods send none.
type Definition struct {
	Name         string
	Description  string
	Schema       *schema.Node
	Method       string
	PathTemplate string
	Header       http.Header
	BuildBody    BodyFunc
}

var pathParamPattern = regexp.MustCompile(`\{([a-zA-Z][a-zA-Z0-9]*)\}`)

type entry struct {
	def       Definition
	params    []string
	rawSchema json.RawMessage
}

// Registry manages the available tool definitions. It is safe for concurrent
// use; after startup it is effectively read-only.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*entry
	order []string
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*entry),
	}
}

// Register adds a tool definition to the registry. Registering a name twice
// is a startup-time programming error, not an update mechanism.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if def.Method == "" {
		return fmt.Errorf("tool %s: method is required", def.Name)
	}
	if !strings.HasPrefix(def.PathTemplate, "/") {
		return fmt.Errorf("tool %s: path template must start with /", def.Name)
	}
	if def.Schema == nil || def.Schema.Kind != schema.KindObject {
		return fmt.Errorf("tool %s: schema must be an object node", def.Name)
	}

	params, err := pathParams(def)
	if err != nil {
		return err
	}

	rawSchema, err := json.Marshal(def.Schema)
	if err != nil {
		return fmt.Errorf("tool %s: failed to serialize schema: %w", def.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[def.Name]; exists {
		return fmt.Errorf("tool %s: already registered", def.Name)
	}
	r.order = append(r.order, def.Name)
	r.tools[def.Name] = &entry{def: def, params: params, rawSchema: rawSchema}
	return nil
}

// pathParams extracts the template parameters and checks each one is a
// required string in the schema.
func pathParams(def Definition) ([]string, error) {
	matches := pathParamPattern.FindAllStringSubmatch(def.PathTemplate, -1)
	if strings.Count(def.PathTemplate, "{") != len(matches) ||
		strings.Count(def.PathTemplate, "}") != len(matches) {
		return nil, fmt.Errorf("tool %s: malformed path template %q", def.Name, def.PathTemplate)
	}

	params := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		prop, declared := def.Schema.Properties[name]
		if !declared || prop.Kind != schema.KindString {
			return nil, fmt.Errorf("tool %s: path parameter %q must be declared as a string argument", def.Name, name)
		}
		if !def.Schema.IsRequired(name) {
			return nil, fmt.Errorf("tool %s: path parameter %q must be required", def.Name, name)
		}
		params = append(params, name)
	}
	return params, nil
}

// Get returns the definition registered under name.
func (r *Registry) Get(name string) (Definition, error) {
	ent, err := r.lookup(name)
	if err != nil {
		return Definition{}, err
	}
	return ent.def, nil
}

// Describe returns the input schema for a registered tool.
func (r *Registry) Describe(name string) (*schema.Node, error) {
	ent, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return ent.def.Schema, nil
}

// List returns every definition in registration order.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].def)
	}
	return defs
}

// Tools returns transport-level descriptors in registration order.
func (r *Registry) Tools() []ports.ToolInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]ports.ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		ent := r.tools[name]
		infos = append(infos, ports.ToolInfo{
			Name:        ent.def.Name,
			Description: ent.def.Description,
			InputSchema: ent.rawSchema,
		})
	}
	return infos
}

func (r *Registry) lookup(name string) (*entry, error) {
	r.mu.RLock()
	ent, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTool, name)
	}
	return ent, nil
}

// buildPath substitutes validated path parameters into the template.
// Arguments are schema-checked before this runs, so a missing or non-string
// parameter is a programming error, reported rather than panicked on.
func (e *entry) buildPath(args map[string]any) (string, error) {
	path := e.def.PathTemplate
	for _, param := range e.params {
		value, ok := args[param].(string)
		if !ok || value == "" {
			return "", fmt.Errorf("tool %s: path parameter %q is missing after validation", e.def.Name, param)
		}
		path = strings.ReplaceAll(path, "{"+param+"}", url.PathEscape(value))
	}
	return path, nil
}

// body resolves the upstream request body for validated arguments.
func (e *entry) body(args map[string]any) (any, error) {
	if e.def.BuildBody != nil {
		return e.def.BuildBody(args)
	}
	if e.def.Method != http.MethodPost && e.def.Method != http.MethodPatch {
		return nil, nil
	}

	body := make(map[string]any, len(args))
	for key, value := range args {
		body[key] = value
	}
	for _, param := range e.params {
		delete(body, param)
	}
	if len(body) == 0 {
		return nil, nil
	}
	return body, nil
}
