package schema

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Validate checks args against a root object schema.
// Every violation found is reported; validation never stops at the first
// failure. The returned error is an *AggregateError when violations exist.
func Validate(root *Node, args map[string]any) error {
	if root == nil {
		// No schema = no validation
		return nil
	}
	if root.Kind != KindObject {
		return fmt.Errorf("schema root must be an object, got %s", root.Kind)
	}

	var errs []error
	validateObject("", root, args, &errs)

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func validateValue(path string, n *Node, value any, errs *[]error) {
	switch n.Kind {
	case KindString:
		validateString(path, n, value, errs)
	case KindInteger:
		validateInteger(path, n, value, errs)
	case KindNumber:
		validateNumber(path, n, value, errs)
	case KindBoolean:
		if _, ok := value.(bool); !ok {
			*errs = append(*errs, &ValidationError{Path: path, Reason: "expected boolean", Value: value})
		}
	case KindArray:
		validateArray(path, n, value, errs)
	case KindObject:
		obj, ok := value.(map[string]any)
		if !ok {
			*errs = append(*errs, &ValidationError{Path: path, Reason: "expected object", Value: value})
			return
		}
		validateObject(path, n, obj, errs)
	}
}

func validateObject(path string, n *Node, obj map[string]any, errs *[]error) {
	// Declared members first, in name order so aggregated messages are stable.
	for _, name := range sortedKeys(n.Properties) {
		childPath := joinPath(path, name)
		value, present := obj[name]
		if !present {
			if n.IsRequired(name) {
				*errs = append(*errs, &ValidationError{Path: childPath, Reason: "required"})
			}
			continue
		}
		validateValue(childPath, n.Properties[name], value, errs)
	}

	// Undeclared members are rejected outright.
	for _, name := range sortedKeys(obj) {
		if _, declared := n.Properties[name]; !declared {
			*errs = append(*errs, &ValidationError{Path: joinPath(path, name), Reason: "unknown argument"})
		}
	}
}

func validateString(path string, n *Node, value any, errs *[]error) {
	s, ok := value.(string)
	if !ok {
		*errs = append(*errs, &ValidationError{Path: path, Reason: "expected string", Value: value})
		return
	}
	if len(n.Enum) > 0 && !containsValue(n.Enum, s) {
		*errs = append(*errs, &ValidationError{
			Path:   path,
			Reason: fmt.Sprintf("must be one of: %s", strings.Join(n.Enum, ", ")),
		})
	}
	if n.Format == FormatUUID && !validUUID(s) {
		*errs = append(*errs, &ValidationError{Path: path, Reason: "must be a canonical UUID"})
	}
}

func validateInteger(path string, n *Node, value any, errs *[]error) {
	switch v := value.(type) {
	case int, int8, int16, int32, int64:
		validateBounds(path, n, toFloat(value), errs)
	case float64:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		if v != math.Trunc(v) {
			*errs = append(*errs, &ValidationError{Path: path, Reason: "expected integer, got float (not a whole number)"})
			return
		}
		validateBounds(path, n, v, errs)
	default:
		*errs = append(*errs, &ValidationError{Path: path, Reason: "expected integer", Value: value})
	}
}

func validateNumber(path string, n *Node, value any, errs *[]error) {
	switch value.(type) {
	case float32, float64, int, int8, int16, int32, int64:
		validateBounds(path, n, toFloat(value), errs)
	default:
		*errs = append(*errs, &ValidationError{Path: path, Reason: "expected number", Value: value})
	}
}

func validateArray(path string, n *Node, value any, errs *[]error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		*errs = append(*errs, &ValidationError{Path: path, Reason: "expected array", Value: value})
		return
	}
	if n.Items == nil {
		return
	}
	for i := 0; i < rv.Len(); i++ {
		validateValue(fmt.Sprintf("%s[%d]", path, i), n.Items, rv.Index(i).Interface(), errs)
	}
}

func validateBounds(path string, n *Node, v float64, errs *[]error) {
	if n.Minimum != nil && v < *n.Minimum {
		*errs = append(*errs, &ValidationError{
			Path:   path,
			Reason: fmt.Sprintf("must be at least %v", *n.Minimum),
		})
	}
	if n.Maximum != nil && v > *n.Maximum {
		*errs = append(*errs, &ValidationError{
			Path:   path,
			Reason: fmt.Sprintf("must be at most %v", *n.Maximum),
		})
	}
	if n.MultipleOf != nil && !isMultipleOf(v, *n.MultipleOf) {
		*errs = append(*errs, &ValidationError{
			Path:   path,
			Reason: fmt.Sprintf("must be a multiple of %v", *n.MultipleOf),
		})
	}
}

// isMultipleOf checks divisibility without float drift for whole operands.
func isMultipleOf(value, step float64) bool {
	if step == 0 {
		return false
	}
	if value == math.Trunc(value) && step == math.Trunc(step) {
		return int64(value)%int64(step) == 0
	}
	q := value / step
	return q == math.Trunc(q)
}

// validUUID accepts only the canonical 36-character RFC 4122 form;
// uuid.Parse alone would also admit braced, URN and bare-hex variants.
func validUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func toFloat(value any) float64 {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case float32:
		return float64(v)
	case float64:
		return v
	}
	return 0
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func containsValue(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
