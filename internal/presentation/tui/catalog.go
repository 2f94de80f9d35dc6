// Package tui renders the tool catalog for human terminals.
package tui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tidecloud/tidebridge/pkg/ports"
)

// CatalogMarkdown builds a markdown summary of every exposed tool: one section
// per tool with an argument table derived from its discovery schema.
func CatalogMarkdown(tools []ports.ToolInfo) string {
	var sb strings.Builder
	sb.WriteString("# Tidebridge Tools\n")

	for _, info := range tools {
		fmt.Fprintf(&sb, "\n## %s\n\n%s\n\n", info.Name, info.Description)

		rows := argumentRows(info.InputSchema)
		if len(rows) == 0 {
			sb.WriteString("_No arguments._\n")
			continue
		}

		sb.WriteString("| Argument | Type | Required | Constraints |\n")
		sb.WriteString("|---|---|---|---|\n")
		for _, row := range rows {
			sb.WriteString(row + "\n")
		}
	}
	return sb.String()
}

// schemaDoc mirrors the slice of the discovery document the table needs.
type schemaDoc struct {
	Properties map[string]propertyDoc `json:"properties"`
	Required   []string               `json:"required"`
}

type propertyDoc struct {
	Type       string       `json:"type"`
	Format     string       `json:"format"`
	Enum       []any        `json:"enum"`
	Minimum    *float64     `json:"minimum"`
	Maximum    *float64     `json:"maximum"`
	MultipleOf *float64     `json:"multipleOf"`
	Items      *propertyDoc `json:"items"`
}

func argumentRows(rawSchema json.RawMessage) []string {
	var doc schemaDoc
	if err := json.Unmarshal(rawSchema, &doc); err != nil || len(doc.Properties) == 0 {
		return nil
	}

	names := make([]string, 0, len(doc.Properties))
	for name := range doc.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]string, 0, len(names))
	for _, name := range names {
		prop := doc.Properties[name]
		required := "no"
		for _, r := range doc.Required {
			if r == name {
				required = "yes"
				break
			}
		}
		rows = append(rows, fmt.Sprintf("| %s | %s | %s | %s |", name, typeLabel(prop), required, constraints(prop)))
	}
	return rows
}

func typeLabel(prop propertyDoc) string {
	if prop.Type == "array" && prop.Items != nil {
		return "array of " + prop.Items.Type
	}
	return prop.Type
}

func constraints(prop propertyDoc) string {
	var parts []string
	if prop.Format != "" {
		parts = append(parts, prop.Format)
	}
	if len(prop.Enum) > 0 {
		values := make([]string, 0, len(prop.Enum))
		for _, v := range prop.Enum {
			values = append(values, fmt.Sprint(v))
		}
		parts = append(parts, "one of: "+strings.Join(values, ", "))
	}
	if prop.Minimum != nil {
		parts = append(parts, fmt.Sprintf(">= %v", *prop.Minimum))
	}
	if prop.Maximum != nil {
		parts = append(parts, fmt.Sprintf("<= %v", *prop.Maximum))
	}
	if prop.MultipleOf != nil {
		parts = append(parts, fmt.Sprintf("multiple of %v", *prop.MultipleOf))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "; ")
}
