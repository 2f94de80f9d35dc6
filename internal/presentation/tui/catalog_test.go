package tui

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidecloud/tidebridge/pkg/ports"
)

func sampleTools() []ports.ToolInfo {
	return []ports.ToolInfo{
		{
			Name:        "updateServiceState",
			Description: "Start or stop a service",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"serviceId": {"type": "string", "format": "uuid"},
					"command": {"type": "string", "enum": ["start", "stop"]}
				},
				"required": ["serviceId", "command"],
				"additionalProperties": false
			}`),
		},
		{
			Name:        "listOrganizations",
			Description: "List available organizations",
			InputSchema: json.RawMessage(`{"type":"object","additionalProperties":false}`),
		},
	}
}

func TestCatalogMarkdown(t *testing.T) {
	md := CatalogMarkdown(sampleTools())

	assert.Contains(t, md, "# Tidebridge Tools")
	assert.Contains(t, md, "## updateServiceState")
	assert.Contains(t, md, "| command | string | yes | one of: start, stop |")
	assert.Contains(t, md, "| serviceId | string | yes | uuid |")
	assert.Contains(t, md, "_No arguments._")

	// Sections keep catalog order.
	assert.Less(t, strings.Index(md, "## updateServiceState"), strings.Index(md, "## listOrganizations"))
}

func TestCatalogMarkdown_NumericConstraints(t *testing.T) {
	tools := []ports.ToolInfo{{
		Name:        "createService",
		Description: "Create a service",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"minReplicaMemoryGb": {"type": "integer", "minimum": 8, "multipleOf": 4},
				"ipAccessList": {"type": "array", "items": {"type": "object"}}
			}
		}`),
	}}

	md := CatalogMarkdown(tools)
	assert.Contains(t, md, "| minReplicaMemoryGb | integer | no | >= 8; multiple of 4 |")
	assert.Contains(t, md, "| ipAccessList | array of object | no | - |")
}

func TestRender_PlainPassthrough(t *testing.T) {
	md := "# Title\n\nbody\n"
	out, err := Render(md, true)
	require.NoError(t, err)
	assert.Equal(t, md, out)
}

func TestRender_Glamour(t *testing.T) {
	out, err := Render("# Tidebridge\n", false)
	require.NoError(t, err)
	assert.Contains(t, out, "Tidebridge")
}
