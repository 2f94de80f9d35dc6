package catalog

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ServiceSpec is the createService request body. Optional fields are
// pointers so an explicitly supplied zero value still reaches the upstream.
type ServiceSpec struct {
	Name               string          `json:"name" mapstructure:"name"`
	Provider           string          `json:"provider" mapstructure:"provider"`
	Region             string          `json:"region" mapstructure:"region"`
	NumReplicas        *int            `json:"numReplicas,omitempty" mapstructure:"numReplicas"`
	MinReplicaMemoryGb *int            `json:"minReplicaMemoryGb,omitempty" mapstructure:"minReplicaMemoryGb"`
	MaxReplicaMemoryGb *int            `json:"maxReplicaMemoryGb,omitempty" mapstructure:"maxReplicaMemoryGb"`
	IdleScaling        *bool           `json:"idleScaling,omitempty" mapstructure:"idleScaling"`
	IPAccessList       []IPAccessEntry `json:"ipAccessList,omitempty" mapstructure:"ipAccessList"`
}

// IPAccessEntry is one allow-list entry of a ServiceSpec.
type IPAccessEntry struct {
	Source      string `json:"source" mapstructure:"source"`
	Description string `json:"description,omitempty" mapstructure:"description"`
}

// StateCommand is the updateServiceState request body.
type StateCommand struct {
	Command string `json:"command" mapstructure:"command"`
}

// serviceSpecBody decodes validated arguments into a ServiceSpec. Path
// parameters have no matching field and fall away during decoding.
func serviceSpecBody(args map[string]any) (any, error) {
	var spec ServiceSpec
	if err := decodeArgs(args, &spec); err != nil {
		return nil, fmt.Errorf("failed to decode service spec: %w", err)
	}
	return spec, nil
}

func stateCommandBody(args map[string]any) (any, error) {
	var cmd StateCommand
	if err := decodeArgs(args, &cmd); err != nil {
		return nil, fmt.Errorf("failed to decode state command: %w", err)
	}
	return cmd, nil
}

// decodeArgs maps arguments onto a body struct. JSON numbers arrive as
// float64, so decoding is weakly typed; the schema pass has already pinned
// down the real types.
func decodeArgs(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(args)
}
