package stack

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"sigs.k8s.io/yaml"
)

const templateFormatVersion = "2010-09-09"

// Template is the CloudFormation document for a stack.
type Template struct {
	AWSTemplateFormatVersion string                       `json:"AWSTemplateFormatVersion"`
	Description              string                       `json:"Description,omitempty"`
	Parameters               map[string]TemplateParameter `json:"Parameters,omitempty"`
	Resources                map[string]TemplateResource  `json:"Resources"`
	Outputs                  map[string]TemplateOutput    `json:"Outputs,omitempty"`
}

// TemplateParameter is a rendered parameter.
type TemplateParameter struct {
	Type        string `json:"Type"`
	Default     string `json:"Default,omitempty"`
	Description string `json:"Description,omitempty"`
}

// TemplateResource is a rendered resource.
type TemplateResource struct {
	Type       string         `json:"Type"`
	Properties map[string]any `json:"Properties,omitempty"`
	Metadata   map[string]any `json:"Metadata,omitempty"`
	DependsOn  []string       `json:"DependsOn,omitempty"`
}

// TemplateOutput is a rendered output.
type TemplateOutput struct {
	Value       any             `json:"Value"`
	Description string          `json:"Description,omitempty"`
	Export      *TemplateExport `json:"Export,omitempty"`
}

// TemplateExport names an exported output.
type TemplateExport struct {
	Name string `json:"Name"`
}

// Template renders the stack. It fails if the declarations do not form a
// valid dependency graph.
func (s *Stack) Template() (*Template, error) {
	if _, err := s.Order(); err != nil {
		return nil, err
	}

	t := &Template{
		AWSTemplateFormatVersion: templateFormatVersion,
		Description:              s.Description,
		Resources:                make(map[string]TemplateResource, len(s.resources)),
	}

	if len(s.parameters) > 0 {
		t.Parameters = make(map[string]TemplateParameter, len(s.parameters))
		for _, p := range s.parameters {
			t.Parameters[p.LogicalID] = TemplateParameter{
				Type:        p.Type,
				Default:     p.Default,
				Description: p.Description,
			}
		}
	}

	for _, r := range s.resources {
		t.Resources[r.LogicalID] = TemplateResource{
			Type:       r.Type,
			Properties: r.Properties,
			Metadata:   r.Metadata,
			DependsOn:  r.DependsOn,
		}
	}

	if len(s.outputs) > 0 {
		t.Outputs = make(map[string]TemplateOutput, len(s.outputs))
		for _, o := range s.outputs {
			out := TemplateOutput{Value: o.Value, Description: o.Description}
			if o.ExportName != "" {
				out.Export = &TemplateExport{Name: o.ExportName}
			}
			t.Outputs[o.LogicalID] = out
		}
	}

	return t, nil
}

// JSON serializes the template with stable key order.
func (t *Template) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template: %w", err)
	}
	return append(data, '\n'), nil
}

// YAML serializes the template as YAML.
func (t *Template) YAML() ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template: %w", err)
	}
	out, err := yaml.JSONToYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to convert template to YAML: %w", err)
	}
	return out, nil
}

// Body serializes the template in the given format ("json" or "yaml").
func (t *Template) Body(format string) ([]byte, error) {
	switch format {
	case "json", "":
		return t.JSON()
	case "yaml":
		return t.YAML()
	default:
		return nil, fmt.Errorf("unsupported template format %q", format)
	}
}

// Fingerprint is a short content hash of the JSON form, used to name
// uploaded artifacts.
func (t *Template) Fingerprint() (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("failed to marshal template: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16], nil
}
