package capabilities

import "gopkg.in/yaml.v3"

// ModelCapabilities describes one model offered by a provider
type ModelCapabilities struct {
	// Model identifier (set during YAML unmarshaling)
	ID string `yaml:"-" json:"id"`

	DisplayName string `yaml:"display_name" json:"display_name"`
	Description string `yaml:"description" json:"description"`

	// Limits
	ContextWindow int `yaml:"context_window" json:"context_window"`
	MaxOutput     int `yaml:"max_output" json:"max_output"`

	SupportsSystemPrompt bool `yaml:"supports_system_prompt" json:"supports_system_prompt"`
}

// ProviderCapabilities represents all models for a provider
type ProviderCapabilities struct {
	Provider string `yaml:"provider" json:"provider"`
	// OpenCatalog accepts model ids that are not listed (e.g. OpenRouter routes)
	OpenCatalog bool                `yaml:"open_catalog" json:"open_catalog"`
	Models      []ModelCapabilities `yaml:"-" json:"models"` // Ordered slice, populated by custom unmarshaler
}

// UnmarshalYAML preserves model order from the YAML file
func (p *ProviderCapabilities) UnmarshalYAML(node *yaml.Node) error {
	type header struct {
		Provider    string                       `yaml:"provider"`
		OpenCatalog bool                         `yaml:"open_catalog"`
		Models      map[string]ModelCapabilities `yaml:"models"`
	}
	var h header
	if err := node.Decode(&h); err != nil {
		return err
	}
	p.Provider = h.Provider
	p.OpenCatalog = h.OpenCatalog

	// node.Content alternates key, value; walk the models mapping in file order
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "models" {
			continue
		}
		modelsNode := node.Content[i+1]
		for j := 0; j+1 < len(modelsNode.Content); j += 2 {
			modelID := modelsNode.Content[j].Value
			if model, ok := h.Models[modelID]; ok {
				model.ID = modelID
				p.Models = append(p.Models, model)
			}
		}
		break
	}

	return nil
}
