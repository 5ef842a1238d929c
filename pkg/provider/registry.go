package provider

import (
	"fmt"

	"github.com/prism-ai/prism/pkg/config"
)

// Backend identifiers known to the catalog.
const (
	IDDemo   = "demo"
	IDOpenAI = "openai"
	IDAzure  = "azure"
	IDOllama = "ollama"
)

// Info describes one backend in the provider catalog.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	Configured  bool   `json:"configured"`
}

// Registry is the single composition point that binds the active Provider
// and reports which other backends could be used. Availability of the real
// backends is derived from the environment on every call.
type Registry struct {
	active    Provider
	providers *config.ProvidersConfig
}

// NewRegistry creates a registry serving active for every stage request.
func NewRegistry(active Provider, providers *config.ProvidersConfig) *Registry {
	return &Registry{
		active:    active,
		providers: providers,
	}
}

// Active returns the provider that serves stage requests.
func (r *Registry) Active() Provider {
	return r.active
}

// List returns the catalog in display order.
func (r *Registry) List() []Info {
	openai := r.providers.OpenAI.Configured()
	azure := r.providers.Azure.Configured()
	ollama := r.providers.Ollama.Configured()

	return []Info{
		{
			ID:          IDDemo,
			Name:        "Demo Mode",
			Description: "Pre-scripted responses — no API key required",
			Available:   true,
			Configured:  true,
		},
		{
			ID:          IDOpenAI,
			Name:        "OpenAI",
			Description: "GPT-4o, GPT-4o-mini, and more",
			Available:   openai,
			Configured:  openai,
		},
		{
			ID:          IDAzure,
			Name:        "Azure OpenAI",
			Description: "Enterprise-grade OpenAI via Microsoft Azure",
			Available:   azure,
			Configured:  azure,
		},
		{
			ID:          IDOllama,
			Name:        "Ollama (Local)",
			Description: "Run models locally — full privacy",
			Available:   ollama,
			Configured:  ollama,
		},
	}
}

// Get returns the catalog entry for id.
func (r *Registry) Get(id string) (Info, error) {
	for _, info := range r.List() {
		if info.ID == id {
			return info, nil
		}
	}
	return Info{}, fmt.Errorf("%w: %s", ErrProviderNotFound, id)
}

// Flags maps each backend ID to whether it is configured.
func (r *Registry) Flags() map[string]bool {
	list := r.List()
	flags := make(map[string]bool, len(list))
	for _, info := range list {
		flags[info.ID] = info.Configured
	}
	return flags
}
