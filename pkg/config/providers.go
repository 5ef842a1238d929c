package config

import "os"

// ProvidersConfig names the environment variables that mark each real
// backend as configured. Credentials themselves are never stored here.
type ProvidersConfig struct {
	OpenAI OpenAIConfig `yaml:"openai"`
	Azure  AzureConfig  `yaml:"azure"`
	Ollama OllamaConfig `yaml:"ollama"`
}

// OpenAIConfig describes the OpenAI backend.
type OpenAIConfig struct {
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model,omitempty"`
}

// AzureConfig describes the Azure OpenAI backend. Both endpoint and key are required.
type AzureConfig struct {
	EndpointEnv string `yaml:"endpoint_env"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Deployment  string `yaml:"deployment,omitempty"`
}

// OllamaConfig describes a local Ollama backend.
type OllamaConfig struct {
	BaseURLEnv string `yaml:"base_url_env"`
	Model      string `yaml:"model,omitempty"`
}

// Configured reports whether the API key variable is set.
func (c OpenAIConfig) Configured() bool {
	return envSet(c.APIKeyEnv)
}

// Configured reports whether both the endpoint and key variables are set.
func (c AzureConfig) Configured() bool {
	return envSet(c.EndpointEnv) && envSet(c.APIKeyEnv)
}

// Configured reports whether the base URL variable is set.
func (c OllamaConfig) Configured() bool {
	return envSet(c.BaseURLEnv)
}

func envSet(name string) bool {
	return name != "" && os.Getenv(name) != ""
}
