package engine

import (
	"fmt"
	"sort"

	"legalynx/internal/config"
	"legalynx/internal/domain"
	"legalynx/internal/port"
)

// ProviderFactory creates a ReasoningEngine from a provider config.
type ProviderFactory func(cfg *config.EngineProviderConfig) (port.ReasoningEngine, error)

// registry of engine provider factories, populated by init() in each provider package
// or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an engine provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// Providers returns the registered provider names in sorted order.
func Providers() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewEngine creates a ReasoningEngine from a provider config using the registered factory.
func NewEngine(cfg *config.EngineProviderConfig) (port.ReasoningEngine, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown engine provider: %s", cfg.Provider)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: missing API key for provider %s", domain.ErrEngineNotConfigured, cfg.Provider)
	}
	return factory(cfg)
}

// NewFromConfig builds the configured provider chain. A single provider is returned as is;
// several are wrapped in a FallbackEngine in primary, secondary, tertiary order.
func NewFromConfig(cfg *config.EngineConfig) (port.ReasoningEngine, error) {
	provCfgs := cfg.ProviderConfigs()

	engines := make([]port.ReasoningEngine, 0, len(provCfgs))
	names := make([]string, 0, len(provCfgs))
	for _, pc := range provCfgs {
		e, err := NewEngine(pc)
		if err != nil {
			return nil, err
		}
		engines = append(engines, e)
		names = append(names, pc.Provider)
	}

	if len(engines) == 1 {
		return engines[0], nil
	}
	return NewFallbackEngine(engines, names), nil
}
