// Package ai provides the suggestion service backed by an LLM. The editing
// handlers treat it as an opaque text generator: prompts go in, plain lines
// of suggestions come out.
package ai

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for quick suggestions: skills, short rewrites
	TierLite ModelTier = "lite"
	// TierStandard is for prose generation: summaries, bullet points
	TierStandard ModelTier = "standard"
)

// Config holds the model configuration for the suggestion service
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model mapping
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
	}
}

// GetModel returns the model name for a given tier, falling back through the
// tiers when one is not configured
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
