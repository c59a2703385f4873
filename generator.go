package repurpose

import "context"

// GenerateParams controls a single generation call.
type GenerateParams struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

// DefaultGenerateParams returns the parameters used for post rewrites.
func DefaultGenerateParams() GenerateParams {
	return GenerateParams{
		MaxOutputTokens: 2000,
		Temperature:     0.7,
	}
}

// Generator sends a prompt to a text-generation backend and returns the raw
// answer. No structure is guaranteed in the returned text.
type Generator interface {
	// Generate makes a single attempt; there is no retry.
	// Returns EUNAVAILABLE if the backend cannot be reached, ETIMEOUT if it
	// does not answer in time, and EUNAUTHORIZED if credentials are rejected.
	Generate(ctx context.Context, prompt string, params GenerateParams) (string, error)
}
