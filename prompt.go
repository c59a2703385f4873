package repurpose

import (
	"fmt"
	"strings"
)

// GenerationRequest is the input to BuildPrompt.
type GenerationRequest struct {
	SourceContent  string   `json:"content"`
	SourcePlatform Platform `json:"platform"`

	// Author is optional; empty means no attribution.
	Author string `json:"author,omitempty"`
}

// PromptRules holds the formatting targets written into the prompt.
// They are instructions to the model; returned variations are not checked
// against them.
type PromptRules struct {
	MinWords    int `yaml:"min_words" validate:"gt=0"`
	MaxWords    int `yaml:"max_words" validate:"gtfield=MinWords"`
	MinHashtags int `yaml:"min_hashtags" validate:"gte=0"`
	MaxHashtags int `yaml:"max_hashtags" validate:"gtefield=MinHashtags"`
}

// DefaultPromptRules returns a 150-300 word band and 2-5 hashtags.
func DefaultPromptRules() PromptRules {
	return PromptRules{
		MinWords:    150,
		MaxWords:    300,
		MinHashtags: 2,
		MaxHashtags: 5,
	}
}

// VariationStyle describes the voice requested for one variation.
type VariationStyle struct {
	Name        string
	Approach    string
	Description string
}

// VariationStyles are the styles requested for variations 1-3, in order.
var VariationStyles = [VariationCount]VariationStyle{
	{Name: "Storytelling", Approach: "Storytelling approach", Description: "personal, narrative-driven"},
	{Name: "Analytical", Approach: "Analytical approach", Description: "data-driven, insights-focused"},
	{Name: "Conversational", Approach: "Conversational approach", Description: "casual, question-driven"},
}

// BuildPrompt renders the instruction sent to the generation backend.
// The source content is embedded verbatim between "---" delimiters and the
// answer is required to use VariationMarker sections in order.
// BuildPrompt is pure: identical inputs produce identical output.
func BuildPrompt(req GenerationRequest, rules PromptRules) string {
	var sb strings.Builder

	sb.WriteString("You are an expert content strategist specializing in LinkedIn content creation.\n\n")

	fmt.Fprintf(&sb, "I have a post from %s", req.SourcePlatform.Upper())
	if req.Author != "" {
		fmt.Fprintf(&sb, " by %s", req.Author)
	}
	sb.WriteString(" that I want to repurpose for LinkedIn.\n\n")

	sb.WriteString("Original content:\n---\n")
	sb.WriteString(req.SourceContent)
	sb.WriteString("\n---\n\n")

	fmt.Fprintf(&sb, "Please create %d different variations of this content optimized for LinkedIn. Each variation should:\n\n", VariationCount)
	sb.WriteString("1. Be professional yet engaging\n")
	sb.WriteString("2. Maintain the core message and insights from the original\n")
	sb.WriteString("3. Use LinkedIn-appropriate formatting (short paragraphs, line breaks for readability)\n")
	fmt.Fprintf(&sb, "4. Include relevant hashtags (%d-%d hashtags)\n", rules.MinHashtags, rules.MaxHashtags)
	sb.WriteString("5. Have a strong hook in the first line\n")
	fmt.Fprintf(&sb, "6. Be between %d-%d words\n", rules.MinWords, rules.MaxWords)
	sb.WriteString("7. Have a clear call-to-action or thought-provoking question at the end\n\n")

	sb.WriteString("Make each variation distinct in style:\n")
	for i, style := range VariationStyles {
		fmt.Fprintf(&sb, "- **Variation %d**: %s (%s)\n", i+1, style.Approach, style.Description)
	}
	sb.WriteString("\nFormat your response EXACTLY as follows:\n\n")

	ordinals := [VariationCount]string{"first", "second", "third"}
	for i := range VariationCount {
		fmt.Fprintf(&sb, "%s %d:\n[Your %s LinkedIn post here]\n\n", VariationMarker, i+1, ordinals[i])
	}

	fmt.Fprintf(&sb, "Do not include any additional text outside of these %d variations.", VariationCount)

	return sb.String()
}
