package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/resumatehq/resumate/internal/prompts"
)

const promptFile = "suggestions.json"

// Suggester produces resume text suggestions through a Client. There is no
// structured contract with the model: responses are treated as plain text,
// one suggestion per line, and cleaned up here before callers insert them
// into section content through normal store mutations.
type Suggester struct {
	client Client
}

// NewSuggester wraps a client.
func NewSuggester(client Client) *Suggester {
	return &Suggester{client: client}
}

// SummaryInput describes the summary being drafted.
type SummaryInput struct {
	JobTitle string
	Existing string
	Skills   []string
}

// Summaries suggests alternative professional summaries.
func (s *Suggester) Summaries(ctx context.Context, in SummaryInput) ([]string, error) {
	prompt := prompts.Format(prompts.MustGet(promptFile, "summary"), map[string]string{
		"JobTitle": in.JobTitle,
		"Existing": in.Existing,
		"Skills":   strings.Join(in.Skills, ", "),
	})
	return s.generateLines(ctx, prompt, TierStandard)
}

// BulletsInput describes the experience entry being improved.
type BulletsInput struct {
	Company  string
	Position string
	Existing []string
}

// ExperienceBullets suggests achievement-oriented bullet points for one
// experience entry.
func (s *Suggester) ExperienceBullets(ctx context.Context, in BulletsInput) ([]string, error) {
	prompt := prompts.Format(prompts.MustGet(promptFile, "experience_bullets"), map[string]string{
		"Company":  in.Company,
		"Position": in.Position,
		"Existing": strings.Join(in.Existing, "\n"),
	})
	return s.generateLines(ctx, prompt, TierStandard)
}

// Skills suggests additional skills for a target role.
func (s *Suggester) Skills(ctx context.Context, jobTitle string, existing []string) ([]string, error) {
	prompt := prompts.Format(prompts.MustGet(promptFile, "skills"), map[string]string{
		"JobTitle": jobTitle,
		"Existing": strings.Join(existing, ", "),
	})
	return s.generateLines(ctx, prompt, TierLite)
}

// Rewrite rewrites a block of section text.
func (s *Suggester) Rewrite(ctx context.Context, section, text string) (string, error) {
	prompt := prompts.Format(prompts.MustGet(promptFile, "section_rewrite"), map[string]string{
		"Section":  section,
		"Existing": text,
	})
	out, err := s.client.GenerateContent(ctx, prompt, TierStandard)
	if err != nil {
		return "", fmt.Errorf("failed to rewrite text: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (s *Suggester) generateLines(ctx context.Context, prompt string, tier ModelTier) ([]string, error) {
	out, err := s.client.GenerateContent(ctx, prompt, tier)
	if err != nil {
		return nil, fmt.Errorf("failed to generate suggestions: %w", err)
	}
	lines := SplitSuggestions(out)
	if len(lines) == 0 {
		return nil, fmt.Errorf("model returned no usable suggestions")
	}
	return lines, nil
}

// SplitSuggestions turns a raw model response into clean suggestion lines.
// Models often ignore formatting instructions, so leading bullets, numbering,
// and surrounding whitespace are stripped here.
func SplitSuggestions(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•")
		line = trimNumbering(line)
		line = strings.TrimSpace(line)
		if line == "" || line == "```" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// trimNumbering strips a leading "1." / "2)" style list marker.
func trimNumbering(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return line
	}
	if line[i] == '.' || line[i] == ')' {
		return line[i+1:]
	}
	return line
}
