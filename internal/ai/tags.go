package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type tagResult struct {
	Tags []string `json:"tags"`
}

// SuggestTags asks the model for tags describing a note. Existing tags
// are offered for reuse so the tag set stays small.
func (c *Client) SuggestTags(ctx context.Context, text string, existing []string) ([]string, error) {
	resp, err := c.Complete(ctx, tagPrompt(text, existing))
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}
	return parseTags(resp)
}

func tagPrompt(text string, existing []string) string {
	var sb strings.Builder

	sb.WriteString("Suggest tags for this note. Return JSON only.\n\n")
	sb.WriteString("Note:\n")
	sb.WriteString(text)
	sb.WriteString("\n\n")

	if len(existing) > 0 {
		sb.WriteString("Existing tags (prefer reusing these when appropriate):\n")
		for _, tag := range existing {
			sb.WriteString("- ")
			sb.WriteString(tag)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(`Return a JSON object with this structure:
{"tags": ["tag-one", "tag-two"]}

Rules:
- Use lowercase, hyphenated tag names
- Suggest 1-3 relevant tags
- Reuse existing tags when they fit

Return ONLY the JSON, no other text.`)

	return sb.String()
}

func parseTags(resp string) ([]string, error) {
	// Strip markdown code fences if present
	resp = strings.TrimSpace(resp)
	resp = strings.TrimPrefix(resp, "```json")
	resp = strings.TrimPrefix(resp, "```")
	resp = strings.TrimSuffix(resp, "```")
	resp = strings.TrimSpace(resp)

	var result tagResult
	if err := json.Unmarshal([]byte(resp), &result); err != nil {
		return nil, fmt.Errorf("parse json: %w (response: %s)", err, resp)
	}
	return result.Tags, nil
}
