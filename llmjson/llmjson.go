// Package llmjson recovers structured JSON payloads from free-text
// model output. Model responses routinely wrap the payload in markdown
// fences or surround it with commentary; every pipeline stage funnels
// its response through this package instead of parsing raw text.
package llmjson

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/orange24122/extraction/llm"
)

// ExtractFirst returns the substring holding the first syntactically
// balanced top-level JSON object or array in text, after stripping
// markdown code-fence markers. It reports false when no balanced value
// exists: a close bracket that does not match the innermost open
// bracket aborts recovery rather than guessing a repair, and an
// unterminated structure is not a value.
func ExtractFirst(text string) (string, bool) {
	s := stripFence(text)

	objIdx := strings.IndexByte(s, '{')
	arrIdx := strings.IndexByte(s, '[')
	start := objIdx
	if start == -1 || (arrIdx != -1 && arrIdx < start) {
		start = arrIdx
	}
	if start == -1 {
		return "", false
	}

	var stack []byte
	for i := start; i < len(s); i++ {
		switch c := s[i]; c {
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) == 0 {
				return "", false
			}
			last := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if (last == '{' && c != '}') || (last == '[' && c != ']') {
				return "", false
			}
			if len(stack) == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// stripFence removes a leading ``` marker (with optional language tag)
// and trims stray backticks and whitespace from both ends.
func stripFence(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = s[3:]
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
	}
	return strings.Trim(s, "` \n")
}

// Caller bundles a model provider with the prompt framing and
// diagnostics shared by every structured oracle call in the pipeline.
type Caller struct {
	Provider    llm.Provider
	Model       string
	System      string
	Temperature float64
	Dumps       *Dumper
}

// Call sends prompt to the provider and decodes the first JSON value of
// the response into v. A transport failure, unrecoverable response, or
// strict-parse failure is returned as an error; the caller decides
// whether that degrades to an empty stage result.
func (c *Caller) Call(ctx context.Context, prompt string, v any) error {
	resp, err := c.Provider.Chat(ctx, llm.ChatRequest{
		Model: c.Model,
		Messages: []llm.Message{
			{Role: "system", Content: c.System},
			{Role: "user", Content: prompt},
		},
		Temperature: c.Temperature,
	})
	if err != nil {
		return fmt.Errorf("model call: %w", err)
	}
	return c.Decode(resp.Content, v)
}

// Decode extracts the first balanced JSON value from raw and strictly
// unmarshals it into v. The offending text is persisted for offline
// inspection before the failure is returned; it is never repaired.
func (c *Caller) Decode(raw string, v any) error {
	frag, ok := ExtractFirst(raw)
	if !ok {
		c.Dumps.Write("recover", raw)
		return fmt.Errorf("no balanced JSON value in model output")
	}
	if err := json.Unmarshal([]byte(frag), v); err != nil {
		c.Dumps.Write("parse", frag)
		return fmt.Errorf("parsing model output: %w", err)
	}
	return nil
}
