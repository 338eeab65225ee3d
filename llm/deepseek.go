package llm

import "context"

// deepSeekProvider implements Provider for the DeepSeek API.
// DeepSeek uses the OpenAI-compatible API format.
//
// API key: set via config or the DEEPSEEK_API_KEY env var (resolved by
// the caller).
type deepSeekProvider struct {
	base openAICompatClient
}

// NewDeepSeek creates a provider for DeepSeek.
func NewDeepSeek(cfg Config) Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.deepseek.com"
	}
	if cfg.Model == "" {
		cfg.Model = "deepseek-chat"
	}
	return &deepSeekProvider{base: newOpenAICompatClientPrefix(cfg, "")}
}

func (p *deepSeekProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	return p.base.chat(ctx, req)
}
