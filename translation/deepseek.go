package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"surveytranslator/config"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// fallback returned when the detection reply cannot be parsed as the
// expected JSON shape. Detection failure is common and recoverable, so
// it never fails the question.
var fallbackDetection = Detection{Language: "English", Confidence: 90}

// DeepSeekConfig holds the connection settings for the translation
// service. The endpoint is OpenAI-compatible, so any service speaking
// that protocol can be pointed at via BaseURL.
type DeepSeekConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// DeepSeek calls the DeepSeek chat-completion API for language detection
// and translation.
type DeepSeek struct {
	client *openai.Client
	model  string
}

// NewDeepSeek creates a client with a per-request timeout independent of
// any batch-level budget.
func NewDeepSeek(cfg DeepSeekConfig) (*DeepSeek, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = config.DefaultModel
	}

	client := openai.NewClient(
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(config.RequestTimeout),
	)

	return &DeepSeek{
		client: &client,
		model:  cfg.Model,
	}, nil
}

// NewDeepSeekFromEnv reads DEEPSEEK_API_KEY, DEEPSEEK_BASE_URL and
// DEEPSEEK_MODEL from the environment.
func NewDeepSeekFromEnv() (*DeepSeek, error) {
	return NewDeepSeek(DeepSeekConfig{
		BaseURL: config.GetEnvOrDefault("DEEPSEEK_BASE_URL", config.DefaultBaseURL),
		APIKey:  os.Getenv("DEEPSEEK_API_KEY"),
		Model:   config.GetEnvOrDefault("DEEPSEEK_MODEL", config.DefaultModel),
	})
}

// DetectLanguage asks the model for the source language of text.
func (d *DeepSeek) DetectLanguage(ctx context.Context, text string) (Detection, error) {
	prompt := fmt.Sprintf(`Analyze the following text and provide:
1. The detected language (language name in English)
2. A confidence score (0-100)
3. A brief reason for the confidence score

Text: %q

Respond in JSON format:
{
    "language": "detected_language_name",
    "confidence": confidence_score,
    "reason": "short_explanation"
}`, text)

	content, err := d.chat(ctx, prompt)
	if err != nil {
		return Detection{}, fmt.Errorf("language detection: %w", err)
	}

	return parseDetection(content), nil
}

// Translate asks the model for the English translation of text.
func (d *DeepSeek) Translate(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(`Translate the following text to English. Maintain the original meaning and tone.
If the text is already in English, return it unchanged.

Text: %q

Provide only the English translation, nothing else.`, text)

	content, err := d.chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("translation: %w", err)
	}

	return strings.TrimSpace(content), nil
}

// chat performs one completion request and returns the raw reply text.
func (d *DeepSeek) chat(ctx context.Context, prompt string) (string, error) {
	completion, err := d.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: d.model,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return completion.Choices[0].Message.Content, nil
}

// parseDetection extracts the detection JSON from a model reply. Models
// wrap JSON in code fences or prose often enough that the parser works
// from the outermost brace pair; anything unparseable yields the fixed
// fallback.
func parseDetection(content string) Detection {
	raw := extractJSON(content)
	if raw == "" {
		return fallbackDetection
	}

	var parsed struct {
		Language   string  `json:"language"`
		Confidence float64 `json:"confidence"`
		Reason     string  `json:"reason"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil || parsed.Language == "" {
		return fallbackDetection
	}

	return Detection{
		Language:   parsed.Language,
		Confidence: normalizeConfidence(parsed.Confidence),
		Reason:     parsed.Reason,
	}
}

// extractJSON returns the outermost brace-delimited span of content.
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return ""
	}
	return content[start : end+1]
}

// normalizeConfidence maps a raw confidence value to an integer percent.
// The upstream service is not contractually consistent about
// percent-vs-fraction: values at or below 1.0 are treated as fractions
// and scaled, everything else is truncated directly. The epsilon guards
// against float artifacts like 0.87*100 == 86.999....
func normalizeConfidence(raw float64) int {
	if raw <= 1.0 {
		raw *= 100
	}
	n := int(raw + 1e-6)
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
