package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Finding is one structured result from the automated document review.
type Finding struct {
	Field        string `json:"field"`
	Severity     string `json:"severity"`
	Message      string `json:"message"`
	SuggestedFix string `json:"suggested_fix,omitempty"`
}

var findingSeverities = map[string]bool{
	"critical": true,
	"major":    true,
	"minor":    true,
	"info":     true,
}

// Validator reviews a submitted document and returns structured findings.
type Validator interface {
	Validate(ctx context.Context, formType, documentPath string) ([]Finding, error)
}

// GenAIValidator validates documents through a generative-AI chat endpoint.
// The base URL is configurable so the Gemini OpenAI-compatible endpoint and
// OpenAI proper are interchangeable.
type GenAIValidator struct {
	client   openai.Client
	model    string
	rulesDir string
}

// NewGenAIValidator builds a validator from GENAI_API_KEY, GENAI_BASE_URL,
// GENAI_MODEL and GENAI_RULES_DIR.
func NewGenAIValidator() *GenAIValidator {
	opts := []option.RequestOption{
		option.WithAPIKey(os.Getenv("GENAI_API_KEY")),
	}
	if baseURL := os.Getenv("GENAI_BASE_URL"); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	model := os.Getenv("GENAI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}

	rulesDir := os.Getenv("GENAI_RULES_DIR")
	if rulesDir == "" {
		rulesDir = "rules"
	}

	return &GenAIValidator{
		client:   openai.NewClient(opts...),
		model:    model,
		rulesDir: rulesDir,
	}
}

const fallbackPrompt = `You are a document reviewer for a student activity portal.
Review the attached form and respond ONLY with a JSON array of findings,
each shaped as {"field": string, "severity": "critical"|"major"|"minor"|"info",
"message": string, "suggested_fix": string}. Respond with [] when the
document is acceptable.`

// systemPrompt loads the per-form-type review rules (rules/sap.md or
// rules/asf.md), falling back to the built-in prompt.
func (v *GenAIValidator) systemPrompt(formType string) string {
	name := strings.ToLower(formType) + ".md"
	data, err := os.ReadFile(filepath.Join(v.rulesDir, name))
	if err != nil {
		log.Printf("Validation rules file %s not readable, using fallback prompt: %v", name, err)
		return fallbackPrompt
	}
	return string(data)
}

// Validate sends the document to the model and coerces the reply into
// findings. Any response that cannot be coerced is an error; the caller
// decides how failure degrades.
func (v *GenAIValidator) Validate(ctx context.Context, formType, documentPath string) ([]Finding, error) {
	data, err := os.ReadFile(documentPath)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	userMessage := fmt.Sprintf(
		"Form type: %s\nDocument (base64-encoded PDF):\n%s",
		formType, base64.StdEncoding.EncodeToString(data),
	)

	completion, err := v.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(v.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(v.systemPrompt(formType)),
			openai.UserMessage(userMessage),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}

	return ParseFindings(completion.Choices[0].Message.Content)
}

// ParseFindings coerces a model reply into findings. Accepted shapes are a
// bare JSON array and an object carrying a "comments" array; markdown code
// fences are stripped first. Findings with an unknown severity are logged
// and discarded.
func ParseFindings(reply string) ([]Finding, error) {
	cleaned := strings.TrimSpace(reply)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var findings []Finding
	if err := json.Unmarshal([]byte(cleaned), &findings); err != nil {
		var wrapped struct {
			Comments []Finding `json:"comments"`
		}
		if err := json.Unmarshal([]byte(cleaned), &wrapped); err != nil || wrapped.Comments == nil {
			return nil, fmt.Errorf("response not coercible to findings: %q", truncate(cleaned, 200))
		}
		findings = wrapped.Comments
	}

	kept := findings[:0]
	for _, f := range findings {
		if !findingSeverities[f.Severity] {
			log.Printf("Discarding finding with invalid severity %q (field %q)", f.Severity, f.Field)
			continue
		}
		kept = append(kept, f)
	}
	return kept, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
