package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ModelClient is the single external-model collaborator: prompt in,
// raw text out. Implementations surface provider failures as the
// tagged errors in errors.go.
type ModelClient interface {
	Generate(ctx context.Context, system string, parts []PromptPart) (string, error)
}

type GeminiClient struct {
	client    *genai.Client
	modelName string
	maxTokens int32
}

func NewGeminiClient(apiKey, modelName string, maxTokens int) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
		maxTokens: int32(maxTokens),
	}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// Generate issues exactly one generation call. No retry here; retry
// policy belongs to the caller.
func (c *GeminiClient) Generate(ctx context.Context, system string, parts []PromptPart) (string, error) {
	model := c.client.GenerativeModel(c.modelName)
	model.SetTemperature(0.3)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(c.maxTokens)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	genParts := make([]genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.ImageURL != "" {
			genParts = append(genParts, genai.FileData{MIMEType: imageMIMEType(p.ImageURL), URI: p.ImageURL})
			continue
		}
		genParts = append(genParts, genai.Text(p.Text))
	}

	resp, err := model.GenerateContent(ctx, genParts...)
	if err != nil {
		return "", classifyModelError(err)
	}

	return extractText(resp), nil
}

// imageMIMEType maps a delivery URL's extension to its MIME type.
// Cloudinary URLs keep the uploaded format's extension; JPEG is the
// fallback for anything unrecognized.
func imageMIMEType(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "image/jpeg"
	}
	switch strings.ToLower(path.Ext(u.Path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".heic":
		return "image/heic"
	default:
		return "image/jpeg"
	}
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

// classifyModelError converts a provider failure into the service
// error taxonomy at the boundary, so nothing downstream inspects
// status codes or error strings.
func classifyModelError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Message: "AI processing timed out; reduce the content length or image count"}
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == 429:
			return &RateLimitError{Message: "AI service request limit exceeded; try again shortly"}
		case gerr.Code == 408:
			return &TimeoutError{Message: "AI processing timed out; reduce the content length or image count"}
		case gerr.Code >= 400 && gerr.Code < 500:
			return &AIAPIError{Message: "AI analysis failed; check the input content", StatusCode: gerr.Code}
		}
	}

	return fmt.Errorf("Gemini API error: %w", err)
}
