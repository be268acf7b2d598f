package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// transcribePrompt asks the model for a verbatim transcription. The engine
// boundary stays a pure transduction: no extraction or summarizing here.
const transcribePrompt = `You are transcribing a scanned store receipt. Read every line of text in the image from top to bottom and return it exactly as printed, one receipt line per output line. Preserve the ordering, the spacing between columns, item codes, and prices. Do not summarize, interpret, translate, or reformat anything. Do not wrap the output in markdown code blocks.`

// Gemini implements the Engine interface using Google Gemini as a cloud
// recognizer, for hosts without a local Tesseract installation.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a new Gemini Engine instance
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-pro"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Recognize sends the bitmap to Gemini and returns the transcription
func (g *Gemini) Recognize(ctx context.Context, img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("%w: encoding bitmap: %v", ErrEngine, err)
	}

	parts := []genai.Part{
		genai.ImageData("png", buf.Bytes()),
		genai.Text(transcribePrompt),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("%w: generating content: %v", ErrEngine, err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no response from gemini", ErrEngine)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	// Strip markdown fences in case the model adds them anyway
	text := strings.TrimSpace(sb.String())
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	return strings.TrimSpace(text), nil
}

// Close closes the Gemini client
func (g *Gemini) Close() error {
	return g.client.Close()
}
