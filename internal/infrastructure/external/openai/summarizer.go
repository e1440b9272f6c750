package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/gen2brain/go-fitz"

	"github.com/facultyops/renewal-workflow/internal/application/port"
)

// Summarizer implements port.DocumentSummarizer using the OpenAI Vision
// API. Dossiers arrive as scanned PDFs, so pages are rendered to images
// rather than relying on an embedded text layer.
type Summarizer struct {
	client      *openai.Client
	model       string
	temperature float32
	maxPages    int
	logger      *zap.Logger
}

// NewSummarizer creates a new document summarizer
func NewSummarizer(apiKey, model string, temperature float32, maxPages int, logger *zap.Logger) *Summarizer {
	if maxPages <= 0 {
		maxPages = 4
	}
	return &Summarizer{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: temperature,
		maxPages:    maxPages,
		logger:      logger,
	}
}

// Summarize produces a short review summary of the document at the given path
func (s *Summarizer) Summarize(ctx context.Context, documentPath string) (string, error) {
	s.logger.Info("Summarizing document", zap.String("path", documentPath))

	images, err := s.renderPages(documentPath)
	if err != nil {
		s.logger.Error("Failed to render document pages", zap.Error(err))
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	if len(images) == 0 {
		return "", fmt.Errorf("no pages rendered from %s", documentPath)
	}
	if len(images) > s.maxPages {
		images = images[:s.maxPages]
	}

	contentParts := []openai.ChatMessagePart{{
		Type: openai.ChatMessagePartTypeText,
		Text: s.buildPrompt(),
	}}
	for i, imgData := range images {
		base64Img := base64.StdEncoding.EncodeToString(imgData)
		contentParts = append(contentParts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    fmt.Sprintf("data:image/jpeg;base64,%s", base64Img),
				Detail: openai.ImageURLDetailHigh,
			},
		})
		s.logger.Debug("Added page to request", zap.Int("page", i+1), zap.Int("size_bytes", len(imgData)))
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   1024,
		Temperature: s.temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an academic affairs assistant. You summarize faculty personnel documents for approvers who have limited time. Be factual and concise; never invent details that are not in the document.",
			},
			{
				Role:         openai.ChatMessageRoleUser,
				MultiContent: contentParts,
			},
		},
	})
	if err != nil {
		s.logger.Error("OpenAI API call failed", zap.Error(err))
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	s.logger.Info("Document summarized",
		zap.String("path", documentPath),
		zap.Int("summary_length", len(summary)))
	return summary, nil
}

// renderPages converts document pages to JPEG images using mupdf
func (s *Summarizer) renderPages(path string) ([][]byte, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("document not found: %s", path)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".pdf" {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var images [][]byte
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		img, err := doc.Image(pageNum)
		if err != nil {
			s.logger.Warn("Failed to render page",
				zap.Int("page", pageNum),
				zap.Error(err))
			continue
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			s.logger.Warn("Failed to encode page",
				zap.Int("page", pageNum),
				zap.Error(err))
			continue
		}
		images = append(images, buf.Bytes())
	}
	return images, nil
}

func (s *Summarizer) buildPrompt() string {
	return `Summarize this faculty personnel document for the approval chain.

Cover, in at most 200 words:
- What kind of document this is (dossier, evaluation, resignation letter, etc.)
- The key facts: names, dates, positions, stated reasons
- Anything an approver should look at closely before deciding

Write plain prose, no headings or bullet lists.`
}

// Verify interface compliance
var _ port.DocumentSummarizer = (*Summarizer)(nil)
