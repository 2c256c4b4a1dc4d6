package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"planit/internal/types"
)

// GeminiProvider implements Generator using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	opts   Options
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string, opts Options) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if opts.Model == "" {
		opts.Model = DefaultOptions().Model
	}
	return &GeminiProvider{client: client, opts: opts}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// Generate issues one request. Refinement requests replay History through a chat session
// so the backend sees the whole conversation.
func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Reply, error) {
	model := p.model(req)

	var (
		resp *genai.GenerateContentResponse
		err  error
	)
	if req.Mode == ModeRefinement {
		cs := model.StartChat()
		cs.History = toContents(req.History)
		resp, err = cs.SendMessage(ctx, genai.Text(req.Prompt))
	} else {
		resp, err = model.GenerateContent(ctx, genai.Text(req.Prompt))
	}
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return nil, emptyResponse(blockReason(blocked))
		}
		return nil, transport(err)
	}
	return replyFromResponse(resp)
}

func (p *GeminiProvider) model(req Request) *genai.GenerativeModel {
	model := p.client.GenerativeModel(p.opts.Model)

	temperature, maxTokens := p.opts.ItineraryTemperature, p.opts.ItineraryMaxTokens
	if req.Mode == ModeIdeas {
		temperature, maxTokens = p.opts.IdeasTemperature, p.opts.IdeasMaxTokens
	}
	if req.Temperature != 0 {
		temperature = req.Temperature
	}
	if req.MaxOutputTokens != 0 {
		maxTokens = req.MaxOutputTokens
	}
	model.SetTemperature(temperature)
	if maxTokens > 0 {
		model.SetMaxOutputTokens(maxTokens)
	}

	if req.SystemInstruction != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemInstruction)}}
	}
	if req.Schema != nil {
		// Force JSON response for structured parsing.
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = req.Schema
	}
	return model
}

func toContents(turns []types.Turn) []*genai.Content {
	out := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		out = append(out, &genai.Content{
			Role:  string(t.Role),
			Parts: []genai.Part{genai.Text(t.Content)},
		})
	}
	return out
}

// replyFromResponse pulls the first candidate's text and citations out of resp.
func replyFromResponse(resp *genai.GenerateContentResponse) (*Reply, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, emptyResponse("")
	}
	cand := resp.Candidates[0]

	var text strings.Builder
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text.WriteString(string(txt))
			}
		}
	}

	reason := abnormalFinish(cand.FinishReason)
	if strings.TrimSpace(text.String()) == "" {
		return nil, emptyResponse(reason)
	}

	return &Reply{
		Text:         text.String(),
		Sources:      citations(cand),
		FinishReason: reason,
	}, nil
}

func citations(cand *genai.Candidate) []types.Source {
	if cand.CitationMetadata == nil {
		return nil
	}
	var out []types.Source
	for _, src := range cand.CitationMetadata.CitationSources {
		if src == nil {
			continue
		}
		var s types.Source
		if src.URI != nil {
			s.URI = *src.URI
		}
		out = append(out, s)
	}
	return out
}

// abnormalFinish is empty for a normal stop.
func abnormalFinish(r genai.FinishReason) string {
	switch r {
	case genai.FinishReasonUnspecified, genai.FinishReasonStop:
		return ""
	}
	return finishReasonName(r)
}

func finishReasonName(r genai.FinishReason) string {
	switch r {
	case genai.FinishReasonMaxTokens:
		return "MAX_TOKENS"
	case genai.FinishReasonSafety:
		return "SAFETY"
	case genai.FinishReasonRecitation:
		return "RECITATION"
	case genai.FinishReasonOther:
		return "OTHER"
	}
	return r.String()
}

func blockReason(b *genai.BlockedError) string {
	if b.Candidate != nil {
		if r := abnormalFinish(b.Candidate.FinishReason); r != "" {
			return r
		}
	}
	if b.PromptFeedback != nil {
		return b.PromptFeedback.BlockReason.String()
	}
	return "BLOCKED"
}
