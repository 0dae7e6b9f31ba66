package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/mbalaz/dennyzen/internal/constants"
	"github.com/mbalaz/dennyzen/internal/logger"
	"github.com/mbalaz/dennyzen/internal/models"
)

// itemSchema constrains one generated inspiration to exactly the three
// required string fields.
var itemSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"motto":      {Type: genai.TypeString, Description: constants.MottoDescription},
		"thought":    {Type: genai.TypeString, Description: constants.ThoughtDescription},
		"motivation": {Type: genai.TypeString, Description: constants.MotivationDescription},
	},
	Required: []string{"motto", "thought", "motivation"},
}

// batchSchema is the top-level response shape: an array of items.
var batchSchema = &genai.Schema{
	Type:  genai.TypeArray,
	Items: itemSchema,
}

// Gemini is the Client implementation backed by the Gemini API. The
// underlying SDK client is constructed lazily on first use and owned by this
// value for the lifetime of the process; callers inject a Gemini instance
// rather than reaching for a shared global.
type Gemini struct {
	resolveKey func() (string, error)
	client     *genai.Client
}

// NewGemini returns a provider whose API key is resolved through resolveKey
// on first use. Resolution is deferred so that commands which never call the
// provider do not require a key at all.
func NewGemini(resolveKey func() (string, error)) *Gemini {
	return &Gemini{resolveKey: resolveKey}
}

func (g *Gemini) init(ctx context.Context) error {
	if g.client != nil {
		return nil
	}

	key, err := g.resolveKey()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMissingCredential, err)
	}
	if key == "" {
		return ErrMissingCredential
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	g.client = client

	return nil
}

// FetchBatch issues one generation request and parses the structured result.
// A single attempt per call; every failure is classified and returned
// unchanged to the caller.
func (g *Gemini) FetchBatch(ctx context.Context) (models.Batch, error) {
	if err := g.init(ctx); err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		ResponseSchema:    batchSchema,
		SystemInstruction: genai.NewContentFromText(constants.SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](constants.Temperature),
	}

	logger.Debug("Requesting inspiration batch", "model", constants.GenerationModel, "count", constants.BatchSize)

	resp, err := g.client.Models.GenerateContent(ctx, constants.GenerationModel, genai.Text(constants.Prompt), config)
	if err != nil {
		return nil, classifyAPIError(err)
	}

	text := resp.Text()
	if text == "" {
		return nil, ErrEmptyResponse
	}

	batch, err := ParseBatch([]byte(text))
	if err != nil {
		return nil, err
	}

	logger.Debug("Received inspiration batch", "items", len(batch))
	return batch, nil
}

// ParseBatch validates the raw JSON response: an ordered, non-empty array of
// objects each carrying the three required non-empty string fields.
func ParseBatch(data []byte) (models.Batch, error) {
	var batch models.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}

	if len(batch) == 0 {
		return nil, ErrEmptyResponse
	}

	for i, item := range batch {
		if item.Motto == "" || item.Thought == "" || item.Motivation == "" {
			return nil, fmt.Errorf("%w: item %d is missing a required field", ErrSchemaMismatch, i)
		}
	}

	return batch, nil
}

func classifyAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrMissingCredential, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
