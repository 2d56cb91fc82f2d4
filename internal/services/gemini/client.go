// -----------------------------------------------------------------------
// Gemini Retrieval Service - File Search stores, uploads, imports, and
// grounded generation via the Google Gemini API
// -----------------------------------------------------------------------

package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/ternarybob/liber/internal/common"
	"github.com/ternarybob/liber/internal/interfaces"
	"github.com/ternarybob/liber/internal/models"
)

const pdfMIMEType = "application/pdf"

// Client implements the RetrievalService interface against the Gemini File
// Search API. It is the only component that touches the genai SDK; everything
// above it works with the models types.
type Client struct {
	config  *common.GeminiConfig
	logger  arbor.ILogger
	genai   *genai.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// Compile-time interface assertion
var _ interfaces.RetrievalService = (*Client)(nil)

// NewClient creates a new Gemini retrieval client.
//
// Requires a Gemini API key in the configuration (models.ErrConfig when
// absent). Generation calls are rate limited at the configured minimum
// interval; every remote call is bounded by the configured timeout.
func NewClient(ctx context.Context, config *common.Config, logger arbor.ILogger) (*Client, error) {
	if config.Gemini.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required (set LIBER_GEMINI_API_KEY, GEMINI_API_KEY, or gemini.api_key in config): %w", models.ErrConfig)
	}

	timeout, err := time.ParseDuration(config.Gemini.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration %q: %w", config.Gemini.Timeout, err)
	}

	rateInterval, err := time.ParseDuration(config.Gemini.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit duration %q: %w", config.Gemini.RateLimit, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	logger.Info().
		Str("model", config.Gemini.Model).
		Dur("timeout", timeout).
		Dur("rate_limit", rateInterval).
		Msg("Gemini retrieval client initialized")

	return &Client{
		config:  &config.Gemini,
		logger:  logger,
		genai:   client,
		limiter: rate.NewLimiter(rate.Every(rateInterval), 1),
		timeout: timeout,
	}, nil
}

// GetStore fetches a file search store by its full identifier.
func (c *Client) GetStore(ctx context.Context, id string) (*models.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	store, err := c.genai.FileSearchStores.Get(ctx, id, nil)
	if err != nil {
		return nil, c.classify("get file search store "+id, err)
	}

	return &models.Store{ID: store.Name, DisplayName: store.DisplayName}, nil
}

// CreateStore provisions a new file search store; the service assigns the
// identifier.
func (c *Client) CreateStore(ctx context.Context, displayName string) (*models.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	store, err := c.genai.FileSearchStores.Create(ctx, &genai.CreateFileSearchStoreConfig{
		DisplayName: displayName,
	})
	if err != nil {
		return nil, c.classify("create file search store", err)
	}

	return &models.Store{ID: store.Name, DisplayName: store.DisplayName}, nil
}

// UploadFile uploads the raw PDF bytes under the requested resource name and
// returns the opaque file identifier.
func (c *Client) UploadFile(ctx context.Context, path, resourceName, displayName string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %v: %w", path, err, models.ErrValidation)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	file, err := c.genai.Files.Upload(ctx, f, &genai.UploadFileConfig{
		Name:        resourceName,
		DisplayName: displayName,
		MIMEType:    pdfMIMEType,
	})
	if err != nil {
		return "", c.classify("upload file "+resourceName, err)
	}

	c.logger.Debug().
		Str("file", file.Name).
		Str("display_name", displayName).
		Msg("File uploaded")

	return file.Name, nil
}

// ImportFile submits an asynchronous import of an uploaded file into a store.
func (c *Client) ImportFile(ctx context.Context, storeID, fileID string, metadata []models.MetadataEntry) (*models.ImportOperation, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	custom := make([]*genai.CustomMetadata, 0, len(metadata))
	for _, entry := range metadata {
		custom = append(custom, &genai.CustomMetadata{
			Key:         entry.Key,
			StringValue: entry.StringValue,
		})
	}

	op, err := c.genai.FileSearchStores.ImportFile(ctx, storeID, fileID, &genai.ImportFileConfig{
		CustomMetadata: custom,
	})
	if err != nil {
		return nil, c.classify("import file "+fileID, err)
	}

	return importOperationModel(op), nil
}

// RefreshOperation fetches the current state of an import operation.
func (c *Client) RefreshOperation(ctx context.Context, op *models.ImportOperation) (*models.ImportOperation, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	refreshed, err := c.genai.Operations.GetImportFileOperation(ctx, &genai.ImportFileOperation{Name: op.Name}, nil)
	if err != nil {
		return nil, c.classify("get operation "+op.Name, err)
	}

	return importOperationModel(refreshed), nil
}

// GenerateGrounded issues one grounded generation request against the named
// stores with the given metadata filter, shaping the SDK response into the
// explicit optional structure the query engine consumes.
func (c *Client) GenerateGrounded(ctx context.Context, prompt string, storeIDs []string, metadataFilter string) (*models.GenerationResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fileSearch := &genai.FileSearch{
		FileSearchStoreNames: storeIDs,
	}
	if metadataFilter != "" {
		fileSearch.MetadataFilter = metadataFilter
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.config.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{FileSearch: fileSearch}},
	})
	if err != nil {
		return nil, c.classify("grounded generation", err)
	}

	return generationResponseModel(resp), nil
}

// classify maps a genai SDK error onto the models error taxonomy by HTTP
// status code: 401/403 auth, 404 not found, everything else transient.
func (c *Client) classify(operation string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		sentinel := models.ErrTransient
		switch apiErr.Code {
		case http.StatusNotFound:
			sentinel = models.ErrNotFound
		case http.StatusUnauthorized, http.StatusForbidden:
			sentinel = models.ErrAuth
		}
		return fmt.Errorf("%s: %s: %w", operation, apiErr.Message, sentinel)
	}
	return fmt.Errorf("%s: %v: %w", operation, err, models.ErrTransient)
}

// importOperationModel shapes an SDK import operation into the models handle,
// preserving the terminal error state so callers never mistake a failed
// terminal operation for success.
func importOperationModel(op *genai.ImportFileOperation) *models.ImportOperation {
	m := &models.ImportOperation{
		Name: op.Name,
		Done: op.Done,
	}
	if len(op.Error) > 0 {
		m.Failed = true
		m.FailureMessage = operationErrorMessage(op.Error)
	}
	return m
}

// operationErrorMessage extracts a human-readable message from an operation
// error payload, falling back to the raw payload.
func operationErrorMessage(payload map[string]any) string {
	if msg, ok := payload["message"].(string); ok && msg != "" {
		return msg
	}
	return fmt.Sprintf("%v", payload)
}

// generationResponseModel shapes an SDK generation response, walking the
// first candidate's grounding chunks with explicit presence checks.
func generationResponseModel(resp *genai.GenerateContentResponse) *models.GenerationResponse {
	out := &models.GenerationResponse{}
	if resp == nil {
		return out
	}

	out.Text = resp.Text()

	if len(resp.Candidates) == 0 {
		return out
	}
	metadata := resp.Candidates[0].GroundingMetadata
	if metadata == nil {
		return out
	}

	for _, chunk := range metadata.GroundingChunks {
		if chunk == nil {
			continue
		}
		shaped := models.GroundingChunk{}
		if rc := chunk.RetrievedContext; rc != nil {
			shaped.RetrievedContext = &models.RetrievedContext{
				Title: rc.Title,
				Text:  rc.Text,
			}
		}
		out.Chunks = append(out.Chunks, shaped)
	}

	return out
}
