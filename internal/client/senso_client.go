package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/promoforge/api/internal/config"
)

// KnowledgeRetriever defines the interface for knowledge-corpus lookups.
// Callers treat any failure as "no context available", never as fatal.
type KnowledgeRetriever interface {
	Query(ctx context.Context, query, instructions string, maxResults int) (*KnowledgeResult, error)
	IsConfigured() bool
}

// SensoClient talks to the Senso knowledge SDK
type SensoClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// KnowledgeResult is the synthesized answer plus its source references.
type KnowledgeResult struct {
	Output  string            `json:"output"`
	Sources []KnowledgeSource `json:"sources"`
}

// KnowledgeSource is one content reference backing a result.
type KnowledgeSource struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// CanonicalTopic is one topic within a taxonomy category.
type CanonicalTopic struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CanonicalCategory is one category of the knowledge taxonomy.
type CanonicalCategory struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Topics      []CanonicalTopic `json:"topics"`
}

// canonicalTaxonomy is the category/topic layout generation relies on for
// retrieval quality. SyncTaxonomy ensures it exists before first use.
var canonicalTaxonomy = []CanonicalCategory{
	{
		Name:   "Product Assets",
		Topics: []CanonicalTopic{{Name: "Product specifications", Description: "Tech specs, sheets"}},
	},
	{
		Name: "Marketing Content",
		Topics: []CanonicalTopic{
			{Name: "Taglines & slogans"},
			{Name: "Ad copy", Description: "Video scripts, web banners"},
			{Name: "Campaign briefs"},
		},
	},
}

// NewSensoClient creates a new knowledge-retrieval client
func NewSensoClient(cfg *config.SensoConfig) *SensoClient {
	return &SensoClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

// Query asks the knowledge service for content relevant to the search
// term. A non-2xx status is returned as an error; the caller degrades.
func (c *SensoClient) Query(ctx context.Context, query, instructions string, maxResults int) (*KnowledgeResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("generatePrompt", instructions)
	params.Set("maxResults", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/generate?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("knowledge API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result KnowledgeResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

// SyncTaxonomy idempotently ensures the canonical categories and topics
// exist in the knowledge service. Missing pieces are batch-created;
// existing ones are left untouched.
func (c *SensoClient) SyncTaxonomy(ctx context.Context) error {
	type existingCategory struct {
		CategoryID string `json:"category_id"`
		Name       string `json:"name"`
		Topics     []struct {
			Name    string `json:"name"`
			TopicID string `json:"topic_id"`
		} `json:"topics"`
	}

	var existing []existingCategory
	if err := c.get(ctx, "/categories/all", &existing); err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	for _, cat := range canonicalTaxonomy {
		var found *existingCategory
		for i := range existing {
			if existing[i].Name == cat.Name {
				found = &existing[i]
				break
			}
		}

		if found == nil {
			body := map[string]interface{}{
				"categories": []CanonicalCategory{cat},
			}
			if err := c.post(ctx, "/categories/batch-create", body, nil); err != nil {
				return fmt.Errorf("failed to create category %q: %w", cat.Name, err)
			}
			continue
		}

		var missing []CanonicalTopic
		for _, topic := range cat.Topics {
			present := false
			for _, t := range found.Topics {
				if t.Name == topic.Name {
					present = true
					break
				}
			}
			if !present {
				missing = append(missing, topic)
			}
		}
		if len(missing) > 0 {
			body := map[string]interface{}{"topics": missing}
			endpoint := fmt.Sprintf("/categories/%s/topics/batch-create", found.CategoryID)
			if err := c.post(ctx, endpoint, body, nil); err != nil {
				return fmt.Errorf("failed to add topics to %q: %w", cat.Name, err)
			}
		}
	}

	return nil
}

func (c *SensoClient) get(ctx context.Context, endpoint string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	return c.do(req, result)
}

func (c *SensoClient) post(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
	return c.do(req, result)
}

func (c *SensoClient) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("knowledge API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

// IsConfigured returns true if the client has valid configuration
func (c *SensoClient) IsConfigured() bool {
	return c.apiKey != ""
}
