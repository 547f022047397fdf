// Package search keeps an Elasticsearch mirror of the catalog and serves the
// fuzzy suggest queries. The mirror is optional: the catalog works without it
// and the suggest endpoint falls back to the store's substring search.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/sweetshop/api/internal/models"
)

type Client struct {
	es    *elasticsearch.Client
	index string
}

type Config struct {
	URL      string
	User     string
	Password string
	Index    string
}

func NewClient(cfg Config) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.User,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error: %s: %s", res.Status(), body)
	}

	return &Client{es: es, index: cfg.Index}, nil
}

func (c *Client) IndexSweet(ctx context.Context, s models.Sweet) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	res, err := c.es.Index(
		c.index,
		bytes.NewReader(data),
		c.es.Index.WithDocumentID(s.ID.String()),
		c.es.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index sweet: %s", res.Status())
	}
	return nil
}

func (c *Client) DeleteSweet(ctx context.Context, id string) error {
	res, err := c.es.Delete(c.index, id, c.es.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete sweet: %s", res.Status())
	}
	return nil
}

// Suggest runs a fuzzy multi_match over name, category and description.
func (c *Client) Suggest(ctx context.Context, query string, size int) ([]models.Sweet, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "category", "description"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("suggest: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Sweet `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	sweets := make([]models.Sweet, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		sweets[i] = hit.Source
	}
	return sweets, nil
}
