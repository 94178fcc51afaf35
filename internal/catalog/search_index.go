// internal/catalog/search_index.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"consultation-workers/internal/common/errors"
	"consultation-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
)

// ESIndex mirrors the catalog into an Elasticsearch index.
type ESIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewESIndex(client *elasticsearch.Client, index string) *ESIndex {
	return &ESIndex{client: client, index: index}
}

type indexDoc struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Tier         string   `json:"tier"`
	Features     []string `json:"features"`
	IndustryTags []string `json:"industryTags"`
}

// Sync rebuilds the index from pkgs.
func (x *ESIndex) Sync(ctx context.Context, pkgs []models.ServicePackage) error {
	res, err := x.client.Indices.Delete(
		[]string{x.index},
		x.client.Indices.Delete.WithContext(ctx),
		x.client.Indices.Delete.WithIgnoreUnavailable(true),
	)
	if err != nil {
		return errors.NewSearchQueryFailedError(x.index, err)
	}
	res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return errors.NewSearchQueryFailedError(x.index, fmt.Errorf("delete index: %s", res.Status()))
	}

	if len(pkgs) == 0 {
		return nil
	}

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	for _, pkg := range pkgs {
		meta := map[string]interface{}{"index": map[string]string{"_index": x.index, "_id": pkg.ID}}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(indexDoc{
			Title:        pkg.Title,
			Description:  pkg.Description,
			Category:     pkg.Category,
			Tier:         string(pkg.Tier),
			Features:     pkg.Features,
			IndustryTags: pkg.IndustryTags,
		}); err != nil {
			return err
		}
	}

	res, err = x.client.Bulk(
		bytes.NewReader(body.Bytes()),
		x.client.Bulk.WithContext(ctx),
		x.client.Bulk.WithIndex(x.index),
		x.client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return errors.NewSearchQueryFailedError(x.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewSearchQueryFailedError(x.index, fmt.Errorf("bulk: %s", res.Status()))
	}

	var bulk struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulk); err != nil {
		return errors.NewSearchQueryFailedError(x.index, err)
	}
	if bulk.Errors {
		return errors.NewSearchQueryFailedError(x.index, fmt.Errorf("bulk request reported item errors"))
	}
	return nil
}

// Search returns package IDs ordered by relevance.
func (x *ESIndex) Search(ctx context.Context, query string, limit int) ([]string, error) {
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"title^3", "description", "category^2", "industryTags^2", "features"},
				"fuzziness": "AUTO",
			},
		},
		"_source": false,
	}
	payload, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}

	res, err := x.client.Search(
		x.client.Search.WithContext(ctx),
		x.client.Search.WithIndex(x.index),
		x.client.Search.WithBody(strings.NewReader(string(payload))),
		x.client.Search.WithSize(limit),
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewSearchTimeoutError(x.index)
		}
		return nil, errors.NewSearchQueryFailedError(x.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(x.index, fmt.Errorf("search: %s", res.Status()))
	}

	var result struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, errors.NewSearchQueryFailedError(x.index, err)
	}

	ids := make([]string, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}
