package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"storefront/models"
)

// ProductSourceInterface defines the contract for retrieving raw product records
type ProductSourceInterface interface {
	FetchProducts(ctx context.Context) ([]models.RawProductRecord, error)
}

// HTTPProductSource fetches product records from a JSON HTTP endpoint
type HTTPProductSource struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// Ensure HTTPProductSource implements ProductSourceInterface
var _ ProductSourceInterface = (*HTTPProductSource)(nil)

// NewHTTPProductSource creates a new HTTPProductSource for url
func NewHTTPProductSource(url string, client *http.Client, logger *zap.Logger) *HTTPProductSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProductSource{
		url:    url,
		client: client,
		logger: logger,
	}
}

// FetchProducts performs GET on the configured URL and decodes the product list
func (s *HTTPProductSource) FetchProducts(ctx context.Context) ([]models.RawProductRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build products request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("products endpoint returned status %d", resp.StatusCode)
	}

	records, err := decodeProductRecords(resp.Body)
	if err != nil {
		return nil, err
	}

	s.logger.Info("fetched product records",
		zap.String("url", s.url),
		zap.Int("count", len(records)))
	return records, nil
}

// decodeProductRecords decodes either a bare JSON array of records or an
// object wrapping the array under "products".
// Numbers are kept as json.Number so integral ids survive unchanged.
func decodeProductRecords(r io.Reader) ([]models.RawProductRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read products response: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode products response: %w", err)
	}

	var list []any
	switch v := payload.(type) {
	case []any:
		list = v
	case map[string]any:
		wrapped, ok := v["products"].([]any)
		if !ok {
			return nil, fmt.Errorf("products response has no product list")
		}
		list = wrapped
	default:
		return nil, fmt.Errorf("products response is not a list")
	}

	records := make([]models.RawProductRecord, 0, len(list))
	for _, entry := range list {
		fields, ok := entry.(map[string]any)
		if !ok {
			// Keep the position; the normalizer degrades it to defaults.
			fields = map[string]any{}
		}
		records = append(records, models.RawProductRecord(fields))
	}
	return records, nil
}
