// Package loader fetches and decodes the inspection dataset from a local
// file, an HTTP URL or an S3 URI.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/akobyl/KitchenCard/internal/cloudstore"
	"github.com/akobyl/KitchenCard/internal/models"
)

type Loader struct {
	// Client serves http and https sources.
	Client *http.Client
	// Fetcher serves s3 sources, may be nil when no cloud source is used.
	Fetcher cloudstore.Fetcher
}

func New() *Loader {
	return &Loader{
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Load reads the dataset at source and decodes it. The source kind is picked
// by scheme: s3:// goes through the cloud fetcher, http(s):// through the
// HTTP client, anything else is a file path.
func (l *Loader) Load(ctx context.Context, source string) (models.Dataset, error) {
	raw, err := l.read(ctx, source)
	if err != nil {
		return models.Dataset{}, err
	}
	return Parse(raw)
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return l.readHTTP(ctx, source)
	case strings.HasPrefix(source, "s3://"):
		return l.readS3(ctx, source)
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("reading dataset file: %w", err)
		}
		return data, nil
	}
}

func (l *Loader) readHTTP(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("building dataset request: %w", err)
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching dataset from %s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching dataset from %s: unexpected status %s", source, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (l *Loader) readS3(ctx context.Context, source string) ([]byte, error) {
	if l.Fetcher == nil {
		return nil, fmt.Errorf("no cloud fetcher configured for %q", source)
	}
	bucket, key, err := cloudstore.ParseURI(source)
	if err != nil {
		return nil, err
	}
	return l.Fetcher.Fetch(ctx, bucket, key)
}

// Parse decodes a raw dataset document. An empty restaurant collection is
// valid, the view simply starts out empty.
func Parse(raw []byte) (models.Dataset, error) {
	var ds models.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return models.Dataset{}, fmt.Errorf("parsing dataset: %w", err)
	}
	if ds.Restaurants == nil {
		ds.Restaurants = []models.Restaurant{}
	}
	return ds, nil
}
