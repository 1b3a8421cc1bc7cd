package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/treinoapp/backend/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=sync_mocks_test.go -package=exercises_test

// CatalogEntry is one exercise as served by the external exercise database.
type CatalogEntry struct {
	Name      string `json:"name"`
	BodyPart  string `json:"bodyPart"`
	Target    string `json:"target"`
	GifURL    string `json:"gifUrl"`
	Equipment string `json:"equipment"`
}

// Client pulls the exercise catalog from the external exercise database API.
type Client struct {
	baseURL    string
	apiKey     string
	apiHost    string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, apiHost string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		apiHost:    apiHost,
		httpClient: httpClient,
	}
}

// FetchAll gets the complete catalog. limit=0 means no page size limit.
func (c *Client) FetchAll(ctx context.Context) (_ []CatalogEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "exercisesClient.fetchAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	url := fmt.Sprintf("%s/exercises?limit=0&offset=0", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.apiHost)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exercises api do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exercises api status: %s", resp.Status)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read exercises api response: %w", err)
	}

	var entries []CatalogEntry
	if err := json.Unmarshal(respBytes, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal exercises api response: %w", err)
	}

	span.SetAttributes(attribute.Int("entries", len(entries)))

	return entries, nil
}

type syncStore interface {
	Add(ctx context.Context, exercise Exercise) (*Exercise, error)
	GetByName(ctx context.Context, name string) (*Exercise, error)
	UpdateMediaByName(ctx context.Context, name, mediaURL string) (bool, error)
}

type catalogFetcher interface {
	FetchAll(ctx context.Context) ([]CatalogEntry, error)
}

type cacheInvalidator interface {
	Invalidate()
}

// Syncer feeds the local catalog from the external exercise database.
type Syncer struct {
	fetcher catalogFetcher
	store   syncStore
	cache   cacheInvalidator
}

func NewSyncer(fetcher catalogFetcher, store syncStore, cache cacheInvalidator) *Syncer {
	return &Syncer{
		fetcher: fetcher,
		store:   store,
		cache:   cache,
	}
}

// Sync inserts entries that are not yet in the catalog, matched by exact
// name. Existing entries are left as they are.
func (s *Syncer) Sync(ctx context.Context) (inserted int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "exercisesSyncer.sync")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entries, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch catalog: %w", err)
	}

	for _, entry := range entries {
		_, err := s.store.GetByName(ctx, entry.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrExerciseNotFound) {
			return inserted, fmt.Errorf("get exercise [%s]: %w", entry.Name, err)
		}

		if _, err := s.store.Add(ctx, Exercise{
			Name:        entry.Name,
			BodyPart:    entry.BodyPart,
			Category:    entry.Target,
			Description: entry.GifURL,
			Equipment:   entry.Equipment,
			Difficulty:  DefaultDifficulty,
		}); err != nil {
			return inserted, fmt.Errorf("add exercise [%s]: %w", entry.Name, err)
		}
		inserted++
	}

	if inserted > 0 {
		s.cache.Invalidate()
	}

	span.SetAttributes(attribute.Int("inserted", inserted))
	log.Debugf("exercises catalog sync done, inserted: %d", inserted)

	return inserted, nil
}

// Refresh patches the media reference of already known entries, matched by
// exact name. Unknown entries are skipped.
func (s *Syncer) Refresh(ctx context.Context) (updated int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "exercisesSyncer.refresh")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entries, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch catalog: %w", err)
	}

	for _, entry := range entries {
		wasUpdated, err := s.store.UpdateMediaByName(ctx, entry.Name, entry.GifURL)
		if err != nil {
			return updated, fmt.Errorf("update exercise media [%s]: %w", entry.Name, err)
		}
		if wasUpdated {
			updated++
		}
	}

	if updated > 0 {
		s.cache.Invalidate()
	}

	span.SetAttributes(attribute.Int("updated", updated))
	log.Debugf("exercises catalog refresh done, updated: %d", updated)

	return updated, nil
}
