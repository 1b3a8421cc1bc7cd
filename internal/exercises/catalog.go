package exercises

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/treinoapp/backend/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	oneHour            = 60 * 60
	catalogCacheExpire = oneHour * 6 // the catalog changes only on sync
)

type catalogRepo interface {
	List(ctx context.Context, params ListParams) ([]Exercise, error)
}

// Catalog serves catalog reads through an in-memory cache. The catalog is
// written rarely (sync job) and read on every workout-builder screen, so
// reads are served from freecache and fall back to postgres on a miss.
type Catalog struct {
	repo  catalogRepo
	cache *freecache.Cache
}

func NewCatalog(repo catalogRepo) *Catalog {
	megabyte := 1024 * 1024
	cacheSize := 10 * megabyte

	return &Catalog{
		repo:  repo,
		cache: freecache.NewCache(cacheSize),
	}
}

func (c *Catalog) ListByBodyPart(ctx context.Context, bodyPart string) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.listByBodyPart")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("body.part", bodyPart))

	cacheKey := []byte(fmt.Sprintf("exercises::%s", bodyPart))
	if cachedBytes, err := c.cache.Get(cacheKey); err == nil {
		var exercises []Exercise
		if err = json.Unmarshal(cachedBytes, &exercises); err == nil {
			span.SetAttributes(attribute.Bool("from.cache", true))
			return exercises, nil
		}
		log.Errorf("failed to unmarshal cached exercises for [%s]: %s", bodyPart, err)
		// fall through to postgres
	}

	exercises, err := c.repo.List(ctx, ListParams{BodyPart: bodyPart})
	if err != nil {
		return nil, err
	}

	exercisesBytes, err := json.Marshal(exercises)
	if err != nil {
		log.Errorf("failed to marshal exercises for cache [%s]: %s", bodyPart, err)
		return exercises, nil
	}
	if err := c.cache.Set(cacheKey, exercisesBytes, catalogCacheExpire); err != nil {
		log.Errorf("failed to write exercises cache for [%s]: %s", bodyPart, err)
	}

	return exercises, nil
}

// Invalidate drops all cached catalog entries. Called after a sync run.
func (c *Catalog) Invalidate() {
	c.cache.Clear()
}
