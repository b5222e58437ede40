package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cachedPlan is a plan together with its build time.
type cachedPlan struct {
	plan  *ImportPlan
	built time.Time
}

// PlanCache holds recently built plans keyed by an arbitrary string
// (typically environment + kind). Concurrent builds of the same key collapse
// into one.
type PlanCache struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
	plans map[string]cachedPlan
	sf    singleflight.Group
}

// NewPlanCache creates a cache. A zero TTL disables caching but still
// collapses concurrent builds.
func NewPlanCache(ttl time.Duration) *PlanCache {
	return &PlanCache{
		ttl:   ttl,
		now:   time.Now,
		plans: make(map[string]cachedPlan),
	}
}

func (c *PlanCache) fresh(key string) (*ImportPlan, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.plans[key]
	if !ok || c.ttl == 0 || c.now().Sub(entry.built) > c.ttl {
		return nil, false
	}
	return entry.plan, true
}

// GetOrBuild returns a fresh cached plan or builds a new one.
// Uses singleflight to prevent build stampedes. Failed builds are not cached.
func (c *PlanCache) GetOrBuild(ctx context.Context, key string, build func(ctx context.Context) (*ImportPlan, error)) (*ImportPlan, error) {
	// Fast path: check if plan exists and is fresh
	if plan, ok := c.fresh(key); ok {
		return plan, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		if plan, ok := c.fresh(key); ok {
			return plan, nil
		}

		plan, err := build(ctx)
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.plans[key] = cachedPlan{plan: plan, built: c.now()}
			c.mu.Unlock()
		}
		return plan, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*ImportPlan), nil
}

// Invalidate removes a cached plan.
func (c *PlanCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.plans, key)
	c.mu.Unlock()
}
