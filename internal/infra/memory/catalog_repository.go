package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"gamified-learning-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CatalogLoader fetches subject content from a backing store (e.g. Postgres).
type CatalogLoader interface {
	LoadSubject(ctx context.Context, subjectID string) (domain.Subject, error)
	ListSubjects(ctx context.Context) ([]domain.Subject, error)
}

// CatalogRepository caches subjects with TTL to avoid repeated backing-store
// hits; the catalogue is immutable so staleness only delays new content.
type CatalogRepository struct {
	loader CatalogLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu          sync.RWMutex
	cache       map[string]cachedSubject
	listing     []domain.Subject
	listExpires time.Time
}

type cachedSubject struct {
	subject   domain.Subject
	expiresAt time.Time
}

func NewCatalogRepository(loader CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedSubject),
	}
}

func (r *CatalogRepository) GetSubject(ctx context.Context, subjectID string) (domain.Subject, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[subjectID]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.subject, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(subjectID, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[subjectID]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.subject, nil
		}
		r.mu.RUnlock()

		subject, err := r.loader.LoadSubject(ctx, subjectID)
		if err != nil {
			return domain.Subject{}, err
		}

		r.mu.Lock()
		r.cache[subjectID] = cachedSubject{
			subject:   subject,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return subject, nil
	})
	if err != nil {
		return domain.Subject{}, err
	}
	return result.(domain.Subject), nil
}

func (r *CatalogRepository) ListSubjects(ctx context.Context) ([]domain.Subject, error) {
	now := r.clock()

	r.mu.RLock()
	if r.listing != nil && r.listExpires.After(now) {
		listing := r.listing
		r.mu.RUnlock()
		return listing, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("\x00listing", func() (interface{}, error) {
		subjects, err := r.loader.ListSubjects(ctx)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.listing = subjects
		r.listExpires = r.clock().Add(r.ttlWithJitter())
		r.mu.Unlock()
		return subjects, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Subject), nil
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticCatalogLoader serves subjects from an in-memory slice (the built-in
// bank, or fixtures in tests).
type StaticCatalogLoader struct {
	subjects []domain.Subject
}

func NewStaticCatalogLoader(subjects []domain.Subject) *StaticCatalogLoader {
	return &StaticCatalogLoader{subjects: subjects}
}

func (l *StaticCatalogLoader) LoadSubject(_ context.Context, subjectID string) (domain.Subject, error) {
	for _, subject := range l.subjects {
		if subject.ID == subjectID {
			return subject, nil
		}
	}
	return domain.Subject{}, domain.ErrSubjectNotFound
}

func (l *StaticCatalogLoader) ListSubjects(_ context.Context) ([]domain.Subject, error) {
	return append([]domain.Subject(nil), l.subjects...), nil
}
