package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
)

// Reader чтение каталога услуг
type Reader interface {
	GetByProvider(ctx context.Context, providerID uuid.UUID, activeOnly bool) ([]domain.Service, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

type cacheKey struct {
	providerID uuid.UUID
	activeOnly bool
}

// CachedRepository кэширует каталог услуг мастера на короткий TTL
// Кэшируется только список по мастеру, GetByID всегда идёт в базу
type CachedRepository struct {
	next  Reader
	cache *expirable.LRU[cacheKey, []domain.Service]
}

// NewCachedRepository оборачивает репозиторий LRU-кэшем размера size с временем жизни ttl
func NewCachedRepository(next Reader, size int, ttl time.Duration) *CachedRepository {
	return &CachedRepository{
		next:  next,
		cache: expirable.NewLRU[cacheKey, []domain.Service](size, nil, ttl),
	}
}

func (c *CachedRepository) GetByProvider(ctx context.Context, providerID uuid.UUID, activeOnly bool) ([]domain.Service, error) {
	key := cacheKey{providerID: providerID, activeOnly: activeOnly}
	if services, ok := c.cache.Get(key); ok {
		return cloneServices(services), nil
	}

	services, err := c.next.GetByProvider(ctx, providerID, activeOnly)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, cloneServices(services))
	return services, nil
}

func (c *CachedRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	return c.next.GetByID(ctx, id)
}

func cloneServices(src []domain.Service) []domain.Service {
	dst := make([]domain.Service, len(src))
	copy(dst, src)
	return dst
}
