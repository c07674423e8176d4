package office

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/office"
)

// ServiceImpl caches the active location for a short TTL. The location is
// read on every check-in and changes rarely; writers invalidate the cache.
type ServiceImpl struct {
	officeRepo office.Repository
	ttl        time.Duration

	mu       sync.RWMutex
	cached   *office.Location
	cachedAt time.Time

	now func() time.Time
}

func NewOfficeService(officeRepo office.Repository, ttl time.Duration) office.Service {
	return &ServiceImpl{
		officeRepo: officeRepo,
		ttl:        ttl,
		now:        time.Now,
	}
}

// GetActive implements office.Service.
func (s *ServiceImpl) GetActive(ctx context.Context) (office.Location, error) {
	s.mu.RLock()
	if s.cached != nil && s.now().Sub(s.cachedAt) < s.ttl {
		loc := *s.cached
		s.mu.RUnlock()
		return loc, nil
	}
	s.mu.RUnlock()

	loc, err := s.officeRepo.GetActive(ctx)
	if err != nil {
		return office.Location{}, err
	}

	s.mu.Lock()
	s.cached = &loc
	s.cachedAt = s.now()
	s.mu.Unlock()

	return loc, nil
}

// Upsert implements office.Service.
func (s *ServiceImpl) Upsert(ctx context.Context, req office.UpsertLocationRequest) (office.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return office.LocationResponse{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	loc, err := s.officeRepo.Upsert(ctx, office.Location{
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		IsActive:     isActive,
	})
	if err != nil {
		return office.LocationResponse{}, fmt.Errorf("failed to upsert office location: %w", err)
	}

	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()

	return office.LocationResponse{
		ID:           loc.ID,
		Name:         loc.Name,
		Latitude:     loc.Latitude,
		Longitude:    loc.Longitude,
		RadiusMeters: loc.RadiusMeters,
		IsActive:     loc.IsActive,
	}, nil
}
