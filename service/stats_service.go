// api/service/stats_service.go
package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/medregistry/api/cache"
	"github.com/medregistry/api/dao"
	"github.com/medregistry/api/model"
)

type IStatsService interface {
	DashboardStats(ctx context.Context) (*model.DashboardStats, error)
}

// StatsService computes the admin dashboard aggregate. The result is cached
// under a short TTL and additionally invalidated on every write to any
// tracked entity kind.
type StatsService struct {
	customerDAO     dao.ICustomerDAO
	documentDAO     dao.IDocumentDAO
	subscriptionDAO dao.ISubscriptionDAO
	store           *cache.Store
}

func NewStatsService(
	customerDAO dao.ICustomerDAO,
	documentDAO dao.IDocumentDAO,
	subscriptionDAO dao.ISubscriptionDAO,
	store *cache.Store,
) *StatsService {
	return &StatsService{
		customerDAO:     customerDAO,
		documentDAO:     documentDAO,
		subscriptionDAO: subscriptionDAO,
		store:           store,
	}
}

func (s *StatsService) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	if cached, ok := cache.GetAs[model.DashboardStats](s.store, cache.DashboardStatsKey()); ok {
		return &cached, nil
	}

	stats := model.DashboardStats{GeneratedAt: time.Now()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.customerDAO.CountCustomers(gctx)
		stats.TotalCustomers = count
		return err
	})
	g.Go(func() error {
		count, err := s.documentDAO.CountDocuments(gctx)
		stats.TotalDocuments = count
		return err
	})
	g.Go(func() error {
		count, err := s.subscriptionDAO.CountActiveSubscriptions(gctx)
		stats.ActiveSubscriptions = count
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cache.SetAs(s.store, cache.DashboardStatsKey(), stats, cache.TTLDashboardStats)
	return &stats, nil
}
