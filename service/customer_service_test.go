package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medregistry/api/audit"
	"github.com/medregistry/api/cache"
	registry_errors "github.com/medregistry/api/errors"
	logger "github.com/medregistry/api/logging"
	"github.com/medregistry/api/model"
	"github.com/medregistry/api/test/mock"
	"github.com/medregistry/api/util"
)

func TestMain(m *testing.M) {
	logger.InitLogger("../logging")
	defer logger.Sync()
	m.Run()
}

type customerFixture struct {
	dao     *mock.MockCustomerDAO
	auditor *mock.MockAuditService
	store   *cache.Store
	svc     *CustomerService
}

func newCustomerFixture(t *testing.T) *customerFixture {
	t.Helper()

	store := cache.NewStore(0)
	t.Cleanup(store.Stop)

	f := &customerFixture{
		dao:     new(mock.MockCustomerDAO),
		auditor: new(mock.MockAuditService),
		store:   store,
	}
	f.svc = NewCustomerService(
		f.dao,
		util.NewValidationUtil(),
		store,
		cache.NewInvalidator(store),
		f.auditor,
		util.NewNotificationService(),
		util.NewEventBus(),
	)
	return f
}

func TestCreateCustomer_PersistsAndPrimesCache(t *testing.T) {
	f := newCustomerFixture(t)
	f.dao.On("CreateCustomer", tmock.Anything, tmock.AnythingOfType("model.Customer")).Return(nil)
	f.auditor.On("Record", tmock.Anything, tmock.AnythingOfType("audit.Entry")).Return(nil)

	created, err := f.svc.CreateCustomer(context.Background(), model.Customer{
		Name:  "Clinic A",
		Email: "ops@clinic-a.example",
	}, "admin-1")

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID, "an ID is assigned when none is supplied")
	assert.Equal(t, "active", created.Status)

	cached, ok := cache.GetAs[model.Customer](f.store, cache.CustomerKey(created.ID))
	require.True(t, ok, "the canonical record is cached after the write")
	assert.Equal(t, created.Name, cached.Name)

	f.dao.AssertExpectations(t)
}

func TestCreateCustomer_ValidationFailureSkipsDAO(t *testing.T) {
	f := newCustomerFixture(t)

	_, err := f.svc.CreateCustomer(context.Background(), model.Customer{Email: "x@example.com"}, "admin-1")

	require.Error(t, err)
	f.dao.AssertNotCalled(t, "CreateCustomer", tmock.Anything, tmock.Anything)
}

func TestCreateCustomer_AuditFailureDoesNotFailWrite(t *testing.T) {
	f := newCustomerFixture(t)
	f.dao.On("CreateCustomer", tmock.Anything, tmock.AnythingOfType("model.Customer")).Return(nil)
	f.auditor.On("Record", tmock.Anything, tmock.AnythingOfType("audit.Entry")).
		Return(errors.New("elasticsearch unavailable"))

	_, err := f.svc.CreateCustomer(context.Background(), model.Customer{
		Name:  "Clinic A",
		Email: "ops@clinic-a.example",
	}, "admin-1")

	assert.NoError(t, err)
}

func TestGetCustomer_CacheHitSkipsDAO(t *testing.T) {
	f := newCustomerFixture(t)
	cache.SetAs(f.store, cache.CustomerKey("c1"), model.Customer{ID: "c1", Name: "Cached"}, cache.TTLCustomer)

	got, err := f.svc.GetCustomer(context.Background(), "c1")

	require.NoError(t, err)
	assert.Equal(t, "Cached", got.Name)
	f.dao.AssertNotCalled(t, "GetCustomer", tmock.Anything, tmock.Anything)
}

func TestGetCustomer_CacheMissReadsThrough(t *testing.T) {
	f := newCustomerFixture(t)
	f.dao.On("GetCustomer", tmock.Anything, "c1").
		Return(&model.Customer{ID: "c1", Name: "From DB"}, nil).Once()

	got, err := f.svc.GetCustomer(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "From DB", got.Name)

	// Second read is served from cache; the DAO expectation is Once.
	got, err = f.svc.GetCustomer(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "From DB", got.Name)

	f.dao.AssertExpectations(t)
}

func TestGetCustomer_NotFoundIsNotCached(t *testing.T) {
	f := newCustomerFixture(t)
	f.dao.On("GetCustomer", tmock.Anything, "ghost").
		Return(nil, registry_errors.ErrCustomerNotFound).Twice()

	_, err := f.svc.GetCustomer(context.Background(), "ghost")
	require.ErrorIs(t, err, registry_errors.ErrCustomerNotFound)

	// A miss stays a miss: the error path must not poison the cache.
	_, err = f.svc.GetCustomer(context.Background(), "ghost")
	require.ErrorIs(t, err, registry_errors.ErrCustomerNotFound)

	f.dao.AssertExpectations(t)
}

func TestUpdateCustomer_InvalidatesStaleViews(t *testing.T) {
	f := newCustomerFixture(t)
	f.dao.On("UpdateCustomer", tmock.Anything, tmock.AnythingOfType("model.Customer")).Return(nil)
	f.auditor.On("Record", tmock.Anything, tmock.AnythingOfType("audit.Entry")).Return(nil)

	// Pre-populate the views an update must stale.
	cache.SetAs(f.store, cache.CustomerKey("c1"), model.Customer{ID: "c1", Name: "Old"}, cache.TTLCustomer)
	cache.SetAs(f.store, cache.CustomerListKey(20, 0), []model.Customer{{ID: "c1", Name: "Old"}}, cache.TTLCustomerList)
	cache.SetAs(f.store, cache.DashboardStatsKey(), model.DashboardStats{TotalCustomers: 1}, cache.TTLDashboardStats)

	updated, err := f.svc.UpdateCustomer(context.Background(), model.Customer{
		ID:     "c1",
		Name:   "New",
		Email:  "ops@clinic-a.example",
		Status: "active",
	}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)

	cached, ok := cache.GetAs[model.Customer](f.store, cache.CustomerKey("c1"))
	require.True(t, ok)
	assert.Equal(t, "New", cached.Name, "entity key holds the fresh record, not the stale one")

	_, ok = f.store.Get(cache.CustomerListKey(20, 0))
	assert.False(t, ok, "list views are dropped")
	_, ok = f.store.Get(cache.DashboardStatsKey())
	assert.False(t, ok, "dashboard aggregate is dropped")
}

func TestUpdateCustomer_DAOFailureLeavesCacheIntact(t *testing.T) {
	f := newCustomerFixture(t)
	f.dao.On("UpdateCustomer", tmock.Anything, tmock.AnythingOfType("model.Customer")).
		Return(registry_errors.ErrDatabaseOperation)

	cache.SetAs(f.store, cache.CustomerKey("c1"), model.Customer{ID: "c1", Name: "Old"}, cache.TTLCustomer)

	_, err := f.svc.UpdateCustomer(context.Background(), model.Customer{
		ID:    "c1",
		Name:  "New",
		Email: "ops@clinic-a.example",
	}, "admin-1")
	require.ErrorIs(t, err, registry_errors.ErrDatabaseOperation)

	cached, ok := cache.GetAs[model.Customer](f.store, cache.CustomerKey("c1"))
	require.True(t, ok, "a failed write must not invalidate committed state")
	assert.Equal(t, "Old", cached.Name)
}

func TestDeleteCustomer_DropsEntityAndLists(t *testing.T) {
	f := newCustomerFixture(t)
	f.dao.On("DeleteCustomer", tmock.Anything, "c1").Return(nil)
	f.auditor.On("Record", tmock.Anything, tmock.AnythingOfType("audit.Entry")).Return(nil)

	cache.SetAs(f.store, cache.CustomerKey("c1"), model.Customer{ID: "c1"}, cache.TTLCustomer)
	cache.SetAs(f.store, cache.CustomerListKey(20, 0), []model.Customer{{ID: "c1"}}, cache.TTLCustomerList)

	require.NoError(t, f.svc.DeleteCustomer(context.Background(), "c1", "admin-1"))

	_, ok := f.store.Get(cache.CustomerKey("c1"))
	assert.False(t, ok)
	_, ok = f.store.Get(cache.CustomerListKey(20, 0))
	assert.False(t, ok)
}

func TestListCustomers_CachesPerPage(t *testing.T) {
	f := newCustomerFixture(t)
	page1 := []model.Customer{{ID: "c1"}, {ID: "c2"}}
	page2 := []model.Customer{{ID: "c3"}}
	f.dao.On("ListCustomers", tmock.Anything, 2, 0).Return(page1, nil).Once()
	f.dao.On("ListCustomers", tmock.Anything, 2, 2).Return(page2, nil).Once()

	got, err := f.svc.ListCustomers(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = f.svc.ListCustomers(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// Both pages now come from cache.
	_, err = f.svc.ListCustomers(context.Background(), 2, 0)
	require.NoError(t, err)
	_, err = f.svc.ListCustomers(context.Background(), 2, 2)
	require.NoError(t, err)

	f.dao.AssertExpectations(t)
}

func TestRecordAudit_CarriesEntityFields(t *testing.T) {
	f := newCustomerFixture(t)
	f.dao.On("CreateCustomer", tmock.Anything, tmock.AnythingOfType("model.Customer")).Return(nil)
	f.auditor.On("Record", tmock.Anything, tmock.MatchedBy(func(entry audit.Entry) bool {
		return entry.ActorID == "admin-7" &&
			entry.Action == "created" &&
			entry.EntityKind == "customer" &&
			entry.EntityID == "c9" &&
			!entry.Timestamp.IsZero()
	})).Return(nil)

	_, err := f.svc.CreateCustomer(context.Background(), model.Customer{
		ID:    "c9",
		Name:  "Clinic Z",
		Email: "ops@clinic-z.example",
	}, "admin-7")
	require.NoError(t, err)

	f.auditor.AssertExpectations(t)
}
