package queries_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MockTrackingCache struct{ mock.Mock }

func (m *MockTrackingCache) Get(ctx context.Context, orderID string) (ports.TrackingSnapshot, bool, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(ports.TrackingSnapshot), args.Bool(1), args.Error(2)
}

func (m *MockTrackingCache) Set(ctx context.Context, snapshot ports.TrackingSnapshot) (bool, error) {
	args := m.Called(ctx, snapshot)
	return args.Bool(0), args.Error(1)
}

// versionedCache keeps the newest snapshot per order, as the Redis cache does.
type versionedCache struct {
	mu      sync.Mutex
	entries map[string]ports.TrackingSnapshot
}

func newVersionedCache() *versionedCache {
	return &versionedCache{entries: make(map[string]ports.TrackingSnapshot)}
}

func (c *versionedCache) Get(_ context.Context, orderID string) (ports.TrackingSnapshot, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot, ok := c.entries[orderID]
	return snapshot, ok, nil
}

func (c *versionedCache) Set(_ context.Context, snapshot ports.TrackingSnapshot) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if current, ok := c.entries[snapshot.OrderID]; ok && current.Version >= snapshot.Version {
		return false, nil
	}
	c.entries[snapshot.OrderID] = snapshot
	return true, nil
}

// commitAfterRead runs between once, after the first load and before the caller sees it.
type commitAfterRead struct {
	inner   queries.OrderReader
	once    sync.Once
	between func()
}

func (r *commitAfterRead) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	o, err := r.inner.Get(ctx, id)
	r.once.Do(r.between)
	return o, err
}

type orderUoWFactory struct{ inner *memory.UnitOfWorkFactory }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.inner.Create() }

type QueriesTestSuite struct {
	suite.Suite
	store  *memory.Store
	tenant kernel.TenantID
	order  *order.Order
}

func (s *QueriesTestSuite) SetupTest() {
	ctx := s.T().Context()
	s.store = memory.NewStore()

	tenant, err := kernel.NewTenantID("pizza-roma")
	s.Require().NoError(err)
	s.tenant = tenant

	minOrder := int64(1500)
	jarovce, err := zone.NewZone(zone.Params{
		TenantID: tenant, Name: "Jarovce", Position: 1, FeeCents: 290, MinOrderCents: &minOrder,
		Matcher: zone.Matcher{CityParts: []string{"Jarovce"}},
	})
	s.Require().NoError(err)
	petrzalka, err := zone.NewZone(zone.Params{
		TenantID: tenant, Name: "Petržalka", Position: 2, FeeCents: 250,
		Matcher: zone.Matcher{PostalPrefixes: []string{"851"}},
	})
	s.Require().NoError(err)
	s.Require().NoError(s.store.ZoneRepository().ReplaceForTenant(ctx, tenant, []zone.Zone{jarovce, petrzalka}))

	address, err := kernel.NewAddress(kernel.AddressParams{Street: "Na hrádzi 12", PostalCode: "85110", City: "Bratislava"})
	s.Require().NoError(err)
	o, err := order.NewOrder(order.NewOrderParams{
		ID:               kernel.NewUUID(),
		TenantID:         tenant,
		Customer:         order.Customer{Name: "Jana", Phone: "+421900111222"},
		Address:          address,
		Items:            []order.Item{{Name: "Margherita", UnitPriceCents: 890, Quantity: 2}},
		TaxCents:         178,
		DeliveryFeeCents: 250,
		CreatedAt:        time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC),
	})
	s.Require().NoError(err)
	_, err = o.ConfirmPayment("pay-1", time.Time{})
	s.Require().NoError(err)
	_, err = o.AttachDelivery(order.Delivery{
		Provider: "wolt-drive", JobID: "job-1", Status: order.DeliveryAssigned, TrackingURL: "https://track.example/job-1",
	}, time.Time{})
	s.Require().NoError(err)
	s.Require().NoError(s.store.OrderRepository().Add(ctx, o))
	s.order = o
}

func (s *QueriesTestSuite) TestGetOrder() {
	query, err := queries.NewGetOrderQuery(s.order.ID())
	s.Require().NoError(err)

	view, err := queries.NewGetOrderQueryHandler(s.store.OrderRepository()).Handle(s.T().Context(), query)
	s.Require().NoError(err)

	s.True(view.ID.IsEqual(s.order.ID()))
	s.Equal("pizza-roma", view.TenantID)
	s.Equal(order.Paid, view.Status)
	s.Equal(int64(1780+178+250), view.TotalCents)
	s.Equal("85110", view.Address.PostalCode)
	s.Require().NotNil(view.Delivery)
	s.Equal("job-1", view.Delivery.JobID)
	s.Empty(view.POSSyncRef)
}

func (s *QueriesTestSuite) TestGetOrder_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	s.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(s.store.OrderRepository()).Handle(s.T().Context(), query)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *QueriesTestSuite) TestGetOrderTracking_MissFillsCache() {
	ctx := s.T().Context()
	id := s.order.ID().String()
	cache := new(MockTrackingCache)
	mock.InOrder(
		cache.On("Get", mock.Anything, id).Return(ports.TrackingSnapshot{}, false, nil).Once(),
		cache.On("Set", mock.Anything, mock.MatchedBy(func(snap ports.TrackingSnapshot) bool {
			return snap.OrderID == id && snap.Status == "PAID" && snap.DeliveryStatus == "assigned"
		})).Return(true, nil).Once(),
	)

	query, err := queries.NewGetOrderTrackingQuery(s.order.ID())
	s.Require().NoError(err)
	snapshot, err := queries.NewGetOrderTrackingQueryHandler(s.store.OrderRepository(), cache, slog.New(slog.DiscardHandler)).
		Handle(ctx, query)
	s.Require().NoError(err)

	s.Equal("PAID", snapshot.Status)
	s.Equal("https://track.example/job-1", snapshot.TrackingURL)
	cache.AssertExpectations(s.T())
}

func (s *QueriesTestSuite) TestGetOrderTracking_HitSkipsStore() {
	id := kernel.NewUUID()
	cached := ports.TrackingSnapshot{OrderID: id.String(), Status: "READY"}
	cache := new(MockTrackingCache)
	cache.On("Get", mock.Anything, id.String()).Return(cached, true, nil).Once()

	query, err := queries.NewGetOrderTrackingQuery(id)
	s.Require().NoError(err)
	snapshot, err := queries.NewGetOrderTrackingQueryHandler(s.store.OrderRepository(), cache, slog.New(slog.DiscardHandler)).
		Handle(s.T().Context(), query)
	s.Require().NoError(err)
	s.Equal(cached, snapshot)
	cache.AssertNotCalled(s.T(), "Set", mock.Anything, mock.Anything)
}

func (s *QueriesTestSuite) TestGetOrderTracking_CacheDownFallsBackToStore() {
	cache := new(MockTrackingCache)
	cache.On("Get", mock.Anything, mock.Anything).Return(ports.TrackingSnapshot{}, false, errors.New("dial tcp: refused")).Once()
	cache.On("Set", mock.Anything, mock.Anything).Return(false, errors.New("dial tcp: refused")).Once()

	query, err := queries.NewGetOrderTrackingQuery(s.order.ID())
	s.Require().NoError(err)
	snapshot, err := queries.NewGetOrderTrackingQueryHandler(s.store.OrderRepository(), cache, slog.New(slog.DiscardHandler)).
		Handle(s.T().Context(), query)
	s.Require().NoError(err)
	s.Equal("PAID", snapshot.Status)
}

func (s *QueriesTestSuite) TestGetOrderTracking_CommitDuringFillKeepsNewerSnapshot() {
	ctx := s.T().Context()
	logger := slog.New(slog.DiscardHandler)

	// Given
	cache := newVersionedCache()
	notifier := commands.NewChangeNotifier(nil, cache, logger)
	advance := commands.NewAdvanceOrderStatusCommandHandler(
		orderUoWFactory{inner: memory.NewUnitOfWorkFactory(s.store)}, notifier, logger)
	reader := &commitAfterRead{
		inner: s.store.OrderRepository(),
		between: func() {
			cmd, err := commands.NewAdvanceOrderStatusCommand(s.order.ID(), order.Preparing)
			s.Require().NoError(err)
			_, err = advance.Handle(ctx, cmd)
			s.Require().NoError(err)
		},
	}
	tracker := queries.NewGetOrderTrackingQueryHandler(reader, cache, logger)
	query, err := queries.NewGetOrderTrackingQuery(s.order.ID())
	s.Require().NoError(err)

	// When
	first, err := tracker.Handle(ctx, query)
	s.Require().NoError(err)
	second, err := tracker.Handle(ctx, query)
	s.Require().NoError(err)

	// Then
	stored, err := s.store.OrderRepository().Get(ctx, s.order.ID())
	s.Require().NoError(err)
	s.Equal(order.Preparing, stored.Status())
	s.Equal("PAID", first.Status)
	s.Equal("PREPARING", second.Status)
	s.Equal(stored.Version(), second.Version)
}

func (s *QueriesTestSuite) TestResolveDeliveryZone() {
	h := queries.NewResolveDeliveryZoneQueryHandler(s.store.ZoneRepository())

	query, err := queries.NewResolveDeliveryZoneQuery("pizza-roma", kernel.AddressParams{
		Street: "Na hrádzi 12", PostalCode: "851 10", City: "Bratislava", CityPart: "JAROVCE",
	})
	s.Require().NoError(err)
	res, err := h.Handle(s.T().Context(), query)
	s.Require().NoError(err)
	s.Equal("Jarovce", res.ZoneName)
	s.Equal(int64(290), res.FeeCents)
	s.Equal("city_part", res.MatchedBy)
	s.Require().NotNil(res.MinOrderCents)
	s.Equal(int64(1500), *res.MinOrderCents)

	query, err = queries.NewResolveDeliveryZoneQuery("pizza-roma", kernel.AddressParams{
		Street: "Einsteinova 1", PostalCode: "851 01", City: "Bratislava",
	})
	s.Require().NoError(err)
	res, err = h.Handle(s.T().Context(), query)
	s.Require().NoError(err)
	s.Equal("Petržalka", res.ZoneName)
	s.Equal("postal_prefix", res.MatchedBy)
	s.Nil(res.MinOrderCents)
}

func (s *QueriesTestSuite) TestResolveDeliveryZone_NotCovered() {
	query, err := queries.NewResolveDeliveryZoneQuery("pizza-roma", kernel.AddressParams{
		Street: "Hlavná 1", PostalCode: "04001", City: "Košice",
	})
	s.Require().NoError(err)

	_, err = queries.NewResolveDeliveryZoneQueryHandler(s.store.ZoneRepository()).Handle(s.T().Context(), query)
	s.Require().ErrorIs(err, zone.ErrNotCovered)
}

func (s *QueriesTestSuite) TestValidateMinOrder() {
	h := queries.NewValidateMinOrderQueryHandler(s.store.ZoneRepository())
	address := kernel.AddressParams{Street: "Na hrádzi 12", City: "Bratislava", CityPart: "Jarovce"}

	below, err := queries.NewValidateMinOrderQuery("pizza-roma", address, 1499)
	s.Require().NoError(err)
	res, err := h.Handle(s.T().Context(), below)
	s.Require().NoError(err)
	s.False(res.Valid)
	s.Equal("Jarovce", res.ZoneName)

	exact, err := queries.NewValidateMinOrderQuery("pizza-roma", address, 1500)
	s.Require().NoError(err)
	res, err = h.Handle(s.T().Context(), exact)
	s.Require().NoError(err)
	s.True(res.Valid)
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

func TestQueryConstructors_Invalid(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	_, err = queries.NewResolveDeliveryZoneQuery("", kernel.AddressParams{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewValidateMinOrderQuery("pizza-roma", kernel.AddressParams{Street: "a", City: "b"}, -1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	var q queries.GetOrderTrackingQuery
	assert.ErrorIs(t, q.Validate(), queries.ErrGetOrderTrackingQueryIsNotConstructed)
}
