package commands_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/retry"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const tenantSlug = "pizza-roma"

var discardLogger = slog.New(slog.DiscardHandler)

// fastPolicy keeps the retry shape of the default policy without real waiting.
var fastPolicy = retry.Policy{
	MaxAttempts: 3,
	BaseDelay:   time.Millisecond,
	MaxDelay:    2 * time.Millisecond,
}

type uowFactory struct{ inner *memory.UnitOfWorkFactory }

func (f uowFactory) Create() commands.UoW { return f.inner.Create() }

type orderUoWFactory struct{ inner *memory.UnitOfWorkFactory }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.inner.Create() }

type testEnv struct {
	store  *memory.Store
	uows   uowFactory
	orders orderUoWFactory
	tenant kernel.TenantID
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)
	tenant, err := kernel.NewTenantID(tenantSlug)
	require.NoError(t, err)

	env := testEnv{
		store:  store,
		uows:   uowFactory{inner: factory},
		orders: orderUoWFactory{inner: factory},
		tenant: tenant,
	}
	env.setZones(t, defaultZones(t, tenant)...)
	return env
}

func (e testEnv) setZones(t *testing.T, zones ...zone.Zone) {
	t.Helper()
	require.NoError(t, e.store.ZoneRepository().ReplaceForTenant(t.Context(), e.tenant, zones))
}

func minOrder(v int64) *int64 { return &v }

// defaultZones: Jarovce by city part (fee 290, min 1500) and the rest of Bratislava (fee 390).
func defaultZones(t *testing.T, tenant kernel.TenantID) []zone.Zone {
	t.Helper()
	jarovce, err := zone.NewZone(zone.Params{
		TenantID:      tenant,
		Name:          "Jarovce",
		Position:      1,
		Matcher:       zone.Matcher{CityParts: []string{"Jarovce"}},
		FeeCents:      290,
		MinOrderCents: minOrder(1500),
	})
	require.NoError(t, err)
	city, err := zone.NewZone(zone.Params{
		TenantID: tenant,
		Name:     "Bratislava",
		Position: 2,
		Matcher:  zone.Matcher{Cities: []string{"Bratislava"}},
		FeeCents: 390,
	})
	require.NoError(t, err)
	return []zone.Zone{jarovce, city}
}

func jarovceAddress() kernel.AddressParams {
	return kernel.AddressParams{Street: "Na hrádzi 12", PostalCode: "851 10", City: "Bratislava", CityPart: "Jarovce"}
}

// checkoutItems has a subtotal of 2270.
func checkoutItems() []order.Item {
	return []order.Item{
		{
			ProductID:      "margherita-32",
			Name:           "Margherita 32cm",
			UnitPriceCents: 890,
			Quantity:       2,
			Modifiers:      []order.Modifier{{Name: "extra cheese", PriceCents: 120}},
		},
		{ProductID: "cola-05", Name: "Cola 0.5l", UnitPriceCents: 250, Quantity: 1},
	}
}

func customer() order.Customer {
	return order.Customer{Name: "Jana Nováková", Phone: "+421900111222"}
}

// createOrder places an order through CreateOrderCommandHandler.
func createOrder(t *testing.T, env testEnv) *order.Order {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), tenantSlug, customer(), jarovceAddress(), checkoutItems(), 230)
	require.NoError(t, err)
	o, err := commands.NewCreateOrderCommandHandler(env.uows, nil, discardLogger).Handle(t.Context(), cmd)
	require.NoError(t, err)
	return o
}

// createOrderIn places an order and walks it to target through the advance handler.
func createOrderIn(t *testing.T, env testEnv, target order.Status) *order.Order {
	t.Helper()
	o := createOrder(t, env)
	if target == order.Pending {
		return o
	}

	pay, err := commands.NewConfirmPaymentCommand(o.ID(), "pay-"+o.ID().String())
	require.NoError(t, err)
	res, err := commands.NewConfirmPaymentCommandHandler(env.orders, nil, discardLogger).Handle(t.Context(), pay)
	require.NoError(t, err)
	o = res.Order

	advance := commands.NewAdvanceOrderStatusCommandHandler(env.orders, nil, discardLogger)
	for o.Status() != target {
		next, ok := o.Status().Next()
		if target == order.Canceled {
			next, ok = order.Canceled, true
		}
		require.True(t, ok, "cannot reach %s from %s", target, o.Status())
		cmd, err := commands.NewAdvanceOrderStatusCommand(o.ID(), next)
		require.NoError(t, err)
		o, err = advance.Handle(t.Context(), cmd)
		require.NoError(t, err)
	}
	return o
}

func (e testEnv) reload(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	o, err := e.store.OrderRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return o
}

type MockPOSClient struct{ mock.Mock }

func (m *MockPOSClient) SubmitOrder(ctx context.Context, o ports.POSOrder) (string, error) {
	args := m.Called(ctx, o)
	return args.String(0), args.Error(1)
}

type MockCourierClient struct{ mock.Mock }

func (m *MockCourierClient) Provider() string { return "wolt-drive" }

func (m *MockCourierClient) Quote(ctx context.Context, req ports.DeliveryRequest) (ports.CourierQuote, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.CourierQuote), args.Error(1)
}

func (m *MockCourierClient) CreateJob(ctx context.Context, req ports.DeliveryRequest, quoteID string) (ports.CourierJob, error) {
	args := m.Called(ctx, req, quoteID)
	return args.Get(0).(ports.CourierJob), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockTrackingCache struct{ mock.Mock }

func (m *MockTrackingCache) Get(ctx context.Context, orderID string) (ports.TrackingSnapshot, bool, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(ports.TrackingSnapshot), args.Bool(1), args.Error(2)
}

func (m *MockTrackingCache) Set(ctx context.Context, snapshot ports.TrackingSnapshot) (bool, error) {
	args := m.Called(ctx, snapshot)
	return args.Bool(0), args.Error(1)
}

// barrierFactory holds every Get until `parties` readers have read, so all of
// them work from the same version.
type barrierFactory struct {
	inner   *memory.UnitOfWorkFactory
	barrier *sync.WaitGroup
}

func newBarrierFactory(store *memory.Store, parties int) barrierFactory {
	wg := &sync.WaitGroup{}
	wg.Add(parties)
	return barrierFactory{inner: memory.NewUnitOfWorkFactory(store), barrier: wg}
}

func (f barrierFactory) Create() commands.OrderUoW {
	return barrierUoW{UnitOfWork: f.inner.Create(), barrier: f.barrier}
}

type barrierUoW struct {
	ports.UnitOfWork
	barrier *sync.WaitGroup
}

func (u barrierUoW) OrderRepository() ports.OrderRepository {
	return barrierRepository{OrderRepository: u.UnitOfWork.OrderRepository(), barrier: u.barrier}
}

type barrierRepository struct {
	ports.OrderRepository
	barrier *sync.WaitGroup
}

func (r barrierRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	o, err := r.OrderRepository.Get(ctx, id)
	r.barrier.Done()
	r.barrier.Wait()
	return o, err
}
