package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
// AfterCommit runs the hook immediately, like a write outside a transaction.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

func (m *MockAggregateTracker) AfterCommit(fn func()) {
	m.Called(fn)
	fn()
}

// OrderRepositoryIntegrationTestSuite runs the GORM order repository against PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

var longAgo = time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return().Maybe()
	suite.tracker.On("AfterCommit", mock.Anything).Return().Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsSnapshot() {
	ctx := suite.T().Context()
	o := suite.createTestOrder(longAgo)

	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(got.IsEqual(o))
	suite.Equal("pizza-roma", got.TenantID().String())
	suite.Equal(order.Pending, got.Status())
	suite.Equal(o.Customer(), got.Customer())
	suite.Equal(o.Address().Params(), got.Address().Params())
	suite.Equal(o.Items(), got.Items())
	suite.Equal(o.TotalCents(), got.TotalCents())
	suite.Equal(int64(0), got.Version())
	suite.True(o.CreatedAt().Equal(got.CreatedAt()))
	_, hasRef := got.POSSyncRef()
	suite.False(hasRef)
	suite.Nil(got.Delivery())

	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	_, err := suite.repository.Get(suite.T().Context(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsExternalRefsAndBumpsVersion() {
	ctx := suite.T().Context()
	o := suite.createTestOrder(longAgo)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	now := longAgo.Add(time.Minute)
	_, err := o.ConfirmPayment("pay-1", now)
	suite.Require().NoError(err)
	_, err = o.AttachPOSRef("pos-77", now)
	suite.Require().NoError(err)
	_, err = o.AttachDelivery(order.Delivery{
		Provider:    "wolt-drive",
		JobID:       "job-9",
		Status:      order.DeliveryCreated,
		TrackingURL: "https://track.example/job-9",
		Quote:       &order.Quote{FeeCents: 350, ETAMinutes: 25, Currency: "EUR"},
	}, now)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Equal(int64(1), o.Version())

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(1), got.Version())
	suite.Equal(order.Paid, got.Status())
	suite.Equal("pay-1", got.PaymentRef())
	suite.Equal(order.PaymentPaid, got.PaymentStatus())
	ref, ok := got.POSSyncRef()
	suite.True(ok)
	suite.Equal("pos-77", ref)
	suite.Equal(o.Delivery(), got.Delivery())
	suite.True(now.Equal(got.UpdatedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConcurrentModification() {
	ctx := suite.T().Context()
	o := suite.createTestOrder(longAgo)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Advance(order.Canceled, longAgo.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	_, err = second.ConfirmPayment("pay-1", longAgo.Add(2*time.Minute))
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)
	suite.Equal(int64(0), second.Version())

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Canceled, stored.Status())
	suite.Equal(order.PaymentPending, stored.PaymentStatus())
	suite.Equal(int64(1), stored.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	o := suite.createTestOrder(longAgo)

	err := suite.repository.Update(suite.T().Context(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertNotCalled(suite.T(), "AfterCommit", mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_DuplicateJobID_Fails() {
	ctx := suite.T().Context()
	a := suite.createPaidOrder(longAgo)
	b := suite.createPaidOrder(longAgo)
	delivery := order.Delivery{Provider: "wolt-drive", JobID: "job-shared", Status: order.DeliveryCreated}

	_, err := a.AttachDelivery(delivery, longAgo)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, a))

	_, err = b.AttachDelivery(delivery, longAgo)
	suite.Require().NoError(err)
	suite.Require().Error(suite.repository.Update(ctx, b))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListForReconciliation_SelectsInconsistentStaleOrders() {
	ctx := suite.T().Context()

	paidMissingRefs := suite.createPaidOrder(longAgo)

	complete := suite.createPaidOrder(longAgo.Add(time.Second))
	_, err := complete.AttachPOSRef("pos-1", longAgo.Add(time.Second))
	suite.Require().NoError(err)
	_, err = complete.AttachDelivery(order.Delivery{Provider: "wolt-drive", JobID: "job-1", Status: order.DeliveryCreated}, longAgo.Add(time.Second))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, complete))

	canceledWithRef := suite.createPaidOrder(longAgo.Add(2 * time.Second))
	_, err = canceledWithRef.AttachPOSRef("pos-2", longAgo.Add(2*time.Second))
	suite.Require().NoError(err)
	suite.Require().NoError(canceledWithRef.Advance(order.Canceled, longAgo.Add(2*time.Second)))
	suite.Require().NoError(suite.repository.Update(ctx, canceledWithRef))

	pending := suite.createTestOrder(longAgo)
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	fresh := suite.createPaidOrder(time.Now())

	orders, err := suite.repository.ListForReconciliation(ctx, time.Now().Add(-time.Hour), 10)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.True(orders[0].IsEqual(paidMissingRefs))
	suite.True(orders[1].IsEqual(canceledWithRef))
	for _, o := range orders {
		suite.False(o.IsEqual(fresh))
		suite.False(o.IsEqual(complete))
	}

	limited, err := suite.repository.ListForReconciliation(ctx, time.Now().Add(-time.Hour), 1)
	suite.Require().NoError(err)
	suite.Require().Len(limited, 1)
	suite.True(limited[0].IsEqual(paidMissingRefs))
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(createdAt time.Time) *order.Order {
	tenantID, err := kernel.NewTenantID("pizza-roma")
	suite.Require().NoError(err)
	address, err := kernel.NewAddress(kernel.AddressParams{
		Street:     "Na vŕšku 5",
		PostalCode: "851 10",
		City:       "Bratislava",
		CityPart:   "Jarovce",
		Note:       "2nd floor",
	})
	suite.Require().NoError(err)

	o, err := order.NewOrder(order.NewOrderParams{
		ID:       kernel.NewUUID(),
		TenantID: tenantID,
		Customer: order.Customer{Name: "Eva", Phone: "+421900123456", Email: "eva@example.com"},
		Address:  address,
		Items: []order.Item{
			{
				ProductID:      "margherita",
				Name:           "Margherita",
				UnitPriceCents: 890,
				Quantity:       2,
				Modifiers:      []order.Modifier{{Name: "Extra cheese", PriceCents: 100}},
			},
		},
		TaxCents:         190,
		DeliveryFeeCents: 290,
		CreatedAt:        createdAt,
	})
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) createPaidOrder(at time.Time) *order.Order {
	ctx := suite.T().Context()
	o := suite.createTestOrder(at)
	suite.Require().NoError(suite.repository.Add(ctx, o))
	_, err := o.ConfirmPayment("pay-"+o.ID().String(), at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, o))
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
