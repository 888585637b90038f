package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/retry"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const tenantSlug = "pizza-roma"

var fastPolicy = retry.Policy{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}

type uowFactory struct{ inner *memory.UnitOfWorkFactory }

func (f uowFactory) Create() commands.UoW { return f.inner.Create() }

type orderUoWFactory struct{ inner *memory.UnitOfWorkFactory }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.inner.Create() }

type MockPOSClient struct {
	mock.Mock
}

func (m *MockPOSClient) SubmitOrder(ctx context.Context, o ports.POSOrder) (string, error) {
	args := m.Called(ctx, o)
	return args.String(0), args.Error(1)
}

type MockCourierClient struct {
	mock.Mock
}

func (m *MockCourierClient) Provider() string { return "wolt-drive" }

func (m *MockCourierClient) Quote(ctx context.Context, req ports.DeliveryRequest) (ports.CourierQuote, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.CourierQuote), args.Error(1)
}

func (m *MockCourierClient) CreateJob(ctx context.Context, req ports.DeliveryRequest, quoteID string) (ports.CourierJob, error) {
	args := m.Called(ctx, req, quoteID)
	return args.Get(0).(ports.CourierJob), args.Error(1)
}

// ServerTestSuite drives the echo router end to end over the in-memory store.
type ServerTestSuite struct {
	suite.Suite
	store   *memory.Store
	pos     *MockPOSClient
	courier *MockCourierClient
	router  *echo.Echo
}

func (suite *ServerTestSuite) SetupTest() {
	logger := slog.New(slog.DiscardHandler)
	suite.store = memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(suite.store)
	uows := uowFactory{inner: factory}
	orders := orderUoWFactory{inner: factory}
	suite.pos = new(MockPOSClient)
	suite.courier = new(MockCourierClient)

	tenant, err := kernel.NewTenantID(tenantSlug)
	suite.Require().NoError(err)
	minOrder := int64(1500)
	jarovce, err := zone.NewZone(zone.Params{
		TenantID: tenant, Name: "Jarovce", Position: 1,
		Matcher:  zone.Matcher{CityParts: []string{"Jarovce"}},
		FeeCents: 290, MinOrderCents: &minOrder,
	})
	suite.Require().NoError(err)
	city, err := zone.NewZone(zone.Params{
		TenantID: tenant, Name: "Bratislava", Position: 2,
		Matcher:  zone.Matcher{Cities: []string{"Bratislava"}},
		FeeCents: 390,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.ZoneRepository().ReplaceForTenant(context.Background(), tenant, []zone.Zone{jarovce, city}))

	advance := commands.NewAdvanceOrderStatusCommandHandler(orders, nil, logger)
	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:          commands.NewCreateOrderCommandHandler(uows, nil, logger),
		AdvanceOrderStatus:   advance,
		ConfirmPayment:       commands.NewConfirmPaymentCommandHandler(orders, nil, logger),
		SyncOrderToPOS:       commands.NewSyncOrderToPOSCommandHandler(orders, suite.pos, fastPolicy, nil, logger),
		CreateDelivery:       commands.NewCreateDeliveryCommandHandler(uows, suite.courier, fastPolicy, nil, logger),
		UpdateDeliveryStatus: commands.NewUpdateDeliveryStatusCommandHandler(orders, advance, commands.DefaultStatusMappingRule(), nil, logger),
		ReconcileOrders:      commands.NewReconcileOrdersCommandHandler(orders, logger),
		GetOrder:             queries.NewGetOrderQueryHandler(suite.store.OrderRepository()),
		GetOrderTracking:     queries.NewGetOrderTrackingQueryHandler(suite.store.OrderRepository(), nil, logger),
		ResolveDeliveryZone:  queries.NewResolveDeliveryZoneQueryHandler(suite.store.ZoneRepository()),
		ValidateMinOrder:     queries.NewValidateMinOrderQueryHandler(suite.store.ZoneRepository()),
	}, httpadapter.ReconcileDefaults{StaleAfter: time.Hour, Limit: 100}, logger)

	suite.router, err = httpadapter.NewRouter(server, logger)
	suite.Require().NoError(err)
}

func (suite *ServerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

func (suite *ServerTestSuite) decode(rec *httptest.ResponseRecorder, out any) {
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}

const newOrderBody = `{
	"tenantId": "pizza-roma",
	"customer": {"name": "Jana Nováková", "phone": "+421900111222"},
	"address": {"street": "Na hrádzi 12", "postalCode": "851 10", "city": "Bratislava", "cityPart": "Jarovce"},
	"items": [
		{"productId": "margherita-32", "name": "Margherita 32cm", "unitPriceCents": 890, "quantity": 2,
		 "modifiers": [{"name": "extra cheese", "priceCents": 120}]},
		{"name": "Cola 0.5l", "unitPriceCents": 250, "quantity": 1}
	],
	"taxCents": 230
}`

func (suite *ServerTestSuite) createOrder() servers.Order {
	rec := suite.do(http.MethodPost, "/api/v1/orders", newOrderBody)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var created servers.Order
	suite.decode(rec, &created)
	return created
}

func (suite *ServerTestSuite) pay(o servers.Order) {
	rec := suite.do(http.MethodPost, "/api/v1/orders/"+o.Id.String()+"/payment", `{"paymentRef":"pay-1"}`)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (suite *ServerTestSuite) TestHealth() {
	rec := suite.do(http.MethodGet, "/health", "")

	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("Healthy", rec.Body.String())
}

func (suite *ServerTestSuite) TestCreateOrder_ResolvesFeeAndTotals() {
	created := suite.createOrder()

	suite.Equal("PENDING", created.Status)
	suite.Equal(int64(2270), created.SubtotalCents)
	suite.Equal(int64(290), created.DeliveryFeeCents)
	suite.Equal(int64(2790), created.TotalCents)
	suite.Equal(int64(0), created.Version)
	suite.Require().Len(created.Items, 2)
	suite.Require().NotNil(created.Items[0].Modifiers)

	rec := suite.do(http.MethodGet, "/api/v1/orders/"+created.Id.String(), "")
	suite.Require().Equal(http.StatusOK, rec.Code)
	var fetched servers.Order
	suite.decode(rec, &fetched)
	suite.Equal(created.Id, fetched.Id)
	suite.Equal(created.TotalCents, fetched.TotalCents)
}

func (suite *ServerTestSuite) TestCreateOrder_SchemaViolation() {
	rec := suite.do(http.MethodPost, "/api/v1/orders", `{"tenantId":"pizza-roma"}`)

	suite.Equal(http.StatusBadRequest, rec.Code)
	var body servers.Error
	suite.decode(rec, &body)
	suite.Contains(body.Message, "Invalid request body")
}

func (suite *ServerTestSuite) TestCreateOrder_NotCovered() {
	body := strings.Replace(newOrderBody, `"city": "Bratislava", "cityPart": "Jarovce"`, `"city": "Trnava"`, 1)

	rec := suite.do(http.MethodPost, "/api/v1/orders", body)

	suite.Equal(http.StatusUnprocessableEntity, rec.Code)
	var errBody servers.Error
	suite.decode(rec, &errBody)
	suite.Contains(errBody.Message, "delivery unavailable here")
}

func (suite *ServerTestSuite) TestGetOrder_NotFound() {
	rec := suite.do(http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), "")

	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *ServerTestSuite) TestGetOrder_MalformedID() {
	rec := suite.do(http.MethodGet, "/api/v1/orders/not-a-uuid", "")

	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerTestSuite) TestAdvanceOrderStatus() {
	created := suite.createOrder()
	path := "/api/v1/orders/" + created.Id.String() + "/status"

	rec := suite.do(http.MethodPost, path, `{"status":"preparing"}`)
	suite.Equal(http.StatusConflict, rec.Code)
	var errBody servers.Error
	suite.decode(rec, &errBody)
	suite.Contains(errBody.Message, "PENDING -> PREPARING")
	suite.Nil(errBody.Retryable)

	suite.pay(created)
	rec = suite.do(http.MethodPost, path, `{"status":"Preparing"}`)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var advanced servers.Order
	suite.decode(rec, &advanced)
	suite.Equal("PREPARING", advanced.Status)
	suite.Equal(int64(2), advanced.Version)

	rec = suite.do(http.MethodPost, path, `{"status":"somewhere"}`)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerTestSuite) TestConfirmPayment_Replay() {
	created := suite.createOrder()
	suite.pay(created)

	rec := suite.do(http.MethodPost, "/api/v1/orders/"+created.Id.String()+"/payment", `{"paymentRef":"pay-1"}`)
	suite.Equal(http.StatusOK, rec.Code)

	rec = suite.do(http.MethodPost, "/api/v1/orders/"+created.Id.String()+"/payment", `{"paymentRef":"pay-2"}`)
	suite.Equal(http.StatusConflict, rec.Code)
}

func (suite *ServerTestSuite) TestSyncOrderToPos() {
	created := suite.createOrder()
	path := "/api/v1/orders/" + created.Id.String() + "/pos-sync"

	rec := suite.do(http.MethodPost, path, "")
	suite.Equal(http.StatusConflict, rec.Code, "Unpaid orders are not synced")

	suite.pay(created)
	suite.pos.On("SubmitOrder", mock.Anything, mock.Anything).Return("POS-1", nil).Once()

	rec = suite.do(http.MethodPost, path, "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var first servers.PosSyncResult
	suite.decode(rec, &first)
	suite.Equal(servers.PosSyncResult{PosSyncRef: "POS-1", AlreadySynced: false}, first)

	rec = suite.do(http.MethodPost, path, "")
	suite.Require().Equal(http.StatusOK, rec.Code)
	var second servers.PosSyncResult
	suite.decode(rec, &second)
	suite.Equal(servers.PosSyncResult{PosSyncRef: "POS-1", AlreadySynced: true}, second)

	suite.pos.AssertNumberOfCalls(suite.T(), "SubmitOrder", 1)
}

func (suite *ServerTestSuite) TestSyncOrderToPos_Rejected() {
	created := suite.createOrder()
	suite.pay(created)
	suite.pos.On("SubmitOrder", mock.Anything, mock.Anything).Return("", ports.ErrRejected).Once()

	rec := suite.do(http.MethodPost, "/api/v1/orders/"+created.Id.String()+"/pos-sync", "")

	suite.Equal(http.StatusBadGateway, rec.Code)
	var errBody servers.Error
	suite.decode(rec, &errBody)
	suite.Contains(errBody.Message, "pos")
}

func (suite *ServerTestSuite) TestDeliveryFlow() {
	created := suite.createOrder()
	suite.pay(created)
	suite.courier.On("Quote", mock.Anything, mock.Anything).
		Return(ports.CourierQuote{QuoteID: "q-1", FeeCents: 350, ETAMinutes: 25, Currency: "EUR"}, nil).Once()
	suite.courier.On("CreateJob", mock.Anything, mock.Anything, "q-1").
		Return(ports.CourierJob{JobID: "job-1", Status: "created", TrackingURL: "https://track.example/job-1"}, nil).Once()

	rec := suite.do(http.MethodPost, "/api/v1/orders/"+created.Id.String()+"/delivery", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var dispatched servers.DeliveryResult
	suite.decode(rec, &dispatched)
	suite.False(dispatched.AlreadyDispatched)
	suite.Equal("job-1", dispatched.Delivery.JobId)
	suite.Equal("wolt-drive", dispatched.Delivery.Provider)
	suite.Require().NotNil(dispatched.Delivery.Quote)
	suite.Equal(int64(350), dispatched.Delivery.Quote.FeeCents)

	for _, status := range []string{"preparing", "ready"} {
		rec = suite.do(http.MethodPost, "/api/v1/orders/"+created.Id.String()+"/status", `{"status":"`+status+`"}`)
		suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = suite.do(http.MethodPost, "/api/v1/orders/"+created.Id.String()+"/delivery/status",
		`{"jobId":"job-1","status":"picked_up","trackingUrl":"https://track.example/job-1/live"}`)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = suite.do(http.MethodGet, "/api/v1/tracking/"+created.Id.String(), "")
	suite.Require().Equal(http.StatusOK, rec.Code)
	var tracking servers.Tracking
	suite.decode(rec, &tracking)
	suite.Equal("OUT_FOR_DELIVERY", tracking.Status)
	suite.Require().NotNil(tracking.DeliveryStatus)
	suite.Equal("picked_up", *tracking.DeliveryStatus)
	suite.Require().NotNil(tracking.TrackingUrl)
	suite.Equal("https://track.example/job-1/live", *tracking.TrackingUrl)

	rec = suite.do(http.MethodPost, "/api/v1/orders/"+created.Id.String()+"/delivery/status",
		`{"jobId":"job-other","status":"delivered"}`)
	suite.Equal(http.StatusConflict, rec.Code)
}

func (suite *ServerTestSuite) TestResolveDeliveryZone() {
	rec := suite.do(http.MethodPost, "/api/v1/tenants/pizza-roma/zones/resolve",
		`{"address":{"street":"Hlavná 1","city":"bratislava","cityPart":"JAROVCE"}}`)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var res servers.ZoneResolution
	suite.decode(rec, &res)
	suite.Equal("Jarovce", res.ZoneName)
	suite.Equal(int64(290), res.FeeCents)
	suite.Equal("city_part", res.MatchedBy)
	suite.Require().NotNil(res.MinOrderCents)
	suite.Equal(int64(1500), *res.MinOrderCents)

	rec = suite.do(http.MethodPost, "/api/v1/tenants/pizza-roma/zones/resolve",
		`{"address":{"street":"Hlavná 1","city":"Košice"}}`)
	suite.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (suite *ServerTestSuite) TestValidateMinOrder() {
	rec := suite.do(http.MethodPost, "/api/v1/tenants/pizza-roma/zones/validate-min-order",
		`{"address":{"street":"Hlavná 1","city":"Bratislava","cityPart":"Jarovce"},"totalCents":1200}`)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var check servers.MinOrderCheck
	suite.decode(rec, &check)
	suite.False(check.Valid)
	suite.Equal("Jarovce", check.ZoneName)

	rec = suite.do(http.MethodPost, "/api/v1/tenants/pizza-roma/zones/validate-min-order",
		`{"address":{"street":"Hlavná 1","city":"Bratislava"},"totalCents":1200}`)
	suite.Require().Equal(http.StatusOK, rec.Code)
	var cityCheck servers.MinOrderCheck
	suite.decode(rec, &cityCheck)
	suite.True(cityCheck.Valid)
	suite.Equal("Bratislava", cityCheck.ZoneName)
	suite.Nil(cityCheck.MinOrderCents)
}

func (suite *ServerTestSuite) TestRunReconciliation() {
	created := suite.createOrder()
	suite.pay(created)

	rec := suite.do(http.MethodPost, "/api/v1/reconciliation", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var report servers.ReconciliationReport
	suite.decode(rec, &report)
	suite.Empty(report.Anomalies, "Fresh orders are not stale yet")

	rec = suite.do(http.MethodPost, "/api/v1/reconciliation", `{"staleAfterSeconds":0}`)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
