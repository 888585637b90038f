package http

import (
	"log/slog"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

var _ servers.ServerInterface = (*Server)(nil)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder          commands.CreateOrderCommandHandler
	AdvanceOrderStatus   commands.AdvanceOrderStatusCommandHandler
	ConfirmPayment       commands.ConfirmPaymentCommandHandler
	SyncOrderToPOS       commands.SyncOrderToPOSCommandHandler
	CreateDelivery       commands.CreateDeliveryCommandHandler
	UpdateDeliveryStatus commands.UpdateDeliveryStatusCommandHandler
	ReconcileOrders      commands.ReconcileOrdersCommandHandler

	GetOrder            queries.GetOrderQueryHandler
	GetOrderTracking    queries.GetOrderTrackingQueryHandler
	ResolveDeliveryZone queries.ResolveDeliveryZoneQueryHandler
	ValidateMinOrder    queries.ValidateMinOrderQueryHandler
}

// ReconcileDefaults apply when an on-demand sweep does not set its own window.
type ReconcileDefaults struct {
	StaleAfter time.Duration
	Limit      int
}

// Server implements servers.ServerInterface.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers  Handlers
	reconcile ReconcileDefaults
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, reconcile ReconcileDefaults, logger *slog.Logger) *Server {
	return &Server{
		handlers:  handlers,
		reconcile: reconcile,
		logger:    logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /api/v1/orders - creates a pending order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		body.TenantId,
		customerFromAPI(body.Customer),
		addressFromAPI(body.Address),
		itemsFromAPI(body.Items),
		body.TaxCents,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	o, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "create_order", cmd.OrderID().String(), err)
	}

	return ctx.JSON(http.StatusCreated, orderToAPI(o))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID servers.OrderId) error {
	query, err := queries.NewGetOrderQuery(orderIDFromAPI(orderID))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "get_order", orderID.String(), err)
	}

	return ctx.JSON(http.StatusOK, orderViewToAPI(view))
}

// AdvanceOrderStatus handles POST /api/v1/orders/{orderId}/status.
func (s *Server) AdvanceOrderStatus(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.StatusChange
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	cmd, err := commands.NewAdvanceOrderStatusCommand(orderIDFromAPI(orderID), status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	o, err := s.handlers.AdvanceOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "advance_order_status", orderID.String(), err)
	}

	return ctx.JSON(http.StatusOK, orderToAPI(o))
}

// ConfirmPayment handles POST /api/v1/orders/{orderId}/payment.
func (s *Server) ConfirmPayment(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.PaymentConfirmation
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderIDFromAPI(orderID), body.PaymentRef)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	res, err := s.handlers.ConfirmPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "confirm_payment", orderID.String(), err)
	}

	return ctx.JSON(http.StatusOK, orderToAPI(res.Order))
}

// SyncOrderToPos handles POST /api/v1/orders/{orderId}/pos-sync.
func (s *Server) SyncOrderToPos(ctx echo.Context, orderID servers.OrderId) error {
	cmd, err := commands.NewSyncOrderToPOSCommand(orderIDFromAPI(orderID))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	res, err := s.handlers.SyncOrderToPOS.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "sync_order_to_pos", orderID.String(), err)
	}

	return ctx.JSON(http.StatusOK, servers.PosSyncResult{
		PosSyncRef:    res.Ref,
		AlreadySynced: res.AlreadySynced,
	})
}

// CreateDelivery handles POST /api/v1/orders/{orderId}/delivery.
func (s *Server) CreateDelivery(ctx echo.Context, orderID servers.OrderId) error {
	cmd, err := commands.NewCreateDeliveryCommand(orderIDFromAPI(orderID))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	res, err := s.handlers.CreateDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "create_delivery", orderID.String(), err)
	}

	return ctx.JSON(http.StatusOK, servers.DeliveryResult{
		Delivery:          deliveryToAPI(res.Delivery),
		AlreadyDispatched: res.AlreadyDispatched,
	})
}

// UpdateDeliveryStatus handles POST /api/v1/orders/{orderId}/delivery/status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.DeliveryStatusUpdate
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(
		orderIDFromAPI(orderID), body.JobId, body.Status, deref(body.TrackingUrl))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	o, err := s.handlers.UpdateDeliveryStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "update_delivery_status", orderID.String(), err)
	}

	return ctx.JSON(http.StatusOK, orderToAPI(o))
}

// GetTracking handles GET /api/v1/tracking/{orderId} for the public tracker.
func (s *Server) GetTracking(ctx echo.Context, orderID servers.OrderId) error {
	query, err := queries.NewGetOrderTrackingQuery(orderIDFromAPI(orderID))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	snapshot, err := s.handlers.GetOrderTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "get_tracking", orderID.String(), err)
	}

	return ctx.JSON(http.StatusOK, trackingToAPI(snapshot))
}

// ResolveDeliveryZone handles POST /api/v1/tenants/{tenantId}/zones/resolve.
func (s *Server) ResolveDeliveryZone(ctx echo.Context, tenantID servers.TenantId) error {
	var body servers.ZoneLookup
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	query, err := queries.NewResolveDeliveryZoneQuery(tenantID, addressFromAPI(body.Address))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	res, err := s.handlers.ResolveDeliveryZone.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "resolve_delivery_zone", "", err)
	}

	return ctx.JSON(http.StatusOK, servers.ZoneResolution{
		ZoneName:      res.ZoneName,
		FeeCents:      res.FeeCents,
		MinOrderCents: res.MinOrderCents,
		MatchedBy:     res.MatchedBy,
	})
}

// ValidateMinOrder handles POST /api/v1/tenants/{tenantId}/zones/validate-min-order.
func (s *Server) ValidateMinOrder(ctx echo.Context, tenantID servers.TenantId) error {
	var body servers.MinOrderLookup
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	query, err := queries.NewValidateMinOrderQuery(tenantID, addressFromAPI(body.Address), body.TotalCents)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	res, err := s.handlers.ValidateMinOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "validate_min_order", "", err)
	}

	return ctx.JSON(http.StatusOK, servers.MinOrderCheck{
		Valid:         res.Valid,
		MinOrderCents: res.MinOrderCents,
		ZoneName:      res.ZoneName,
	})
}

// RunReconciliation handles POST /api/v1/reconciliation.
func (s *Server) RunReconciliation(ctx echo.Context) error {
	var body servers.ReconciliationRequest
	if ctx.Request().ContentLength != 0 {
		if err := ctx.Bind(&body); err != nil {
			return badRequest(ctx, "Invalid request body")
		}
	}

	staleAfter := s.reconcile.StaleAfter
	if body.StaleAfterSeconds != nil {
		staleAfter = time.Duration(*body.StaleAfterSeconds) * time.Second
	}
	limit := s.reconcile.Limit
	if body.Limit != nil {
		limit = *body.Limit
	}

	cmd, err := commands.NewReconcileOrdersCommand(staleAfter, limit)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	anomalies, err := s.handlers.ReconcileOrders.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "reconcile_orders", "", err)
	}

	report := servers.ReconciliationReport{Anomalies: make([]servers.Anomaly, 0, len(anomalies))}
	for _, a := range anomalies {
		report.Anomalies = append(report.Anomalies, servers.Anomaly{
			OrderId:  a.OrderID,
			TenantId: a.TenantID,
			Kind:     string(a.Kind),
			Status:   a.Status.String(),
			Detail:   a.Detail,
		})
	}
	return ctx.JSON(http.StatusOK, report)
}
