package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/retry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DeliveryResult is the outcome of a successful dispatch.
type DeliveryResult struct {
	Delivery          order.Delivery
	AlreadyDispatched bool
}

// CreateDeliveryCommandHandler dispatches a courier at most once per order.
//
// The address snapshot is checked against the tenant's zones first; an uncovered
// address returns zone.ErrNotCovered without contacting the courier. The quote and
// the job are requested under the retry policy, then the delivery record is
// CAS-written onto the order.
type CreateDeliveryCommandHandler struct {
	uowFactory      UoWFactory
	courier         ports.CourierClient
	resolver        services.ZoneResolver
	policy          retry.Policy
	persistAttempts int
	notifier        *ChangeNotifier
	logger          *slog.Logger
	tracer          trace.Tracer
	now             func() time.Time
}

func NewCreateDeliveryCommandHandler(
	uowFactory UoWFactory,
	courier ports.CourierClient,
	policy retry.Policy,
	notifier *ChangeNotifier,
	logger *slog.Logger,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory:      uowFactory,
		courier:         courier,
		resolver:        services.NewZoneResolver(),
		policy:          policy,
		persistAttempts: defaultPersistAttempts,
		notifier:        notifier,
		logger:          logger.With("component", "create_delivery_handler"),
		tracer:          otel.Tracer(tracerName),
		now:             time.Now,
	}
}

func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) (DeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return DeliveryResult{}, err
	}
	orderID := cmd.OrderID().String()

	o, zones, err := h.load(ctx, cmd.OrderID())
	if err != nil {
		return DeliveryResult{}, err
	}
	if o.IsDispatched() {
		return DeliveryResult{Delivery: *o.Delivery(), AlreadyDispatched: true}, nil
	}
	if !o.Status().HasReachedPayment() {
		return DeliveryResult{}, fmt.Errorf("%w: order %s is %s", ErrOrderNotSyncable, orderID, o.Status())
	}
	if _, err = h.resolver.Resolve(o.TenantID(), zones, o.Address()); err != nil {
		if errors.Is(err, zone.ErrNotCovered) {
			h.logger.InfoContext(ctx, "Delivery refused, address not covered", "order_id", orderID)
		}
		return DeliveryResult{}, fmt.Errorf("order %s: %w", orderID, err)
	}

	req := buildDeliveryRequest(o)
	quote, job, attempts, err := h.dispatch(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "Courier dispatch failed", "order_id", orderID, "attempts", attempts, "error", err)
		return DeliveryResult{}, &SyncFailedError{System: SystemCourier, Attempts: attempts, Cause: err}
	}

	status, parseErr := order.ParseDeliveryStatus(job.Status)
	if parseErr != nil {
		status = order.DeliveryCreated
	}
	delivery := order.Delivery{
		Provider:    h.courier.Provider(),
		JobID:       job.JobID,
		Status:      status,
		TrackingURL: job.TrackingURL,
		Quote: &order.Quote{
			FeeCents:   quote.FeeCents,
			ETAMinutes: quote.ETAMinutes,
			Currency:   quote.Currency,
		},
	}

	saved, changed, err := persistExternalResult(ctx, orderUoWFactory{h.uowFactory}, cmd.OrderID(), h.persistAttempts,
		func(o *order.Order) (bool, error) {
			return o.AttachDelivery(delivery, h.now())
		})
	if err != nil {
		if errors.Is(err, order.ErrExternalRefConflict) {
			h.logger.ErrorContext(ctx, "Courier dispatched twice",
				"order_id", orderID, "job_id", job.JobID, "anomaly", string(AnomalyDuplicateDispatch), "error", err)
		} else {
			h.logger.ErrorContext(ctx, "Courier job created but not stored",
				"order_id", orderID, "job_id", job.JobID, "anomaly", string(AnomalyDeliveryMissing), "error", err)
		}
		return DeliveryResult{}, fmt.Errorf("store courier job %q for order %s: %w", job.JobID, orderID, err)
	}

	if saved.Status() == order.Canceled {
		h.logger.WarnContext(ctx, "Courier dispatched but order canceled meanwhile",
			"order_id", orderID, "job_id", job.JobID, "anomaly", string(AnomalyDispatchedButCanceled))
	}
	if changed {
		h.logger.InfoContext(ctx, "Courier dispatched", "order_id", orderID, "job_id", job.JobID, "attempts", attempts)
		h.notifier.OrderChanged(ctx, ports.DeliveryCreated, saved)
	}

	return DeliveryResult{Delivery: *saved.Delivery()}, nil
}

func (h CreateDeliveryCommandHandler) load(ctx context.Context, id kernel.UUID) (*order.Order, []zone.Zone, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	zones, err := uow.ZoneRepository().ListByTenant(ctx, o.TenantID())
	if err != nil {
		return nil, nil, err
	}
	return o, zones, nil
}

// dispatch requests a quote and then the job; attempts counts calls across both.
func (h CreateDeliveryCommandHandler) dispatch(
	ctx context.Context,
	req ports.DeliveryRequest,
) (ports.CourierQuote, ports.CourierJob, int, error) {
	ctx, span := h.tracer.Start(ctx, "courier.Dispatch", trace.WithAttributes(
		attribute.String("order.id", req.OrderID),
		attribute.String("courier.provider", h.courier.Provider()),
	))
	defer span.End()

	notify := func(step string) retry.NotifyFunc {
		return func(err error, attempt int, wait time.Duration) {
			h.logger.WarnContext(ctx, "Courier call failed, retrying",
				"order_id", req.OrderID, "step", step, "attempt", attempt, "wait", wait.String(), "error", err)
		}
	}

	var quote ports.CourierQuote
	quoteAttempts, err := h.policy.Do(ctx, func(ctx context.Context) error {
		q, err := h.courier.Quote(ctx, req)
		if errors.Is(err, ports.ErrRejected) {
			return retry.Permanent(err)
		}
		quote = q
		return err
	}, notify("quote"))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "courier quote failed")
		return quote, ports.CourierJob{}, quoteAttempts, fmt.Errorf("quote: %w", err)
	}

	var job ports.CourierJob
	jobAttempts, err := h.policy.Do(ctx, func(ctx context.Context) error {
		j, err := h.courier.CreateJob(ctx, req, quote.QuoteID)
		if errors.Is(err, ports.ErrRejected) {
			return retry.Permanent(err)
		}
		if err == nil && j.JobID == "" {
			return errors.New("courier returned an empty job id")
		}
		job = j
		return err
	}, notify("create_job"))
	attempts := quoteAttempts + jobAttempts
	span.SetAttributes(attribute.Int("retry.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "courier job failed")
		return quote, job, attempts, fmt.Errorf("create job: %w", err)
	}
	return quote, job, attempts, nil
}

func buildDeliveryRequest(o *order.Order) ports.DeliveryRequest {
	c := o.Customer()
	return ports.DeliveryRequest{
		IdempotencyKey:  o.ID().String(),
		TenantID:        o.TenantID().String(),
		OrderID:         o.ID().String(),
		Dropoff:         addressPayload(o),
		RecipientName:   c.Name,
		RecipientPhone:  c.Phone,
		OrderTotalCents: o.TotalCents(),
	}
}

// orderUoWFactory narrows a UoWFactory to the order-only view used by the CAS helpers.
type orderUoWFactory struct {
	factory UoWFactory
}

func (f orderUoWFactory) Create() OrderUoW {
	return f.factory.Create()
}
