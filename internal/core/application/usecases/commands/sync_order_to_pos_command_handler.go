package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/retry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "fulfillment/commands"

// SyncResult is the outcome of a successful POS sync.
// AlreadySynced is set when the order carried a reference before the call and no
// request was sent.
type SyncResult struct {
	Ref           string
	AlreadySynced bool
}

// SyncOrderToPOSCommandHandler submits an order to the POS at most once.
//
// Flow:
//   - read the order; an existing posSyncRef short-circuits with AlreadySynced
//   - build the payload from the order snapshot only
//   - call the POS under the retry policy, with no transaction open
//   - CAS-write the returned reference, re-reading on lost races
//
// A crash between the POS call and the final write leaves a POS order without a
// stored reference; the reconciliation sweep reports it.
type SyncOrderToPOSCommandHandler struct {
	uowFactory      OrderUoWFactory
	pos             ports.POSClient
	policy          retry.Policy
	persistAttempts int
	notifier        *ChangeNotifier
	logger          *slog.Logger
	tracer          trace.Tracer
	now             func() time.Time
}

func NewSyncOrderToPOSCommandHandler(
	uowFactory OrderUoWFactory,
	pos ports.POSClient,
	policy retry.Policy,
	notifier *ChangeNotifier,
	logger *slog.Logger,
) SyncOrderToPOSCommandHandler {
	return SyncOrderToPOSCommandHandler{
		uowFactory:      uowFactory,
		pos:             pos,
		policy:          policy,
		persistAttempts: defaultPersistAttempts,
		notifier:        notifier,
		logger:          logger.With("component", "pos_sync_handler"),
		tracer:          otel.Tracer(tracerName),
		now:             time.Now,
	}
}

func (h SyncOrderToPOSCommandHandler) Handle(ctx context.Context, cmd SyncOrderToPOSCommand) (SyncResult, error) {
	if err := cmd.Validate(); err != nil {
		return SyncResult{}, err
	}
	orderID := cmd.OrderID().String()

	o, err := loadOrder(ctx, h.uowFactory, cmd.OrderID())
	if err != nil {
		return SyncResult{}, err
	}
	if ref, ok := o.POSSyncRef(); ok {
		return SyncResult{Ref: ref, AlreadySynced: true}, nil
	}
	if !o.Status().HasReachedPayment() {
		return SyncResult{}, fmt.Errorf("%w: order %s is %s", ErrOrderNotSyncable, orderID, o.Status())
	}

	ref, attempts, err := h.submit(ctx, buildPOSOrder(o))
	if err != nil {
		h.logger.WarnContext(ctx, "POS sync failed", "order_id", orderID, "attempts", attempts, "error", err)
		return SyncResult{}, &SyncFailedError{System: SystemPOS, Attempts: attempts, Cause: err}
	}

	saved, changed, err := persistExternalResult(ctx, h.uowFactory, cmd.OrderID(), h.persistAttempts,
		func(o *order.Order) (bool, error) {
			return o.AttachPOSRef(ref, h.now())
		})
	if err != nil {
		if errors.Is(err, order.ErrExternalRefConflict) {
			h.logger.ErrorContext(ctx, "POS order submitted twice",
				"order_id", orderID, "pos_ref", ref, "anomaly", string(AnomalyDuplicatePOSSubmission), "error", err)
		} else {
			h.logger.ErrorContext(ctx, "POS order created but reference not stored",
				"order_id", orderID, "pos_ref", ref, "anomaly", string(AnomalyPOSSyncMissing), "error", err)
		}
		return SyncResult{}, fmt.Errorf("store POS reference %q for order %s: %w", ref, orderID, err)
	}

	if saved.Status() == order.Canceled {
		h.logger.WarnContext(ctx, "Order synced to POS but canceled meanwhile",
			"order_id", orderID, "pos_ref", ref, "anomaly", string(AnomalySyncedButCanceled))
	}
	if changed {
		h.logger.InfoContext(ctx, "Order synced to POS", "order_id", orderID, "pos_ref", ref, "attempts", attempts)
		h.notifier.OrderChanged(ctx, ports.OrderSyncedToPOS, saved)
	}

	return SyncResult{Ref: ref}, nil
}

func (h SyncOrderToPOSCommandHandler) submit(ctx context.Context, payload ports.POSOrder) (string, int, error) {
	ctx, span := h.tracer.Start(ctx, "pos.SubmitOrder", trace.WithAttributes(
		attribute.String("order.id", payload.OrderID),
		attribute.String("tenant.id", payload.TenantID),
	))
	defer span.End()

	var ref string
	attempts, err := h.policy.Do(ctx, func(ctx context.Context) error {
		r, err := h.pos.SubmitOrder(ctx, payload)
		if errors.Is(err, ports.ErrRejected) {
			return retry.Permanent(err)
		}
		if err == nil && r == "" {
			return errors.New("POS returned an empty order reference")
		}
		ref = r
		return err
	}, func(err error, attempt int, wait time.Duration) {
		h.logger.WarnContext(ctx, "POS call failed, retrying",
			"order_id", payload.OrderID, "attempt", attempt, "wait", wait.String(), "error", err)
	})

	span.SetAttributes(attribute.Int("retry.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pos submit failed")
	}
	return ref, attempts, err
}

func buildPOSOrder(o *order.Order) ports.POSOrder {
	items := o.Items()
	posItems := make([]ports.POSItem, 0, len(items))
	for _, it := range items {
		mods := make([]ports.POSModifier, 0, len(it.Modifiers))
		for _, m := range it.Modifiers {
			mods = append(mods, ports.POSModifier{Name: m.Name, PriceCents: m.PriceCents})
		}
		posItems = append(posItems, ports.POSItem{
			ProductID:      it.ProductID,
			Name:           it.Name,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			Modifiers:      mods,
			LineTotalCents: it.LineTotalCents(),
		})
	}

	c := o.Customer()
	return ports.POSOrder{
		IdempotencyKey:   o.ID().String(),
		TenantID:         o.TenantID().String(),
		OrderID:          o.ID().String(),
		Customer:         ports.POSCustomer{Name: c.Name, Phone: c.Phone, Email: c.Email},
		Address:          addressPayload(o),
		Items:            posItems,
		SubtotalCents:    o.SubtotalCents(),
		TaxCents:         o.TaxCents(),
		DeliveryFeeCents: o.DeliveryFeeCents(),
		TotalCents:       o.TotalCents(),
		PaymentRef:       o.PaymentRef(),
	}
}

func addressPayload(o *order.Order) ports.POSAddress {
	a := o.Address()
	return ports.POSAddress{
		Street:     a.Street(),
		PostalCode: a.PostalCode(),
		City:       a.City(),
		CityPart:   a.CityPart(),
		Note:       a.Note(),
	}
}
