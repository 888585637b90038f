package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// AnomalyKind names a disagreement between the order store and an external system.
type AnomalyKind string

const (
	AnomalyPOSSyncMissing         AnomalyKind = "pos_sync_missing"
	AnomalyDeliveryMissing        AnomalyKind = "delivery_missing"
	AnomalySyncedButCanceled      AnomalyKind = "synced_but_canceled"
	AnomalyDispatchedButCanceled  AnomalyKind = "dispatched_but_canceled"
	AnomalyDuplicatePOSSubmission AnomalyKind = "duplicate_pos_submission"
	AnomalyDuplicateDispatch      AnomalyKind = "duplicate_dispatch"
)

// Anomaly is a reconciliation finding for a human operator. It is never resolved
// automatically: doing so could submit an order to the POS or dispatch a courier twice.
type Anomaly struct {
	OrderID  string
	TenantID string
	Kind     AnomalyKind
	Status   order.Status
	Detail   string
}

// ReconcileOrdersCommandHandler reports stale orders whose external state looks
// incomplete or contradicts their status.
type ReconcileOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
	now        func() time.Time
}

func NewReconcileOrdersCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) ReconcileOrdersCommandHandler {
	return ReconcileOrdersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "reconciliation"),
		now:        time.Now,
	}
}

func (h ReconcileOrdersCommandHandler) Handle(ctx context.Context, cmd ReconcileOrdersCommand) ([]Anomaly, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := h.now().Add(-cmd.StaleAfter())
	orders, err := uow.OrderRepository().ListForReconciliation(ctx, cutoff, cmd.Limit())
	if err != nil {
		return nil, err
	}

	anomalies := make([]Anomaly, 0)
	for _, o := range orders {
		for _, a := range classify(o) {
			h.logger.ErrorContext(ctx, "Reconciliation anomaly",
				"order_id", a.OrderID,
				"tenant_id", a.TenantID,
				"anomaly", string(a.Kind),
				"status", a.Status.String(),
				"detail", a.Detail)
			anomalies = append(anomalies, a)
		}
	}

	h.logger.InfoContext(ctx, "Reconciliation finished", "scanned", len(orders), "anomalies", len(anomalies))
	return anomalies, nil
}

func classify(o *order.Order) []Anomaly {
	newAnomaly := func(kind AnomalyKind, detail string) Anomaly {
		return Anomaly{
			OrderID:  o.ID().String(),
			TenantID: o.TenantID().String(),
			Kind:     kind,
			Status:   o.Status(),
			Detail:   detail,
		}
	}

	ref, synced := o.POSSyncRef()
	var found []Anomaly

	if o.Status() == order.Canceled {
		if synced {
			found = append(found, newAnomaly(AnomalySyncedButCanceled,
				"order canceled after POS sync, POS order "+ref+" may need voiding"))
		}
		if d := o.Delivery(); d != nil && !d.Status.IsTerminal() {
			found = append(found, newAnomaly(AnomalyDispatchedButCanceled,
				"order canceled while courier job "+d.JobID+" is "+d.Status.String()))
		}
		return found
	}

	if !o.Status().HasReachedPayment() {
		return nil
	}
	if !synced {
		found = append(found, newAnomaly(AnomalyPOSSyncMissing, "paid order has no POS reference"))
	}
	if !o.IsDispatched() {
		found = append(found, newAnomaly(AnomalyDeliveryMissing, "order is "+o.Status().String()+" without a courier job"))
	}
	return found
}
