package commands_test

import (
	"errors"
	"fmt"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSyncOrderToPOSCommandHandler_Handle_RetriesTransientFailures(t *testing.T) {
	// Arrange
	ctx := t.Context()
	env := newTestEnv(t)
	o := createOrderIn(t, env, order.Paid)

	pos := new(MockPOSClient)
	pos.On("SubmitOrder", mock.Anything, mock.Anything).Return("", errors.New("503 service unavailable")).Twice()
	pos.On("SubmitOrder", mock.Anything, mock.Anything).Return("POS-123", nil).Once()

	h := commands.NewSyncOrderToPOSCommandHandler(env.orders, pos, fastPolicy, nil, discardLogger)
	cmd, err := commands.NewSyncOrderToPOSCommand(o.ID())
	require.NoError(t, err)

	// Act
	res, err := h.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "POS-123", res.Ref)
	assert.False(t, res.AlreadySynced)
	pos.AssertNumberOfCalls(t, "SubmitOrder", 3)

	ref, ok := env.reload(t, o.ID()).POSSyncRef()
	require.True(t, ok)
	assert.Equal(t, "POS-123", ref)
}

func TestSyncOrderToPOSCommandHandler_Handle_SecondCallDoesNotResubmit(t *testing.T) {
	// Arrange
	ctx := t.Context()
	env := newTestEnv(t)
	o := createOrderIn(t, env, order.Preparing)

	pos := new(MockPOSClient)
	pos.On("SubmitOrder", mock.Anything, mock.Anything).Return("POS-7", nil).Once()

	h := commands.NewSyncOrderToPOSCommandHandler(env.orders, pos, fastPolicy, nil, discardLogger)
	cmd, err := commands.NewSyncOrderToPOSCommand(o.ID())
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	// Act
	again, err := h.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.True(t, again.AlreadySynced)
	assert.Equal(t, "POS-7", again.Ref)
	pos.AssertNumberOfCalls(t, "SubmitOrder", 1)
}

func TestSyncOrderToPOSCommandHandler_Handle_PayloadFromSnapshot(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	o := createOrderIn(t, env, order.Paid)

	pos := new(MockPOSClient)
	pos.On("SubmitOrder", mock.Anything, mock.MatchedBy(func(p ports.POSOrder) bool {
		return p.IdempotencyKey == o.ID().String() &&
			p.TenantID == tenantSlug &&
			p.TotalCents == 2790 &&
			p.DeliveryFeeCents == 290 &&
			len(p.Items) == 2 &&
			p.Items[0].LineTotalCents == 2020 &&
			p.Items[0].Modifiers[0].Name == "extra cheese" &&
			p.Address.CityPart == "Jarovce" &&
			p.PaymentRef == "pay-"+o.ID().String()
	})).Return("POS-1", nil).Once()

	cmd, err := commands.NewSyncOrderToPOSCommand(o.ID())
	require.NoError(t, err)

	// Act
	_, err = commands.NewSyncOrderToPOSCommandHandler(env.orders, pos, fastPolicy, nil, discardLogger).Handle(t.Context(), cmd)

	// Assert
	require.NoError(t, err)
	pos.AssertExpectations(t)
}

func TestSyncOrderToPOSCommandHandler_Handle_RejectedIsNotRetried(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	o := createOrderIn(t, env, order.Paid)

	pos := new(MockPOSClient)
	pos.On("SubmitOrder", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("%w: 422 unknown product", ports.ErrRejected)).Once()

	cmd, err := commands.NewSyncOrderToPOSCommand(o.ID())
	require.NoError(t, err)

	// Act
	_, err = commands.NewSyncOrderToPOSCommandHandler(env.orders, pos, fastPolicy, nil, discardLogger).Handle(t.Context(), cmd)

	// Assert
	require.ErrorIs(t, err, commands.ErrSyncFailed)
	require.ErrorIs(t, err, ports.ErrRejected)
	var syncErr *commands.SyncFailedError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, commands.SystemPOS, syncErr.System)
	assert.Equal(t, 1, syncErr.Attempts)
	pos.AssertNumberOfCalls(t, "SubmitOrder", 1)

	_, ok := env.reload(t, o.ID()).POSSyncRef()
	assert.False(t, ok)
}

func TestSyncOrderToPOSCommandHandler_Handle_BudgetExhausted(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	o := createOrderIn(t, env, order.Paid)

	pos := new(MockPOSClient)
	pos.On("SubmitOrder", mock.Anything, mock.Anything).Return("", errors.New("connection reset"))

	cmd, err := commands.NewSyncOrderToPOSCommand(o.ID())
	require.NoError(t, err)

	// Act
	_, err = commands.NewSyncOrderToPOSCommandHandler(env.orders, pos, fastPolicy, nil, discardLogger).Handle(t.Context(), cmd)

	// Assert
	var syncErr *commands.SyncFailedError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, 3, syncErr.Attempts)
	pos.AssertNumberOfCalls(t, "SubmitOrder", 3)

	stored := env.reload(t, o.ID())
	assert.Equal(t, o.Version(), stored.Version(), "a failed sync leaves the order unchanged")
}

func TestSyncOrderToPOSCommandHandler_Handle_UnpaidOrder(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	o := createOrder(t, env)
	pos := new(MockPOSClient)

	cmd, err := commands.NewSyncOrderToPOSCommand(o.ID())
	require.NoError(t, err)

	// Act
	_, err = commands.NewSyncOrderToPOSCommandHandler(env.orders, pos, fastPolicy, nil, discardLogger).Handle(t.Context(), cmd)

	// Assert
	require.ErrorIs(t, err, commands.ErrOrderNotSyncable)
	pos.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)
}

func TestSyncOrderToPOSCommandHandler_Handle_PublishesEvent(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	o := createOrderIn(t, env, order.Paid)

	pos := new(MockPOSClient)
	pos.On("SubmitOrder", mock.Anything, mock.Anything).Return("POS-9", nil).Once()
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.OrderEvent) bool {
		return e.Type == ports.OrderSyncedToPOS && e.POSSyncRef == "POS-9" && e.Version == o.Version()+1
	})).Return(nil).Once()
	notifier := commands.NewChangeNotifier(publisher, nil, discardLogger)

	cmd, err := commands.NewSyncOrderToPOSCommand(o.ID())
	require.NoError(t, err)

	// Act
	_, err = commands.NewSyncOrderToPOSCommandHandler(env.orders, pos, fastPolicy, notifier, discardLogger).Handle(t.Context(), cmd)

	// Assert
	require.NoError(t, err)
	publisher.AssertExpectations(t)
}
