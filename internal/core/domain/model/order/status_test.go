package order_test

import (
	"errors"
	"fmt"
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []order.Status{
	order.Pending,
	order.Paid,
	order.Preparing,
	order.Ready,
	order.OutForDelivery,
	order.Delivered,
	order.Canceled,
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range allStatuses {
		t.Run(fmt.Sprintf("should validate %s", status), func(t *testing.T) {
			require.NoError(t, status.Validate())
		})
	}

	t.Run("should reject Unknown and out of range values", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(8), order.Status(100)} {
			err := status.Validate()

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
			assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
		}
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "PENDING", order.Pending.String())
	assert.Equal(t, "OUT_FOR_DELIVERY", order.OutForDelivery.String())
	assert.Equal(t, "CANCELED", order.Canceled.String())
	assert.Equal(t, "UNKNOWN", order.Status(42).String())
}

func TestParseStatus(t *testing.T) {
	testCases := []struct {
		raw      string
		expected order.Status
	}{
		{"PENDING", order.Pending},
		{"paid", order.Paid},
		{"OUT_FOR_DELIVERY", order.OutForDelivery},
		{"out for delivery", order.OutForDelivery},
		{"Out-For-Delivery", order.OutForDelivery},
		{"  out  for delivery ", order.OutForDelivery},
		{"cancelled", order.Canceled},
		{"Delivered", order.Delivered},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			s, err := order.ParseStatus(tc.raw)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, s)
		})
	}

	t.Run("should reject unknown strings", func(t *testing.T) {
		for _, raw := range []string{"", "UNKNOWN", "shipped", "0"} {
			s, err := order.ParseStatus(raw)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Equal(t, order.Unknown, s)
		}
	})
}

func TestStatus_Advance(t *testing.T) {
	t.Run("should allow every canonical forward step", func(t *testing.T) {
		chain := []order.Status{order.Pending, order.Paid, order.Preparing, order.Ready, order.OutForDelivery, order.Delivered}
		for i := 0; i < len(chain)-1; i++ {
			next, err := chain[i].Advance(chain[i+1])

			require.NoError(t, err)
			assert.Equal(t, chain[i+1], next)
		}
	})

	t.Run("should allow cancel from every non-terminal status", func(t *testing.T) {
		for _, from := range []order.Status{order.Pending, order.Paid, order.Preparing, order.Ready, order.OutForDelivery} {
			next, err := from.Advance(order.Canceled)

			require.NoError(t, err)
			assert.Equal(t, order.Canceled, next)
		}
	})

	t.Run("should allow only the successor or cancel for every pair", func(t *testing.T) {
		for _, from := range allStatuses {
			for _, to := range allStatuses {
				next, err := from.Advance(to)

				successor, hasSuccessor := from.Next()
				legal := !from.IsTerminal() && (to == order.Canceled || (hasSuccessor && successor == to))
				if legal {
					require.NoError(t, err, "%s -> %s", from, to)
					assert.Equal(t, to, next)
					continue
				}

				require.Error(t, err, "%s -> %s", from, to)
				assert.ErrorIs(t, err, order.ErrInvalidTransition)
				assert.Equal(t, order.Unknown, next)

				var transitionErr *order.InvalidTransitionError
				require.True(t, errors.As(err, &transitionErr))
				assert.Equal(t, from, transitionErr.From)
				assert.Equal(t, to, transitionErr.To)
			}
		}
	})

	t.Run("should report current and requested status", func(t *testing.T) {
		_, err := order.Pending.Advance(order.Preparing)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "PENDING -> PREPARING")
		assert.Contains(t, err.Error(), "allowed: PAID or CANCELED")
	})

	t.Run("should report terminal states", func(t *testing.T) {
		_, err := order.Delivered.Advance(order.Canceled)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "DELIVERED is terminal")
	})

	t.Run("should reject invalid target", func(t *testing.T) {
		_, err := order.Pending.Advance(order.Unknown)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_HasReachedPayment(t *testing.T) {
	assert.False(t, order.Pending.HasReachedPayment())
	assert.True(t, order.Paid.HasReachedPayment())
	assert.True(t, order.Delivered.HasReachedPayment())
	assert.False(t, order.Canceled.HasReachedPayment())
}
