package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusNext(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		action  Action
		want    Status
		wantErr bool
	}{
		{name: "pending can be paid", from: StatusPendingPayment, action: ActionPay, want: StatusPaid},
		{name: "pending can be cancelled", from: StatusPendingPayment, action: ActionCancel, want: StatusCancelled},
		{name: "pending cannot be confirmed", from: StatusPendingPayment, action: ActionConfirm, wantErr: true},
		{name: "paid confirms to approved", from: StatusPaid, action: ActionConfirm, want: StatusApproved},
		{name: "paid can be cancelled", from: StatusPaid, action: ActionCancel, want: StatusCancelled},
		{name: "approved confirms to delivered", from: StatusApproved, action: ActionConfirm, want: StatusDelivered},
		{name: "approved cannot be cancelled", from: StatusApproved, action: ActionCancel, wantErr: true},
		{name: "delivered is terminal", from: StatusDelivered, action: ActionConfirm, wantErr: true},
		{name: "cancelled is terminal", from: StatusCancelled, action: ActionCancel, wantErr: true},
		{name: "returned is terminal", from: StatusReturned, action: ActionConfirm, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Next(tt.action)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusStoredValues(t *testing.T) {
	// These integers are persisted in orders.status and queried by
	// other domains; renumbering them would corrupt existing rows.
	assert.Equal(t, 1, int(StatusPendingPayment))
	assert.Equal(t, 2, int(StatusPaid))
	assert.Equal(t, 3, int(StatusApproved))
	assert.Equal(t, 4, int(StatusDelivered))
	assert.Equal(t, 5, int(StatusCancelled))
	assert.Equal(t, 6, int(StatusReturned))
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPendingPayment.IsTerminal())
	assert.False(t, StatusPaid.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusReturned.IsTerminal())
}

func TestStatusCanCancel(t *testing.T) {
	assert.True(t, StatusPendingPayment.CanCancel())
	assert.True(t, StatusPaid.CanCancel())
	assert.False(t, StatusApproved.CanCancel())
	assert.False(t, StatusDelivered.CanCancel())
	assert.False(t, StatusCancelled.CanCancel())
}

func TestGenerateOrderCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateOrderCode()
		require.True(t, strings.HasPrefix(code, "ORD-"))
		assert.Len(t, code, 14)
		assert.False(t, seen[code], "order codes should not repeat")
		seen[code] = true
	}
}
