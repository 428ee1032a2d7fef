package model

import "fmt"

// =====================================================
// ORDER STATUS
// =====================================================
// Status is the order lifecycle state. Values are stored as smallint
// in the orders table.
type Status int

const (
	StatusPendingPayment Status = 1
	StatusPaid           Status = 2
	StatusApproved       Status = 3
	StatusDelivered      Status = 4
	StatusCancelled      Status = 5
	StatusReturned       Status = 6
)

func (s Status) String() string {
	switch s {
	case StatusPendingPayment:
		return "pending_payment"
	case StatusPaid:
		return "paid"
	case StatusApproved:
		return "approved"
	case StatusDelivered:
		return "delivered"
	case StatusCancelled:
		return "cancelled"
	case StatusReturned:
		return "returned"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// IsTerminal reports whether no further transitions exist.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusCancelled, StatusReturned:
		return true
	}
	return false
}

// =====================================================
// TRANSITIONS
// =====================================================
type Action string

const (
	ActionPay     Action = "pay"
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
)

// transitions is the full lifecycle. Anything absent here is rejected.
var transitions = map[Status]map[Action]Status{
	StatusPendingPayment: {
		ActionPay:    StatusPaid,
		ActionCancel: StatusCancelled,
	},
	StatusPaid: {
		ActionConfirm: StatusApproved,
		ActionCancel:  StatusCancelled,
	},
	StatusApproved: {
		ActionConfirm: StatusDelivered,
	},
}

// Next returns the status the order moves to when action is applied,
// or ErrInvalidTransition when the lifecycle does not allow it.
func (s Status) Next(action Action) (Status, error) {
	if next, ok := transitions[s][action]; ok {
		return next, nil
	}
	return s, fmt.Errorf("%w: cannot %s an order in status %s", ErrInvalidTransition, action, s)
}

// CanCancel reports whether the order may still be cancelled.
func (s Status) CanCancel() bool {
	_, err := s.Next(ActionCancel)
	return err == nil
}
