package entities

import (
	"errors"
	"time"
)

var (
	ErrUnknownStatus     = errors.New("unknown status supplied")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrTerminalState     = errors.New("order can no longer be changed")
)

var statusFlow = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusDone, OrderStatusCancelled},
	OrderStatusDone:           {OrderStatusOutForDelivery, OrderStatusCancelled},
	OrderStatusOutForDelivery: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:      {},
	OrderStatusCancelled:      {},
}

func (s OrderStatus) IsValid() bool {
	_, ok := statusFlow[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusFlow[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ApplyTransition returns a copy of o moved to next. The input order is never modified.
func ApplyTransition(o Order, next OrderStatus, actor string, now time.Time) (Order, error) {
	if !next.IsValid() {
		return Order{}, ErrUnknownStatus
	}
	if !o.Status.CanTransitionTo(next) {
		return Order{}, ErrInvalidTransition
	}

	updated := o.Clone()
	updated.Status = next
	updated.StatusHistory = prependHistory(updated.StatusHistory, StatusHistoryEntry{
		Status:    next,
		Timestamp: now,
		Actor:     actor,
	})
	if updated.AcceptedAt == nil {
		updated.AcceptedAt = &now
	}
	if next == OrderStatusDelivered {
		updated.DeliveredAt = &now
	}
	return updated, nil
}

// ApplyCancellation returns a cancelled copy of o.
//
// Customers must prove ownership with the phone used at checkout; admins skip that check.
// Cancelling always clears DeliveredAt.
func ApplyCancellation(o Order, reason, actor, phone string, now time.Time) (Order, error) {
	if actor != ActorAdmin {
		key := NormalizePhone(phone)
		if key == "" || key != o.TrackingPhoneKey {
			return Order{}, ErrUnauthorized
		}
	}
	if o.Status.IsTerminal() {
		return Order{}, ErrTerminalState
	}

	updated := o.Clone()
	updated.Status = OrderStatusCancelled
	updated.CancelReason = reason
	updated.StatusHistory = prependHistory(updated.StatusHistory, StatusHistoryEntry{
		Status:    OrderStatusCancelled,
		Timestamp: now,
		Actor:     actor,
	})
	updated.CancelledAt = &now
	updated.DeliveredAt = nil
	return updated, nil
}

func prependHistory(history []StatusHistoryEntry, entry StatusHistoryEntry) []StatusHistoryEntry {
	out := make([]StatusHistoryEntry, 0, len(history)+1)
	out = append(out, entry)
	return append(out, history...)
}
