package booking

import "rentora/models"

// Role is the caller's role as established by the auth layer.
type Role string

const (
	RoleUser   Role = "user"
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleSystem Role = "system"
)

// transitionRule is one row of the lifecycle table: who may perform the
// transition and an optional precondition over the current booking.
type transitionRule struct {
	roles map[Role]bool
	guard func(b *models.Booking) *StateError
}

// transitions is the authoritative lifecycle table. It is built once and
// never mutated; there is no registration API. Terminal states (completed,
// cancelled) simply have no outgoing rows.
var transitions = map[string]map[string]transitionRule{
	models.BookingStatusPending: {
		models.BookingStatusConfirmed: {
			roles: map[Role]bool{RoleOwner: true, RoleAdmin: true, RoleSystem: true},
			// The interval conflict check is transactional and happens in the
			// approve path, not here.
		},
		models.BookingStatusCancelled: {
			roles: map[Role]bool{RoleUser: true, RoleOwner: true, RoleAdmin: true},
		},
	},
	models.BookingStatusConfirmed: {
		models.BookingStatusCompleted: {
			roles: map[Role]bool{RoleSystem: true, RoleAdmin: true},
			guard: func(b *models.Booking) *StateError {
				if b.PaymentStatus != models.PaymentStatusPaid {
					return &StateError{
						Reason:  ReasonPreconditionFailed,
						From:    b.Status,
						To:      models.BookingStatusCompleted,
						Message: "payment not confirmed",
					}
				}
				return nil
			},
		},
		models.BookingStatusCancelled: {
			roles: map[Role]bool{RoleUser: true, RoleOwner: true, RoleAdmin: true},
		},
	},
}

// ValidateTransition checks the lifecycle table for (booking.Status -> to) by
// the given role. A same-state transition is always rejected so a replayed
// request can never be mistaken for a successful no-op and double-apply side
// effects.
func ValidateTransition(b *models.Booking, to string, role Role) *StateError {
	from := b.Status
	if from == to {
		return &StateError{Reason: ReasonSameState, From: from, To: to, Message: "transition to the same state"}
	}
	rules, ok := transitions[from]
	if !ok {
		return &StateError{Reason: ReasonInvalidTransition, From: from, To: to, Message: "no transitions out of terminal state"}
	}
	rule, ok := rules[to]
	if !ok {
		return &StateError{Reason: ReasonInvalidTransition, From: from, To: to, Message: "transition not in lifecycle table"}
	}
	if !rule.roles[role] {
		return &StateError{Reason: ReasonUnauthorizedRole, From: from, To: to, Message: "role " + string(role) + " may not perform this transition"}
	}
	if rule.guard != nil {
		if err := rule.guard(b); err != nil {
			return err
		}
	}
	return nil
}
