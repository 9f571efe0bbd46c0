package booking

import (
	"context"
	"encoding/json"
	"time"

	"rentora/models"
	"rentora/utils"

	"go.uber.org/zap"
)

// blockedDatesTTL bounds staleness of the cached calendar view. Freshness is
// not safety-critical: the authoritative conflict check happens inside the
// approve transaction.
const blockedDatesTTL = 5 * time.Second

// CheckOverlap reports other pending bookings on the same listing whose
// ranges overlap the given booking. Purely informational for the owner UI —
// it holds no lock and two racing approvals are still arbitrated only by the
// approve transaction.
func (s *DefaultBookingService) CheckOverlap(ctx context.Context, bookingID, callerID string) (*OverlapReport, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != callerID && b.UserID != callerID {
		return nil, &AuthorizationError{Message: "not a party to this booking"}
	}

	others, err := s.Bookings.ListPendingOverlapping(ctx, b.ListingID, b.ListingType, b.StartDate, b.EndDate, b.ID)
	if err != nil {
		return nil, err
	}
	return &OverlapReport{
		HasOverlap:          len(others) > 0,
		OverlappingBookings: others,
	}, nil
}

// ListUserBookings returns every booking the user has requested.
func (s *DefaultBookingService) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.Bookings.ListByUser(ctx, userID)
}

// OwnerBalance returns the owner's current balance ledger.
func (s *DefaultBookingService) OwnerBalance(ctx context.Context, ownerID string) (*models.Balance, error) {
	return s.Balances.Get(ctx, ownerID)
}

// ListBlockedDates returns the blocked intervals of a listing, optionally
// clipped to [from, to], along with every individual blocked date. Either
// bound may be omitted, in which case that side of the range is open. Results
// are cached for a few seconds.
func (s *DefaultBookingService) ListBlockedDates(ctx context.Context, listingID, listingType, from, to string) (*BlockedDates, error) {
	if from != "" {
		if err := models.ValidateDate(from); err != nil {
			return nil, NewValidationError("invalid_date_range", err.Error())
		}
	}
	if to != "" {
		if err := models.ValidateDate(to); err != nil {
			return nil, NewValidationError("invalid_date_range", err.Error())
		}
	}
	if from != "" && to != "" && from > to {
		return nil, NewValidationError("invalid_date_range", "from must not be after to")
	}

	cacheKey := "blocked:" + listingType + ":" + listingID + ":" + from + ":" + to
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var cached BlockedDates
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	cal, err := s.Intervals.GetCalendar(ctx, listingID, listingType)
	if err != nil {
		return nil, err
	}

	out := &BlockedDates{Intervals: []models.BlockedInterval{}, ExpandedDates: []string{}}
	for _, iv := range cal.Intervals {
		if from != "" && iv.End < from {
			continue
		}
		if to != "" && iv.Start > to {
			continue
		}
		out.Intervals = append(out.Intervals, iv)
		out.ExpandedDates = append(out.ExpandedDates, models.ExpandRange(iv.Start, iv.End)...)
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, raw, blockedDatesTTL).Err(); err != nil {
				utils.GetLogger().Warn("blocked dates cache write failed", zap.Error(err))
			}
		}
	}
	return out, nil
}
