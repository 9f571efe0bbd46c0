package booking

import (
	"context"
	"fmt"
	"time"

	"rentora/utils"

	"go.uber.org/zap"
)

// admit applies the abuse-prevention policy ahead of booking creation: a cap
// on concurrent active (pending + confirmed) bookings per user, and a short
// cooldown between creations. Neither is a correctness guard — the
// transactional approve path is — so a Redis outage degrades to allowing the
// request.
func (s *DefaultBookingService) admit(ctx context.Context, userID string) error {
	if s.MaxActiveBookingsPerUser > 0 {
		active, err := s.Bookings.CountActiveByUser(ctx, userID)
		if err != nil {
			return err
		}
		if active >= s.MaxActiveBookingsPerUser {
			return &AdmissionError{Message: fmt.Sprintf("at most %d active bookings allowed", s.MaxActiveBookingsPerUser)}
		}
	}

	if s.CooldownSeconds > 0 && s.Cache != nil {
		key := "booking:cooldown:" + userID
		ok, err := s.Cache.SetNX(ctx, key, 1, time.Duration(s.CooldownSeconds)*time.Second).Result()
		if err != nil {
			utils.GetLogger().Warn("booking cooldown check unavailable", zap.Error(err))
			return nil
		}
		if !ok {
			return &AdmissionError{Message: "please wait before creating another booking"}
		}
	}
	return nil
}
