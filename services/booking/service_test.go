package booking

import (
	"context"
	"testing"

	bookingRepo "rentora/database/repository/booking"
	intervalRepo "rentora/database/repository/interval"
	listingRepo "rentora/database/repository/listing"
	"rentora/models"
	"rentora/services/coupon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// passTxn runs the transaction body directly; repo mocks stand in for the
// storage guarantees.
func passTxn(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id, from, to string) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *mockBookingRepo) SetPaymentStatus(ctx context.Context, id, paymentStatus string) error {
	return m.Called(ctx, id, paymentStatus).Error(0)
}

func (m *mockBookingRepo) ApplyDiscount(ctx context.Context, bookingID, couponID, couponCode string, original, discount, total float64) error {
	return m.Called(ctx, bookingID, couponID, couponCode, original, discount, total).Error(0)
}

func (m *mockBookingRepo) ListPendingOverlapping(ctx context.Context, listingID, listingType, start, end, excludeID string) ([]models.Booking, error) {
	args := m.Called(ctx, listingID, listingType, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockBookingRepo) CountActiveByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockBookingRepo) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockIntervalRepo struct{ mock.Mock }

func (m *mockIntervalRepo) FindConflict(ctx context.Context, listingID, listingType, start, end string) (*models.BlockedInterval, error) {
	args := m.Called(ctx, listingID, listingType, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlockedInterval), args.Error(1)
}

func (m *mockIntervalRepo) Insert(ctx context.Context, listingID, listingType string, iv models.BlockedInterval) error {
	return m.Called(ctx, listingID, listingType, iv).Error(0)
}

func (m *mockIntervalRepo) RemoveByBooking(ctx context.Context, bookingID string) error {
	return m.Called(ctx, bookingID).Error(0)
}

func (m *mockIntervalRepo) GetCalendar(ctx context.Context, listingID, listingType string) (*models.ListingCalendar, error) {
	args := m.Called(ctx, listingID, listingType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ListingCalendar), args.Error(1)
}

func (m *mockIntervalRepo) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockBalanceRepo struct{ mock.Mock }

func (m *mockBalanceRepo) Get(ctx context.Context, ownerID string) (*models.Balance, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *mockBalanceRepo) AddPending(ctx context.Context, ownerID string, delta float64) (*models.Balance, error) {
	args := m.Called(ctx, ownerID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *mockBalanceRepo) ApplyCompletion(ctx context.Context, ownerID string, amount float64, today string) (*models.Balance, error) {
	args := m.Called(ctx, ownerID, amount, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *mockBalanceRepo) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockListingRepo struct{ mock.Mock }

func (m *mockListingRepo) OwnerOf(ctx context.Context, ref models.AssetRef) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

func (m *mockListingRepo) PriceOf(ctx context.Context, ref models.AssetRef) (float64, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockListingRepo) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *mockListingRepo) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *mockListingRepo) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockCouponService struct{ mock.Mock }

func (m *mockCouponService) CreateCoupon(ctx context.Context, req coupon.CreateCouponRequest) (*models.Coupon, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *mockCouponService) ValidateCoupon(ctx context.Context, code, userID string, amount float64, assetType string) (*coupon.ValidationResult, error) {
	args := m.Called(ctx, code, userID, amount, assetType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.ValidationResult), args.Error(1)
}

func (m *mockCouponService) ApplyCoupon(ctx context.Context, bookingID, code, userID string) (*coupon.ApplyResult, error) {
	args := m.Called(ctx, bookingID, code, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.ApplyResult), args.Error(1)
}

func (m *mockCouponService) Reconcile(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// alertRecorder captures fire-and-forget alerts for assertions.
type alertRecorder struct {
	negativeBalances []string
	statusChanges    []string
}

func (r *alertRecorder) NegativeBalance(ctx context.Context, ownerID string, balance float64) {
	r.negativeBalances = append(r.negativeBalances, ownerID)
}

func (r *alertRecorder) BookingStatus(ctx context.Context, b *models.Booking, status string) {
	r.statusChanges = append(r.statusChanges, b.ID+":"+status)
}

type serviceFixture struct {
	bookings  *mockBookingRepo
	intervals *mockIntervalRepo
	balances  *mockBalanceRepo
	listings  *mockListingRepo
	coupons   *mockCouponService
	alerts    *alertRecorder
	svc       *DefaultBookingService
}

func newFixture() *serviceFixture {
	f := &serviceFixture{
		bookings:  &mockBookingRepo{},
		intervals: &mockIntervalRepo{},
		balances:  &mockBalanceRepo{},
		listings:  &mockListingRepo{},
		coupons:   &mockCouponService{},
		alerts:    &alertRecorder{},
	}
	f.svc = &DefaultBookingService{
		Bookings:  f.bookings,
		Intervals: f.intervals,
		Balances:  f.balances,
		Listings:  f.listings,
		Coupons:   f.coupons,
		Alerts:    f.alerts,
		Txn:       passTxn,
	}
	return f
}

func pendingBooking() *models.Booking {
	return &models.Booking{
		ID:            "bk-1",
		UserID:        "user-1",
		OwnerID:       "owner-1",
		ListingID:     "prop-1",
		ListingType:   models.ListingTypeProperty,
		StartDate:     "2026-09-10",
		EndDate:       "2026-09-14",
		OriginalPrice: 500,
		TotalPrice:    500,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}
}

func confirmedBooking() *models.Booking {
	b := pendingBooking()
	b.Status = models.BookingStatusConfirmed
	b.PaymentStatus = models.PaymentStatusPaid
	return b
}

func TestCreateBookingValidation(t *testing.T) {
	ctx := context.Background()
	asset := models.AssetRef{Type: models.ListingTypeProperty, ID: "prop-1"}

	t.Run("missing user", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.CreateBooking(ctx, CreateBookingRequest{
			Asset: asset, StartDate: "2026-09-10", EndDate: "2026-09-14",
		})
		var vErr *ValidationError
		if assert.ErrorAs(t, err, &vErr) {
			assert.Equal(t, "missing_fields", vErr.Code)
		}
	})

	t.Run("invalid asset type", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.CreateBooking(ctx, CreateBookingRequest{
			UserID: "user-1",
			Asset:  models.AssetRef{Type: "boat", ID: "b-1"},
			StartDate: "2026-09-10", EndDate: "2026-09-14",
		})
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("reversed date range", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.CreateBooking(ctx, CreateBookingRequest{
			UserID: "user-1", Asset: asset,
			StartDate: "2026-09-14", EndDate: "2026-09-10",
		})
		var vErr *ValidationError
		if assert.ErrorAs(t, err, &vErr) {
			assert.Equal(t, "invalid_date_range", vErr.Code)
		}
	})

	t.Run("unknown listing", func(t *testing.T) {
		f := newFixture()
		f.listings.On("OwnerOf", ctx, asset).Return("", listingRepo.ErrNotFound)

		_, err := f.svc.CreateBooking(ctx, CreateBookingRequest{
			UserID: "user-1", Asset: asset,
			StartDate: "2026-09-10", EndDate: "2026-09-14",
		})
		var vErr *ValidationError
		if assert.ErrorAs(t, err, &vErr) {
			assert.Equal(t, "asset_not_found", vErr.Code)
		}
	})

	t.Run("owner booking own listing", func(t *testing.T) {
		f := newFixture()
		f.listings.On("OwnerOf", ctx, asset).Return("owner-1", nil)

		_, err := f.svc.CreateBooking(ctx, CreateBookingRequest{
			UserID: "owner-1", Asset: asset,
			StartDate: "2026-09-10", EndDate: "2026-09-14",
		})
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestCreateBookingPricesInclusiveNights(t *testing.T) {
	ctx := context.Background()
	asset := models.AssetRef{Type: models.ListingTypeProperty, ID: "prop-1"}

	f := newFixture()
	f.listings.On("OwnerOf", ctx, asset).Return("owner-1", nil)
	f.listings.On("PriceOf", ctx, asset).Return(float64(100), nil)
	f.bookings.On("Create", ctx, mock.AnythingOfType("*models.Booking")).Return(nil)

	b, err := f.svc.CreateBooking(ctx, CreateBookingRequest{
		UserID: "user-1", Asset: asset,
		StartDate: "2026-09-10", EndDate: "2026-09-14",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, models.PaymentStatusPending, b.PaymentStatus)
	assert.Equal(t, float64(500), b.TotalPrice, "5 inclusive days at 100")
	assert.Equal(t, "owner-1", b.OwnerID)
	assert.NotEmpty(t, b.ID)
	f.bookings.AssertExpectations(t)
}

func TestCreateBookingAdmissionCap(t *testing.T) {
	ctx := context.Background()
	asset := models.AssetRef{Type: models.ListingTypeVehicle, ID: "veh-1"}

	f := newFixture()
	f.svc.MaxActiveBookingsPerUser = 3
	f.listings.On("OwnerOf", ctx, asset).Return("owner-1", nil)
	f.listings.On("PriceOf", ctx, asset).Return(float64(40), nil)
	f.bookings.On("CountActiveByUser", ctx, "user-1").Return(int64(3), nil)

	_, err := f.svc.CreateBooking(ctx, CreateBookingRequest{
		UserID: "user-1", Asset: asset,
		StartDate: "2026-09-10", EndDate: "2026-09-11",
	})

	var admErr *AdmissionError
	assert.ErrorAs(t, err, &admErr)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestApproveBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success inserts interval, flips status and credits pending", func(t *testing.T) {
		f := newFixture()
		b := pendingBooking()
		f.bookings.On("GetByID", ctx, "bk-1").Return(b, nil)
		f.intervals.On("FindConflict", ctx, "prop-1", models.ListingTypeProperty, "2026-09-10", "2026-09-14").Return(nil, nil)
		f.intervals.On("Insert", ctx, "prop-1", models.ListingTypeProperty, mock.MatchedBy(func(iv models.BlockedInterval) bool {
			return iv.BookingID == "bk-1" && iv.Start == "2026-09-10" && iv.End == "2026-09-14"
		})).Return(nil)
		f.bookings.On("UpdateStatus", ctx, "bk-1", models.BookingStatusPending, models.BookingStatusConfirmed).Return(nil)
		f.balances.On("AddPending", ctx, "owner-1", float64(500)).Return(&models.Balance{OwnerID: "owner-1", PendingBalance: 500}, nil)

		err := f.svc.ApproveBooking(ctx, "bk-1", "owner-1", RoleOwner)

		assert.NoError(t, err)
		assert.Contains(t, f.alerts.statusChanges, "bk-1:confirmed")
		f.bookings.AssertExpectations(t)
		f.intervals.AssertExpectations(t)
		f.balances.AssertExpectations(t)
	})

	t.Run("credits the price committed on the booking, not the stale load", func(t *testing.T) {
		// A coupon redeemed between the initial load and the approval
		// transaction must not inflate the owner's credit: the amount has to
		// come from the re-read inside the transaction, so that a later
		// cancel debits exactly what approval credited.
		f := newFixture()
		stale := pendingBooking()
		discounted := pendingBooking()
		discounted.CouponID = "cp-1"
		discounted.DiscountAmount = 50
		discounted.TotalPrice = 450
		f.bookings.On("GetByID", ctx, "bk-1").Return(stale, nil).Once()
		f.bookings.On("GetByID", ctx, "bk-1").Return(discounted, nil).Once()
		f.intervals.On("FindConflict", ctx, "prop-1", models.ListingTypeProperty, "2026-09-10", "2026-09-14").Return(nil, nil)
		f.intervals.On("Insert", ctx, "prop-1", models.ListingTypeProperty, mock.Anything).Return(nil)
		f.bookings.On("UpdateStatus", ctx, "bk-1", models.BookingStatusPending, models.BookingStatusConfirmed).Return(nil)
		f.balances.On("AddPending", ctx, "owner-1", float64(450)).
			Return(&models.Balance{OwnerID: "owner-1", PendingBalance: 450}, nil)

		err := f.svc.ApproveBooking(ctx, "bk-1", "owner-1", RoleOwner)

		assert.NoError(t, err)
		f.balances.AssertNotCalled(t, "AddPending", ctx, "owner-1", float64(500))

		// Cancelling afterwards debits the same committed amount.
		cancelled := *discounted
		cancelled.Status = models.BookingStatusConfirmed
		f.bookings.On("GetByID", ctx, "bk-1").Return(&cancelled, nil)
		f.bookings.On("UpdateStatus", ctx, "bk-1", models.BookingStatusConfirmed, models.BookingStatusCancelled).Return(nil)
		f.intervals.On("RemoveByBooking", ctx, "bk-1").Return(nil)
		f.balances.On("AddPending", ctx, "owner-1", float64(-450)).
			Return(&models.Balance{OwnerID: "owner-1", PendingBalance: 0}, nil)

		wasConfirmed, err := f.svc.CancelBooking(ctx, "bk-1", "user-1", RoleUser)

		assert.NoError(t, err)
		assert.True(t, wasConfirmed)
		f.balances.AssertExpectations(t)
	})

	t.Run("stranger owner is rejected", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)

		err := f.svc.ApproveBooking(ctx, "bk-1", "owner-2", RoleOwner)

		var authErr *AuthorizationError
		assert.ErrorAs(t, err, &authErr)
		f.intervals.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("existing interval wins the dates", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)
		winner := &models.BlockedInterval{BookingID: "bk-0", Start: "2026-09-12", End: "2026-09-20"}
		f.intervals.On("FindConflict", ctx, "prop-1", models.ListingTypeProperty, "2026-09-10", "2026-09-14").Return(winner, nil)

		err := f.svc.ApproveBooking(ctx, "bk-1", "owner-1", RoleOwner)

		var dcErr *DateConflictError
		if assert.ErrorAs(t, err, &dcErr) {
			assert.Equal(t, "bk-0", dcErr.ConflictingBookingID)
		}
		assert.Empty(t, f.alerts.statusChanges)
		f.balances.AssertNotCalled(t, "AddPending", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("racing insert loses and reports the winner", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)
		winner := &models.BlockedInterval{BookingID: "bk-9", Start: "2026-09-10", End: "2026-09-14"}
		f.intervals.On("FindConflict", ctx, "prop-1", models.ListingTypeProperty, "2026-09-10", "2026-09-14").
			Return(nil, nil).Once()
		f.intervals.On("Insert", ctx, "prop-1", models.ListingTypeProperty, mock.Anything).
			Return(intervalRepo.ErrIntervalConflict)
		f.intervals.On("FindConflict", ctx, "prop-1", models.ListingTypeProperty, "2026-09-10", "2026-09-14").
			Return(winner, nil).Once()

		err := f.svc.ApproveBooking(ctx, "bk-1", "owner-1", RoleOwner)

		var dcErr *DateConflictError
		if assert.ErrorAs(t, err, &dcErr) {
			assert.Equal(t, "bk-9", dcErr.ConflictingBookingID)
		}
	})

	t.Run("already confirmed booking cannot be approved again", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", ctx, "bk-1").Return(confirmedBooking(), nil)

		err := f.svc.ApproveBooking(ctx, "bk-1", "owner-1", RoleOwner)

		var stErr *StateError
		if assert.ErrorAs(t, err, &stErr) {
			assert.Equal(t, ReasonSameState, stErr.Reason)
		}
	})

	t.Run("concurrent status change surfaces as state error", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)
		f.intervals.On("FindConflict", ctx, "prop-1", models.ListingTypeProperty, "2026-09-10", "2026-09-14").Return(nil, nil)
		f.intervals.On("Insert", ctx, "prop-1", models.ListingTypeProperty, mock.Anything).Return(nil)
		f.bookings.On("UpdateStatus", ctx, "bk-1", models.BookingStatusPending, models.BookingStatusConfirmed).
			Return(bookingRepo.ErrStatusChanged)

		err := f.svc.ApproveBooking(ctx, "bk-1", "owner-1", RoleOwner)

		var stErr *StateError
		if assert.ErrorAs(t, err, &stErr) {
			assert.Equal(t, ReasonInvalidTransition, stErr.Reason)
		}
	})
}

func TestRejectBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("owner rejects pending", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)
		f.bookings.On("UpdateStatus", ctx, "bk-1", models.BookingStatusPending, models.BookingStatusCancelled).Return(nil)

		err := f.svc.RejectBooking(ctx, "bk-1", "owner-1", RoleOwner)

		assert.NoError(t, err)
		assert.Contains(t, f.alerts.statusChanges, "bk-1:cancelled")
	})

	t.Run("requesting user must cancel, not reject", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)

		err := f.svc.RejectBooking(ctx, "bk-1", "user-1", RoleUser)

		var authErr *AuthorizationError
		assert.ErrorAs(t, err, &authErr)
	})

	t.Run("confirmed booking cannot be rejected", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", ctx, "bk-1").Return(confirmedBooking(), nil)

		err := f.svc.RejectBooking(ctx, "bk-1", "owner-1", RoleOwner)

		var stErr *StateError
		assert.ErrorAs(t, err, &stErr)
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("pending cancel touches only the status", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)
		f.bookings.On("UpdateStatus", ctx, "bk-1", models.BookingStatusPending, models.BookingStatusCancelled).Return(nil)

		wasConfirmed, err := f.svc.CancelBooking(ctx, "bk-1", "user-1", RoleUser)

		assert.NoError(t, err)
		assert.False(t, wasConfirmed)
		f.intervals.AssertNotCalled(t, "RemoveByBooking", mock.Anything, mock.Anything)
		f.balances.AssertNotCalled(t, "AddPending", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("confirmed cancel releases interval and debits pending", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", ctx, "bk-1").Return(confirmedBooking(), nil)
		f.bookings.On("UpdateStatus", ctx, "bk-1", models.BookingStatusConfirmed, models.BookingStatusCancelled).Return(nil)
		f.intervals.On("RemoveByBooking", ctx, "bk-1").Return(nil)
		f.balances.On("AddPending", ctx, "owner-1", float64(-500)).
			Return(&models.Balance{OwnerID: "owner-1", PendingBalance: 100}, nil)

		wasConfirmed, err := f.svc.CancelBooking(ctx, "bk-1", "user-1", RoleUser)

		assert.NoError(t, err)
		assert.True(t, wasConfirmed)
		assert.Empty(t, f.alerts.negativeBalances)
		assert.Contains(t, f.alerts.statusChanges, "bk-1:cancelled")
		f.intervals.AssertExpectations(t)
		f.balances.AssertExpectations(t)
	})

	t.Run("deficit after cancel alerts the owner", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", ctx, "bk-1").Return(confirmedBooking(), nil)
		f.bookings.On("UpdateStatus", ctx, "bk-1", models.BookingStatusConfirmed, models.BookingStatusCancelled).Return(nil)
		f.intervals.On("RemoveByBooking", ctx, "bk-1").Return(nil)
		f.balances.On("AddPending", ctx, "owner-1", float64(-500)).
			Return(&models.Balance{OwnerID: "owner-1", PendingBalance: -200}, nil)

		wasConfirmed, err := f.svc.CancelBooking(ctx, "bk-1", "owner-1", RoleOwner)

		assert.NoError(t, err)
		assert.True(t, wasConfirmed)
		assert.Equal(t, []string{"owner-1"}, f.alerts.negativeBalances)
	})

	t.Run("second cancel is rejected, not replayed", func(t *testing.T) {
		f := newFixture()
		b := pendingBooking()
		b.Status = models.BookingStatusCancelled
		f.bookings.On("GetByID", ctx, "bk-1").Return(b, nil)

		_, err := f.svc.CancelBooking(ctx, "bk-1", "user-1", RoleUser)

		var stErr *StateError
		if assert.ErrorAs(t, err, &stErr) {
			assert.Equal(t, ReasonSameState, stErr.Reason)
		}
		f.balances.AssertNotCalled(t, "AddPending", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stranger user is rejected", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)

		_, err := f.svc.CancelBooking(ctx, "bk-1", "user-2", RoleUser)

		var authErr *AuthorizationError
		assert.ErrorAs(t, err, &authErr)
	})
}

func TestCompleteBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("system completes a paid confirmed booking", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", ctx, "bk-1").Return(confirmedBooking(), nil)
		f.bookings.On("UpdateStatus", ctx, "bk-1", models.BookingStatusConfirmed, models.BookingStatusCompleted).Return(nil)
		f.balances.On("ApplyCompletion", ctx, "owner-1", float64(500), mock.AnythingOfType("string")).
			Return(&models.Balance{OwnerID: "owner-1", AvailableBalance: 500}, nil)

		err := f.svc.CompleteBooking(ctx, "bk-1", RoleSystem)

		assert.NoError(t, err)
		assert.Contains(t, f.alerts.statusChanges, "bk-1:completed")
		f.balances.AssertExpectations(t)
	})

	t.Run("converts the price committed on the booking, not the stale load", func(t *testing.T) {
		f := newFixture()
		stale := confirmedBooking()
		discounted := confirmedBooking()
		discounted.CouponID = "cp-1"
		discounted.DiscountAmount = 50
		discounted.TotalPrice = 450
		f.bookings.On("GetByID", ctx, "bk-1").Return(stale, nil).Once()
		f.bookings.On("GetByID", ctx, "bk-1").Return(discounted, nil).Once()
		f.bookings.On("UpdateStatus", ctx, "bk-1", models.BookingStatusConfirmed, models.BookingStatusCompleted).Return(nil)
		f.balances.On("ApplyCompletion", ctx, "owner-1", float64(450), mock.AnythingOfType("string")).
			Return(&models.Balance{OwnerID: "owner-1", AvailableBalance: 450}, nil)

		err := f.svc.CompleteBooking(ctx, "bk-1", RoleSystem)

		assert.NoError(t, err)
		f.balances.AssertExpectations(t)
		f.balances.AssertNotCalled(t, "ApplyCompletion", ctx, "owner-1", float64(500), mock.AnythingOfType("string"))
	})

	t.Run("unpaid booking cannot complete", func(t *testing.T) {
		f := newFixture()
		b := confirmedBooking()
		b.PaymentStatus = models.PaymentStatusPending
		f.bookings.On("GetByID", ctx, "bk-1").Return(b, nil)

		err := f.svc.CompleteBooking(ctx, "bk-1", RoleSystem)

		var stErr *StateError
		if assert.ErrorAs(t, err, &stErr) {
			assert.Equal(t, ReasonPreconditionFailed, stErr.Reason)
		}
		f.balances.AssertNotCalled(t, "ApplyCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("system records paid", func(t *testing.T) {
		f := newFixture()
		b := pendingBooking()
		f.bookings.On("GetByID", ctx, "bk-1").Return(b, nil)
		f.bookings.On("SetPaymentStatus", ctx, "bk-1", models.PaymentStatusPaid).Return(nil)

		err := f.svc.RecordPayment(ctx, "bk-1", models.PaymentStatusPaid, RoleSystem)

		assert.NoError(t, err)
		f.bookings.AssertExpectations(t)
	})

	t.Run("user may not record payments", func(t *testing.T) {
		f := newFixture()
		err := f.svc.RecordPayment(ctx, "bk-1", models.PaymentStatusPaid, RoleUser)
		var authErr *AuthorizationError
		assert.ErrorAs(t, err, &authErr)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		f := newFixture()
		err := f.svc.RecordPayment(ctx, "bk-1", "settled", RoleSystem)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("terminal booking is immutable", func(t *testing.T) {
		f := newFixture()
		b := pendingBooking()
		b.Status = models.BookingStatusCompleted
		f.bookings.On("GetByID", ctx, "bk-1").Return(b, nil)

		err := f.svc.RecordPayment(ctx, "bk-1", models.PaymentStatusRefunded, RoleAdmin)

		var stErr *StateError
		assert.ErrorAs(t, err, &stErr)
		f.bookings.AssertNotCalled(t, "SetPaymentStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCheckOverlap(t *testing.T) {
	ctx := context.Background()

	t.Run("owner sees competing pending bookings", func(t *testing.T) {
		f := newFixture()
		b := pendingBooking()
		f.bookings.On("GetByID", ctx, "bk-1").Return(b, nil)
		other := *pendingBooking()
		other.ID = "bk-2"
		f.bookings.On("ListPendingOverlapping", ctx, "prop-1", models.ListingTypeProperty, "2026-09-10", "2026-09-14", "bk-1").
			Return([]models.Booking{other}, nil)

		report, err := f.svc.CheckOverlap(ctx, "bk-1", "owner-1")

		assert.NoError(t, err)
		assert.True(t, report.HasOverlap)
		assert.Len(t, report.OverlappingBookings, 1)
	})

	t.Run("non-party is rejected", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", ctx, "bk-1").Return(pendingBooking(), nil)

		_, err := f.svc.CheckOverlap(ctx, "bk-1", "someone-else")

		var authErr *AuthorizationError
		assert.ErrorAs(t, err, &authErr)
	})
}

func TestListBlockedDates(t *testing.T) {
	ctx := context.Background()

	t.Run("range filter clips intervals", func(t *testing.T) {
		f := newFixture()
		f.intervals.On("GetCalendar", ctx, "prop-1", models.ListingTypeProperty).Return(&models.ListingCalendar{
			ListingID:   "prop-1",
			ListingType: models.ListingTypeProperty,
			Intervals: []models.BlockedInterval{
				{BookingID: "bk-1", Start: "2026-09-01", End: "2026-09-03"},
				{BookingID: "bk-2", Start: "2026-10-01", End: "2026-10-05"},
			},
		}, nil)

		out, err := f.svc.ListBlockedDates(ctx, "prop-1", models.ListingTypeProperty, "2026-09-01", "2026-09-30")

		assert.NoError(t, err)
		assert.Len(t, out.Intervals, 1)
		assert.Equal(t, "bk-1", out.Intervals[0].BookingID)
		assert.Equal(t, []string{"2026-09-01", "2026-09-02", "2026-09-03"}, out.ExpandedDates)
	})

	t.Run("from without to is open-ended", func(t *testing.T) {
		f := newFixture()
		f.intervals.On("GetCalendar", ctx, "prop-1", models.ListingTypeProperty).Return(&models.ListingCalendar{
			ListingID:   "prop-1",
			ListingType: models.ListingTypeProperty,
			Intervals: []models.BlockedInterval{
				{BookingID: "bk-1", Start: "2026-09-01", End: "2026-09-03"},
				{BookingID: "bk-2", Start: "2026-10-01", End: "2026-10-05"},
			},
		}, nil)

		out, err := f.svc.ListBlockedDates(ctx, "prop-1", models.ListingTypeProperty, "2026-09-15", "")

		assert.NoError(t, err)
		assert.Len(t, out.Intervals, 1)
		assert.Equal(t, "bk-2", out.Intervals[0].BookingID)
	})

	t.Run("to without from is open-ended", func(t *testing.T) {
		f := newFixture()
		f.intervals.On("GetCalendar", ctx, "prop-1", models.ListingTypeProperty).Return(&models.ListingCalendar{
			ListingID:   "prop-1",
			ListingType: models.ListingTypeProperty,
			Intervals: []models.BlockedInterval{
				{BookingID: "bk-1", Start: "2026-09-01", End: "2026-09-03"},
				{BookingID: "bk-2", Start: "2026-10-01", End: "2026-10-05"},
			},
		}, nil)

		out, err := f.svc.ListBlockedDates(ctx, "prop-1", models.ListingTypeProperty, "", "2026-09-30")

		assert.NoError(t, err)
		assert.Len(t, out.Intervals, 1)
		assert.Equal(t, "bk-1", out.Intervals[0].BookingID)
	})

	t.Run("invalid range is rejected", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.ListBlockedDates(ctx, "prop-1", models.ListingTypeProperty, "2026-09-30", "2026-09-01")
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("malformed bound is rejected", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.ListBlockedDates(ctx, "prop-1", models.ListingTypeProperty, "", "september")
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}
