package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "torcal/database/repository/booking"
	timeslotRepo "torcal/database/repository/timeslot"
	"torcal/models"
	"torcal/services/availability"
	"torcal/utils"
)

// CalendarMirror rewrites the external calendar after a confirmed booking:
// the booked interval, the remainder slots left over from the split, and the
// removal of the consumed availability event. Mirroring is best-effort: a
// failure is logged and never rolls back the local booking.
type CalendarMirror interface {
	MirrorBooking(ctx context.Context, b models.Booking, booked models.Timeslot, remainders []models.Timeslot) error
}

// CreateBookingInput is everything the transaction needs. StartTime nil
// means the booking starts at the slot's start; DurationMinutes zero means
// the duration comes from the matched eligibility rule.
type CreateBookingInput struct {
	TimeslotID      int64
	ClientType      string
	MeetingType     string
	Name            string
	Email           string
	Phone           string
	Notes           string
	StartTime       *time.Time
	DurationMinutes int
}

// BookingService runs the booking transaction.
type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Timeslots timeslotRepo.TimeslotRepository
	Bookings  bookingRepo.BookingRepository
	Engine    *availability.Engine
	Mirror    CalendarMirror
}

// CreateBooking validates, books, and splits the source timeslot into its
// unbooked remainders. Every precondition is checked before the first
// mutation, so a failure never leaves a partially split slot.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	slot, err := s.Timeslots.GetByID(input.TimeslotID)
	if err != nil {
		return nil, NewNotFoundError("timeslot %d not found", input.TimeslotID)
	}
	if !slot.IsAvailable {
		return nil, NewConflictError("timeslot %d is already booked", slot.ID)
	}
	if !slot.OffersMeetingType(input.MeetingType) {
		return nil, NewInvalidArgumentError(
			"meeting type %q is not offered on this timeslot (offers: %s)",
			input.MeetingType, slot.MeetingTypes)
	}

	duration := input.DurationMinutes
	if duration <= 0 {
		duration = s.ruleDuration(input, *slot)
	}
	if duration <= 0 {
		return nil, NewInvalidArgumentError(
			"no duration configured for client type %q and meeting type %q",
			s.effectiveClientType(input, *slot), input.MeetingType)
	}

	bookingStart := slot.StartTime
	if input.StartTime != nil {
		bookingStart = *input.StartTime
	}
	bookingEnd := bookingStart.Add(time.Duration(duration) * time.Minute)
	if bookingStart.Before(slot.StartTime) || bookingEnd.After(slot.EndTime) {
		return nil, NewInvalidArgumentError(
			"requested interval [%s, %s] is outside the timeslot bounds [%s, %s]",
			bookingStart.Format(time.RFC3339), bookingEnd.Format(time.RFC3339),
			slot.StartTime.Format(time.RFC3339), slot.EndTime.Format(time.RFC3339))
	}

	remainders := splitRemainders(*slot, bookingStart, bookingEnd)

	created, err := s.Timeslots.SplitForBooking(slot.ID, remainders)
	if err != nil {
		// Lost the race to another request between the read and the split.
		if err == timeslotRepo.ErrUnavailable {
			return nil, NewConflictError("timeslot %d is already booked", slot.ID)
		}
		return nil, NewNotFoundError("timeslot %d not found", slot.ID)
	}

	b := s.Bookings.Create(models.Booking{
		TimeslotID:      slot.ID,
		Reference:       uuid.New().String(),
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		MeetingType:     input.MeetingType,
		DurationMinutes: duration,
		Notes:           input.Notes,
		CreatedAt:       time.Now(),
	})

	logger.Info("booking created",
		zap.Int64("bookingId", b.ID),
		zap.Int64("timeslotId", slot.ID),
		zap.String("meetingType", b.MeetingType),
		zap.Int("durationMinutes", b.DurationMinutes),
		zap.Int("remainders", len(created)))

	if s.Mirror != nil {
		booked := *slot
		booked.StartTime = bookingStart
		booked.EndTime = bookingEnd
		if err := s.Mirror.MirrorBooking(ctx, b, booked, created); err != nil {
			logger.Warn("calendar mirror failed, keeping local booking",
				zap.Int64("bookingId", b.ID), zap.Error(err))
		}
	}

	return &b, nil
}

func (s *DefaultBookingService) GetBooking(_ context.Context, id int64) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(id)
	if err != nil {
		return nil, NewNotFoundError("booking %d not found", id)
	}
	return b, nil
}

// effectiveClientType prefers the caller's declared type, then the slot's own
// tag when it is concrete.
func (s *DefaultBookingService) effectiveClientType(input CreateBookingInput, slot models.Timeslot) string {
	if input.ClientType != "" && input.ClientType != models.ClientTypeAll {
		return input.ClientType
	}
	if slot.ClientType != models.ClientTypeAll {
		return slot.ClientType
	}
	return ""
}

func (s *DefaultBookingService) ruleDuration(input CreateBookingInput, slot models.Timeslot) int {
	ct := s.effectiveClientType(input, slot)
	if ct == "" || s.Engine == nil {
		return 0
	}
	return s.Engine.AllowedMeetingTypes(ct)[input.MeetingType]
}

// splitRemainders computes the before/after availability left over once
// [bookingStart, bookingEnd) is taken out of the slot. Remainders inherit the
// slot's eligibility and point back at the origin event.
func splitRemainders(slot models.Timeslot, bookingStart, bookingEnd time.Time) []models.Timeslot {
	var remainders []models.Timeslot
	if bookingStart.After(slot.StartTime) {
		remainders = append(remainders, remainderOf(slot, slot.StartTime, bookingStart))
	}
	if bookingEnd.Before(slot.EndTime) {
		remainders = append(remainders, remainderOf(slot, bookingEnd, slot.EndTime))
	}
	return remainders
}

func remainderOf(slot models.Timeslot, start, end time.Time) models.Timeslot {
	return models.Timeslot{
		StartTime:      start,
		EndTime:        end,
		ClientType:     slot.ClientType,
		MeetingTypes:   append(models.MeetingTypeList(nil), slot.MeetingTypes...),
		IsAvailable:    true,
		ParentEventRef: slot.ExternalEventRef,
	}
}
