package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rpl-maker-lab/service-booking/internal/apperror"
	"github.com/rpl-maker-lab/service-booking/internal/domain/booking"
)

var testNow = time.Date(2025, 9, 1, 14, 45, 0, 0, time.UTC)

func newLifecycleFixture(t *testing.T) (*LifecycleService, *fakeRequestRepo, *fakeBookingRepo, *fakeMailer) {
	t.Helper()
	bookings := newFakeBookingRepo()
	requests := newFakeRequestRepo(bookings)
	mailer := &fakeMailer{}
	svc := NewLifecycleService(requests, bookings, mailer, "maker@library.test", zap.NewNop())
	svc.now = func() time.Time { return testNow }
	return svc, requests, bookings, mailer
}

func TestApplyTransition_Schedule(t *testing.T) {
	svc, _, bookings, mailer := newLifecycleFixture(t)
	bk := seededBooking(testNow.Add(-24*time.Hour), booking.StatusPending)
	bookings.store[bk.ID()] = bk

	dto, warning, err := svc.ApplyTransition(context.Background(), bk.ID(), TransitionRequest{
		Status:        "scheduled",
		EffectiveDate: "2025-09-02",
		EffectiveTime: "11:00",
	})
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, "scheduled", dto.Status)
	require.NotNil(t, dto.ActionDate)
	assert.Equal(t, time.Date(2025, 9, 2, 11, 0, 0, 0, time.UTC), *dto.ActionDate)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ada@example.com", mailer.sent[0].To)
}

func TestApplyTransition_ScheduleRequiresDate(t *testing.T) {
	svc, _, bookings, mailer := newLifecycleFixture(t)
	bk := seededBooking(testNow.Add(-24*time.Hour), booking.StatusPending)
	bookings.store[bk.ID()] = bk

	_, _, err := svc.ApplyTransition(context.Background(), bk.ID(), TransitionRequest{
		Status: "scheduled",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, apperror.CodeOf(err))
	assert.Equal(t, booking.StatusPending, bk.Status())
	assert.Empty(t, mailer.sent)
}

func TestApplyTransition_DefaultsToCurrentClock(t *testing.T) {
	svc, _, bookings, _ := newLifecycleFixture(t)
	bk := seededBooking(testNow.Add(-24*time.Hour), booking.StatusScheduled)
	bookings.store[bk.ID()] = bk

	dto, _, err := svc.ApplyTransition(context.Background(), bk.ID(), TransitionRequest{
		Status: "completed",
	})
	require.NoError(t, err)
	require.NotNil(t, dto.ActionDate)
	assert.Equal(t, time.Date(2025, 9, 1, 14, 45, 0, 0, time.UTC), *dto.ActionDate)
}

func TestApplyTransition_DateWithDefaultTime(t *testing.T) {
	svc, _, bookings, _ := newLifecycleFixture(t)
	bk := seededBooking(testNow.Add(-24*time.Hour), booking.StatusScheduled)
	bookings.store[bk.ID()] = bk

	dto, _, err := svc.ApplyTransition(context.Background(), bk.ID(), TransitionRequest{
		Status:        "missed",
		EffectiveDate: "2025-09-03",
	})
	require.NoError(t, err)
	require.NotNil(t, dto.ActionDate)
	// Date from the request, clock time from now.
	assert.Equal(t, time.Date(2025, 9, 3, 14, 45, 0, 0, time.UTC), *dto.ActionDate)
}

func TestApplyTransition_EmailFailureSurfacesWarningOnly(t *testing.T) {
	svc, _, bookings, mailer := newLifecycleFixture(t)
	mailer.fail = true
	bk := seededBooking(testNow.Add(-24*time.Hour), booking.StatusPending)
	bookings.store[bk.ID()] = bk

	dto, warning, err := svc.ApplyTransition(context.Background(), bk.ID(), TransitionRequest{
		Status:        "scheduled",
		EffectiveDate: "2025-09-02",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, warning)
	assert.Equal(t, "scheduled", dto.Status)
	assert.Equal(t, booking.StatusScheduled, bookings.store[bk.ID()].Status())
}

func TestApplyTransition_PersistenceFailureAbortsBeforeEmail(t *testing.T) {
	svc, _, bookings, mailer := newLifecycleFixture(t)
	bookings.updateErr = fmt.Errorf("connection reset")
	bk := seededBooking(testNow.Add(-24*time.Hour), booking.StatusPending)
	bookings.store[bk.ID()] = bk

	_, _, err := svc.ApplyTransition(context.Background(), bk.ID(), TransitionRequest{
		Status:        "scheduled",
		EffectiveDate: "2025-09-02",
	})
	require.Error(t, err)
	assert.Empty(t, mailer.sent, "no email may go out when the update failed")
}

func TestApplyTransition_UnknownBooking(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture(t)

	_, _, err := svc.ApplyTransition(context.Background(), uuid.New(), TransitionRequest{
		Status: "cancelled",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeNotFound, apperror.CodeOf(err))
}

func TestApplyTransition_InvalidInputs(t *testing.T) {
	svc, _, bookings, _ := newLifecycleFixture(t)
	bk := seededBooking(testNow.Add(-24*time.Hour), booking.StatusPending)
	bookings.store[bk.ID()] = bk

	tests := []struct {
		name string
		req  TransitionRequest
	}{
		{"unknown status", TransitionRequest{Status: "archived"}},
		{"bad date", TransitionRequest{Status: "scheduled", EffectiveDate: "tomorrow"}},
		{"bad time", TransitionRequest{Status: "cancelled", EffectiveTime: "2pm"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.ApplyTransition(context.Background(), bk.ID(), tt.req)
			require.Error(t, err)
			assert.Equal(t, apperror.CodeValidation, apperror.CodeOf(err))
		})
	}
}

func TestPromote_MovesRequestToBookings(t *testing.T) {
	svc, requests, bookings, mailer := newLifecycleFixture(t)
	req := seededBooking(testNow.Add(-time.Hour), booking.StatusPending)
	requests.requests[req.ID()] = req

	dto, err := svc.Promote(context.Background(), req.ID())
	require.NoError(t, err)

	assert.Equal(t, "pending", dto.Status)
	assert.NotContains(t, requests.requests, req.ID())
	assert.Contains(t, bookings.store, req.ID())
	assert.Empty(t, mailer.sent, "promotion itself sends no email")
}

func TestReject_DeletesAndNotifies(t *testing.T) {
	svc, requests, _, mailer := newLifecycleFixture(t)
	req := seededBooking(testNow.Add(-time.Hour), booking.StatusPending)
	requests.requests[req.ID()] = req

	warning, err := svc.Reject(context.Background(), req.ID())
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.NotContains(t, requests.requests, req.ID())
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].Subject, "Cancel")
}

func TestReject_EmailFailureStillDeletes(t *testing.T) {
	svc, requests, _, mailer := newLifecycleFixture(t)
	mailer.fail = true
	req := seededBooking(testNow.Add(-time.Hour), booking.StatusPending)
	requests.requests[req.ID()] = req

	warning, err := svc.Reject(context.Background(), req.ID())
	require.NoError(t, err)
	assert.NotEmpty(t, warning)
	assert.NotContains(t, requests.requests, req.ID())
}

func TestDeleteMany(t *testing.T) {
	svc, _, bookings, _ := newLifecycleFixture(t)
	a := seededBooking(testNow.Add(-2*time.Hour), booking.StatusScheduled)
	b := seededBooking(testNow.Add(-time.Hour), booking.StatusCompleted)
	bookings.store[a.ID()] = a
	bookings.store[b.ID()] = b

	deleted, err := svc.DeleteMany(context.Background(), []uuid.UUID{a.ID(), uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Len(t, bookings.store, 1)

	_, err = svc.DeleteMany(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, apperror.CodeOf(err))
}

func TestListBookings_StatusFilter(t *testing.T) {
	svc, _, bookings, _ := newLifecycleFixture(t)
	bookings.store[uuid.New()] = seededBooking(testNow.Add(-2*time.Hour), booking.StatusScheduled)
	bookings.store[uuid.New()] = seededBooking(testNow.Add(-time.Hour), booking.StatusCompleted)

	items, total, err := svc.ListBookings(context.Background(), "scheduled", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "scheduled", items[0].Status)

	_, _, err = svc.ListBookings(context.Background(), "bogus", 1, 20)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, apperror.CodeOf(err))
}

func TestStats(t *testing.T) {
	svc, _, bookings, _ := newLifecycleFixture(t)
	bookings.store[uuid.New()] = seededBooking(testNow.Add(-3*time.Hour), booking.StatusScheduled)
	bookings.store[uuid.New()] = seededBooking(testNow.Add(-2*time.Hour), booking.StatusScheduled)
	bookings.store[uuid.New()] = seededBooking(testNow.Add(-time.Hour), booking.StatusMissed)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalBookings)
	assert.Equal(t, int64(2), stats.ByStatus["scheduled"])
	assert.Equal(t, int64(1), stats.ByStatus["missed"])
}
