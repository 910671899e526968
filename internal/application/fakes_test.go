package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/rpl-maker-lab/service-booking/internal/apperror"
	"github.com/rpl-maker-lab/service-booking/internal/domain/booking"
	"github.com/rpl-maker-lab/service-booking/internal/notification"
)

// fakeRequestRepo is an in-memory RequestRepository backed by a shared
// booking store so Promote can move rows between the two.
type fakeRequestRepo struct {
	requests map[uuid.UUID]*booking.BookingRequest
	bookings *fakeBookingRepo
	saveErr  error
}

func newFakeRequestRepo(bookings *fakeBookingRepo) *fakeRequestRepo {
	return &fakeRequestRepo{
		requests: make(map[uuid.UUID]*booking.BookingRequest),
		bookings: bookings,
	}
}

func (r *fakeRequestRepo) Save(_ context.Context, req *booking.BookingRequest) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.requests[req.ID()] = req
	return nil
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.BookingRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, apperror.NewNotFound("booking request", id.String())
	}
	return req, nil
}

func (r *fakeRequestRepo) List(_ context.Context, page, limit int) ([]*booking.BookingRequest, int64, error) {
	items := sortedByCreatedAt(r.requests)
	return paginate(items, page, limit), int64(len(items)), nil
}

func (r *fakeRequestRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.requests[id]; !ok {
		return apperror.NewNotFound("booking request", id.String())
	}
	delete(r.requests, id)
	return nil
}

func (r *fakeRequestRepo) Promote(_ context.Context, id uuid.UUID) (*booking.BookingRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, apperror.NewNotFound("booking request", id.String())
	}
	r.bookings.store[id] = req
	delete(r.requests, id)
	return req, nil
}

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	store     map[uuid.UUID]*booking.BookingRequest
	updateErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{store: make(map[uuid.UUID]*booking.BookingRequest)}
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.BookingRequest, error) {
	bk, ok := r.store[id]
	if !ok {
		return nil, apperror.NewNotFound("booking", id.String())
	}
	return bk, nil
}

func (r *fakeBookingRepo) List(_ context.Context, status booking.Status, page, limit int) ([]*booking.BookingRequest, int64, error) {
	var items []*booking.BookingRequest
	for _, bk := range sortedByCreatedAt(r.store) {
		if status == "" || bk.Status() == status {
			items = append(items, bk)
		}
	}
	return paginate(items, page, limit), int64(len(items)), nil
}

func (r *fakeBookingRepo) ListAll(_ context.Context) ([]*booking.BookingRequest, error) {
	return sortedByCreatedAt(r.store), nil
}

func (r *fakeBookingRepo) Update(_ context.Context, bk *booking.BookingRequest) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.store[bk.ID()]; !ok {
		return apperror.NewNotFound("booking", bk.ID().String())
	}
	r.store[bk.ID()] = bk
	return nil
}

func (r *fakeBookingRepo) DeleteMany(_ context.Context, ids []uuid.UUID) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if _, ok := r.store[id]; ok {
			delete(r.store, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeBookingRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, bk := range r.store {
		counts[bk.Status().String()]++
	}
	return counts, nil
}

// fakeMailer records sends and can be told to fail.
type fakeMailer struct {
	sent []notification.Message
	fail bool
}

func (m *fakeMailer) Send(_ context.Context, msg notification.Message) error {
	if m.fail {
		return fmt.Errorf("mailer unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func sortedByCreatedAt(store map[uuid.UUID]*booking.BookingRequest) []*booking.BookingRequest {
	items := make([]*booking.BookingRequest, 0, len(store))
	for _, bk := range store {
		items = append(items, bk)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt().After(items[j].CreatedAt())
	})
	return items
}

func paginate(items []*booking.BookingRequest, page, limit int) []*booking.BookingRequest {
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func seededBooking(createdAt time.Time, status booking.Status) *booking.BookingRequest {
	return booking.ReconstructBookingRequest(
		uuid.New(),
		booking.Contact{FullName: "Ada Jones", Email: "ada@example.com", Phone: "815-555-0142"},
		booking.AccessAppointment,
		[]time.Time{time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)},
		[]string{"Tuesday 11 AM - 1 PM"},
		[]string{"3D Printers"},
		status,
		nil,
		createdAt,
	)
}
