package application

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/rpl-maker-lab/service-booking/internal/domain/booking"
)

func newExportFixture(t *testing.T) (*ExportService, *fakeBookingRepo) {
	t.Helper()
	bookings := newFakeBookingRepo()
	svc := NewExportService(bookings, zap.NewNop())
	svc.now = func() time.Time { return testNow }
	return svc, bookings
}

func TestExportExcel_RoundTrip(t *testing.T) {
	svc, bookings := newExportFixture(t)
	bk := seededBooking(testNow.Add(-time.Hour), booking.StatusScheduled)
	bookings.store[bk.ID()] = bk

	data, filename, err := svc.ExportExcel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "confirmed-bookings-2025-09-01.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Confirmed Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, exportHeader, rows[0])
	assert.Equal(t, "Ada Jones", rows[1][0])
	assert.Equal(t, "ada@example.com", rows[1][1])
	assert.Equal(t, "scheduled", rows[1][7])
}

func TestExportExcel_EmptyTableStillProducesHeader(t *testing.T) {
	svc, _ := newExportFixture(t)

	data, _, err := svc.ExportExcel(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Confirmed Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, exportHeader, rows[0])
}

func TestExportPDF(t *testing.T) {
	svc, bookings := newExportFixture(t)
	bk := seededBooking(testNow.Add(-time.Hour), booking.StatusCompleted)
	bookings.store[bk.ID()] = bk

	data, filename, err := svc.ExportPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "confirmed-bookings-2025-09-01.pdf", filename)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}
