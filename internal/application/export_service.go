package application

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/rpl-maker-lab/service-booking/internal/domain/booking"
)

const exportDateLayout = "Jan 2, 2006"

var exportHeader = []string{
	"Full Name", "Email", "Phone", "Access Type", "Equipment",
	"Requested Dates", "Time Slots", "Status", "Confirmation Date", "Last Action Date",
}

// ExportService renders the confirmed bookings table as downloadable
// Excel and PDF files.
type ExportService struct {
	bookings booking.BookingRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService creates a new ExportService.
func NewExportService(bookings booking.BookingRepository, logger *zap.Logger) *ExportService {
	return &ExportService{
		bookings: bookings,
		logger:   logger,
		now:      time.Now,
	}
}

// ExportExcel writes all bookings into an xlsx workbook and returns the
// file bytes along with a dated filename.
func (s *ExportService) ExportExcel(ctx context.Context) ([]byte, string, error) {
	items, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Confirmed Bookings"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, "", err
		}
	}

	for i, bk := range items {
		row := exportRow(bk)
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("bookings exported", zap.String("format", "xlsx"), zap.Int("rows", len(items)))
	return buf.Bytes(), s.filename("xlsx"), nil
}

// ExportPDF writes all bookings into a landscape table and returns the
// file bytes along with a dated filename.
func (s *ExportService) ExportPDF(ctx context.Context) ([]byte, string, error) {
	items, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Maker Lab Confirmed Bookings")
	pdf.Ln(12)

	widths := []float64{32, 42, 24, 22, 34, 34, 34, 18, 20, 20}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for i, title := range exportHeader {
		pdf.CellFormat(widths[i], 8, title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 7)
	for _, bk := range items {
		row := exportRow(bk)
		for i, value := range row {
			pdf.CellFormat(widths[i], 7, truncate(value, 48), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write pdf: %w", err)
	}

	s.logger.Info("bookings exported", zap.String("format", "pdf"), zap.Int("rows", len(items)))
	return buf.Bytes(), s.filename("pdf"), nil
}

func (s *ExportService) filename(ext string) string {
	return fmt.Sprintf("confirmed-bookings-%s.%s", s.now().UTC().Format(booking.DateLayout), ext)
}

func exportRow(bk *booking.BookingRequest) []string {
	dates := make([]string, 0, len(bk.SelectedDates()))
	for _, d := range bk.SelectedDates() {
		dates = append(dates, d.Format(exportDateLayout))
	}

	actionDate := ""
	if bk.ActionDate() != nil {
		actionDate = bk.ActionDate().Format(exportDateLayout)
	}

	return []string{
		bk.Contact().FullName,
		bk.Contact().Email,
		bk.Contact().Phone,
		string(bk.AccessOption()),
		strings.Join(bk.SelectedEquipment(), ", "),
		strings.Join(dates, ", "),
		strings.Join(bk.SelectedTimeSlots(), ", "),
		bk.Status().String(),
		bk.CreatedAt().Format(exportDateLayout),
		actionDate,
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
