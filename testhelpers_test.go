//go:build integration

package main_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rpl-maker-lab/service-booking/internal/application"
	"github.com/rpl-maker-lab/service-booking/internal/domain/booking"
	"github.com/rpl-maker-lab/service-booking/internal/notification"
	"github.com/rpl-maker-lab/service-booking/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB      *gorm.DB
	Cleanup func()
}

// makerLabStack holds wired-up booking service components.
type makerLabStack struct {
	Intake    *application.IntakeService
	Lifecycle *application.LifecycleService
	Export    *application.ExportService
	Mailer    *recordingMailer
}

// recordingMailer captures outgoing messages instead of calling a
// provider. Set Fail to exercise the best-effort email paths.
type recordingMailer struct {
	mu   sync.Mutex
	Sent []notification.Message
	Fail bool
}

func (m *recordingMailer) Send(_ context.Context, msg notification.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("mailer unavailable")
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

func (m *recordingMailer) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// setupContainers starts a PostgreSQL testcontainer and returns a
// connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_makerlab",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_makerlab sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(&repository.RequestModel{}, &repository.BookingModel{}))

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{DB: db, Cleanup: cleanup}
}

// setupMakerLabStack wires up the full service stack against the test
// database with a recording mailer.
func setupMakerLabStack(t *testing.T, db *gorm.DB) *makerLabStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	catalog, err := booking.NewCatalog(testSlotLabels(), testEquipment())
	require.NoError(t, err)

	policy, err := booking.NewPolicy(
		[]string{"Tuesday", "Wednesday", "Thursday", "Friday"},
		1, 3, 1, 3, 1, true,
	)
	require.NoError(t, err)

	requestRepo := repository.NewGormRequestRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	mailer := &recordingMailer{}

	const labInbox = "maker@library.test"

	return &makerLabStack{
		Intake:    application.NewIntakeService(requestRepo, catalog, policy, mailer, labInbox, logger),
		Lifecycle: application.NewLifecycleService(requestRepo, bookingRepo, mailer, labInbox, logger),
		Export:    application.NewExportService(bookingRepo, logger),
		Mailer:    mailer,
	}
}

func testSlotLabels() []string {
	return []string{
		"Tuesday 11 AM - 1 PM",
		"Tuesday 2 PM - 4 PM",
		"Wednesday 11 AM - 1 PM",
		"Wednesday 2 PM - 4 PM",
		"Thursday 11 AM - 1 PM",
		"Thursday 2 PM - 4 PM",
		"Friday 2 PM - 4 PM",
	}
}

func testEquipment() []string {
	return []string{"3D Printers", "Laser Cutter", "Cricut Maker"}
}

// upcomingDate returns the next calendar date falling on the given
// weekday, formatted for submission payloads.
func upcomingDate(weekday time.Weekday) string {
	d := time.Now().UTC().AddDate(0, 0, 1)
	for d.Weekday() != weekday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(booking.DateLayout)
}

// submitTestRequest pushes a valid submission through intake and returns
// the stored record.
func submitTestRequest(t *testing.T, stack *makerLabStack, email string) *application.BookingRequestDTO {
	t.Helper()

	draft := booking.SubmissionDraft{
		FullName:          "Ada Jones",
		Email:             email,
		Phone:             "815-555-0142",
		AccessOption:      "appointment",
		SelectedDates:     []string{upcomingDate(time.Tuesday)},
		SelectedTimeSlots: []string{"Tuesday 11 AM - 1 PM"},
		SelectedEquipment: []string{"3D Printers"},
	}

	dto, warning, err := stack.Intake.SubmitRequest(context.Background(), draft)
	require.NoError(t, err)
	require.Empty(t, warning)
	return dto
}
