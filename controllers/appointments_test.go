package controllers

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/clinio/clinic-server/models/clinic"
	"github.com/clinio/clinic-server/models/userdata"
	"github.com/clinio/clinic-server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockAppointmentStore struct{ mock.Mock }

func (m *mockAppointmentStore) AddAppointment(ctx context.Context, appointment clinic.Appointment) (*clinic.Appointment, error) {
	args := m.Called(ctx, appointment)
	if a, _ := args.Get(0).(*clinic.Appointment); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentStore) AppointmentsByAccount(ctx context.Context, accountId int64, skip, limit int) ([]clinic.Appointment, int, error) {
	args := m.Called(ctx, accountId, skip, limit)
	if a, _ := args.Get(0).([]clinic.Appointment); a != nil {
		return a, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *mockAppointmentStore) UpdateStatus(ctx context.Context, id int64, status string) (*clinic.Appointment, error) {
	args := m.Called(ctx, id, status)
	if a, _ := args.Get(0).(*clinic.Appointment); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Create(ctx context.Context, details services.NotificationDetails, accountId int64) (*userdata.Notification, error) {
	args := m.Called(ctx, details, accountId)
	if n, _ := args.Get(0).(*userdata.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func newAppointmentApp(store appointmentStore, n notifier) *fiber.App {
	app := fiber.New()
	h := &appointmentHandlers{store: store, notifier: n}

	app.Put("/appointments/:id/status", func(c *fiber.Ctx) error {
		c.Locals("account", int64(1))
		return c.Next()
	}, h.updateStatus)

	return app
}

// --- tests ---

func TestUpdateStatusUnknownAppointmentReturns404(t *testing.T) {
	store := new(mockAppointmentStore)
	n := new(mockNotifier)
	app := newAppointmentApp(store, n)

	store.On("UpdateStatus", mock.Anything, int64(999), "confirmed").Return(nil, sql.ErrNoRows)

	req := httptest.NewRequest(fiber.MethodPut, "/appointments/999/status", strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	n.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusNotifiesPatient(t *testing.T) {
	store := new(mockAppointmentStore)
	n := new(mockNotifier)
	app := newAppointmentApp(store, n)

	store.On("UpdateStatus", mock.Anything, int64(7), "confirmed").Return(&clinic.Appointment{
		Id:          7,
		PatientId:   42,
		StaffId:     2,
		ScheduledAt: time.Now().Add(time.Hour * 24),
		Status:      clinic.AppointmentConfirmed,
	}, nil)
	n.On("Create", mock.Anything, mock.MatchedBy(func(d services.NotificationDetails) bool {
		return d.Type == userdata.NotificationAppointment
	}), int64(42)).Return(&userdata.Notification{Id: 1}, nil)

	req := httptest.NewRequest(fiber.MethodPut, "/appointments/7/status", strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	n.AssertExpectations(t)
}

func TestUpdateStatusNotificationFailureStillSucceeds(t *testing.T) {
	store := new(mockAppointmentStore)
	n := new(mockNotifier)
	app := newAppointmentApp(store, n)

	store.On("UpdateStatus", mock.Anything, int64(7), "cancelled").Return(&clinic.Appointment{
		Id:          7,
		PatientId:   42,
		ScheduledAt: time.Now(),
		Status:      clinic.AppointmentCancelled,
	}, nil)
	n.On("Create", mock.Anything, mock.Anything, int64(42)).Return(nil, sql.ErrConnDone)

	req := httptest.NewRequest(fiber.MethodPut, "/appointments/7/status", strings.NewReader(`{"status":"cancelled"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	// The appointment update already committed; a lost notification
	// must not turn it into a failed response.
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	n.AssertExpectations(t)
}
