package controllers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clinio/clinic-server/models/clinic"
	"github.com/clinio/clinic-server/models/userdata"
	"github.com/clinio/clinic-server/repos"
	"github.com/clinio/clinic-server/services"
	"github.com/clinio/clinic-server/utils"
	"github.com/gofiber/fiber/v2"

	"go.uber.org/fx"
)

type appointmentStore interface {
	AddAppointment(ctx context.Context, appointment clinic.Appointment) (*clinic.Appointment, error)
	AppointmentsByAccount(ctx context.Context, accountId int64, skip, limit int) ([]clinic.Appointment, int, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*clinic.Appointment, error)
}

type AppointmentController struct {
	fx.In

	Repo          *repos.AppointmentRepo
	Notifications *services.NotificationService
}

type appointmentHandlers struct {
	store    appointmentStore
	notifier notifier
}

type createAppointmentRequest struct {
	StaffId      int64  `json:"staff_id" validate:"required,gt=0"`
	ScheduledAt  string `json:"scheduled_at" validate:"required"`
	DurationMins int    `json:"duration_mins" validate:"required,gt=0,lte=480"`
	Reason       string `json:"reason" validate:"omitempty,max=1024"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=booked confirmed completed cancelled"`
}

func RegisterAppointmentController(r *utils.Router, c AppointmentController) {
	h := &appointmentHandlers{store: c.Repo, notifier: c.Notifications}

	appointments := r.Group("/appointments", utils.Protected(standardRoute))

	appointments.Get("/", h.listAppointments)
	appointments.Post("/create", h.createAppointment)
	appointments.Put("/:id/status", h.updateStatus)
}

func (h *appointmentHandlers) createAppointment(c *fiber.Ctx) error {
	req := new(createAppointmentRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validate.Struct(*req)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "scheduled_at must be RFC3339",
		})
	}

	appointment, err := h.store.AddAppointment(c.Context(), clinic.Appointment{
		PatientId:    c.Locals("account").(int64),
		StaffId:      req.StaffId,
		ScheduledAt:  scheduledAt,
		DurationMins: req.DurationMins,
		Status:       clinic.AppointmentBooked,
		Reason:       req.Reason,
	})
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	// Domain event: the assigned staff member learns about the booking.
	notifyEvent(c.Context(), h.notifier, services.NotificationDetails{
		Type:    userdata.NotificationAppointment,
		Title:   "New appointment",
		Message: fmt.Sprintf("A new appointment was booked for %s", appointment.ScheduledAt.Format(time.RFC1123)),
	}, appointment.StaffId)

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

func (h *appointmentHandlers) updateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid appointment id",
		})
	}

	req := new(updateStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validate.Struct(*req)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	appointment, err := h.store.UpdateStatus(c.Context(), int64(id), req.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	notifyEvent(c.Context(), h.notifier, services.NotificationDetails{
		Type:    userdata.NotificationAppointment,
		Title:   "Appointment " + appointment.Status,
		Message: fmt.Sprintf("Your appointment on %s is now %s", appointment.ScheduledAt.Format(time.RFC1123), appointment.Status),
	}, appointment.PatientId)

	return c.JSON(appointment)
}

func (h *appointmentHandlers) listAppointments(c *fiber.Ctx) error {
	skip, limit := utils.ParsePagination(c.Query("skip"), c.Query("limit"))

	appointments, total, err := h.store.AppointmentsByAccount(c.Context(), c.Locals("account").(int64), skip, limit)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"total":        total,
	})
}
