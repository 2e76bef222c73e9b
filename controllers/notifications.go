package controllers

import (
	"context"

	"github.com/clinio/clinic-server/models/userdata"
	"github.com/clinio/clinic-server/services"
	"github.com/clinio/clinic-server/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"go.uber.org/fx"
)

// notifier is the notification write gateway as the controllers see it.
type notifier interface {
	Create(ctx context.Context, details services.NotificationDetails, accountId int64) (*userdata.Notification, error)
}

// notifyEvent records a notification for a domain event. The parent
// operation has already committed by the time this runs, so a failed
// write is logged rather than propagated to the client.
func notifyEvent(ctx context.Context, n notifier, details services.NotificationDetails, accountId int64) {
	if _, err := n.Create(ctx, details, accountId); err != nil {
		log.Error().Err(err).Int64("account", accountId).Str("type", details.Type).Msg("Could not record domain event notification")
	}
}

type NotificationController struct {
	fx.In

	Notifications *services.NotificationService
}

func RegisterNotificationController(r *utils.Router, c NotificationController) {
	notifications := r.Group("/notifications", utils.Protected(standardRoute))

	notifications.Get("/", c.listNotifications)
	notifications.Put("/read-all", c.readAll)
}

func (r *NotificationController) listNotifications(c *fiber.Ctx) error {
	notis, total, err := r.Notifications.List(c.Context(), c.Locals("account").(int64), c.Query("skip"), c.Query("limit"))
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.JSON(fiber.Map{
		"noti":  notis,
		"total": total,
	})
}

func (r *NotificationController) readAll(c *fiber.Ctx) error {
	updated, err := r.Notifications.ReadAll(c.Context(), c.Locals("account").(int64))
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.JSON(fiber.Map{
		"updated": updated,
	})
}
