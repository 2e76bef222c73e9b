package controllers

import (
	"github.com/clinio/clinic-server/models/clinic"
	"github.com/clinio/clinic-server/repos"
	"github.com/clinio/clinic-server/utils"
	"github.com/gofiber/fiber/v2"

	"go.uber.org/fx"
)

type ScheduleController struct {
	fx.In

	Repo *repos.ScheduleRepo
}

type createPatternRequest struct {
	Weekday     int `json:"weekday" validate:"gte=0,lte=6"`
	StartMinute int `json:"start_minute" validate:"gte=0,lt=1440"`
	EndMinute   int `json:"end_minute" validate:"gt=0,lte=1440,gtfield=StartMinute"`
	SlotMins    int `json:"slot_mins" validate:"required,gt=0,lte=240"`
}

func RegisterScheduleController(r *utils.Router, c ScheduleController) {
	schedules := r.Group("/schedules")

	schedules.Post("/create", utils.Protected(staffRoute), c.createPattern)
	schedules.Delete("/:id", utils.Protected(staffRoute), c.removePattern)
	schedules.Get("/:staffId", utils.Protected(standardRoute), c.patternsByStaff)
}

func (r *ScheduleController) createPattern(c *fiber.Ctx) error {
	req := new(createPatternRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validate.Struct(*req)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	id, err := r.Repo.AddPattern(c.Context(), clinic.SchedulePattern{
		StaffId:     c.Locals("account").(int64),
		Weekday:     req.Weekday,
		StartMinute: req.StartMinute,
		EndMinute:   req.EndMinute,
		SlotMins:    req.SlotMins,
	})
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id": id,
	})
}

func (r *ScheduleController) removePattern(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid pattern id",
		})
	}

	removed, err := r.Repo.RemovePattern(c.Context(), int64(id), c.Locals("account").(int64))
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.JSON(fiber.Map{
		"removed": removed,
	})
}

func (r *ScheduleController) patternsByStaff(c *fiber.Ctx) error {
	staffId, err := c.ParamsInt("staffId")
	if err != nil || staffId <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid staff id",
		})
	}

	patterns, err := r.Repo.PatternsByStaff(c.Context(), int64(staffId))
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.JSON(patterns)
}
