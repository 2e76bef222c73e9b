package controllers

import (
	"github.com/clinio/clinic-server/models/clinic"
	"github.com/clinio/clinic-server/models/userdata"
	"github.com/clinio/clinic-server/repos"
	"github.com/clinio/clinic-server/services"
	"github.com/clinio/clinic-server/utils"
	"github.com/gofiber/fiber/v2"

	"go.uber.org/fx"
)

type LabTestController struct {
	fx.In

	Repo          *repos.LabTestRepo
	Notifications *services.NotificationService
}

type createLabTestRequest struct {
	PatientId int64  `json:"patient_id" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required,min=1,max=256"`
}

type labResultRequest struct {
	Result string `json:"result" validate:"required,min=1,max=8192"`
}

func RegisterLabTestController(r *utils.Router, c LabTestController) {
	labtests := r.Group("/labtests")

	labtests.Get("/", utils.Protected(standardRoute), c.listLabTests)
	labtests.Post("/create", utils.Protected(staffRoute), c.createLabTest)
	labtests.Put("/:id/result", utils.Protected(staffRoute), c.setResult)
}

func (r *LabTestController) createLabTest(c *fiber.Ctx) error {
	req := new(createLabTestRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validate.Struct(*req)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	test, err := r.Repo.AddLabTest(c.Context(), clinic.LabTest{
		PatientId: req.PatientId,
		Name:      req.Name,
		Status:    clinic.LabTestOrdered,
	})
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(test)
}

func (r *LabTestController) setResult(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lab test id",
		})
	}

	req := new(labResultRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validate.Struct(*req)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	test, err := r.Repo.SetResult(c.Context(), int64(id), req.Result)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	notifyEvent(c.Context(), r.Notifications, services.NotificationDetails{
		Type:    userdata.NotificationLabResult,
		Title:   "Lab result ready",
		Message: "Your " + test.Name + " result is ready",
	}, test.PatientId)

	return c.JSON(test)
}

func (r *LabTestController) listLabTests(c *fiber.Ctx) error {
	tests, err := r.Repo.LabTestsByPatient(c.Context(), c.Locals("account").(int64))
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.JSON(tests)
}
