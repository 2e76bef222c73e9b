package controllers

import (
	"fmt"

	"github.com/clinio/clinic-server/models/clinic"
	"github.com/clinio/clinic-server/models/userdata"
	"github.com/clinio/clinic-server/repos"
	"github.com/clinio/clinic-server/services"
	"github.com/clinio/clinic-server/utils"
	"github.com/gofiber/fiber/v2"

	"go.uber.org/fx"
)

type TransactionController struct {
	fx.In

	Repo          *repos.TransactionRepo
	Notifications *services.NotificationService
}

type createTransactionRequest struct {
	AppointmentId int64  `json:"appointment_id" validate:"omitempty,gt=0"`
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	Currency      string `json:"currency" validate:"required,len=3"`
	Method        string `json:"method" validate:"required,oneof=card cash transfer"`
}

func RegisterTransactionController(r *utils.Router, c TransactionController) {
	transactions := r.Group("/transactions", utils.Protected(standardRoute))

	transactions.Get("/", c.listTransactions)
	transactions.Post("/create", c.createTransaction)
}

func (r *TransactionController) createTransaction(c *fiber.Ctx) error {
	req := new(createTransactionRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validate.Struct(*req)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	transaction, err := r.Repo.AddTransaction(c.Context(), clinic.Transaction{
		AccountId:     c.Locals("account").(int64),
		AppointmentId: req.AppointmentId,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Method:        req.Method,
		Status:        clinic.TransactionPaid,
	})
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	notifyEvent(c.Context(), r.Notifications, services.NotificationDetails{
		Type:    userdata.NotificationPayment,
		Title:   "Payment received",
		Message: fmt.Sprintf("We received your payment of %d %s", transaction.Amount, transaction.Currency),
	}, transaction.AccountId)

	return c.Status(fiber.StatusCreated).JSON(transaction)
}

func (r *TransactionController) listTransactions(c *fiber.Ctx) error {
	skip, limit := utils.ParsePagination(c.Query("skip"), c.Query("limit"))

	transactions, total, err := r.Repo.TransactionsByAccount(c.Context(), c.Locals("account").(int64), skip, limit)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.JSON(fiber.Map{
		"transactions": transactions,
		"total":        total,
	})
}
