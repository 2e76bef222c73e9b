package controllers

import (
	"context"
	"errors"

	"github.com/clinio/clinic-server/models/userdata"
	"github.com/clinio/clinic-server/repos"
	"github.com/clinio/clinic-server/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"go.uber.org/fx"
)

type accountStore interface {
	AddAccount(ctx context.Context, account userdata.Account) (int64, error)
	AccountProfile(ctx context.Context, id int64) (*userdata.Account, error)
}

type AccountController struct {
	fx.In

	Repo *repos.AccountRepo
}

type accountHandlers struct {
	store accountStore
}

var validate = validator.New()

var standardRoute = utils.JwtMiddlewareConfig{
	ReadFrom: "header",
	Subject:  "access",
	Scopes:   []string{"basic"},
}

var staffRoute = utils.JwtMiddlewareConfig{
	ReadFrom: "header",
	Subject:  "access",
	Scopes:   []string{"basic"},
	Roles:    []string{userdata.RoleStaff, userdata.RoleAdmin},
}

type createAccountRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=128"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Role     string `json:"role" validate:"required,oneof=patient staff admin"`
	Phone    string `json:"phone" validate:"omitempty,min=4,max=32"`
}

func RegisterAccountController(r *utils.Router, c AccountController) {
	h := &accountHandlers{store: c.Repo}

	accounts := r.Group("/accounts")

	accounts.Get("/profile", utils.Protected(standardRoute), h.profile)
	accounts.Post("/create", h.createAccount)
}

func (h *accountHandlers) profile(c *fiber.Ctx) error {
	account, err := h.store.AccountProfile(c.Context(), c.Locals("account").(int64))
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.JSON(account)
}

func (h *accountHandlers) createAccount(c *fiber.Ctx) error {
	req := new(createAccountRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validate.Struct(*req)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	id, err := h.store.AddAccount(c.Context(), userdata.Account{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
		Phone:    req.Phone,
	})
	if errors.Is(err, repos.ErrDuplicateEmail) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Email already registered",
		})
	}
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id": id,
	})
}
