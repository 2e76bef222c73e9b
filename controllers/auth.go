package controllers

import (
	"strconv"

	"github.com/clinio/clinic-server/config"
	"github.com/clinio/clinic-server/repos"
	"github.com/clinio/clinic-server/utils"
	"github.com/gofiber/fiber/v2"

	"go.uber.org/fx"
)

type AuthController struct {
	fx.In

	Repo   *repos.AccountRepo
	Config *config.Config
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

func RegisterAuthController(r *utils.Router, c AuthController) {
	r.Post("/auth/login", c.login)
}

func (r *AuthController) login(c *fiber.Ctx) error {
	req := new(loginRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validate.Struct(*req)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	account, err := r.Repo.AccountByEmail(c.Context(), req.Email)
	if err != nil || !utils.VerifyHash(req.Password, account.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":             "access_denied",
			"error_description": "Invalid credentials",
		})
	}

	token, err := utils.OAuthJwt(strconv.FormatInt(account.Id, 10), "basic", account.Role, r.Config.JwtParsedPrivateKey)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.JSON(token)
}
