package utils

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"
)

const authScheme = "Bearer"

var (
	publicKey rsa.PublicKey
)

type Router struct {
	fiber.Router
}

type JwtMiddlewareConfig struct {
	ReadFrom string
	Subject  string
	Scopes   []string
	Roles    []string
}

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

func GetDefaultRouter(app *fiber.App) *Router {
	temp := app.Group("")
	return &Router{Router: temp}
}

func InitSharedConstants(pubKey rsa.PublicKey) {
	publicKey = pubKey
}

// Protected validates the request JWT and stores the account id in
// c.Locals("account"). ReadFrom selects the token source: "header",
// "cookie", or "query" (used by the websocket handshake, which cannot
// set an Authorization header from a browser).
func Protected(config JwtMiddlewareConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawToken, err := func() (string, error) {
			if config.ReadFrom == "header" {
				auth := c.Get("Authorization")
				l := len(authScheme)
				if len(auth) > l+1 && strings.EqualFold(auth[:l], authScheme) {
					return auth[l+1:], nil
				}

				return "", errors.New("Missing or malformed JWT")
			} else if config.ReadFrom == "cookie" {
				token := c.Cookies("accessToken")
				if token == "" {
					return "", errors.New("Missing or malformed JWT")
				}

				return token, nil
			} else if config.ReadFrom == "query" {
				token := c.Query("token")
				if token == "" {
					return "", errors.New("Missing or malformed JWT")
				}

				return token, nil
			}
			return "", errors.New("Invalid token read location")
		}()
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":             "access_denied",
				"error_description": "Missing or malformed JWT",
			})
		}

		tok, err := jwt.Parse(rawToken, func(jwtToken *jwt.Token) (interface{}, error) {
			if _, ok := jwtToken.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected method: %s", jwtToken.Header["alg"])
			}
			return &publicKey, nil
		})
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":             "access_denied",
				"error_description": err.Error(),
			})
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if ok && tok.Valid {
			if claims["sub"].(string) != config.Subject {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error":             "access_denied",
					"error_description": "Invalid JWT",
				})
			}

			scopeArray := strings.Split(claims["scope"].(string), " ")
			for _, scope := range config.Scopes {
				if IsInList(scope, &scopeArray) == -1 {
					return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
						"error":             "access_denied",
						"error_description": "Invalid scope",
					})
				}
			}

			id, err := strconv.ParseInt(claims["user"].(string), 10, 64)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error":             "access_denied",
					"error_description": "Invalid JWT",
				})
			}

			c.Locals("account", id)

			if len(config.Roles) > 0 {
				role := claimRole(claims)
				if IsInList(role, &config.Roles) == -1 {
					return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
						"error":             "access_denied",
						"error_description": "Invalid role",
					})
				}

				c.Locals("role", role)
			}

			return c.Next()
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":             "access_denied",
			"error_description": "Invalid JWT",
		})
	}
}

func claimRole(claims jwt.MapClaims) string {
	data, ok := claims["data"].(map[string]interface{})
	if !ok {
		return ""
	}

	role, _ := data["role"].(string)
	return role
}

func StandardInternalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func StandardCouldNotParse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Could not parse request",
	})
}
