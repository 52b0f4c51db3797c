package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"

	"github.com/zaljabir/alleviate-api/internal/alleviate"
)

const authUsageExample = "Authorization: Basic <base64(username:password)>"

// BasicAuth guards the automation routes. The credentials are not checked
// against any local authority — they are forwarded to the target platform's
// login form — so the authorizer only rejects empty pairs. Missing, malformed,
// or empty credentials all answer with the same 401 class and a usage example.
func BasicAuth() fiber.Handler {
	return basicauth.New(basicauth.Config{
		Realm: "alleviate-api",
		Authorizer: func(username, password string) bool {
			return username != "" && password != ""
		},
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="alleviate-api"`)
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "missing or malformed Basic authorization header",
				Example: authUsageExample,
			})
		},
	})
}

// credentialsFromCtx reads the pair the basicauth middleware decoded.
func credentialsFromCtx(c *fiber.Ctx) (alleviate.Credentials, bool) {
	username, _ := c.Locals("username").(string)
	password, _ := c.Locals("password").(string)
	if username == "" || password == "" {
		return alleviate.Credentials{}, false
	}
	return alleviate.Credentials{Username: username, Password: password}, true
}
