package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"pdfvault/internal/auth/token"
	"pdfvault/internal/http/middleware"
	"pdfvault/internal/service"
)

// Services bundles the use-case implementations the routes depend on.
type Services struct {
	Auth     service.AuthService
	Document service.DocumentService
	Sharing  service.SharingService
	Comment  service.CommentService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: validation and status mapping here, permission
// and persistence logic in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, tokens *token.Manager, svcs Services) {
	// Serve the OpenAPI document and a minimal Swagger UI.
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoints
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Authentication
	app.Post("/auth/register", RegisterUser(svcs.Auth))
	app.Post("/auth/login", LoginUser(svcs.Auth))

	// Public-link routes: no bearer token, the link is the capability.
	app.Get("/shared/:linkToken", ResolveSharedLink(svcs.Sharing))
	app.Get("/shared/:linkToken/download", DownloadSharedLink(svcs.Sharing))

	// Everything below requires an authenticated identity.
	docs := app.Group("/documents", middleware.BearerAuth(tokens))
	docs.Get("/", ListDocuments(svcs.Document))
	docs.Post("/upload", UploadDocument(svcs.Document))
	docs.Get("/:id", GetDocument(svcs.Document))
	docs.Delete("/:id", DeleteDocument(svcs.Document))
	docs.Get("/:id/download", DownloadDocument(svcs.Document))
	docs.Get("/:id/users", ListSharedUsers(svcs.Sharing))
	docs.Post("/:id/users", GrantAccess(svcs.Sharing))
	docs.Delete("/:id/users/:userId", RevokeAccess(svcs.Sharing))
	docs.Post("/:id/comments", AddComment(svcs.Comment))
}
