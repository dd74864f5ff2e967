package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SwaggerSpec serves the raw OpenAPI YAML.
func SwaggerSpec(spec []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(spec) == 0 {
			c.String(http.StatusNotFound, "OpenAPI spec not loaded")
			return
		}
		c.Data(http.StatusOK, "application/x-yaml", spec)
	}
}

// SwaggerUI serves a Swagger UI page that loads the document at specURL.
func SwaggerUI(specURL string) gin.HandlerFunc {
	html := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Wallet Service - API Docs</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: '%s',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`, specURL)

	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	}
}
