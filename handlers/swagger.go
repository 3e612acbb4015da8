package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the gateway.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r gin.IRoutes) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>modelgate - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "modelgate", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "Error": { "type": "object", "properties": { "error": { "type": "string" } } },
      "Asset": { "type": "object", "properties": {
        "_id": { "type": "string" }, "modelId": { "type": "string" },
        "textures": { "type": "object", "additionalProperties": { "type": "string" } },
        "materialTextureMap": { "type": "object", "additionalProperties": { "type": "string" } },
        "prices": { "type": "object", "additionalProperties": { "type": "number" } },
        "createdAt": { "type": "string", "format": "date-time" } } },
      "Config": { "type": "object", "properties": {
        "_id": { "type": "string" }, "modelId": { "type": "string" },
        "defaultState": { "type": "object", "properties": { "currentSize": { "type": "string" }, "currentColor": { "type": "string" }, "currentPrice": { "type": "number" } } },
        "createdAt": { "type": "string", "format": "date-time" } } }
    }
  },
  "paths": {
    "/api/validate": {
      "post": {
        "summary": "Exchange a client key and domain for a one hour access token",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"clientKey":{"type":"string"},"domain":{"type":"string"}}}}}},
        "responses": { "200": { "description": "token returned" }, "403": { "description": "Invalid access" } }
      }
    },
    "/api/assets": {
      "post": { "summary": "Create an asset", "security": [{"bearer": []}],
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Asset" } } } },
        "responses": { "201": { "description": "created asset" }, "400": { "description": "malformed body" }, "401": { "description": "Access token required" }, "403": { "description": "Invalid token" }, "500": { "description": "Server error" } } }
    },
    "/api/assets/{modelId}": {
      "get": { "summary": "First asset stored for a model", "security": [{"bearer": []}],
        "parameters": [{ "name": "modelId", "in": "path", "required": true, "schema": { "type": "string" } }],
        "responses": { "200": { "description": "asset" }, "401": { "description": "Access token required" }, "403": { "description": "Invalid token" }, "404": { "description": "Asset not found" }, "500": { "description": "Server error" } } }
    },
    "/api/configs": {
      "post": { "summary": "Create a config", "security": [{"bearer": []}],
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Config" } } } },
        "responses": { "201": { "description": "created config" }, "400": { "description": "malformed body" }, "401": { "description": "Access token required" }, "403": { "description": "Invalid token" }, "500": { "description": "Server error" } } }
    },
    "/api/configs/{modelId}": {
      "get": { "summary": "First config stored for a model", "security": [{"bearer": []}],
        "parameters": [{ "name": "modelId", "in": "path", "required": true, "schema": { "type": "string" } }],
        "responses": { "200": { "description": "config" }, "401": { "description": "Access token required" }, "403": { "description": "Invalid token" }, "404": { "description": "Config not found" }, "500": { "description": "Server error" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition" } } } }
  }
}`
