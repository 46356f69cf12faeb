package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger serves a Swagger UI page and the OpenAPI document:
//   - GET /swagger/index.html
//   - GET /swagger/doc.json
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Dear Diary API - Swagger</title>
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
  "info": { "title": "Dear Diary API", "version": "v0.1.0" },
  "components": {
    "schemas": {
      "Folder": { "type": "object", "properties": { "id": {"type":"string"}, "name": {"type":"string"}, "color": {"type":"string","nullable":true}, "icon": {"type":"string"}, "created_at": {"type":"string","format":"date-time"}, "updated_at": {"type":"string","format":"date-time"} } },
      "Note": { "type": "object", "properties": { "id": {"type":"string"}, "title": {"type":"string"}, "content": {"type":"string"}, "folder_id": {"type":"string","nullable":true}, "tags": {"type":"array","items":{"type":"string"}}, "header_style": {"type":"string","enum":["soft","minimal","kawaii","serif"]}, "tone": {"type":"string","nullable":true}, "category": {"type":"string"}, "is_pinned": {"type":"boolean"}, "created_at": {"type":"string","format":"date-time"}, "updated_at": {"type":"string","format":"date-time"} } },
      "Error": { "type": "object", "properties": { "error": {"type":"string"} } }
    }
  },
  "paths": {
    "/folders": {
      "get": { "summary": "List folders, most recently updated first", "responses": { "200": { "description": "folders" }, "503": { "description": "database not available" } } },
      "post": { "summary": "Create a folder", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["name"],"properties":{"name":{"type":"string"},"color":{"type":"string"},"icon":{"type":"string"}}}}}}, "responses": { "201": { "description": "{id}" }, "400": { "description": "invalid body" } } }
    },
    "/folders/{id}": {
      "get": { "summary": "Get a folder", "responses": { "200": { "description": "folder" }, "400": { "description": "invalid id" }, "404": { "description": "not found" } } },
      "patch": { "summary": "Update folder fields", "responses": { "200": { "description": "{ok}" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a folder (notes are kept)", "responses": { "200": { "description": "{ok}" }, "404": { "description": "not found" } } }
    },
    "/notes": {
      "get": { "summary": "List notes", "parameters": [ {"name":"folder_id","in":"query","schema":{"type":"string"}}, {"name":"q","in":"query","schema":{"type":"string"}}, {"name":"limit","in":"query","schema":{"type":"integer"}} ], "responses": { "200": { "description": "notes" } } },
      "post": { "summary": "Create a note", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["title"],"properties":{"title":{"type":"string"},"content":{"type":"string"},"folder_id":{"type":"string"},"tags":{"type":"array","items":{"type":"string"}},"header_style":{"type":"string"},"tone":{"type":"string"}}}}}}, "responses": { "201": { "description": "{id}" } } }
    },
    "/notes/{id}": {
      "get": { "summary": "Get a note", "responses": { "200": { "description": "note" }, "404": { "description": "not found" } } },
      "patch": { "summary": "Update note fields", "responses": { "200": { "description": "{ok}" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a note", "responses": { "200": { "description": "{ok}" }, "404": { "description": "not found" } } }
    },
    "/ai/rewrite": { "post": { "summary": "Rewrite text in a tone", "responses": { "200": { "description": "{text}" } } } },
    "/ai/tones": { "get": { "summary": "Tones understood by rewrite", "responses": { "200": { "description": "{tones}" } } } },
    "/ai/ideas": { "post": { "summary": "Writing prompts for a topic", "responses": { "200": { "description": "{ideas}" } } } },
    "/ai/search": { "post": { "summary": "Keyword search over notes", "responses": { "200": { "description": "{results}" } } } },
    "/transcribe": { "post": { "summary": "Transcription stub (audio_url or multipart file)", "responses": { "200": { "description": "{text, language}" } } } },
    "/export/pdf": { "post": { "summary": "Render a note as PDF", "responses": { "200": { "description": "application/pdf; X-Export-URL when archived" }, "404": { "description": "note not found" } } } },
    "/export/gdoc": { "post": { "summary": "Google Docs export stub", "responses": { "200": { "description": "{ok, message}" } } } },
    "/export/notion": { "post": { "summary": "Notion export stub", "responses": { "200": { "description": "{ok, message}" } } } },
    "/exports": { "get": { "summary": "Export history", "parameters": [ {"name":"note_id","in":"query","schema":{"type":"string"}}, {"name":"limit","in":"query","schema":{"type":"integer"}} ], "responses": { "200": { "description": "records" } } } },
    "/exports/{id}/file": { "get": { "summary": "Download an archived export", "parameters": [ {"name":"id","in":"path","required":true,"schema":{"type":"string"}} ], "responses": { "200": { "description": "archived file" }, "404": { "description": "export not found or not archived" } } } },
    "/test": { "get": { "summary": "Database diagnostics", "responses": { "200": { "description": "status" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
