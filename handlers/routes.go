package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/deardiary/deardiary/backend/go-services/internal/export"
	"github.com/deardiary/deardiary/backend/go-services/internal/notes"
	"github.com/deardiary/deardiary/backend/go-services/internal/store"
)

// Deps are the services behind the HTTP API.
type Deps struct {
	Store  store.Gateway
	Info   StoreInfo
	Notes  *notes.Service
	Export *export.Service
}

// RegisterRoutes mounts every API route on r.
func RegisterRoutes(r gin.IRouter, d Deps) {
	RegisterSystemRoutes(r, d.Store, d.Info)
	RegisterSwagger(r)
	RegisterFolderRoutes(r, d.Notes)
	RegisterNoteRoutes(r, d.Notes)
	RegisterAssistantRoutes(r, d.Notes)
	RegisterExportRoutes(r, d.Export)
}
