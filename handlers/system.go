package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deardiary/deardiary/backend/go-services/internal/store"
)

// StoreInfo describes how the document store was configured, for /test.
type StoreInfo struct {
	DatabaseURLSet  bool
	DatabaseNameSet bool
}

// maxDiagnosticError trims driver errors shown on /test.
const maxDiagnosticError = 60

func RegisterSystemRoutes(r gin.IRouter, g store.Gateway, info StoreInfo) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Dear Diary backend is running"})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC().Format(time.RFC3339)})
	})

	r.GET("/ready", func(c *gin.Context) {
		if !store.IsAvailable(g) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ready": true})
	})

	r.GET("/test", func(c *gin.Context) {
		resp := gin.H{
			"backend":       "✅ Running",
			"database":      "❌ Not Available",
			"database_url":  info.DatabaseURLSet,
			"database_name": info.DatabaseNameSet,
			"collections":   []string{},
		}
		if insp, ok := g.(store.Inspector); ok && store.IsAvailable(g) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
			defer cancel()
			names, err := insp.Collections(ctx)
			if err != nil {
				msg := err.Error()
				if r := []rune(msg); len(r) > maxDiagnosticError {
					msg = string(r[:maxDiagnosticError])
				}
				resp["database"] = "⚠️ " + msg
			} else {
				resp["database"] = "✅ Connected"
				resp["collections"] = names
			}
		}
		c.JSON(http.StatusOK, resp)
	})
}
