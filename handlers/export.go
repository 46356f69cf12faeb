package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/deardiary/deardiary/backend/go-services/internal/export"
)

type exportRequest struct {
	NoteID string `json:"note_id" binding:"required"`
	Title  string `json:"title"`
}

// ExportURLHeader carries the presigned archive link of a PDF export.
const ExportURLHeader = "X-Export-URL"

func RegisterExportRoutes(r gin.IRouter, svc *export.Service) {
	r.POST("/export/pdf", func(c *gin.Context) {
		var req exportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		res, err := svc.PDF(c.Request.Context(), req.NoteID, req.Title)
		if err != nil {
			respondError(c, err)
			return
		}
		if res.URL != "" {
			c.Header(ExportURLHeader, res.URL)
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
		c.Data(http.StatusOK, "application/pdf", res.Data)
	})

	stub := func(format string) gin.HandlerFunc {
		return func(c *gin.Context) {
			var req exportRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				badRequest(c, err)
				return
			}
			msg, err := svc.Stub(c.Request.Context(), req.NoteID, format)
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"ok": true, "message": msg})
		}
	}
	r.POST("/export/gdoc", stub(export.FormatGDoc))
	r.POST("/export/notion", stub(export.FormatNotion))

	// GET /exports?note_id=&limit=
	r.GET("/exports", func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				badRequest(c, fmt.Errorf("limit must be a non-negative integer"))
				return
			}
			limit = n
		}
		hist, err := svc.History(c.Request.Context(), c.Query("note_id"), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, hist)
	})

	// GET /exports/:id/file streams the archived copy of an export
	r.GET("/exports/:id/file", func(c *gin.Context) {
		rec, rc, err := svc.Download(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		defer rc.Close()
		c.DataFromReader(http.StatusOK, rec.Size, contentTypes[rec.Format], rc, map[string]string{
			"Content-Disposition": fmt.Sprintf("attachment; filename=%q", rec.ID+"."+rec.Format),
		})
	})
}

var contentTypes = map[string]string{
	export.FormatPDF: "application/pdf",
}
