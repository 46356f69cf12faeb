package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/deardiary/deardiary/backend/go-services/internal/notes"
)

func RegisterNoteRoutes(r gin.IRouter, svc *notes.Service) {
	r.POST("/notes", func(c *gin.Context) {
		var in notes.NoteInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}
		id, err := svc.CreateNote(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	})

	// GET /notes?folder_id=&q=&limit=
	r.GET("/notes", func(c *gin.Context) {
		q := notes.NoteQuery{FolderID: c.Query("folder_id"), Q: c.Query("q")}
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				badRequest(c, fmt.Errorf("limit must be a non-negative integer"))
				return
			}
			q.Limit = n
		}
		list, err := svc.ListNotes(c.Request.Context(), q)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.GET("/notes/:id", func(c *gin.Context) {
		n, err := svc.GetNote(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if n == nil {
			notFound(c, "Note")
			return
		}
		c.JSON(http.StatusOK, n)
	})

	r.PATCH("/notes/:id", func(c *gin.Context) {
		var u notes.NoteUpdate
		if err := c.ShouldBindJSON(&u); err != nil {
			badRequest(c, err)
			return
		}
		ok, err := svc.UpdateNote(c.Request.Context(), c.Param("id"), u)
		if err != nil {
			respondError(c, err)
			return
		}
		if !ok {
			notFound(c, "Note")
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.DELETE("/notes/:id", func(c *gin.Context) {
		ok, err := svc.DeleteNote(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if !ok {
			notFound(c, "Note")
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}
