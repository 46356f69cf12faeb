package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deardiary/deardiary/backend/go-services/internal/notes"
)

func RegisterFolderRoutes(r gin.IRouter, svc *notes.Service) {
	r.POST("/folders", func(c *gin.Context) {
		var in notes.FolderInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}
		id, err := svc.CreateFolder(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	})

	r.GET("/folders", func(c *gin.Context) {
		list, err := svc.ListFolders(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.GET("/folders/:id", func(c *gin.Context) {
		f, err := svc.GetFolder(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if f == nil {
			notFound(c, "Folder")
			return
		}
		c.JSON(http.StatusOK, f)
	})

	r.PATCH("/folders/:id", func(c *gin.Context) {
		var u notes.FolderUpdate
		if err := c.ShouldBindJSON(&u); err != nil {
			badRequest(c, err)
			return
		}
		ok, err := svc.UpdateFolder(c.Request.Context(), c.Param("id"), u)
		if err != nil {
			respondError(c, err)
			return
		}
		if !ok {
			notFound(c, "Folder")
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.DELETE("/folders/:id", func(c *gin.Context) {
		ok, err := svc.DeleteFolder(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if !ok {
			notFound(c, "Folder")
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}
