package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/deardiary/deardiary/backend/go-services/internal/assistant"
	"github.com/deardiary/deardiary/backend/go-services/internal/notes"
)

type rewriteRequest struct {
	Text string `json:"text"`
	Tone string `json:"tone"`
}

type ideasRequest struct {
	Topic string `json:"topic"`
	Style string `json:"style"`
	Count int    `json:"count"`
}

type searchRequest struct {
	Query string `json:"query" binding:"required"`
}

type transcribeRequest struct {
	AudioURL string `json:"audio_url"`
}

// maxAudioUpload bounds multipart uploads to /transcribe.
const maxAudioUpload = 25 << 20

func RegisterAssistantRoutes(r gin.IRouter, svc *notes.Service) {
	r.POST("/ai/rewrite", func(c *gin.Context) {
		var req rewriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"text": assistant.Rewrite(req.Text, req.Tone)})
	})

	r.GET("/ai/tones", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tones": assistant.Tones()})
	})

	r.POST("/ai/ideas", func(c *gin.Context) {
		var req ideasRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ideas": assistant.Ideas(req.Topic, req.Style, req.Count)})
	})

	r.POST("/ai/search", func(c *gin.Context) {
		var req searchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		hits, err := svc.SearchNotes(c.Request.Context(), req.Query)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": hits})
	})

	// POST /transcribe accepts either a multipart "file" or JSON {"audio_url"}.
	r.POST("/transcribe", func(c *gin.Context) {
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAudioUpload)
			fh, err := c.FormFile("file")
			if err != nil {
				badRequest(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"text": assistant.TranscribeUpload(fh.Size), "language": "en"})
			return
		}
		var req transcribeRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				badRequest(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"text": assistant.TranscribeURL(req.AudioURL), "language": "en"})
	})
}
