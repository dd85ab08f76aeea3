package handlers

import (
	"errors"
	"net/http"

	"firstresponse/middleware"
	"firstresponse/services/scanner"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// multipartSlack covers form boundaries and headers around the image.
const multipartSlack = 64 << 10

type ScannerHandler struct {
	Service        scanner.ScannerService
	MaxUploadBytes int64
}

func NewScannerHandler(svc scanner.ScannerService, maxUploadBytes int64) *ScannerHandler {
	return &ScannerHandler{Service: svc, MaxUploadBytes: maxUploadBytes}
}

// ScanHandler takes the flyer from the multipart field "file".
func (h *ScannerHandler) ScanHandler(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+multipartSlack)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			respondError(c, scanner.ErrTooLarge)
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			respondError(c, scanner.ErrNoImage)
		default:
			getLogger(c).Warn("Unreadable upload", zap.Error(err))
			respondError(c, scanner.ErrNoImage)
		}
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	result, err := h.Service.Scan(c.Request.Context(), middleware.AuthTokenFrom(c), &scanner.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"extracted_text": result.ExtractedText,
		"verdict":        result.Verdict,
		"reason":         result.Reason,
		"suspicious":     result.Suspicious(),
		"demo":           result.Demo,
	})
}
