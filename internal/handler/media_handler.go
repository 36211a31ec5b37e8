package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ummahhub/ummah-backend/internal/storage"
)

const maxUploadBytes = 10 << 20

type MediaHandler struct {
	uploader *storage.Uploader
}

func NewMediaHandler(uploader *storage.Uploader) *MediaHandler {
	return &MediaHandler{uploader: uploader}
}

// Upload accepts a multipart file and stores it under a path prefixed
// with the caller's uid, which is how owner-write is enforced.
func (h *MediaHandler) Upload(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	if h.uploader == nil {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("unavailable", "media storage not configured"))
	}

	kind := c.FormValue("kind")
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "file is required"))
	}
	if fh.Size > maxUploadBytes {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "file too large"))
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "unreadable file"))
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "unreadable file"))
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	url, err := h.uploader.Upload(c.Request().Context(), kind, uid, fh.Filename, contentType, data)
	if err != nil {
		if errors.Is(err, storage.ErrBadKind) {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "unknown media kind"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "upload failed"))
	}
	return c.JSON(http.StatusCreated, map[string]string{"url": url})
}
