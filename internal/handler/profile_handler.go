package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ummahhub/ummah-backend/internal/service"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type ProfileRequest struct {
	DisplayName string  `json:"displayName"`
	Bio         string  `json:"bio"`
	AvatarURL   *string `json:"avatarUrl"`
}

type PushTokenRequest struct {
	DeviceID string `json:"deviceId"`
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

func (h *ProfileHandler) Get(c echo.Context) error {
	p, err := h.svc.Get(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return writeServiceError(c, err, "profile not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) GetMine(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	p, err := h.svc.Get(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err, "profile not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) Upsert(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	p, err := h.svc.Upsert(c.Request().Context(), uid, req.DisplayName, req.Bio, req.AvatarURL)
	if err != nil {
		return writeServiceError(c, err, "profile not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) RegisterPushToken(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req PushTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := h.svc.RegisterPushToken(c.Request().Context(), uid, req.DeviceID, req.Token, req.Platform); err != nil {
		return writeServiceError(c, err, "profile not found")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
