package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ummahhub/ummah-backend/internal/service"
)

type ReportHandler struct {
	svc service.ReportService
}

func NewReportHandler(svc service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

type ReportRequest struct {
	TargetType string `json:"targetType"`
	TargetID   string `json:"targetId"`
	Reason     string `json:"reason"`
}

func (h *ReportHandler) Submit(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req ReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	report, err := h.svc.Submit(c.Request().Context(), uid, req.TargetType, req.TargetID, req.Reason)
	if err != nil {
		return writeServiceError(c, err, "target not found")
	}
	return c.JSON(http.StatusCreated, report)
}
