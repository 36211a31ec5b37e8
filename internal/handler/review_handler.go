package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ummahhub/ummah-backend/internal/model"
	"github.com/ummahhub/ummah-backend/internal/service"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

type ReviewRequest struct {
	Rating   int    `json:"rating"`
	Body     string `json:"body"`
	HalalTag string `json:"halalTag"`
}

type ReviewListResponse struct {
	Reviews []model.RestaurantReview `json:"reviews"`
	Average float64                  `json:"average"`
	Count   int64                    `json:"count"`
}

func (h *ReviewHandler) ListByPlace(c echo.Context) error {
	placeID := c.Param("placeId")
	reviews, avg, count, err := h.svc.ListByPlace(c.Request().Context(), placeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch reviews"))
	}
	return c.JSON(http.StatusOK, ReviewListResponse{Reviews: reviews, Average: avg, Count: count})
}

func (h *ReviewHandler) Submit(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	review, err := h.svc.Submit(c.Request().Context(), c.Param("placeId"), uid, req.Rating, req.Body, req.HalalTag)
	if err != nil {
		return writeServiceError(c, err, "place not found")
	}
	return c.JSON(http.StatusOK, review)
}
