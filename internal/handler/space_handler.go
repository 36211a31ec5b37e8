package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ummahhub/ummah-backend/internal/service"
)

type SpaceHandler struct {
	svc service.SpaceService
}

func NewSpaceHandler(svc service.SpaceService) *SpaceHandler {
	return &SpaceHandler{svc: svc}
}

type SpaceRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CoverURL    *string `json:"coverUrl"`
}

type SpaceEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"startsAt"`
}

type AnnouncementRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (h *SpaceHandler) Create(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req SpaceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	space, err := h.svc.Create(c.Request().Context(), uid, req.Name, req.Description, req.CoverURL)
	if err != nil {
		return writeServiceError(c, err, "space not found")
	}
	return c.JSON(http.StatusCreated, space)
}

func (h *SpaceHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid space id"))
	}
	space, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err, "space not found")
	}
	return c.JSON(http.StatusOK, space)
}

func (h *SpaceHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	spaces, total, err := h.svc.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch spaces"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"spaces": spaces, "total": total})
}

func (h *SpaceHandler) Update(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid space id"))
	}
	var req SpaceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	space, err := h.svc.Update(c.Request().Context(), id, uid, req.Name, req.Description, req.CoverURL)
	if err != nil {
		return writeServiceError(c, err, "space not found")
	}
	return c.JSON(http.StatusOK, space)
}

func (h *SpaceHandler) Delete(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid space id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id, uid); err != nil {
		return writeServiceError(c, err, "space not found")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SpaceHandler) CreateEvent(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid space id"))
	}
	var req SpaceEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	ev, err := h.svc.CreateEvent(c.Request().Context(), id, uid, req.Title, req.Description, req.Location, req.StartsAt)
	if err != nil {
		return writeServiceError(c, err, "space not found")
	}
	return c.JSON(http.StatusCreated, ev)
}

func (h *SpaceHandler) ListEvents(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid space id"))
	}
	events, err := h.svc.ListUpcomingEvents(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err, "space not found")
	}
	return c.JSON(http.StatusOK, events)
}

func (h *SpaceHandler) CreateAnnouncement(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid space id"))
	}
	var req AnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	an, err := h.svc.CreateAnnouncement(c.Request().Context(), id, uid, req.Title, req.Body)
	if err != nil {
		return writeServiceError(c, err, "space not found")
	}
	return c.JSON(http.StatusCreated, an)
}

func (h *SpaceHandler) ListAnnouncements(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid space id"))
	}
	list, err := h.svc.ListAnnouncements(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err, "space not found")
	}
	return c.JSON(http.StatusOK, list)
}
