package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ummahhub/ummah-backend/internal/model"
	"github.com/ummahhub/ummah-backend/internal/pricing"
	"github.com/ummahhub/ummah-backend/internal/service"
)

type PostHandler struct {
	svc       service.PostService
	ratingSvc service.RatingService
}

func NewPostHandler(svc service.PostService, ratingSvc service.RatingService) *PostHandler {
	return &PostHandler{svc: svc, ratingSvc: ratingSvc}
}

type PostRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Currency    string   `json:"currency"`
	PhotoURLs   []string `json:"photoUrls"`
}

type PostResponse struct {
	model.Post
	PriceLabel string   `json:"priceLabel"`
	PhotoURLs  []string `json:"photoUrls,omitempty"`
}

type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
	Total int64          `json:"total"`
}

type RatingRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

func toPostResponse(p model.Post, photos []model.PostPhoto) PostResponse {
	urls := make([]string, 0, len(photos))
	for _, ph := range photos {
		urls = append(urls, ph.URL)
	}
	return PostResponse{
		Post:       p,
		PriceLabel: pricing.Format(p.Price, p.Currency),
		PhotoURLs:  urls,
	}
}

func (h *PostHandler) Create(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	post, err := h.svc.Create(c.Request().Context(), uid, req.Title, req.Description, req.Price, req.Currency, req.PhotoURLs)
	if err != nil {
		return writeServiceError(c, err, "post not found")
	}
	return c.JSON(http.StatusCreated, toPostResponse(*post, nil))
}

func (h *PostHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid post id"))
	}
	post, photos, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err, "post not found")
	}
	return c.JSON(http.StatusOK, toPostResponse(*post, photos))
}

func (h *PostHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	var (
		posts []model.Post
		total int64
		err   error
	)
	if q := c.QueryParam("q"); q != "" {
		posts, total, err = h.svc.Search(c.Request().Context(), q, limit, offset)
	} else {
		posts, total, err = h.svc.List(c.Request().Context(), limit, offset)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch posts"))
	}
	resp := PostListResponse{Posts: make([]PostResponse, 0, len(posts)), Total: total}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, toPostResponse(p, nil))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) ListMine(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	posts, err := h.svc.ListMine(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch posts"))
	}
	resp := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, toPostResponse(p, nil))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) Update(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid post id"))
	}
	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	post, err := h.svc.Update(c.Request().Context(), id, uid, req.Title, req.Description, req.Price, req.Currency)
	if err != nil {
		return writeServiceError(c, err, "post not found")
	}
	return c.JSON(http.StatusOK, toPostResponse(*post, nil))
}

func (h *PostHandler) MarkSold(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid post id"))
	}
	post, err := h.svc.MarkSold(c.Request().Context(), id, uid)
	if err != nil {
		return writeServiceError(c, err, "post not found")
	}
	return c.JSON(http.StatusOK, toPostResponse(*post, nil))
}

func (h *PostHandler) Rate(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid post id"))
	}
	var req RatingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	rating, err := h.ratingSvc.Rate(c.Request().Context(), id, uid, req.Rating, req.Review)
	if err != nil {
		return writeServiceError(c, err, "post not found")
	}
	return c.JSON(http.StatusOK, rating)
}
