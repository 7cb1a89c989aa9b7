package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratetask/rating-platform/internal/core/ports"
)

// RatingHandler handles rating submissions and corrections.
type RatingHandler struct {
	ratings ports.RatingService
}

func NewRatingHandler(ratings ports.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

// Upsert handles POST /api/ratings: a full five-score submission for one
// conversation. Submitting again for the same conversation updates the
// stored rating instead of duplicating it.
//
// @Summary      Submit a rating for a conversation
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Param        body  body      ratingRequest  true  "Five criterion scores plus optional comments"
// @Success      200   {object}  domain.Rating
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /ratings [post]
func (h *RatingHandler) Upsert(c echo.Context) error {
	var req ratingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rating, err := h.ratings.UpsertRating(c.Request().Context(), ports.UpsertRatingInput{
		ConversationID: req.ConversationID,
		UserID:         req.UserID,
		Accuracy:       req.Accuracy,
		Clarity:        req.Clarity,
		Relevance:      req.Relevance,
		Consistency:    req.Consistency,
		Completeness:   req.Completeness,
		Comments:       req.Comments,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rating)
}

// Patch handles PATCH /api/ratings/:id: a partial by-id correction.
//
// @Summary      Patch a rating by ID
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Rating ID"
// @Param        body  body      ratingPatchRequest  true  "Subset of scores and/or comments"
// @Success      200   {object}  domain.Rating
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /ratings/{id} [patch]
func (h *RatingHandler) Patch(c echo.Context) error {
	var req ratingPatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rating, err := h.ratings.PatchRating(c.Request().Context(), c.Param("id"), ports.RatingUpdate{
		Accuracy:     req.Accuracy,
		Clarity:      req.Clarity,
		Relevance:    req.Relevance,
		Consistency:  req.Consistency,
		Completeness: req.Completeness,
		Comments:     req.Comments,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rating)
}
