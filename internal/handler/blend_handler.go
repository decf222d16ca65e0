package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"blendhouse/internal/auth"
	"blendhouse/internal/service"
)

// BlendHandler handles catalog endpoints.
type BlendHandler struct {
	blendService service.BlendService
}

// NewBlendHandler creates a new blend handler.
func NewBlendHandler(blendService service.BlendService) *BlendHandler {
	return &BlendHandler{blendService: blendService}
}

// BlendRequest represents the create/update payload for a catalog entry.
// Price travels as a decimal string to avoid float rounding on the wire.
type BlendRequest struct {
	Name     string `json:"name" validate:"required"`
	Type     string `json:"type"`
	Price    string `json:"price" validate:"required"`
	Stock    int    `json:"stock" validate:"gte=0"`
	ImageURL string `json:"image_url"`
}

func (r *BlendRequest) toInput() (service.BlendInput, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return service.BlendInput{}, err
	}
	return service.BlendInput{
		Name:     r.Name,
		Type:     r.Type,
		Price:    price,
		Stock:    r.Stock,
		ImageURL: r.ImageURL,
	}, nil
}

// ListBlends godoc
// @Summary List the catalog
// @Tags blends
// @Produce json
// @Success 200 {array} model.Blend
// @Failure 500 {object} errors.ErrorResponse
// @Router /blends [get]
func (h *BlendHandler) ListBlends(c echo.Context) error {
	blends, err := h.blendService.ListBlends(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, blends)
}

// GetBlend godoc
// @Summary Get a blend by id
// @Tags blends
// @Produce json
// @Param id path int true "Blend ID"
// @Success 200 {object} model.Blend
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /blends/{id} [get]
func (h *BlendHandler) GetBlend(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	blend, err := h.blendService.GetBlend(c.Request().Context(), uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, blend)
}

// CreateBlend godoc
// @Summary Create a blend (admin)
// @Tags blends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BlendRequest true "Blend data"
// @Success 201 {object} model.Blend
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /blends [post]
func (h *BlendHandler) CreateBlend(c echo.Context) error {
	if err := auth.Authorize(callerIdentity(c), auth.TierAdminOnly, 0); err != nil {
		return httpError(err)
	}

	var req BlendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid price")
	}

	blend, err := h.blendService.CreateBlend(c.Request().Context(), input)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, blend)
}

// UpdateBlend godoc
// @Summary Update a blend (admin)
// @Tags blends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Blend ID"
// @Param request body BlendRequest true "Blend data"
// @Success 200 {object} model.Blend
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /blends/{id} [put]
func (h *BlendHandler) UpdateBlend(c echo.Context) error {
	if err := auth.Authorize(callerIdentity(c), auth.TierAdminOnly, 0); err != nil {
		return httpError(err)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req BlendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid price")
	}

	blend, err := h.blendService.UpdateBlend(c.Request().Context(), uint(id), input)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, blend)
}

// DeleteBlend godoc
// @Summary Delete a blend (admin)
// @Tags blends
// @Produce json
// @Security BearerAuth
// @Param id path int true "Blend ID"
// @Success 204 {object} nil
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /blends/{id} [delete]
func (h *BlendHandler) DeleteBlend(c echo.Context) error {
	if err := auth.Authorize(callerIdentity(c), auth.TierAdminOnly, 0); err != nil {
		return httpError(err)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.blendService.DeleteBlend(c.Request().Context(), uint(id)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
