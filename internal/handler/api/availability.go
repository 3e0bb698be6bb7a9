package api

import (
	"net/http"

	reqdto "github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/dto/request"
	resdto "github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/dto/response"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/httperr"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Availability grid
// @Description Slot grid for one conflict group on a facility-local date
// @Tags availability
// @Produce json
// @Param conflict_group_id query string true "Conflict group ID"
// @Param pricing_profile_id query string true "Pricing profile ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability [get]
func (h *AvailabilityHandler) Grid(c *gin.Context) {
	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, reqdto.ErrInvalidAvailabilityQuery.Error(), nil)
		return
	}
	parsed, err := query.Parse()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	grid, err := h.q.Grid(c.Request.Context(), parsed.ConflictGroupID, parsed.PricingProfileID, parsed.Date)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to build availability")
		return
	}
	c.JSON(http.StatusOK, resdto.FromGrid(grid))
}
