package api

import (
	"net/http"

	reqdto "github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/dto/request"
	resdto "github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/dto/response"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/httperr"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/middleware"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type HoldHandler struct {
	holds commands.HoldCommands
}

func NewHoldHandler(holds commands.HoldCommands) *HoldHandler {
	return &HoldHandler{holds: holds}
}

// @Summary Hold a slot
// @Description Reserve a slot for the hold window and open the advance payment
// @Tags holds
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Player ID"
// @Param request body reqdto.CreateHoldRequest true "Hold request"
// @Success 201 {object} resdto.HoldResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /holds [post]
func (h *HoldHandler) Create(c *gin.Context) {
	playerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingCaller, "Caller identity required", nil)
		return
	}

	var req reqdto.CreateHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.holds.CreateHold(c.Request.Context(), req.ToCommand(playerID))
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to create hold")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromHoldResult(result))
}
