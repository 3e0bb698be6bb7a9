package api

import (
	"net/http"

	reqdto "github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/dto/request"
	resdto "github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/dto/response"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/httperr"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/middleware"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ManualBlockHandler struct {
	blocks commands.ManualBlockCommands
}

func NewManualBlockHandler(blocks commands.ManualBlockCommands) *ManualBlockHandler {
	return &ManualBlockHandler{blocks: blocks}
}

// @Summary Block a range
// @Tags manual-blocks
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Owner ID"
// @Param request body reqdto.CreateManualBlockRequest true "Block request"
// @Success 201 {object} resdto.ManualBlockResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /manual-blocks [post]
func (h *ManualBlockHandler) Create(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingCaller, "Caller identity required", nil)
		return
	}
	var req reqdto.CreateManualBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	mb, err := h.blocks.CreateManualBlock(c.Request.Context(), req.ToCommand(ownerID))
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to create manual block")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromManualBlock(mb))
}

// @Summary Remove a block
// @Tags manual-blocks
// @Param X-User-ID header string true "Owner ID"
// @Param id path string true "Manual block ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /manual-blocks/{id} [delete]
func (h *ManualBlockHandler) Remove(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingCaller, "Caller identity required", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid manual block ID format", nil)
		return
	}
	if err := h.blocks.RemoveManualBlock(c.Request.Context(), id, ownerID); err != nil {
		abortWithUseCaseError(c, err, "Failed to remove manual block")
		return
	}
	c.Status(http.StatusNoContent)
}
