package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsreddy3/persona-backend/logic"
	"github.com/jsreddy3/persona-backend/middleware"
)

// UserController handles HTTP requests
type UserController struct {
	authLogic *logic.AuthLogic
	userLogic *logic.UserLogic
}

func NewUserController(authLogic *logic.AuthLogic, userLogic *logic.UserLogic) *UserController {
	return &UserController{authLogic: authLogic, userLogic: userLogic}
}

// Verify handles POST /users/verify
func (c *UserController) Verify(ctx *gin.Context) {
	type Request struct {
		logic.WorldIDProof
		Language string `json:"language"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, expiresAt, err := c.authLogic.VerifyAndLogin(ctx.Request.Context(), req.WorldIDProof, req.Language)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":          user,
		"session_token": token,
		"expires_at":    expiresAt,
	})
}

// GetMe handles GET /users/me
func (c *UserController) GetMe(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, middleware.CurrentUser(ctx))
}

// GetStats handles GET /users/me/stats
func (c *UserController) GetStats(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	stats, err := c.userLogic.GetUserStats(user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// PurchaseCredits handles POST /users/me/credits/purchase
func (c *UserController) PurchaseCredits(ctx *gin.Context) {
	type Request struct {
		Package string `json:"package" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(ctx)
	updated, err := c.userLogic.PurchaseCredits(user.ID, req.Package)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"credits": updated.Credits})
}
