package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsreddy3/persona-backend/logic"
	"github.com/jsreddy3/persona-backend/middleware"
)

// CharacterController handles HTTP requests
type CharacterController struct {
	characterLogic *logic.CharacterLogic
}

func NewCharacterController(characterLogic *logic.CharacterLogic) *CharacterController {
	return &CharacterController{characterLogic: characterLogic}
}

// CreateCharacter handles POST /characters
func (c *CharacterController) CreateCharacter(ctx *gin.Context) {
	type Request struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description" binding:"required"`
		Greeting    string   `json:"greeting" binding:"required"`
		Tagline     string   `json:"tagline"`
		PhotoURL    string   `json:"photo_url"`
		Attributes  []string `json:"attributes"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(ctx)
	character, err := c.characterLogic.CreateCharacter(
		user.ID, req.Name, req.Description, req.Greeting, req.Tagline, req.PhotoURL, req.Attributes)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, character)
}

// GetCharacter handles GET /characters/:id
func (c *CharacterController) GetCharacter(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid character ID"})
		return
	}

	character, err := c.characterLogic.GetCharacter(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, character)
}

// GetPopularCharacters handles GET /characters/popular
func (c *CharacterController) GetPopularCharacters(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(ctx.DefaultQuery("per_page", "10"))

	characters, err := c.characterLogic.GetPopularCharacters(page, perPage)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, characters)
}

// GetMyCharacters handles GET /characters/mine
func (c *CharacterController) GetMyCharacters(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	characters, err := c.characterLogic.GetCreatorCharacters(user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, characters)
}

// GetCharacterStats handles GET /characters/:id/stats
func (c *CharacterController) GetCharacterStats(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid character ID"})
		return
	}

	stats, err := c.characterLogic.GetStats(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// UpdateCharacterPhoto handles PUT /characters/:id/photo
func (c *CharacterController) UpdateCharacterPhoto(ctx *gin.Context) {
	type Request struct {
		PhotoURL string `json:"photo_url" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid character ID"})
		return
	}

	user := middleware.CurrentUser(ctx)
	character, err := c.characterLogic.UpdateCharacterPhoto(id, user.ID, req.PhotoURL)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, character)
}
