package handler

import (
	"net/http"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type TokenHandler struct {
	tokenService service.TokenService
}

func NewTokenHandler(tokenService service.TokenService) *TokenHandler {
	return &TokenHandler{tokenService: tokenService}
}

// RegisterRoutes registers the achievement catalog and award routes.
func (h *TokenHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", h.ListCatalog)
	router.POST("/award", middleware.RequireAdmin(), h.Award)
}

// RegisterUserRoutes mounts the per-user token listing under the users group.
func (h *TokenHandler) RegisterUserRoutes(router *gin.RouterGroup) {
	router.GET("/:id/tokens", h.ListUserTokens)
}

// ListCatalog returns the full achievement catalog.
func (h *TokenHandler) ListCatalog(c *gin.Context) {
	tokens, err := h.tokenService.ListAchievements(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]dto.TokenResponse, 0, len(tokens))
	for i := range tokens {
		resp = append(resp, dto.FromModelToTokenResponse(&tokens[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// ListUserTokens returns the tokens a given user has earned.
func (h *TokenHandler) ListUserTokens(c *gin.Context) {
	awards, err := h.tokenService.ListUserTokens(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]dto.UserTokenResponse, 0, len(awards))
	for i := range awards {
		resp = append(resp, dto.FromModelToUserTokenResponse(&awards[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Award is the manual admin award endpoint.
func (h *TokenHandler) Award(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req dto.AwardTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	award, err := h.tokenService.AwardManual(c.Request.Context(), p, req.UserID, req.TokenID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToUserTokenResponse(award))
}
