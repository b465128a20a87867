package handler

import (
	"net/http"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers user profile routes
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/me", h.GetMe)
	router.GET("/reviewers", h.ListReviewers)
	router.GET("/:id", h.GetProfile)
	router.PUT("/:id", h.UpdateProfile)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.Param("id")

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// GetMe returns the authenticated caller's own profile.
func (h *UserHandler) GetMe(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), p.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), p, c.Param("id"), service.ProfileUpdate{
		Bio:       req.Bio,
		Expertise: req.Expertise,
		Interests: req.Interests,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// ListReviewers supports reviewer discovery for assignment, optionally
// filtered on expertise.
func (h *UserHandler) ListReviewers(c *gin.Context) {
	reviewers, err := h.userService.ListReviewers(c.Request.Context(), c.Query("expertise"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(reviewers))
	for i := range reviewers {
		resp = append(resp, dto.FromModelToUserResponse(&reviewers[i]))
	}
	c.JSON(http.StatusOK, resp)
}
