package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ProofHandler struct {
	proofService service.ProofService
}

func NewProofHandler(proofService service.ProofService) *ProofHandler {
	return &ProofHandler{proofService: proofService}
}

// RegisterRoutes mounts the proof endpoints under the reviews group.
func (h *ProofHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/:id/proof", h.Get)
	router.POST("/:id/proof", h.Generate)
	router.GET("/:id/proof/verify", h.Verify)
}

func (h *ProofHandler) Get(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	proof, err := h.proofService.Get(c.Request.Context(), p, reviewID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToProofResponse(proof))
}

// Generate issues the proof for a review if it does not exist yet.
// Regeneration returns the existing proof unchanged.
func (h *ProofHandler) Generate(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	proof, err := h.proofService.Generate(c.Request.Context(), p, reviewID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToProofResponse(proof))
}

// Verify recomputes the proof hash from the current review record and
// reports whether it still matches the stored proof.
func (h *ProofHandler) Verify(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	result, err := h.proofService.Verify(c.Request.Context(), reviewID)
	if err != nil && result == nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProofVerificationResponse{
		ReviewID:     result.ReviewID,
		Valid:        result.Valid,
		StoredHash:   result.StoredHash,
		ComputedHash: result.ComputedHash,
	})
}
