package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// WorkflowHandler serves the assignment and review lifecycle endpoints.
type WorkflowHandler struct {
	workflowService service.WorkflowService
}

func NewWorkflowHandler(workflowService service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflowService: workflowService}
}

// RegisterPaperRoutes mounts the assignment and submission endpoints
// under the papers group.
func (h *WorkflowHandler) RegisterPaperRoutes(router *gin.RouterGroup) {
	router.POST("/:id/assignments", h.AssignReviewer)
	router.POST("/:id/reviews", h.SubmitReview)
}

// RegisterReviewRoutes mounts the review read and feedback endpoints
// under the reviews group.
func (h *WorkflowHandler) RegisterReviewRoutes(router *gin.RouterGroup) {
	router.GET("", h.ListReviews)
	router.GET("/:id", h.GetReview)
	router.POST("/:id/feedback", h.AddFeedback)
}

// RegisterAssignmentRoutes mounts the assignment listing endpoint.
func (h *WorkflowHandler) RegisterAssignmentRoutes(router *gin.RouterGroup) {
	router.GET("", h.ListAssignments)
}

func (h *WorkflowHandler) AssignReviewer(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	paperID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paper id"})
		return
	}

	var req dto.AssignReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment, err := h.workflowService.AssignReviewer(c.Request.Context(), p, paperID, req.ReviewerID, req.Deadline)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToAssignmentResponse(assignment))
}

func (h *WorkflowHandler) SubmitReview(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	paperID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paper id"})
		return
	}

	var req dto.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.workflowService.SubmitReview(c.Request.Context(), p, paperID, req.ReviewText, req.Rating)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToReviewResponse(review))
}

// AddFeedback records the paper author's quality rating of a review and
// adjusts the reviewer's score accordingly.
func (h *WorkflowHandler) AddFeedback(c *gin.Context) {
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

	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.workflowService.AddFeedback(c.Request.Context(), p, reviewID, &req.Rating, req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(review))
}

func (h *WorkflowHandler) ListAssignments(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	filters := repository.AssignmentFilters{}
	if paperID := c.Query("paper_id"); paperID != "" {
		id, err := strconv.ParseInt(paperID, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paper_id"})
			return
		}
		filters.PaperID = id
	}

	assignments, err := h.workflowService.ListAssignments(c.Request.Context(), p, filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		resp = append(resp, dto.FromModelToAssignmentResponse(&assignments[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WorkflowHandler) ListReviews(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	filters := repository.ReviewFilters{}
	if paperID := c.Query("paper_id"); paperID != "" {
		id, err := strconv.ParseInt(paperID, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paper_id"})
			return
		}
		filters.PaperID = id
	}

	reviews, err := h.workflowService.ListReviews(c.Request.Context(), p, filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, dto.FromModelToReviewResponse(&reviews[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WorkflowHandler) GetReview(c *gin.Context) {
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

	review, err := h.workflowService.GetReview(c.Request.Context(), p, reviewID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(review))
}
