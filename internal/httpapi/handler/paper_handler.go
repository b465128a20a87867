package handler

import (
	"io"
	"net/http"
	"strconv"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// maxPaperUploadBytes caps a single paper binary at 32MB.
const maxPaperUploadBytes = 32 << 20

type PaperHandler struct {
	paperService service.PaperService
}

func NewPaperHandler(paperService service.PaperService) *PaperHandler {
	return &PaperHandler{paperService: paperService}
}

// RegisterRoutes registers paper routes; the status override is
// restricted to admins at the router level.
func (h *PaperHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("", h.Upload)
	router.GET("", h.List)
	router.GET("/:id", h.Get)
	router.PUT("/:id", h.Update)
	router.PATCH("/:id/status", middleware.RequireAdmin(), h.UpdateStatus)
	router.GET("/:id/download", h.Download)
	router.GET("/:id/hash", h.FileHash)
}

func (h *PaperHandler) Upload(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req dto.UploadPaperRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing paper file"})
		return
	}
	if fileHeader.Size > maxPaperUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable paper file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPaperUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable paper file"})
		return
	}

	paper, err := h.paperService.Create(c.Request.Context(), p, service.PaperInput{
		Title:    req.Title,
		Abstract: req.Abstract,
		Keywords: req.Keywords,
		Category: req.Category,
		Domain:   req.Domain,
	}, data, fileHeader.Filename)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToPaperResponse(paper))
}

func (h *PaperHandler) Get(c *gin.Context) {
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

	paper, err := h.paperService.Get(c.Request.Context(), p, paperID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToPaperResponse(paper))
}

func (h *PaperHandler) List(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	papers, err := h.paperService.List(c.Request.Context(), p, repository.PaperFilters{
		Status: c.Query("status"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]dto.PaperResponse, 0, len(papers))
	for i := range papers {
		resp = append(resp, dto.FromModelToPaperResponse(&papers[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PaperHandler) Update(c *gin.Context) {
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

	var req dto.UpdatePaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	paper, err := h.paperService.Update(c.Request.Context(), p, paperID, service.PaperInput{
		Title:    req.Title,
		Abstract: req.Abstract,
		Keywords: req.Keywords,
		Category: req.Category,
		Domain:   req.Domain,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToPaperResponse(paper))
}

// UpdateStatus is the admin override for the reviewed/completed
// transitions the workflow never performs on its own.
func (h *PaperHandler) UpdateStatus(c *gin.Context) {
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

	var req dto.UpdatePaperStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	paper, err := h.paperService.UpdateStatus(c.Request.Context(), p, paperID, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToPaperResponse(paper))
}

func (h *PaperHandler) Download(c *gin.Context) {
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

	paper, data, err := h.paperService.Download(c.Request.Context(), p, paperID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(paper.Title))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

func (h *PaperHandler) FileHash(c *gin.Context) {
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

	hash, err := h.paperService.FileHash(c.Request.Context(), p, paperID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaperHashResponse{PaperID: paperID, SHA256: hash})
}
