package handlers

import (
	"net/http"

	"collabex_backend/internal/services"
	"collabex_backend/internal/services/dto"
	"collabex_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ============================================
// UPLOAD HANDLER
// ============================================

// maxMultipartMemory caps the in-memory part of a parsed form; the rest
// spills to temp files.
const maxMultipartMemory = 10 << 20

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

// ============================================
// ROUTES
// ============================================

func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	media := r.Group("/profiles/me")
	media.Use(authMW)
	{
		media.POST("/avatar", h.UploadAvatar)
		media.POST("/banner", h.UploadBanner)
		media.DELETE("/banner", h.RemoveBanner)
	}

	r.POST("/portfolio", authMW, h.AddPortfolioItem)
}

// ============================================
// HANDLERS
// ============================================

// UploadAvatar godoc
// @Summary Replace the avatar (400x400)
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image"
// @Success 200 {object} dto.MediaResponse
// @Failure 413 {object} apperrors.ErrorResponse
// @Failure 415 {object} apperrors.ErrorResponse
// @Router /profiles/me/avatar [post]
func (h *UploadHandler) UploadAvatar(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	file, cleanup, ok := h.formFile(c)
	if !ok {
		return
	}
	defer cleanup()

	response, err := h.uploadService.UploadAvatar(c.Request.Context(), h.GetDB(c), session, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UploadBanner godoc
// @Summary Replace the banner (1500x500)
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image"
// @Success 200 {object} dto.MediaResponse
// @Router /profiles/me/banner [post]
func (h *UploadHandler) UploadBanner(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	file, cleanup, ok := h.formFile(c)
	if !ok {
		return
	}
	defer cleanup()

	response, err := h.uploadService.UploadBanner(c.Request.Context(), h.GetDB(c), session, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *UploadHandler) RemoveBanner(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	if err := h.uploadService.RemoveBanner(c.Request.Context(), h.GetDB(c), session); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddPortfolioItem godoc
// @Summary Upload a portfolio image
// @Tags portfolio
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image"
// @Param caption formData string false "Caption"
// @Success 201 {object} dto.PortfolioItemResponse
// @Router /portfolio [post]
func (h *UploadHandler) AddPortfolioItem(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	file, cleanup, ok := h.formFile(c)
	if !ok {
		return
	}
	defer cleanup()

	item, err := h.uploadService.AddPortfolioItem(c.Request.Context(), h.GetDB(c), session, file, c.PostForm("caption"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// formFile opens the "file" part of a multipart request.
func (h *UploadHandler) formFile(c *gin.Context) (*dto.UploadFile, func(), bool) {
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("failed to parse form"))
		return nil, nil, false
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("no file provided"))
		return nil, nil, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return nil, nil, false
	}

	return &dto.UploadFile{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Reader:   f,
	}, func() { _ = f.Close() }, true
}
