package handlers

import (
	"net/http"

	"collabex_backend/internal/repositories"
	"collabex_backend/internal/services"
	"collabex_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	*BaseHandler
	postService services.PostService
}

func NewPostHandler(base *BaseHandler, postService services.PostService) *PostHandler {
	return &PostHandler{
		BaseHandler: base,
		postService: postService,
	}
}

func (h *PostHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	// Public
	r.GET("/posts", h.ListOpenPosts)
	r.GET("/posts/:postId", h.GetPost)

	posts := r.Group("/posts")
	posts.Use(authMW)
	{
		posts.POST("", h.CreatePost)
		posts.GET("/my", h.ListMyPosts)
		posts.PUT("/:postId/status", h.UpdatePostStatus)
		posts.POST("/:postId/apply", h.Apply)
		posts.GET("/:postId/applications", h.ListApplications)
	}

	applications := r.Group("/applications")
	applications.Use(authMW)
	{
		applications.GET("/my", h.ListMyApplications)
		applications.PUT("/:applicationId/status", h.UpdateApplicationStatus)
	}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	post, err := h.postService.Create(h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) ListOpenPosts(c *gin.Context) {
	var criteria repositories.PostCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	posts, err := h.postService.ListOpen(h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := h.ValidateParamUUID(c, "postId")
	if !ok {
		return
	}

	post, err := h.postService.Get(h.GetDB(c), postID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) ListMyPosts(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	posts, err := h.postService.ListMine(h.GetDB(c), session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) UpdatePostStatus(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	postID, ok := h.ValidateParamUUID(c, "postId")
	if !ok {
		return
	}

	var req dto.UpdatePostStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	post, err := h.postService.UpdateStatus(h.GetDB(c), session, postID, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Apply godoc
// @Summary Express interest in an open post
// @Description Notifies the post author with a collab_interest notification.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path string true "Post ID"
// @Param request body dto.ApplyRequest false "Message"
// @Success 201 {object} dto.ApplicationResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /posts/{postId}/apply [post]
func (h *PostHandler) Apply(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	postID, ok := h.ValidateParamUUID(c, "postId")
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if c.Request.ContentLength != 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.postService.Apply(h.GetDB(c), session, postID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

func (h *PostHandler) ListApplications(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	postID, ok := h.ValidateParamUUID(c, "postId")
	if !ok {
		return
	}

	apps, err := h.postService.ListApplications(h.GetDB(c), session, postID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, apps)
}

func (h *PostHandler) ListMyApplications(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	apps, err := h.postService.ListMyApplications(h.GetDB(c), session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, apps)
}

func (h *PostHandler) UpdateApplicationStatus(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	applicationID, ok := h.ValidateParamUUID(c, "applicationId")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.postService.UpdateApplicationStatus(h.GetDB(c), session, applicationID, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}
