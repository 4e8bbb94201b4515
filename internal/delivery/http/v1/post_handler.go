package v1

import (
	"net/http"

	"corp-social-backend/internal/delivery/http/response"
	"corp-social-backend/internal/domain"
	"corp-social-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUC     domain.PostUsecase
	pagination Pagination
}

func NewPostHandler(protected *gin.RouterGroup, postUC domain.PostUsecase, pagination Pagination) {
	handler := &PostHandler{postUC: postUC, pagination: pagination}

	posts := protected.Group("/posts")
	{
		posts.GET("", handler.List)
		posts.POST("", handler.Create)
		posts.GET("/:id", handler.Get)
		posts.PATCH("/:id", handler.Update)
		posts.DELETE("/:id", handler.Delete)
		posts.POST("/:id/like", handler.Like)
		posts.DELETE("/:id/like", handler.Unlike)
	}
}

type PostImageRequest struct {
	ImageLink string `json:"image_link" binding:"required"`
}

type PostFileRequest struct {
	FileLink  string `json:"file_link" binding:"required"`
	FileTitle string `json:"file_title" binding:"max=255"`
}

// PostRequest creates or edits a post. image_link and file_link carry
// base64 payloads; supplying images or files on edit replaces the old set.
type PostRequest struct {
	Text   *string             `json:"text"`
	Images *[]PostImageRequest `json:"images" binding:"omitempty,dive"`
	Files  *[]PostFileRequest  `json:"files" binding:"omitempty,dive"`
	Group  *int64              `json:"group"`
}

func (r PostRequest) toDomain() domain.PostInput {
	in := domain.PostInput{Text: r.Text, GroupID: r.Group}
	if r.Images != nil {
		images := make([]string, 0, len(*r.Images))
		for _, img := range *r.Images {
			images = append(images, img.ImageLink)
		}
		in.Images = &images
	}
	if r.Files != nil {
		files := make([]domain.FileInput, 0, len(*r.Files))
		for _, f := range *r.Files {
			files = append(files, domain.FileInput{Data: f.FileLink, Title: f.FileTitle})
		}
		in.Files = &files
	}
	return in
}

// List godoc
// @Summary      List posts
// @Description  Newest first
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  response.Response{data=response.Page}
// @Router       /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	page := h.pagination.page(c)
	posts, total, err := h.postUC.List(c.Request.Context(), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Paginated(c, "Posts", posts, total, page.Limit, page.Offset)
}

// Get godoc
// @Summary      Get post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Post ID"
// @Success      200  {object}  response.Response{data=domain.Post}
// @Failure      404  {object}  response.Response
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	post, err := h.postUC.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Post details", post)
}

// Create godoc
// @Summary      Create post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post  body  PostRequest  true  "Post"
// @Success      201  {object}  response.Response{data=domain.Post}
// @Failure      400  {object}  response.Response
// @Router       /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest(err.Error()))
		return
	}

	post, err := h.postUC.Create(c.Request.Context(), actorFrom(c), req.toDomain())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Post created", post)
}

// Update godoc
// @Summary      Edit post
// @Description  Author or staff only
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int          true  "Post ID"
// @Param        post  body  PostRequest  true  "Fields to change"
// @Success      200  {object}  response.Response{data=domain.Post}
// @Failure      403  {object}  response.Response
// @Router       /posts/{id} [patch]
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest(err.Error()))
		return
	}

	post, err := h.postUC.Update(c.Request.Context(), actorFrom(c), id, req.toDomain())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Post updated", post)
}

// Delete godoc
// @Summary      Delete post
// @Description  Author or staff only
// @Tags         posts
// @Security     BearerAuth
// @Param        id   path  int  true  "Post ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	if err := h.postUC.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Post deleted", nil)
}

// Like godoc
// @Summary      Like post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Post ID"
// @Success      201  {object}  response.Response{data=domain.Post}
// @Router       /posts/{id}/like [post]
func (h *PostHandler) Like(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	post, err := h.postUC.Like(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Post liked", post)
}

// Unlike godoc
// @Summary      Remove like
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Post ID"
// @Success      200  {object}  response.Response{data=domain.Post}
// @Router       /posts/{id}/like [delete]
func (h *PostHandler) Unlike(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	post, err := h.postUC.Unlike(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Like removed", post)
}
