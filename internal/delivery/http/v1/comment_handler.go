package v1

import (
	"net/http"

	"corp-social-backend/internal/delivery/http/response"
	"corp-social-backend/internal/domain"
	"corp-social-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUC  domain.CommentUsecase
	pagination Pagination
}

func NewCommentHandler(protected *gin.RouterGroup, commentUC domain.CommentUsecase, pagination Pagination) {
	handler := &CommentHandler{commentUC: commentUC, pagination: pagination}

	comments := protected.Group("/posts/:id/comments")
	{
		comments.GET("", handler.List)
		comments.POST("", handler.Create)
		comments.GET("/:comment_id", handler.Get)
		comments.PATCH("/:comment_id", handler.Update)
		comments.DELETE("/:comment_id", handler.Delete)
		comments.POST("/:comment_id/like", handler.Like)
		comments.DELETE("/:comment_id/like", handler.Unlike)
	}
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func commentIDs(c *gin.Context) (int64, int64, bool) {
	postID, ok := int64Param(c, "id")
	if !ok {
		return 0, 0, false
	}
	id, ok := int64Param(c, "comment_id")
	if !ok {
		return 0, 0, false
	}
	return postID, id, true
}

// List godoc
// @Summary      List comments
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id      path   int  true   "Post ID"
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  response.Response{data=response.Page}
// @Router       /posts/{id}/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	postID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	page := h.pagination.page(c)
	comments, total, err := h.commentUC.List(c.Request.Context(), postID, page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Paginated(c, "Comments", comments, total, page.Limit, page.Offset)
}

// Get godoc
// @Summary      Get comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id          path  int  true  "Post ID"
// @Param        comment_id  path  int  true  "Comment ID"
// @Success      200  {object}  response.Response{data=domain.Comment}
// @Failure      404  {object}  response.Response
// @Router       /posts/{id}/comments/{comment_id} [get]
func (h *CommentHandler) Get(c *gin.Context) {
	postID, id, ok := commentIDs(c)
	if !ok {
		return
	}
	comment, err := h.commentUC.Get(c.Request.Context(), postID, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Comment details", comment)
}

// Create godoc
// @Summary      Add comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int             true  "Post ID"
// @Param        comment  body  CommentRequest  true  "Comment"
// @Success      201  {object}  response.Response{data=domain.Comment}
// @Router       /posts/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	postID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest(err.Error()))
		return
	}

	comment, err := h.commentUC.Create(c.Request.Context(), actorFrom(c), postID, req.Text)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Comment created", comment)
}

// Update godoc
// @Summary      Edit comment
// @Description  Author only
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id          path  int             true  "Post ID"
// @Param        comment_id  path  int             true  "Comment ID"
// @Param        comment     body  CommentRequest  true  "Comment"
// @Success      200  {object}  response.Response{data=domain.Comment}
// @Failure      403  {object}  response.Response
// @Router       /posts/{id}/comments/{comment_id} [patch]
func (h *CommentHandler) Update(c *gin.Context) {
	postID, id, ok := commentIDs(c)
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest(err.Error()))
		return
	}

	comment, err := h.commentUC.Update(c.Request.Context(), actorFrom(c), postID, id, req.Text)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Comment updated", comment)
}

// Delete godoc
// @Summary      Delete comment
// @Description  Author only
// @Tags         comments
// @Security     BearerAuth
// @Param        id          path  int  true  "Post ID"
// @Param        comment_id  path  int  true  "Comment ID"
// @Success      200  {object}  response.Response
// @Router       /posts/{id}/comments/{comment_id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	postID, id, ok := commentIDs(c)
	if !ok {
		return
	}
	if err := h.commentUC.Delete(c.Request.Context(), actorFrom(c), postID, id); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Comment deleted", nil)
}

func (h *CommentHandler) Like(c *gin.Context) {
	postID, id, ok := commentIDs(c)
	if !ok {
		return
	}
	comment, err := h.commentUC.Like(c.Request.Context(), actorFrom(c), postID, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Comment liked", comment)
}

func (h *CommentHandler) Unlike(c *gin.Context) {
	postID, id, ok := commentIDs(c)
	if !ok {
		return
	}
	comment, err := h.commentUC.Unlike(c.Request.Context(), actorFrom(c), postID, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Like removed", comment)
}
