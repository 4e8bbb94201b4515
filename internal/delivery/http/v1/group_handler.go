package v1

import (
	"net/http"

	"corp-social-backend/internal/delivery/http/response"
	"corp-social-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	groupUC    domain.GroupUsecase
	pagination Pagination
}

func NewGroupHandler(protected *gin.RouterGroup, groupUC domain.GroupUsecase, pagination Pagination) {
	handler := &GroupHandler{groupUC: groupUC, pagination: pagination}

	groups := protected.Group("/groups")
	{
		groups.GET("", handler.List)
		groups.GET("/:id", handler.Get)
		groups.POST("/:id/subscribe", handler.Subscribe)
		groups.DELETE("/:id/subscribe", handler.Unsubscribe)
	}
}

// List godoc
// @Summary      List groups
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  response.Response{data=response.Page}
// @Router       /groups [get]
func (h *GroupHandler) List(c *gin.Context) {
	page := h.pagination.page(c)
	groups, total, err := h.groupUC.List(c.Request.Context(), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Paginated(c, "Groups", groups, total, page.Limit, page.Offset)
}

// Get godoc
// @Summary      Get group
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Group ID"
// @Success      200  {object}  response.Response{data=domain.Group}
// @Failure      404  {object}  response.Response
// @Router       /groups/{id} [get]
func (h *GroupHandler) Get(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	group, err := h.groupUC.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Group details", group)
}

// Subscribe godoc
// @Summary      Follow group
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Group ID"
// @Success      201  {object}  response.Response{data=domain.Group}
// @Router       /groups/{id}/subscribe [post]
func (h *GroupHandler) Subscribe(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	group, err := h.groupUC.Subscribe(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Subscribed", group)
}

// Unsubscribe godoc
// @Summary      Unfollow group
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Group ID"
// @Success      200  {object}  response.Response{data=domain.Group}
// @Router       /groups/{id}/subscribe [delete]
func (h *GroupHandler) Unsubscribe(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	group, err := h.groupUC.Unsubscribe(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Unsubscribed", group)
}
