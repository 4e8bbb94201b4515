package v1

import (
	"net/http"

	"corp-social-backend/internal/delivery/http/response"
	"corp-social-backend/internal/domain"
	"corp-social-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC     domain.UserUsecase
	postUC     domain.PostUsecase
	pagination Pagination
}

func NewUserHandler(protected *gin.RouterGroup, userUC domain.UserUsecase, postUC domain.PostUsecase, pagination Pagination) {
	handler := &UserHandler{userUC: userUC, postUC: postUC, pagination: pagination}

	users := protected.Group("/users")
	{
		users.GET("", handler.List)
		users.GET("/me", handler.Me)
		users.GET("/short_info/:id", handler.ShortInfo)
		users.GET("/:id", handler.Get)
		users.PATCH("/:id", handler.Update)
		users.PUT("/:id", handler.Replace)
		users.GET("/:id/posts", handler.Posts)
	}
}

// UpdateUserRequest is a partial profile edit. Absent keys are unchanged;
// "photo": null removes the photo.
type UpdateUserRequest struct {
	FirstName            *string        `json:"first_name"`
	LastName             *string        `json:"last_name"`
	MiddleName           *string        `json:"middle_name"`
	JobTitle             *string        `json:"job_title"`
	PersonalEmail        *string        `json:"personal_email"`
	CorporatePhoneNumber *string        `json:"corporate_phone_number"`
	PersonalPhoneNumber  *string        `json:"personal_phone_number"`
	Bio                  *string        `json:"bio"`
	Department           *string        `json:"department"`
	BirthdayDay          *int           `json:"birthday_day"`
	BirthdayMonth        *int           `json:"birthday_month"`
	Photo                NullableString `json:"photo" swaggertype:"string"`
}

func (r UpdateUserRequest) toDomain() domain.UserUpdate {
	in := domain.UserUpdate{
		FirstName:            r.FirstName,
		LastName:             r.LastName,
		MiddleName:           r.MiddleName,
		JobTitle:             r.JobTitle,
		PersonalEmail:        r.PersonalEmail,
		CorporatePhoneNumber: r.CorporatePhoneNumber,
		PersonalPhoneNumber:  r.PersonalPhoneNumber,
		Bio:                  r.Bio,
		Department:           r.Department,
		BirthdayDay:          r.BirthdayDay,
		BirthdayMonth:        r.BirthdayMonth,
	}
	if r.Photo.Set {
		if r.Photo.Value == nil || *r.Photo.Value == "" {
			in.ClearPhoto = true
		} else {
			in.Photo = r.Photo.Value
		}
	}
	return in
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  response.Response{data=response.Page}
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	page := h.pagination.page(c)
	users, total, err := h.userUC.List(c.Request.Context(), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Paginated(c, "Users", newUserResponses(users), total, page.Limit, page.Offset)
}

// Me godoc
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=UserResponse}
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userUC.Get(c.Request.Context(), actorFrom(c).ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User details", newUserResponse(user))
}

// Get godoc
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "User ID"
// @Success      200  {object}  response.Response{data=UserResponse}
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User details", newUserResponse(user))
}

// Update godoc
// @Summary      Update own profile
// @Description  Partial update. birthday_day and birthday_month default to 1 when only one is given.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "User ID"
// @Param        user  body  UpdateUserRequest  true  "Fields to change"
// @Success      200  {object}  response.Response{data=UserResponse}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.userUC.Update(c.Request.Context(), actorFrom(c), c.Param("id"), req.toDomain())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", newUserResponse(user))
}

// Replace rejects full replacement; profiles are edited with PATCH.
func (h *UserHandler) Replace(c *gin.Context) {
	_ = c.Error(apperror.MethodNotAllowed("method PUT is not allowed"))
}

// ShortInfo godoc
// @Summary      Short user card
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.UserShortInfo}
// @Router       /users/short_info/{id} [get]
func (h *UserHandler) ShortInfo(c *gin.Context) {
	info, err := h.userUC.ShortInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User short info", info)
}

// Posts godoc
// @Summary      Posts by user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id      path   string  true   "User ID"
// @Param        limit   query  int     false  "Page size"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  response.Response{data=response.Page}
// @Router       /users/{id}/posts [get]
func (h *UserHandler) Posts(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.userUC.Get(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	page := h.pagination.page(c)
	posts, total, err := h.postUC.ListByAuthor(c.Request.Context(), id, page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Paginated(c, "User posts", posts, total, page.Limit, page.Offset)
}
