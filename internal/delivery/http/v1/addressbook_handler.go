package v1

import (
	"net/http"
	"strings"

	"corp-social-backend/internal/delivery/http/response"
	"corp-social-backend/internal/domain"
	"corp-social-backend/pkg/apperror"
	"corp-social-backend/pkg/export"

	"github.com/gin-gonic/gin"
)

type AddressBookHandler struct {
	userUC     domain.UserUsecase
	pagination Pagination
}

func NewAddressBookHandler(protected *gin.RouterGroup, userUC domain.UserUsecase, pagination Pagination) {
	handler := &AddressBookHandler{userUC: userUC, pagination: pagination}

	book := protected.Group("/addressbook")
	{
		book.GET("", handler.List)
		book.GET("/export.vcf", handler.Export)
	}
}

// List godoc
// @Summary      Address book
// @Description  Colleagues ordered by last name. search matches last name or job title.
// @Tags         addressbook
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "Substring of last name or job title"
// @Param        limit   query  int     false  "Page size"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  response.Response{data=response.Page}
// @Router       /addressbook [get]
func (h *AddressBookHandler) List(c *gin.Context) {
	page := h.pagination.page(c)
	users, total, err := h.userUC.AddressBook(c.Request.Context(), strings.TrimSpace(c.Query("search")), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Paginated(c, "Address book", newAddressBookEntries(users), total, page.Limit, page.Offset)
}

// Export godoc
// @Summary      Export address book
// @Description  vCard 4.0 file with every matching colleague
// @Tags         addressbook
// @Produce      text/vcard
// @Security     BearerAuth
// @Param        search  query  string  false  "Substring of last name or job title"
// @Success      200  {string}  string
// @Router       /addressbook/export.vcf [get]
func (h *AddressBookHandler) Export(c *gin.Context) {
	users, err := h.userUC.AddressBookAll(c.Request.Context(), strings.TrimSpace(c.Query("search")))
	if err != nil {
		_ = c.Error(err)
		return
	}

	contacts := make([]export.Contact, 0, len(users))
	for _, u := range users {
		contacts = append(contacts, export.Contact{
			ID:             u.ID,
			FirstName:      u.FirstName,
			MiddleName:     u.MiddleName,
			LastName:       u.LastName,
			Email:          u.Email,
			JobTitle:       u.JobTitle,
			Department:     u.Department,
			CorporatePhone: u.CorporatePhoneNumber,
			Photo:          u.Photo,
			Birthday:       u.BirthdayDate,
		})
	}

	body, err := export.AddressBook(contacts)
	if err != nil {
		_ = c.Error(apperror.Internal(err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="addressbook.vcf"`)
	c.Data(http.StatusOK, "text/vcard; charset=utf-8", body)
}
