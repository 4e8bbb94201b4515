package v1

import (
	"net/http"
	"strings"

	"corp-social-backend/internal/delivery/http/response"
	"corp-social-backend/internal/domain"
	"corp-social-backend/pkg/apperror"
	"corp-social-backend/pkg/export"
	"corp-social-backend/pkg/locale"

	"github.com/gin-gonic/gin"
)

type BirthdayHandler struct {
	birthdayUC domain.BirthdayUsecase
	translator *locale.Translator
}

func NewBirthdayHandler(protected *gin.RouterGroup, birthdayUC domain.BirthdayUsecase, translator *locale.Translator) {
	handler := &BirthdayHandler{birthdayUC: birthdayUC, translator: translator}

	birthdays := protected.Group("/birthday_list")
	{
		birthdays.GET("", handler.List)
		birthdays.GET("/calendar.ics", handler.Calendar)
	}
}

// language prefers ?lang= over Accept-Language.
func (h *BirthdayHandler) language(c *gin.Context) string {
	return h.translator.Resolve(c.Query("lang"), c.GetHeader("Accept-Language"))
}

// List godoc
// @Summary      Upcoming birthdays
// @Description  Colleagues whose birthday is today or within the next few days, nearest first
// @Tags         birthdays
// @Produce      json
// @Security     BearerAuth
// @Param        lang  query  string  false  "Month name language (en, ru)"
// @Success      200  {object}  response.Response{data=[]BirthdayResponse}
// @Router       /birthday_list [get]
func (h *BirthdayHandler) List(c *gin.Context) {
	users, err := h.birthdayUC.Upcoming(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Upcoming birthdays", newBirthdayResponses(users, h.translator, h.language(c)))
}

// Calendar godoc
// @Summary      Birthday calendar
// @Description  iCalendar feed with every known birthday in the current and next year
// @Tags         birthdays
// @Produce      text/calendar
// @Security     BearerAuth
// @Param        lang  query  string  false  "Event title language (en, ru)"
// @Success      200  {string}  string
// @Router       /birthday_list/calendar.ics [get]
func (h *BirthdayHandler) Calendar(c *gin.Context) {
	occurrences, err := h.birthdayUC.Occurrences(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	lang := h.language(c)
	events := make([]export.BirthdayEvent, 0, len(occurrences))
	for _, o := range occurrences {
		name := strings.TrimSpace(o.User.FirstName + " " + o.User.LastName)
		if name == "" {
			name = o.User.Email
		}
		events = append(events, export.BirthdayEvent{
			UserID:  o.User.ID,
			Summary: h.translator.BirthdaySummary(lang, name),
			Date:    o.Date,
		})
	}

	body, err := export.BirthdayCalendar(h.translator.CalendarName(lang), events, h.birthdayUC.Window().ReferenceDate)
	if err != nil {
		_ = c.Error(apperror.Internal(err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="birthdays.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}
