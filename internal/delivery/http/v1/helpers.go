package v1

import (
	"bytes"
	"encoding/json"
	"strconv"

	"corp-social-backend/internal/domain"
	"corp-social-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Pagination holds the limit defaults for list endpoints.
type Pagination struct {
	DefaultLimit int
	MaxLimit     int
}

func (p Pagination) page(c *gin.Context) domain.Page {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return domain.NewPage(limit, offset, p.DefaultLimit, p.MaxLimit)
}

// actorFrom returns the authenticated caller set by the auth middleware.
func actorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		ID:      c.GetString(string(domain.KeyUserID)),
		IsStaff: c.GetBool(string(domain.KeyIsStaff)),
	}
}

// int64Param parses a numeric path parameter. Malformed IDs cannot match
// anything, so they are reported as not found.
func int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		_ = c.Error(apperror.NotFound("Not found"))
		return 0, false
	}
	return id, true
}

// NullableString distinguishes an absent JSON key from an explicit null.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}
