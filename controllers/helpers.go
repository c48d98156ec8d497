package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"bellezza-backend/apperror"
	"bellezza-backend/models"
	"bellezza-backend/repository"
	"bellezza-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	DateLayout  = "2006-01-02"
	maxPageSize = 100
)

// DefaultPageSize is used when a request has no page_size.
var DefaultPageSize = 15

// parseID reads a uuid path parameter and answers 400 when it is malformed.
func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+param+" format")
		return uuid.Nil, false
	}
	return id, true
}

// pageFromQuery reads page and page_size. Bad values fall back to defaults.
func pageFromQuery(c *gin.Context) repository.Page {
	number, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || number < 1 {
		number = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if err != nil || size < 1 {
		size = DefaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return repository.Page{Number: number, Size: size}
}

func respondPage(c *gin.Context, items interface{}, total int64) {
	c.JSON(http.StatusOK, utils.Page{Count: total, Results: items})
}

func uuidQuery(c *gin.Context, key string) (*uuid.UUID, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.Validation("invalid " + key)
	}
	return &id, nil
}

func decimalQuery(c *gin.Context, key string) (*decimal.Decimal, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperror.Validation("invalid " + key)
	}
	return &d, nil
}

func parseDate(raw string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return datatypes.Date{}, apperror.Validation("date must be YYYY-MM-DD")
	}
	return models.NewDate(t), nil
}

// parseClock accepts HH:MM and HH:MM:SS.
func parseClock(raw string) (datatypes.Time, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
		}
	}
	return 0, apperror.Validation("time must be HH:MM")
}

func optionalDate(raw *string) (*datatypes.Date, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	d, err := parseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return false
	}
	return true
}

// NullableUUID tells an absent JSON field apart from an explicit null.
type NullableUUID struct {
	Set   bool
	Value *uuid.UUID
}

func (n *NullableUUID) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	n.Value = &id
	return nil
}

func (n NullableUUID) patch() **uuid.UUID {
	if !n.Set {
		return nil
	}
	v := n.Value
	return &v
}
