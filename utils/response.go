package utils

import (
	"bellezza-backend/apperror"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// RespondAppError writes err using its apperror kind. Internal causes are
// logged and replaced by a generic message.
func RespondAppError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal(err, "internal server error")
	}

	status := appErr.HTTPStatus()
	if appErr.Kind == apperror.KindInternal {
		Log.WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Error("request failed")
	}

	c.JSON(status, ErrorResponse{Error: appErr.Message, Code: string(appErr.Kind)})
}

// Page is the envelope of paginated list responses.
type Page struct {
	Count   int64       `json:"count"`
	Results interface{} `json:"results"`
}
