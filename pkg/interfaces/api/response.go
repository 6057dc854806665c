package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

// Response is the envelope of every JSON answer. Code is 0 on success, otherwise
// the HTTP status times 100 plus a detail digit pair.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	CodeBadRequest  = 40000
	CodeNotFound    = 40400
	CodeConflict    = 40900
	CodeRateLimited = 42900
	CodeInternal    = 50000
)

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "success", Data: data})
}

// Error writes an error envelope with the HTTP status derived from code
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(statusCode, Response{Code: code, Message: message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, CodeBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, CodeNotFound, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, CodeInternal, message)
}

// HandleError maps domain errors onto response codes
func HandleError(c *gin.Context, err error) {
	var (
		validation *entities.ValidationError
		notFound   *entities.NotFoundError
		conflict   *entities.ConflictError
	)
	switch {
	case errors.As(err, &validation):
		Error(c, CodeBadRequest, err.Error())
	case errors.As(err, &notFound):
		Error(c, CodeNotFound, err.Error())
	case errors.As(err, &conflict):
		Error(c, CodeConflict, err.Error())
	default:
		_ = c.Error(err)
		InternalError(c, "internal error")
	}
}
