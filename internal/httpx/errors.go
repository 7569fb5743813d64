// Package httpx holds the gin helpers shared by the resource handlers:
// error payloads, binding errors, id parsing and pagination.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"blogapi/internal/domain"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		v.RegisterTagNameFunc(fieldName)
	}
}

// fieldName reports validation failures under the name the client sent.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Abort writes an error payload and stops the handler chain.
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Error: msg})
}

// BindError renders a binding failure as 400. Validation failures list the
// offending fields with the rule they broke.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "validation failed",
			Fields:  fields,
		})
		return
	}
	Abort(c, http.StatusBadRequest, "invalid request")
}

// StatusFor maps a domain error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrCommentNotFound),
		errors.Is(err, domain.ErrLikeNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyLiked):
		return http.StatusConflict
	case errors.Is(err, domain.ErrIdentityMismatch):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Fail renders err. Unknown errors are logged and hidden behind a generic
// message.
func Fail(c *gin.Context, logger *slog.Logger, msg string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(c.Request.Context(), msg,
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
		Abort(c, status, "internal server error")
		return
	}
	Abort(c, status, err.Error())
}
