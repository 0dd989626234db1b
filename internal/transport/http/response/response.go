package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-user-account-api/internal/domain"
)

// Envelope is the wire contract every endpoint speaks:
// {status, message?, data?, count?, currentPage?, totalPages?, totalElements?}.
type Envelope struct {
	Status        string `json:"status"`
	Message       string `json:"message,omitempty"`
	Data          any    `json:"data,omitempty"`
	Count         *int   `json:"count,omitempty"`
	CurrentPage   *int   `json:"currentPage,omitempty"`
	TotalPages    *int   `json:"totalPages,omitempty"`
	TotalElements *int64 `json:"totalElements,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Status: "success", Data: data})
}

func OKMessage(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Status: "success", Message: message, Data: data})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{Status: "success", Message: message, Data: data})
}

// List sets count alongside data, including when the list is empty.
func List(c *gin.Context, count int, data any) {
	c.JSON(http.StatusOK, Envelope{Status: "success", Count: &count, Data: data})
}

func Paged(c *gin.Context, data any, currentPage, totalPages int, totalElements int64) {
	c.JSON(http.StatusOK, Envelope{
		Status:        "success",
		Data:          data,
		CurrentPage:   &currentPage,
		TotalPages:    &totalPages,
		TotalElements: &totalElements,
	})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Status: "error", Message: message})
}

// Fail maps a tagged error to its status. Kinds without a fixed status
// (credentials/deleted/inactive failures and untagged errors) take the
// endpoint's fallback, which differs between read and mutation routes.
func Fail(c *gin.Context, err error, fallback int) {
	Error(c, StatusOf(err, fallback), err.Error())
}

func StatusOf(err error, fallback int) int {
	kind, ok := domain.KindOf(err)
	if !ok {
		return fallback
	}
	switch kind {
	case domain.KindValidation, domain.KindDuplicateEmail, domain.KindInvalidRole, domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindNotAuthenticated:
		return http.StatusUnauthorized
	case domain.KindAccessDenied:
		return http.StatusForbidden
	default:
		return fallback
	}
}
