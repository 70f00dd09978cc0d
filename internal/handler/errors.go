package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"shoestore-service/internal/store"
	"shoestore-service/prometheus"

	"github.com/labstack/echo/v4"
)

// Error codes returned alongside 4xx/5xx error messages.
const (
	codeValidation = "validation_error"
	codeForeignKey = "foreign_key_violation"
	codeUnique     = "unique_violation"
	codeNotFound   = "not_found"
	codeInternal   = "internal_error"
)

func badRequest(c echo.Context, code, message string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error": message,
		"code":  code,
	})
}

func notFound(c echo.Context, entity string) error {
	return c.JSON(http.StatusNotFound, echo.Map{
		"error": entity + " not found",
		"code":  codeNotFound,
	})
}

// storeError maps store sentinel errors onto the uniform error contract.
// Raw driver messages are never forwarded to the client.
func storeError(c echo.Context, entity string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return notFound(c, entity)
	case errors.Is(err, store.ErrForeignKey):
		prometheus.RecordConstraintViolation(strings.ToLower(entity), "foreign_key")
		return badRequest(c, codeForeignKey, entity+" references a missing record or is still referenced")
	case errors.Is(err, store.ErrDuplicate):
		prometheus.RecordConstraintViolation(strings.ToLower(entity), "unique")
		return badRequest(c, codeUnique, entity+" violates a unique constraint")
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "internal server error",
			"code":  codeInternal,
		})
	}
}

func parseID(c echo.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
