package post_http

import (
	"errors"
	"net/http"

	"blog-post-service/internal/custom_errors"

	"github.com/labstack/echo/v4"
)

// toHTTPError maps service errors onto response statuses.
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, custom_errors.ErrPostNotFound):
		return echo.NewHTTPError(http.StatusNotFound, custom_errors.ErrPostNotFound.Error())
	case errors.Is(err, custom_errors.ErrPostValidation), errors.Is(err, custom_errors.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, custom_errors.ErrStoreUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, custom_errors.ErrStoreUnavailable.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
