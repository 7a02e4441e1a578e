package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CustomErrorHandler converts every error into the JSON envelope the
// SPA expects: {"error": <title>, "message": <detail>}.
func CustomErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	errorTitle := "Internal Server Error"
	errorMessage := ""

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code

		if msg, ok := he.Message.(string); ok && msg != "" {
			errorMessage = msg
		}

		switch code {
		case http.StatusNotFound:
			errorTitle = "Not Found"
			if errorMessage == "" {
				errorMessage = "The requested resource doesn't exist."
			}
		case http.StatusForbidden:
			errorTitle = "Access Denied"
			if errorMessage == "" {
				errorMessage = "You don't have permission to access this resource."
			}
		case http.StatusUnauthorized:
			errorTitle = "Unauthorized"
			if errorMessage == "" {
				errorMessage = "Please log in to continue."
			}
		case http.StatusBadRequest:
			errorTitle = "Bad Request"
			if errorMessage == "" {
				errorMessage = "The request could not be processed."
			}
		case http.StatusServiceUnavailable:
			errorTitle = "Service Unavailable"
			if errorMessage == "" {
				errorMessage = "A required service is not configured."
			}
		default:
			if errorMessage == "" {
				errorMessage = "Something went wrong. Please try again later."
			}
		}
	} else {
		errorMessage = "Something went wrong. Please try again later."
	}

	c.Logger().Error(err)

	if c.Response().Committed {
		return
	}

	if jsonErr := c.JSON(code, map[string]string{
		"error":   errorTitle,
		"message": errorMessage,
	}); jsonErr != nil {
		c.Logger().Error(jsonErr)
	}
}
