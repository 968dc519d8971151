package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()

	handler := func(c echo.Context) error {
		reqID, ok := c.Get(XRequestID).(string)
		if !ok {
			return echo.NewHTTPError(http.StatusInternalServerError, "request ID not found in context")
		}
		ctx := c.Request().Context()
		assert.Equal(t, reqID, GetRequestIDFromContext(ctx))
		assert.Equal(t, reqID, GetRequestIDFromEchoContext(c))

		return c.String(http.StatusOK, reqID)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(XRequestID, "custom-request-id")
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	err := RequestID()(handler)(c)

	assert.NoError(t, err)
	assert.Equal(t, "custom-request-id", c.Get(XRequestID))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "custom-request-id", rec.Body.String())
	assert.Equal(t, "custom-request-id", rec.Header().Get(XRequestID))
}

func TestRequestIDGenerated(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := RequestID()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)

	assert.NoError(t, err)
	assert.NotEmpty(t, rec.Header().Get(XRequestID))
}
