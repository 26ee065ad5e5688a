package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/writium"
	"github.com/xy-planning-network/writium/http/middleware"
)

func TestReportPanic(t *testing.T) {
	// Arrange + Act
	actual := middleware.ReportPanic(writium.Development)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	h := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	// Act
	require.NotPanics(t, func() { middleware.ReportPanic(writium.Production)(h).ServeHTTP(w, r) })

	// Assert
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"msg":"internal error"}`, w.Body.String())
}
