package middleware_test

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/writium"
	"github.com/xy-planning-network/writium/http/middleware"
	"github.com/xy-planning-network/writium/logger"
)

func TestLogRequest(t *testing.T) {
	// Arrange + Act
	actual := middleware.LogRequest(nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	tcs := []struct {
		name     string
		target   string
		ctx      context.Context
		contains []string
		missing  []string
	}{
		{
			"Plain",
			"/articles",
			context.Background(),
			[]string{"'GET /articles'", `"status":201`, `"bodySize":4`},
			nil,
		},
		{
			"Masked",
			"/admin/cache?token=secret&page=2&key=hush",
			context.Background(),
			[]string{"page=2", "token=" + writium.LogMaskVal, "key=" + writium.LogMaskVal},
			[]string{"secret", "hush"},
		},
		{
			"Context",
			"/",
			context.WithValue(context.WithValue(context.Background(), writium.RequestIDKey, "req-1"), writium.IpAddrKey, "203.0.113.7"),
			[]string{`"id":"req-1"`, `"ipAddr":"203.0.113.7"`},
			nil,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			color.NoColor = true
			b := new(bytes.Buffer)
			l := logger.New(logger.WithLogger(log.New(b, "", 0)))
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, tc.target, nil).WithContext(tc.ctx)

			h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte("test"))
			})

			// Act
			middleware.LogRequest(l, "key")(h).ServeHTTP(w, r)

			// Assert
			require.Equal(t, http.StatusCreated, w.Code)
			for _, s := range tc.contains {
				require.Contains(t, b.String(), s)
			}
			for _, s := range tc.missing {
				require.NotContains(t, b.String(), s)
			}
		})
	}
}
