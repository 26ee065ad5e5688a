package middleware

import (
	"net/http"
	"time"

	"github.com/xy-planning-network/writium"
	"github.com/xy-planning-network/writium/logger"
)

// A LogRequestRecord is what LogRequest logs about a request and its response.
type LogRequestRecord struct {
	BodySize  int           `json:"bodySize"`
	Duration  time.Duration `json:"duration"`
	ID        string        `json:"id,omitempty"`
	IPAddr    string        `json:"ipAddr,omitempty"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Referrer  string        `json:"referrer,omitempty"`
	Status    int           `json:"status"`
	URI       string        `json:"uri"`
	UserAgent string        `json:"userAgent,omitempty"`
}

// data flattens r for a logger.LogContext.
func (r LogRequestRecord) data() map[string]any {
	return map[string]any{
		"bodySize":  r.BodySize,
		"duration":  r.Duration.String(),
		"id":        r.ID,
		"ipAddr":    r.IPAddr,
		"method":    r.Method,
		"path":      r.Path,
		"referrer":  r.Referrer,
		"status":    r.Status,
		"uri":       r.URI,
		"userAgent": r.UserAgent,
	}
}

// LogRequest logs a LogRequestRecord for each request once it has been responded to.
//
// LogRequest masks the values of the query params named by masked,
// as well as "password" and "token".
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger, masked ...string) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	masked = append([]string{"password", "token"}, masked...)

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &recorder{ResponseWriter: w, status: http.StatusOK}

			h.ServeHTTP(rec, r)

			q := r.URL.Query()
			for _, key := range masked {
				writium.Mask(q, key)
			}

			uri := r.URL.Path
			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			record := LogRequestRecord{
				BodySize:  rec.size,
				Duration:  time.Since(start),
				Method:    r.Method,
				Path:      r.URL.Path,
				Referrer:  r.Referer(),
				Status:    rec.status,
				URI:       uri,
				UserAgent: r.UserAgent(),
			}
			record.ID, _ = r.Context().Value(writium.RequestIDKey).(string)
			record.IPAddr, _ = r.Context().Value(writium.IpAddrKey).(string)

			ls.Info(r.Method+" "+uri, &logger.LogContext{Data: record.data()})
		})
	}
}

// recorder captures the status and size of a response.
type recorder struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func (r *recorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}

	r.ResponseWriter.WriteHeader(status)
}

func (r *recorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Unwrap exposes the underlying http.ResponseWriter to http.ResponseController.
func (r *recorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }
