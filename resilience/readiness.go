package resilience

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// ReadinessHandler reports the readiness of the policies registered with
// reg: 200 when every critical policy is healthy, 503 otherwise. The body
// is always a JSON-encoded [ReadinessStatus].
func ReadinessHandler(reg *Registry) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		status := reg.CheckReadiness()

		writer.Header().Set("Content-Type", "application/json")

		if status.Ready {
			writer.WriteHeader(http.StatusOK)
		} else {
			writer.WriteHeader(http.StatusServiceUnavailable)
		}

		//nolint:errcheck // best-effort JSON encoding to HTTP response
		_ = json.NewEncoder(writer).Encode(status)
	})
}
