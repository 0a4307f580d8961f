package resilience

import (
	"net/http"
)

// ReloadHandler returns an HTTP handler that triggers core.Reload on GET,
// returning 200 on success. A plain http.HandlerFunc, like
// health.ReadinessHandler, so hosts mount it on their own mux.
func ReloadHandler(core *Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		if err := core.Reload(r.Context()); err != nil {
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(err.Error()))
			return
		}

		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("reloaded"))
	}
}
