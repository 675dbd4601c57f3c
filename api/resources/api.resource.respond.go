// FilePath: api/resources/api.resource.respond.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/shredderfleet/fleetcommand/api/middleware"
	"github.com/shredderfleet/fleetcommand/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := errors.FromError(err).WithRequestID(middleware.GetRequestID(r))
	switch {
	case apiErr.Code >= http.StatusInternalServerError:
		nuts.L.Errorf("[API] %s %s: %s", r.Method, r.URL.Path, apiErr.Error())
	case errors.IsNotFound(apiErr):
		nuts.L.Infof("[API] %s %s: %s", r.Method, r.URL.Path, apiErr.Error())
	default:
		nuts.L.Warnf("[API] %s %s: %s", r.Method, r.URL.Path, apiErr.Error())
	}
	respondWithJSON(w, apiErr.Code, apiErr)
}

// NotFound answers requests that match no route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, r, errors.NewNotFoundError("no route for "+r.Method+" "+r.URL.Path, nil))
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
