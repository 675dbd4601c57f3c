package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shredderfleet/fleetcommand/api/middleware"
	"github.com/shredderfleet/fleetcommand/api/resources"
	_ "github.com/shredderfleet/fleetcommand/docs"
)

type Router struct {
	router    *mux.Router
	handler   http.Handler
	resources *resources.Resources
}

func NewRouter(res *resources.Resources, allowedOrigins []string) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		resources: res,
	}

	r.setupRoutes()
	r.router.NotFoundHandler = http.HandlerFunc(resources.NotFound)

	r.handler = middleware.Recovery(
		middleware.AccessLog(
			middleware.CORS(allowedOrigins)(
				middleware.RequestID(r.router))))
	return r
}

func (r *Router) setupRoutes() {
	// API version prefix
	api := r.router.PathPrefix("/v1").Subrouter()

	// System
	api.HandleFunc("/health", r.resources.System.Health).Methods(http.MethodGet)
	api.HandleFunc("/metrics", r.resources.System.Metrics).Methods(http.MethodGet)
	api.HandleFunc("/swagger.json", r.resources.System.Swagger).Methods(http.MethodGet)

	// Units
	units := api.PathPrefix("/units/{unit}").Subrouter()
	units.HandleFunc("/machines", r.resources.Units.GetFleetView).Methods(http.MethodGet)
	units.HandleFunc("/report.xlsx", r.resources.Units.GetReport).Methods(http.MethodGet)

	// Machines
	machines := api.PathPrefix("/machines/{id}").Subrouter()
	machines.HandleFunc("", r.resources.Machines.GetDetailView).Methods(http.MethodGet)
	machines.HandleFunc("/trend", r.resources.Machines.GetTrend).Methods(http.MethodGet)

	// Navigation
	nav := api.PathPrefix("/nav").Subrouter()
	nav.HandleFunc("", r.resources.Navigation.GetActiveView).Methods(http.MethodGet)
	nav.HandleFunc("/events", r.resources.Navigation.Dispatch).Methods(http.MethodPost)
	nav.HandleFunc("/reset", r.resources.Navigation.Reset).Methods(http.MethodPost)

	// Push
	if r.resources.Push != nil {
		api.Handle("/ws", r.resources.Push).Methods(http.MethodGet)
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}
