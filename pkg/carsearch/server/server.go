package server

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/catalog"
	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/store"
)

const sessionName = "carsearch_session"

// NewHTTPServer returns a new HTTP server for the car-search API. st may be
// nil when no database is configured; the account endpoints then report the
// persistence layer as unavailable.
func NewHTTPServer(addr string, source *catalog.Source, st *store.Store, sessionStore sessions.Store) *http.Server {
	server := newHTTPServer(source, st, sessionStore)
	return &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}
}

type httpServer struct {
	log      *log.Logger
	source   *catalog.Source
	store    *store.Store
	sessions sessions.Store
}

func newHTTPServer(source *catalog.Source, st *store.Store, sessionStore sessions.Store) *httpServer {
	return &httpServer{
		log:      log.New(os.Stdout, "logs: ", log.LstdFlags),
		source:   source,
		store:    st,
		sessions: sessionStore,
	}
}

// Router wires every endpoint. Exposed so tests can mount it on httptest.
func (h *httpServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.requestLogging)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/cars/search", h.SearchCars).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id:[0-9]+}", h.GetCar).Methods(http.MethodGet)
	api.HandleFunc("/car-brands", h.GetCarBrands).Methods(http.MethodGet)
	api.HandleFunc("/car-types", h.GetCarTypes).Methods(http.MethodGet)

	api.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	api.HandleFunc("/user", h.CurrentUser).Methods(http.MethodGet)
	api.HandleFunc("/user", h.DeleteUser).Methods(http.MethodDelete)

	return r
}
