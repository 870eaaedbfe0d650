package restmachinery

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/inkwellhq/inkwell/apiserver/internal/lib/file"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Config is an interface for options that tell a Server how to listen.
type Config interface {
	Port() int
	TLSEnabled() bool
	TLSCertPath() string
	TLSKeyPath() string
}

// Server is an interface for the component that responds to HTTP API
// requests.
type Server interface {
	// ListenAndServe causes the API server to start serving HTTP requests. It
	// will block until an error occurs and will return that error.
	ListenAndServe() error
}

type server struct {
	*BaseEndpoints
	config      Config
	handler     http.Handler
	healthCheck func(context.Context) error
}

// NewServer returns a REST API server over the given endpoint collections.
// The healthCheck function, if non-nil, is consulted by the /healthz
// endpoint; it should ping the server's critical collaborators.
func NewServer(
	config Config,
	baseEndpoints *BaseEndpoints,
	endpoints []Endpoints,
	healthCheck func(context.Context) error,
) Server {
	router := mux.NewRouter()
	router.StrictSlash(true)

	for _, eps := range endpoints {
		eps.Register(router)
	}

	s := &server{
		BaseEndpoints: baseEndpoints,
		config:        config,
		handler: cors.New(
			cors.Options{
				AllowedMethods: []string{"DELETE", "GET", "POST", "PUT"},
				AllowedHeaders: []string{"Authorization", "Content-Type"},
			},
		).Handler(router),
		healthCheck: healthCheck,
	}

	// Health check; no filters applied to this request
	router.HandleFunc("/healthz", s.checkHealth).Methods(http.MethodGet)

	return s
}

func (s *server) ListenAndServe() error {
	address := fmt.Sprintf(":%d", s.config.Port())
	if s.config.TLSEnabled() &&
		file.Exists(s.config.TLSCertPath()) &&
		file.Exists(s.config.TLSKeyPath()) {
		log.Printf(
			"API server is listening with TLS enabled on 0.0.0.0:%d",
			s.config.Port(),
		)
		return http.ListenAndServeTLS(
			address,
			s.config.TLSCertPath(),
			s.config.TLSKeyPath(),
			s.handler,
		)
	}
	log.Printf(
		"API server is listening without TLS on 0.0.0.0:%d",
		s.config.Port(),
	)
	return http.ListenAndServe(
		address,
		h2c.NewHandler(s.handler, &http2.Server{}),
	)
}

func (s *server) checkHealth(w http.ResponseWriter, r *http.Request) {
	s.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				if s.healthCheck != nil {
					if err := s.healthCheck(r.Context()); err != nil {
						return nil, err
					}
				}
				return struct{}{}, nil
			},
			SuccessCode: http.StatusOK,
		},
	)
}
