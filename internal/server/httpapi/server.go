// Package httpapi exposes the REST boundary of the auth service: the
// security schemes (API key, credentials, bearer token), the authorization
// checks every privileged endpoint repeats, and the endpoint handlers.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/edusys/eduauth/internal/common"
	"github.com/edusys/eduauth/internal/logging"
)

type Server struct {
	address  string
	security *Security
	users    UserDirectory
	roles    RoleAuthority
	logger   logging.Logger
	mux      *http.ServeMux
}

func NewServer(addr string, l logging.Logger, sec *Security, us UserDirectory, rs RoleAuthority) *Server {
	s := &Server{
		address:  addr,
		security: sec,
		users:    us,
		roles:    rs,
		logger:   l.With("module", "httpapi"),
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	base := common.APIBasePath

	s.mux.HandleFunc("GET "+base+"/health", s.handleHealth)

	// every other endpoint sits behind the service API key
	s.mux.Handle("POST "+base+"/auth", s.protect(s.handleAuth, false))
	s.mux.Handle("GET "+base+"/users", s.protect(s.handleListUsers, true))
	s.mux.Handle("POST "+base+"/user/new", s.protect(s.handleCreateUser, true))
	s.mux.Handle("GET "+base+"/user/{username}/roles", s.protect(s.handleListUserRoles, true))
	s.mux.Handle("POST "+base+"/user/{username}/role/{rolename}", s.protect(s.handleGrantRole, true))
	s.mux.Handle("DELETE "+base+"/user/{username}/role/{rolename}", s.protect(s.handleRevokeRole, true))
	s.mux.Handle("GET "+base+"/user/{username}/has-role/{rolename}", s.protect(s.handleHasRole, false))
}

// protect chains the standard middleware for an endpoint: request id, API
// key, and optionally the bearer token scheme.
func (s *Server) protect(h http.HandlerFunc, bearer bool) http.Handler {
	var handler http.Handler = h
	if bearer {
		handler = s.requireToken(handler)
	}
	return s.requestID(s.requireAPIKey(handler))
}

// Handler returns the fully wired route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
