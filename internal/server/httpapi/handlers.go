package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/edusys/eduauth/internal/common"
	"github.com/edusys/eduauth/internal/server/models"
	"github.com/edusys/eduauth/internal/server/services"
)

type userResponse struct {
	Username string `json:"username"`
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// actingUser resolves the verified identity placed in the context by the
// bearer middleware.
func actingUser(r *http.Request) string {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return ""
	}
	return claims.User
}

// isAdmin answers the privileged-endpoint check. Storage failures deny.
func (s *Server) isAdmin(r *http.Request, username string) bool {
	ok, err := s.roles.HasRole(r.Context(), username, models.RoleAdmin.String())
	if err != nil {
		s.logger.Error(r.Context(), "admin check failed",
			"request_id", RequestIDFromContext(r.Context()), "error", err.Error())
		return false
	}
	return ok
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// handleAuth issues a fresh token from either Basic credentials or a still
// valid bearer token.
func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	var identity string

	if username, password, ok := r.BasicAuth(); ok {
		verified, err := s.security.VerifyCredentials(r.Context(), username, password)
		if err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				http.Error(w, "Invalid credentials", http.StatusUnauthorized)
				return
			}
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		identity = verified
	} else if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		claims, err := s.security.VerifyToken(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}
		identity = claims.User
	} else {
		http.Error(w, "No credentials or token presented", http.StatusUnauthorized)
		return
	}

	token, err := s.security.IssueToken(identity)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	s.logger.Info(r.Context(), "token issued",
		"request_id", RequestIDFromContext(r.Context()), "user", identity)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(token))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListUsers(r.Context())
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse{Username: u.Username})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	if !s.isAdmin(r, actingUser(r)) {
		http.Error(w, "Current user has not enough privileges to create a user", http.StatusForbidden)
		return
	}

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "A mandatory argument is missing", http.StatusBadRequest)
		return
	}

	user, err := s.users.CreateUser(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidArgument):
			http.Error(w, "A mandatory argument is missing", http.StatusBadRequest)
		case errors.Is(err, common.ErrorAlreadyExists):
			http.Error(w, "A user with the given username already exists", http.StatusConflict)
		default:
			http.Error(w, "Internal error", http.StatusInternalServerError)
		}
		return
	}

	s.logger.Info(r.Context(), "user created",
		"request_id", RequestIDFromContext(r.Context()),
		"user", user.Username, "by", actingUser(r))

	s.writeJSON(w, http.StatusOK, userResponse{Username: user.Username})
}

func (s *Server) handleListUserRoles(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	// a user may inspect their own roles; anyone else's require Admin
	if acting := actingUser(r); acting != username && !s.isAdmin(r, acting) {
		http.Error(w, "Current user has not enough privileges to view other users' roles", http.StatusForbidden)
		return
	}

	roles, err := s.roles.ListUserRoles(r.Context(), username)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidArgument) {
			http.Error(w, "No username given", http.StatusBadRequest)
			return
		}
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, roles)
}

func (s *Server) handleGrantRole(w http.ResponseWriter, r *http.Request) {
	if !s.isAdmin(r, actingUser(r)) {
		http.Error(w, "Current user has not enough privileges to grant roles", http.StatusForbidden)
		return
	}

	username, rolename := r.PathValue("username"), r.PathValue("rolename")

	if _, err := s.roles.GrantRole(r.Context(), username, rolename); err != nil {
		switch {
		case services.IsRoleArgumentError(err):
			http.Error(w, "Both a username and a role name must be given", http.StatusBadRequest)
		case errors.Is(err, common.ErrorUserNotFound):
			http.Error(w, "User "+username+" was not found", http.StatusNotFound)
		default:
			http.Error(w, "Internal error", http.StatusInternalServerError)
		}
		return
	}

	s.logger.Info(r.Context(), "role granted",
		"request_id", RequestIDFromContext(r.Context()),
		"user", username, "role", rolename, "by", actingUser(r))

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleRevokeRole(w http.ResponseWriter, r *http.Request) {
	acting := actingUser(r)
	if !s.isAdmin(r, acting) {
		http.Error(w, "Current user has not enough privileges to revoke roles", http.StatusForbidden)
		return
	}

	username, rolename := r.PathValue("username"), r.PathValue("rolename")

	// an Admin must not be able to lock themselves out
	if acting == username && rolename == models.RoleAdmin.String() {
		http.Error(w, "Current user cannot revoke the Admin role from oneself", http.StatusForbidden)
		return
	}

	if err := s.roles.RevokeRole(r.Context(), username, rolename); err != nil {
		if services.IsRoleArgumentError(err) {
			http.Error(w, "Both a username and a role name must be given", http.StatusBadRequest)
			return
		}
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	s.logger.Info(r.Context(), "role revoked",
		"request_id", RequestIDFromContext(r.Context()),
		"user", username, "role", rolename, "by", acting)

	w.WriteHeader(http.StatusOK)
}

// handleHasRole is the service-to-service probe: 200 when the user holds
// the role, 404 otherwise (including unknown role names).
func (s *Server) handleHasRole(w http.ResponseWriter, r *http.Request) {
	ok, err := s.roles.HasRole(r.Context(), r.PathValue("username"), r.PathValue("rolename"))
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}
