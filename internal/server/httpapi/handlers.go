package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hasilakhwa/secure-locker-api/internal/common"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type secretRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type secretResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, messageResponse{Message: "Secure Locker API is running"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Username) < 3 || len(req.Username) > 50 {
		s.respondError(w, http.StatusBadRequest, "Username must be between 3 and 50 characters")
		return
	}
	if len(req.Password) < 6 {
		s.respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	// bcrypt reads at most 72 bytes of input; anything longer must be
	// rejected here rather than surfacing as an internal error.
	if len(req.Password) > 72 {
		s.respondError(w, http.StatusBadRequest, "Password must be at most 72 characters")
		return
	}

	user, err := s.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.respondError(w, http.StatusBadRequest, "Username already registered")
			return
		}
		s.logger.Error(r.Context(), "registration failed", "error", err.Error())
		s.respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.logger.Info(r.Context(), "user registered", "username", user.Username)
	s.respondJSON(w, http.StatusOK, userResponse{ID: user.ID, Username: user.Username})
}

// handleLogin accepts form-encoded credentials (OAuth2 password flow style)
// and returns a bearer token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		s.respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := s.users.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.respondError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		s.respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.respondJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleCreateSecret(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req secretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" || req.Content == "" {
		s.respondError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	secret, err := s.secrets.Create(r.Context(), user, req.Title, req.Content)
	if err != nil {
		s.logger.Error(r.Context(), "secret creation failed", "error", err.Error())
		s.respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.respondJSON(w, http.StatusOK, secretResponse{ID: secret.ID, Title: secret.Title, Content: secret.Content})
}

func (s *Server) handleListSecrets(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	list, err := s.secrets.List(r.Context(), user)
	if err != nil {
		s.logger.Error(r.Context(), "secret listing failed", "error", err.Error())
		s.respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	result := make([]secretResponse, 0, len(list))
	for _, secret := range list {
		result = append(result, secretResponse{ID: secret.ID, Title: secret.Title, Content: secret.Content})
	}

	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleUpdateSecret(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := secretID(r)
	if !ok {
		s.respondError(w, http.StatusNotFound, "Secret not found")
		return
	}

	var req secretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" || req.Content == "" {
		s.respondError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	if _, err := s.secrets.Update(r.Context(), user, id, req.Title, req.Content); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.respondError(w, http.StatusNotFound, "Secret not found")
			return
		}
		s.logger.Error(r.Context(), "secret update failed", "error", err.Error())
		s.respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.respondJSON(w, http.StatusOK, messageResponse{Message: "Secret updated successfully"})
}

func (s *Server) handleDeleteSecret(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := secretID(r)
	if !ok {
		s.respondError(w, http.StatusNotFound, "Secret not found")
		return
	}

	if err := s.secrets.Delete(r.Context(), user, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.respondError(w, http.StatusNotFound, "Secret not found")
			return
		}
		s.logger.Error(r.Context(), "secret deletion failed", "error", err.Error())
		s.respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.respondJSON(w, http.StatusOK, messageResponse{Message: "Secret deleted successfully"})
}

// secretID parses the {id} path parameter. A malformed id is treated the same
// as a missing secret further down the stack.
func secretID(r *http.Request) (string, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return "", false
	}
	return id.String(), true
}
