package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/dal"
	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/store"
)

const sessionUserKey = "user_id"

// Register defines a POST handler for /api/register.
func (h *httpServer) Register(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence layer not configured")
		return
	}

	var input dal.Credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Username == "" || input.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		h.log.Printf("hashing password failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to process password")
		return
	}

	user, err := h.store.CreateUser(r.Context(), input.Username, string(hash), input.FirstName, input.LastName)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		writeError(w, http.StatusConflict, "username already taken")
	case err != nil:
		h.log.Printf("creating user failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create user")
	default:
		writeJSON(w, http.StatusCreated, user)
	}
}

// Login defines a POST handler for /api/login. A successful login stores
// the user id in the session cookie.
func (h *httpServer) Login(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence layer not configured")
		return
	}

	var input dal.Credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), input.Username)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		h.log.Printf("login lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	session, _ := h.sessions.Get(r, sessionName)
	session.Values[sessionUserKey] = user.ID
	if err := session.Save(r, w); err != nil {
		h.log.Printf("saving session failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to start session")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Logout defines a POST handler for /api/logout.
func (h *httpServer) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.sessions.Get(r, sessionName)
	session.Options.MaxAge = -1
	delete(session.Values, sessionUserKey)
	if err := session.Save(r, w); err != nil {
		h.log.Printf("clearing session failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to end session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// CurrentUser defines a GET handler for /api/user.
func (h *httpServer) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// DeleteUser defines a DELETE handler for /api/user. Deleting the account
// also invalidates the session; later requests on the old cookie get 401.
func (h *httpServer) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteUser(r.Context(), user.ID); err != nil {
		h.log.Printf("deleting user %d failed: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to delete account")
		return
	}

	session, _ := h.sessions.Get(r, sessionName)
	session.Options.MaxAge = -1
	delete(session.Values, sessionUserKey)
	if err := session.Save(r, w); err != nil {
		h.log.Printf("clearing session failed: %v", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}

// sessionUser resolves the session cookie to a live user, writing the 401
// itself when there is none. A session naming a deleted user is rejected
// the same way.
func (h *httpServer) sessionUser(w http.ResponseWriter, r *http.Request) (*dal.User, bool) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence layer not configured")
		return nil, false
	}

	session, err := h.sessions.Get(r, sessionName)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return nil, false
	}
	userID, ok := session.Values[sessionUserKey].(int64)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return nil, false
	}

	user, err := h.store.GetUserByID(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return nil, false
	}
	if err != nil {
		h.log.Printf("session user lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return nil, false
	}
	return user, true
}
