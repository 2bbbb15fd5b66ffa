// Package backendtest runs an in-process CivicFlow backend for tests. It
// speaks the same wire contract as the real service: bcrypt-checked logins,
// HS256 bearer tokens, and the {"message": …} error envelope.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Account seeds one user into the stub backend.
type Account struct {
	ID        int
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
	Role      string
}

type storedAccount struct {
	Account
	passwordHash []byte
}

// Server is an in-process backend bound to an httptest listener.
type Server struct {
	*httptest.Server

	secret []byte

	mu       sync.Mutex
	accounts map[string]storedAccount
	nextID   int
}

// New starts a stub backend seeded with the given accounts. Callers must
// Close it when done.
func New(t interface{ Fatalf(string, ...any) }, accounts ...Account) *Server {
	s := &Server{
		secret:   []byte("backendtest-secret"),
		accounts: make(map[string]storedAccount),
		nextID:   1000,
	}
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("backendtest: hash password: %v", err)
		}
		if a.ID == 0 {
			a.ID = s.nextID
			s.nextID++
		}
		s.accounts[a.Username] = storedAccount{Account: a, passwordHash: hash}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("GET /api/user/profile", s.handleProfile)

	s.Server = httptest.NewServer(mux)
	return s
}

// TokenFor mints a valid bearer token for username without going through
// the login flow.
func (s *Server) TokenFor(username string) string {
	token, _ := s.mint(username)
	return token
}

func (s *Server) mint(username string) (string, error) {
	claims := jwt.MapClaims{
		"sub": username,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "malformed request")
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[req.Username]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(req.Password)) != nil {
		fail(w, http.StatusUnauthorized, "Bad credentials")
		return
	}

	token, err := s.mint(acct.Username)
	if err != nil {
		fail(w, http.StatusInternalServerError, "token signing failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":     token,
		"id":        acct.ID,
		"username":  acct.Username,
		"email":     acct.Email,
		"firstName": acct.FirstName,
		"lastName":  acct.LastName,
		"role":      acct.Role,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "malformed request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Username]; exists {
		fail(w, http.StatusConflict, "Username already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		fail(w, http.StatusInternalServerError, "hashing failed")
		return
	}
	role := req.Role
	if role == "" {
		role = "CITIZEN"
	}
	s.accounts[req.Username] = storedAccount{
		Account: Account{
			ID:       s.nextID,
			Username: req.Username,
			Email:    req.Email,
			Role:     role,
		},
		passwordHash: hash,
	}
	s.nextID++

	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		fail(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		return
	}

	parsed, err := jwt.Parse(raw, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		fail(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		return
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		fail(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[sub]
	s.mu.Unlock()
	if !ok {
		fail(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":        acct.ID,
		"username":  acct.Username,
		"email":     acct.Email,
		"firstName": acct.FirstName,
		"lastName":  acct.LastName,
		"role":      acct.Role,
	})
}

func fail(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
