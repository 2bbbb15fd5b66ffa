// Package session owns the current identity and its lifecycle. The Store is
// the single writer of the persisted credential; every other component reads
// identity through the Provider façade.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/civicflow/civic-portal/internal/core/domain"
	"github.com/civicflow/civic-portal/internal/core/ports"
)

// Store holds the Identity value (or none) together with the bootstrap
// loading flag. It is safe for use from interleaved callbacks: every state
// transition happens under the mutex, and a generation counter discards
// results of requests that were in flight when Logout invalidated them.
type Store struct {
	api    ports.AuthAPI
	tokens ports.TokenStore
	audit  ports.AuditRecorder
	log    zerolog.Logger

	mu       sync.Mutex
	identity *domain.Identity
	loading  bool
	gen      uint64
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithAudit attaches a session audit recorder.
func WithAudit(a ports.AuditRecorder) Option {
	return func(s *Store) { s.audit = a }
}

// WithLogger attaches a structured logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// NewStore creates a Store in the loading state. No restricted-route
// decision may be made until Bootstrap has completed.
func NewStore(api ports.AuthAPI, tokens ports.TokenStore, opts ...Option) *Store {
	s := &Store{
		api:     api,
		tokens:  tokens,
		audit:   ports.NoopAudit{},
		log:     zerolog.Nop(),
		loading: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bootstrap attempts to resolve an identity from the persisted token. Any
// failure — missing token, network error, 401 — downgrades silently to an
// anonymous session and discards the stale token. Bootstrap never returns
// an error and always leaves the store out of the loading state so the
// application can never get stuck behind the guard.
func (s *Store) Bootstrap(ctx context.Context) {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	token, err := s.tokens.Load()

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	if err != nil {
		// An unreadable credential is as good as a rejected one: drop it so
		// the next bootstrap starts clean.
		s.identity = nil
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.log.Warn().Err(clearErr).Msg("failed to discard unreadable token")
		}
		return
	}
	if token == "" {
		s.identity = nil
		return
	}
	if s.gen != gen {
		// Logout raced the token read; the visitor intended to leave.
		return
	}

	// The profile fetch runs without the lock so Logout stays synchronous.
	s.mu.Unlock()
	id, err := s.api.Profile(ctx, token)
	s.mu.Lock()

	if s.gen != gen {
		return
	}
	if err != nil {
		s.identity = nil
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.log.Warn().Err(clearErr).Msg("failed to discard stale token")
		}
		s.audit.Record(ports.AuditEvent{Kind: ports.AuditBootstrapReject, Detail: err.Error(), At: time.Now().UTC()})
		return
	}

	id.Token = token
	s.identity = id
	s.audit.Record(ports.AuditEvent{Kind: ports.AuditBootstrapOK, Username: id.Username, At: time.Now().UTC()})
}

// Login submits credentials to the backend. On success the returned token is
// persisted and the identity populated; the identity is also returned so the
// caller can branch navigation by role. On failure the session — in-memory
// identity and persisted token alike — is left exactly as it was.
func (s *Store) Login(ctx context.Context, creds ports.Credentials) (*domain.Identity, error) {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	id, err := s.api.Login(ctx, creds)
	if err != nil {
		s.audit.Record(ports.AuditEvent{Kind: ports.AuditLoginFailed, Username: creds.Username, Detail: err.Error(), At: time.Now().UTC()})
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		// Logged out while the request was in flight; drop the result. The
		// credentials were fine, so this is not ErrInvalidCredentials.
		return nil, domain.ErrSessionEnded
	}
	if err := s.tokens.Save(id.Token); err != nil {
		return nil, err
	}
	s.identity = id
	s.audit.Record(ports.AuditEvent{Kind: ports.AuditLogin, Username: id.Username, At: time.Now().UTC()})

	out := *id
	return &out, nil
}

// Register submits the sign-up form. The session is never mutated: the
// application requires an explicit login afterwards.
func (s *Store) Register(ctx context.Context, reg ports.Registration) error {
	if err := s.api.Register(ctx, reg); err != nil {
		return err
	}
	s.audit.Record(ports.AuditEvent{Kind: ports.AuditRegister, Username: reg.Username, At: time.Now().UTC()})
	return nil
}

// Logout synchronously clears the persisted token and resets the identity.
// There is no server round-trip; token invalidation is the backend's
// concern. Any request still in flight with the old token resolves against
// a stale generation and is discarded.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	username := ""
	if s.identity != nil {
		username = s.identity.Username
	}
	s.identity = nil
	if err := s.tokens.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted token")
	}
	if username != "" {
		s.audit.Record(ports.AuditEvent{Kind: ports.AuditLogout, Username: username, At: time.Now().UTC()})
	}
}

// UpdateIdentity shallow-merges patch into the current identity without a
// network call. A no-op when the session is anonymous: that indicates a
// programming error upstream, not a runtime condition worth failing on.
func (s *Store) UpdateIdentity(patch domain.IdentityPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil {
		return
	}
	patch.Apply(s.identity)
}

// snapshot returns the current state under the lock. The identity is copied
// so callers can never mutate the store's own value.
func (s *Store) snapshot() (id *domain.Identity, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity != nil {
		cp := *s.identity
		id = &cp
	}
	return id, s.loading
}
