package ports

// TokenStore persists the bearer credential between visits. The session
// store is the only component allowed to call it; everything else reads
// identity through the session façade.
type TokenStore interface {
	// Load returns the persisted token, or "" when none is stored.
	Load() (string, error)
	Save(token string) error
	Clear() error
}
