package ports

import "time"

// AuditKind labels a session lifecycle event.
type AuditKind string

const (
	AuditLogin           AuditKind = "login"
	AuditLoginFailed     AuditKind = "login_failed"
	AuditLogout          AuditKind = "logout"
	AuditRegister        AuditKind = "register"
	AuditBootstrapOK     AuditKind = "bootstrap_ok"
	AuditBootstrapReject AuditKind = "bootstrap_rejected"
)

// AuditEvent records one session lifecycle transition.
type AuditEvent struct {
	Kind     AuditKind
	Username string
	Detail   string
	RemoteIP string
	At       time.Time
}

// AuditRecorder accepts session lifecycle events. Recording is fire and
// forget: implementations must never block the session path and failures
// are logged, not surfaced.
type AuditRecorder interface {
	Record(event AuditEvent)
}

// NoopAudit discards all events. Used when no audit sink is configured and
// in tests.
type NoopAudit struct{}

func (NoopAudit) Record(AuditEvent) {}
