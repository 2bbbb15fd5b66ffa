package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/civicflow/civic-portal/internal/core/ports"
)

const auditCollection = "session_events"

// AuditRepository persists session lifecycle events for operator forensics
// (who signed in from where, which stale tokens were rejected).
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Kind     string `bson:"kind"`
	Username string `bson:"username,omitempty"`
	Detail   string `bson:"detail,omitempty"`
	RemoteIP string `bson:"remote_ip,omitempty"`
	At       int64  `bson:"at"`
}

// Insert writes one audit event.
func (r *AuditRepository) Insert(ctx context.Context, ev ports.AuditEvent) error {
	doc := auditDoc{
		Kind:     string(ev.Kind),
		Username: ev.Username,
		Detail:   ev.Detail,
		RemoteIP: ev.RemoteIP,
		At:       ev.At.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
