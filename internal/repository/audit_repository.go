// Package repository contains the data access logic of the audit
// consumer.  The dashboard owns no other persistent data.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/cinema-dashboard/internal/queue"
)

// errDuplicateKey is MySQL's ER_DUP_ENTRY.
const errDuplicateKey = 1062

// AuditRepo writes audit events to admin_audit_events.
type AuditRepo struct{ DB *sql.DB }

func NewAuditRepo(db *sql.DB) *AuditRepo { return &AuditRepo{DB: db} }

// InsertAuditEvent stores ev.  A redelivered event hits the primary key
// and is accepted silently so the broker can drop it.
func (r *AuditRepo) InsertAuditEvent(ctx context.Context, ev queue.AuditEvent) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO admin_audit_events
		 (id, action, entity, entity_id, actor_id, actor_email, status, detail, occurred_at)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		ev.ID, ev.Action, ev.Entity, ev.EntityID, ev.ActorID, ev.ActorEmail, ev.Status, ev.Detail, ev.OccurredAt)
	if isDuplicate(err) {
		return nil
	}
	return err
}

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == errDuplicateKey
}
