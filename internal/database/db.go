package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Open connects to the audit database and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.DBName = name
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	db := sql.OpenDB(connector)

	// The audit consumer is the only writer.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping %s: %w", cfg.Addr, err)
	}
	return db, nil
}

const auditSchema = `CREATE TABLE IF NOT EXISTS admin_audit_events (
	id          CHAR(36)        NOT NULL PRIMARY KEY,
	action      VARCHAR(32)     NOT NULL,
	entity      VARCHAR(32)     NOT NULL,
	entity_id   BIGINT UNSIGNED NOT NULL,
	actor_id    BIGINT UNSIGNED NOT NULL,
	actor_email VARCHAR(255)    NOT NULL DEFAULT '',
	status      SMALLINT        NOT NULL,
	detail      VARCHAR(255)    NOT NULL DEFAULT '',
	occurred_at DATETIME(3)     NOT NULL,
	INDEX idx_audit_entity (entity, entity_id),
	INDEX idx_audit_actor (actor_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// EnsureSchema creates the audit table when it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, auditSchema)
	return err
}
