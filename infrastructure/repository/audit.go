package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type AuditRepository interface {
	Record(ctx context.Context, entry *domain.AuditEntry) error
	LastByAction(ctx context.Context, action domain.AuditAction) (*domain.AuditEntry, error)
}

type auditRepository struct {
	conn *postgres.Connection
}

func NewAuditRepository(conn *postgres.Connection) AuditRepository {
	return &auditRepository{
		conn: conn,
	}
}

func (r *auditRepository) Record(ctx context.Context, entry *domain.AuditEntry) error {
	details := entry.Details
	if details == nil {
		details = map[string]any{}
	}

	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("erro ao serializar detalhes da auditoria: %w", err)
	}

	query, args, err := squirrel.
		Insert("audit_log").
		Columns("user_id", "action", "details", "created_at").
		Values(entry.UserID, entry.Action, string(payload), entry.Timestamp).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapExecError(err)
	}

	return nil
}

func (r *auditRepository) LastByAction(ctx context.Context, action domain.AuditAction) (*domain.AuditEntry, error) {
	query, args, err := squirrel.
		Select("user_id", "action", "details", "created_at").
		From("audit_log").
		Where(squirrel.Eq{"action": action}).
		OrderBy("created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	entry := &domain.AuditEntry{}
	var (
		userID  sql.NullInt64
		payload []byte
	)

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&userID, &entry.Action, &payload, &entry.Timestamp)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, wrapExecError(err)
	}

	if userID.Valid {
		id := int(userID.Int64)
		entry.UserID = &id
	}

	if err := json.Unmarshal(payload, &entry.Details); err != nil {
		return nil, fmt.Errorf("erro ao ler detalhes da auditoria: %w", err)
	}

	return entry, nil
}
