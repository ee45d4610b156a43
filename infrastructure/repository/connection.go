package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/pkg/secret"
)

const (
	connectionsTable   = "ads_connections"
	connectionsColumns = "user_id, root_account_id, refresh_token, active, connected_at"
)

type ConnectionRepository interface {
	ListActive(ctx context.Context) ([]*domain.AdsConnection, error)
	GetByUserID(ctx context.Context, userID int) (*domain.AdsConnection, error)
	Save(ctx context.Context, conn *domain.AdsConnection) error
	Deactivate(ctx context.Context, userID int) error
}

type connectionRepository struct {
	conn *postgres.Connection
	box  *secret.Box
}

func NewConnectionRepository(conn *postgres.Connection, box *secret.Box) ConnectionRepository {
	return &connectionRepository{
		conn: conn,
		box:  box,
	}
}

func (r *connectionRepository) ListActive(ctx context.Context) ([]*domain.AdsConnection, error) {
	query, args, err := squirrel.
		Select(connectionsColumns).
		From(connectionsTable).
		Where(squirrel.Eq{"active": true}).
		OrderBy("user_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapExecError(err)
	}
	defer rows.Close()

	connections := make([]*domain.AdsConnection, 0)
	for rows.Next() {
		c, err := r.scanConnection(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear conexão: %w", err)
		}
		connections = append(connections, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return connections, nil
}

func (r *connectionRepository) GetByUserID(ctx context.Context, userID int) (*domain.AdsConnection, error) {
	query, args, err := squirrel.
		Select(connectionsColumns).
		From(connectionsTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	c, err := r.scanConnection(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear conexão: %w", err)
	}

	return c, nil
}

// Save grava (ou reativa) a conexão do usuário com o refresh token cifrado
func (r *connectionRepository) Save(ctx context.Context, c *domain.AdsConnection) error {
	sealed, err := r.box.Seal(c.RefreshToken)
	if err != nil {
		return fmt.Errorf("erro ao cifrar refresh token: %w", err)
	}

	query, args, err := squirrel.
		Insert(connectionsTable).
		Columns("user_id", "root_account_id", "refresh_token", "active", "connected_at").
		Values(c.UserID, c.RootAccountID, sealed, true, c.ConnectedAt).
		Suffix(`
			ON CONFLICT (user_id) DO UPDATE SET
				root_account_id = EXCLUDED.root_account_id,
				refresh_token = EXCLUDED.refresh_token,
				active = TRUE,
				connected_at = EXCLUDED.connected_at,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapExecError(err)
	}

	c.Active = true
	return nil
}

// Deactivate desativa a conexão e apaga a credencial guardada
func (r *connectionRepository) Deactivate(ctx context.Context, userID int) error {
	query, args, err := squirrel.
		Update(connectionsTable).
		Set("active", false).
		Set("refresh_token", "").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID}).
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

// scanConnection decifra o refresh token. Um token que não decifra vira credencial
// vazia, e a conexão passa a ser tratada como inutilizável pela sincronização.
func (r *connectionRepository) scanConnection(row rowScanner) (*domain.AdsConnection, error) {
	c := &domain.AdsConnection{}
	var sealed string

	if err := row.Scan(&c.UserID, &c.RootAccountID, &sealed, &c.Active, &c.ConnectedAt); err != nil {
		return nil, err
	}

	if sealed == "" {
		return c, nil
	}

	plain, err := r.box.Open(sealed)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": c.UserID,
			"error":   err,
		}).Warn("Não foi possível decifrar o refresh token da conexão")
		return c, nil
	}

	c.RefreshToken = plain
	return c, nil
}
