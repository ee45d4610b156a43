package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

const (
	accountsTable   = "external_accounts ea"
	accountsColumns = "ea.account_id, ea.owner_user_id, ea.display_name, ea.is_manager, ea.parent_account_id, ea.is_primary, ea.is_selected, ea.created_at, ea.updated_at"
)

type AccountRepository interface {
	ListByOwner(ctx context.Context, userID int) ([]*domain.ExternalAccount, error)
	ListSelectedAccountIDs(ctx context.Context, userID int) ([]string, error)
	UpsertAccounts(ctx context.Context, accounts []*domain.ExternalAccount) error
	SetSelection(ctx context.Context, userID int, accountIDs []string) error
	DeleteByOwner(ctx context.Context, userID int) (int64, error)
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (r *accountRepository) ListByOwner(ctx context.Context, userID int) ([]*domain.ExternalAccount, error) {
	query, args, err := squirrel.
		Select(accountsColumns).
		From(accountsTable).
		Where(squirrel.Eq{"ea.owner_user_id": userID}).
		OrderBy("ea.is_manager DESC", "ea.display_name ASC").
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

	accounts := make([]*domain.ExternalAccount, 0)
	for rows.Next() {
		acc, err := r.deserializeAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear conta: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accounts, nil
}

func (r *accountRepository) deserializeAccount(rows *sql.Rows) (*domain.ExternalAccount, error) {
	acc := &domain.ExternalAccount{}
	var parent sql.NullString

	if err := rows.Scan(
		&acc.AccountID,
		&acc.OwnerUserID,
		&acc.DisplayName,
		&acc.IsManager,
		&parent,
		&acc.IsPrimary,
		&acc.IsSelected,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if parent.Valid {
		acc.ParentAccountID = &parent.String
	}

	return acc, nil
}

func (r *accountRepository) ListSelectedAccountIDs(ctx context.Context, userID int) ([]string, error) {
	query, args, err := squirrel.
		Select("ea.account_id").
		From(accountsTable).
		Where(squirrel.Eq{"ea.owner_user_id": userID, "ea.is_selected": true, "ea.is_manager": false}).
		OrderBy("ea.account_id ASC").
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

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("erro ao escanear conta selecionada: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// UpsertAccounts grava as contas resolvidas preservando a seleção feita pelo dono
func (r *accountRepository) UpsertAccounts(ctx context.Context, accounts []*domain.ExternalAccount) error {
	if len(accounts) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("external_accounts").
		Columns("account_id", "owner_user_id", "display_name", "is_manager", "parent_account_id", "is_primary").
		PlaceholderFormat(squirrel.Dollar)

	for _, acc := range accounts {
		query = query.Values(
			acc.AccountID,
			acc.OwnerUserID,
			acc.DisplayName,
			acc.IsManager,
			acc.ParentAccountID,
			acc.IsPrimary,
		)
	}

	query = query.Suffix(`
			ON CONFLICT (account_id, owner_user_id) DO UPDATE SET
				display_name = EXCLUDED.display_name,
				is_manager = EXCLUDED.is_manager,
				parent_account_id = EXCLUDED.parent_account_id,
				is_primary = EXCLUDED.is_primary,
				updated_at = NOW()
		`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return wrapExecError(err)
	}

	return nil
}

// SetSelection substitui a seleção de contas do usuário de forma atômica
func (r *accountRepository) SetSelection(ctx context.Context, userID int, accountIDs []string) error {
	clearSQL, clearArgs, err := squirrel.
		Update("external_accounts").
		Set("is_selected", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"owner_user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	selectSQL, selectArgs, err := squirrel.
		Update("external_accounts").
		Set("is_selected", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"owner_user_id": userID, "account_id": accountIDs}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, clearSQL, clearArgs...); err != nil {
			return wrapExecError(err)
		}

		if len(accountIDs) == 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx, selectSQL, selectArgs...); err != nil {
			return wrapExecError(err)
		}
		return nil
	})
}

// DeleteByOwner remove as contas do usuário (e, em cascata, suas campanhas)
func (r *accountRepository) DeleteByOwner(ctx context.Context, userID int) (int64, error) {
	query, args, err := squirrel.
		Delete("external_accounts").
		Where(squirrel.Eq{"owner_user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapExecError(err)
	}

	return result.RowsAffected()
}
