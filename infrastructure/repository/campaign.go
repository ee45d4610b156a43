package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/pkg/utils"
)

const (
	campaignsTable   = "campaigns c"
	campaignsColumns = `c.id, c.external_campaign_id, c.external_account_id, c.owner_user_id, c.name, c.channel_type, c.status,
		c.daily_budget, c.impressions, c.clicks, c.conversions, c.conversion_value, c.cost, c.ctr, c.avg_cpc, c.conversion_rate,
		c.actual_cpa, c.actual_roas, c.target_cpa, c.target_roas, c.goal_description, c.last_sync_at`
)

// As metas (target_cpa, target_roas, goal_description) pertencem ao dono da campanha:
// a sincronização só as preenche quando ainda estão vazias
const campaignUpsertSuffix = `
		ON CONFLICT (external_campaign_id, owner_user_id) DO UPDATE SET
			external_account_id = EXCLUDED.external_account_id,
			name = EXCLUDED.name,
			channel_type = EXCLUDED.channel_type,
			status = EXCLUDED.status,
			daily_budget = EXCLUDED.daily_budget,
			impressions = EXCLUDED.impressions,
			clicks = EXCLUDED.clicks,
			conversions = EXCLUDED.conversions,
			conversion_value = EXCLUDED.conversion_value,
			cost = EXCLUDED.cost,
			ctr = EXCLUDED.ctr,
			avg_cpc = EXCLUDED.avg_cpc,
			conversion_rate = EXCLUDED.conversion_rate,
			actual_cpa = EXCLUDED.actual_cpa,
			actual_roas = EXCLUDED.actual_roas,
			target_cpa = COALESCE(campaigns.target_cpa, EXCLUDED.target_cpa),
			target_roas = COALESCE(campaigns.target_roas, EXCLUDED.target_roas),
			last_sync_at = EXCLUDED.last_sync_at
	`

type CampaignRepository interface {
	UpsertAccountCampaigns(ctx context.Context, ownerUserID int, accountID string, campaigns []*domain.Campaign) error
	ListByOwner(ctx context.Context, ownerUserID int, filters domain.CampaignFilters) ([]*domain.Campaign, error)
	GetByID(ctx context.Context, ownerUserID int, campaignID string) (*domain.Campaign, error)
	UpdateGoals(ctx context.Context, ownerUserID int, campaignID string, goals *domain.UpdateCampaignGoalsRequest) error
	DeleteByOwner(ctx context.Context, ownerUserID int) (int64, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

// UpsertAccountCampaigns grava todas as campanhas de uma conta numa única transação,
// para que nenhuma escrita parcial da conta fique visível
func (r *campaignRepository) UpsertAccountCampaigns(ctx context.Context, ownerUserID int, accountID string, campaigns []*domain.Campaign) error {
	if len(campaigns) == 0 {
		return nil
	}

	statements := make([]struct {
		query string
		args  []any
	}, 0, len(campaigns))

	for _, c := range campaigns {
		if c.OwnerUserID != ownerUserID || c.ExternalAccountID != accountID {
			return fmt.Errorf("campanha %s não pertence à conta %s do usuário %d", c.ExternalCampaignID, accountID, ownerUserID)
		}

		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar ID da campanha: %w", err)
		}

		query, args, err := squirrel.StatementBuilder.
			Insert("campaigns").
			Columns(
				"id", "external_campaign_id", "external_account_id", "owner_user_id", "name", "channel_type", "status",
				"daily_budget", "impressions", "clicks", "conversions", "conversion_value", "cost", "ctr", "avg_cpc",
				"conversion_rate", "actual_cpa", "actual_roas", "target_cpa", "target_roas", "last_sync_at",
			).
			Values(
				id, c.ExternalCampaignID, c.ExternalAccountID, c.OwnerUserID, c.Name, c.ChannelType, c.Status,
				c.DailyBudget, c.Impressions, c.Clicks, c.Conversions, c.ConversionValue, c.Cost, c.CTR, c.AvgCPC,
				c.ConversionRate, c.ActualCPA, c.ActualROAS, c.TargetCPA, c.TargetROAS, c.LastSyncAt,
			).
			Suffix(campaignUpsertSuffix).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		statements = append(statements, struct {
			query string
			args  []any
		}{query, args})
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt.query, stmt.args...); err != nil {
				return wrapExecError(err)
			}
		}
		return nil
	})
}

func (r *campaignRepository) ListByOwner(ctx context.Context, ownerUserID int, filters domain.CampaignFilters) ([]*domain.Campaign, error) {
	builder := squirrel.
		Select(campaignsColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"c.owner_user_id": ownerUserID}).
		OrderBy("c.cost DESC", "c.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.ExternalAccountID != nil {
		builder = builder.Where(squirrel.Eq{"c.external_account_id": *filters.ExternalAccountID})
	}

	if filters.Status != nil {
		builder = builder.Where(squirrel.Eq{"c.status": *filters.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapExecError(err)
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		campaigns = append(campaigns, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

func (r *campaignRepository) GetByID(ctx context.Context, ownerUserID int, campaignID string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignsColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"c.id": campaignID, "c.owner_user_id": ownerUserID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	c, err := scanCampaign(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
	}

	return c, nil
}

// UpdateGoals grava as metas definidas pelo dono, que a sincronização não sobrescreve
func (r *campaignRepository) UpdateGoals(ctx context.Context, ownerUserID int, campaignID string, goals *domain.UpdateCampaignGoalsRequest) error {
	query, args, err := squirrel.
		Update("campaigns").
		Set("target_cpa", goals.TargetCPA).
		Set("target_roas", goals.TargetROAS).
		Set("goal_description", goals.GoalDescription).
		Where(squirrel.Eq{"id": campaignID, "owner_user_id": ownerUserID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapExecError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *campaignRepository) DeleteByOwner(ctx context.Context, ownerUserID int) (int64, error) {
	query, args, err := squirrel.
		Delete("campaigns").
		Where(squirrel.Eq{"owner_user_id": ownerUserID}).
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*domain.Campaign, error) {
	c := &domain.Campaign{}
	var goal sql.NullString

	if err := row.Scan(
		&c.ID,
		&c.ExternalCampaignID,
		&c.ExternalAccountID,
		&c.OwnerUserID,
		&c.Name,
		&c.ChannelType,
		&c.Status,
		&c.DailyBudget,
		&c.Impressions,
		&c.Clicks,
		&c.Conversions,
		&c.ConversionValue,
		&c.Cost,
		&c.CTR,
		&c.AvgCPC,
		&c.ConversionRate,
		&c.ActualCPA,
		&c.ActualROAS,
		&c.TargetCPA,
		&c.TargetROAS,
		&goal,
		&c.LastSyncAt,
	); err != nil {
		return nil, err
	}

	if goal.Valid {
		c.GoalDescription = &goal.String
	}

	return c, nil
}
