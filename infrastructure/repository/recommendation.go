package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

const (
	recommendationsTable   = "recommendations"
	recommendationsColumns = "id, owner_user_id, campaign_id, type, content, confidence, provider, agreement_level, status, created_at, resolved_at"
)

type RecommendationRepository interface {
	Create(ctx context.Context, rec *domain.Recommendation) error
	GetByID(ctx context.Context, ownerUserID int, id string) (*domain.Recommendation, error)
	List(ctx context.Context, ownerUserID int, filters domain.RecommendationFilters) ([]*domain.Recommendation, error)
	UpdateStatus(ctx context.Context, ownerUserID int, id string, status domain.RecommendationStatus, resolvedAt time.Time) (bool, error)
	LastAppliedAt(ctx context.Context, campaignID string) (*time.Time, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type recommendationRepository struct {
	conn *postgres.Connection
}

func NewRecommendationRepository(conn *postgres.Connection) RecommendationRepository {
	return &recommendationRepository{
		conn: conn,
	}
}

func (r *recommendationRepository) Create(ctx context.Context, rec *domain.Recommendation) error {
	query, args, err := squirrel.
		Insert(recommendationsTable).
		Columns("id", "owner_user_id", "campaign_id", "type", "content", "confidence", "provider", "agreement_level", "status", "created_at").
		Values(rec.ID, rec.OwnerUserID, rec.CampaignID, rec.Type, rec.Content, rec.Confidence, rec.Provider, rec.AgreementLevel, rec.Status, rec.CreatedAt).
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

func (r *recommendationRepository) GetByID(ctx context.Context, ownerUserID int, id string) (*domain.Recommendation, error) {
	query, args, err := squirrel.
		Select(recommendationsColumns).
		From(recommendationsTable).
		Where(squirrel.Eq{"id": id, "owner_user_id": ownerUserID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rec, err := scanRecommendation(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear recomendação: %w", err)
	}

	return rec, nil
}

func (r *recommendationRepository) List(ctx context.Context, ownerUserID int, filters domain.RecommendationFilters) ([]*domain.Recommendation, error) {
	builder := squirrel.
		Select(recommendationsColumns).
		From(recommendationsTable).
		Where(squirrel.Eq{"owner_user_id": ownerUserID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.CampaignID != nil {
		builder = builder.Where(squirrel.Eq{"campaign_id": *filters.CampaignID})
	}

	if filters.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filters.Status})
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

	recs := make([]*domain.Recommendation, 0)
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear recomendação: %w", err)
		}
		recs = append(recs, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return recs, nil
}

// UpdateStatus só altera recomendações pendentes; retorna false quando nada mudou
func (r *recommendationRepository) UpdateStatus(ctx context.Context, ownerUserID int, id string, status domain.RecommendationStatus, resolvedAt time.Time) (bool, error) {
	query, args, err := squirrel.
		Update(recommendationsTable).
		Set("status", status).
		Set("resolved_at", resolvedAt).
		Where(squirrel.Eq{"id": id, "owner_user_id": ownerUserID, "status": domain.RecommendationPending}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, wrapExecError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return affected > 0, nil
}

func (r *recommendationRepository) LastAppliedAt(ctx context.Context, campaignID string) (*time.Time, error) {
	query, args, err := squirrel.
		Select("MAX(resolved_at)").
		From(recommendationsTable).
		Where(squirrel.Eq{"campaign_id": campaignID, "status": domain.RecommendationApplied}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var last sql.NullTime
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&last); err != nil {
		return nil, wrapExecError(err)
	}

	if !last.Valid {
		return nil, nil
	}

	return &last.Time, nil
}

func (r *recommendationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete(recommendationsTable).
		Where(squirrel.Lt{"created_at": cutoff}).
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

func scanRecommendation(row rowScanner) (*domain.Recommendation, error) {
	rec := &domain.Recommendation{}
	var (
		campaignID sql.NullString
		agreement  sql.NullInt64
		resolvedAt sql.NullTime
	)

	if err := row.Scan(
		&rec.ID,
		&rec.OwnerUserID,
		&campaignID,
		&rec.Type,
		&rec.Content,
		&rec.Confidence,
		&rec.Provider,
		&agreement,
		&rec.Status,
		&rec.CreatedAt,
		&resolvedAt,
	); err != nil {
		return nil, err
	}

	if campaignID.Valid {
		rec.CampaignID = &campaignID.String
	}

	if agreement.Valid {
		level := int(agreement.Int64)
		rec.AgreementLevel = &level
	}

	if resolvedAt.Valid {
		rec.ResolvedAt = &resolvedAt.Time
	}

	return rec, nil
}
