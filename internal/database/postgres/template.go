package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tacticbot/tacticbot/internal/domain"
)

// TemplateRepository implements the unit template repository for PostgreSQL
type TemplateRepository struct {
	db *pgxpool.Pool
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// GetTemplates returns every stored unit template
func (r *TemplateRepository) GetTemplates(ctx context.Context) ([]domain.UnitTemplate, error) {
	return r.query(ctx, `SELECT name, role, rarity FROM unit_templates ORDER BY template_id`)
}

// GetTemplatesByRarity returns the stored templates of one rarity tier
func (r *TemplateRepository) GetTemplatesByRarity(ctx context.Context, rarity domain.Rarity) ([]domain.UnitTemplate, error) {
	return r.query(ctx, `SELECT name, role, rarity FROM unit_templates WHERE rarity = $1 ORDER BY template_id`, string(rarity))
}

// SeedTemplates inserts templates that are not already present, keyed by name
func (r *TemplateRepository) SeedTemplates(ctx context.Context, templates []domain.UnitTemplate) error {
	query := `
		INSERT INTO unit_templates (name, role, rarity)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING
	`
	for _, t := range templates {
		if _, err := r.db.Exec(ctx, query, t.Name, string(t.Role), string(t.Rarity)); err != nil {
			return fmt.Errorf("failed to seed template %q: %w", t.Name, err)
		}
	}
	return nil
}

func (r *TemplateRepository) query(ctx context.Context, sql string, args ...any) ([]domain.UnitTemplate, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.UnitTemplate
	for rows.Next() {
		var t domain.UnitTemplate
		if err := rows.Scan(&t.Name, &t.Role, &t.Rarity); err != nil {
			return nil, fmt.Errorf("failed to scan template row: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read template rows: %w", err)
	}
	return templates, nil
}
