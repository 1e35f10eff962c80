package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tastebase/tastebase/internal/model"
)

// Common errors for report repository operations.
var (
	ErrReportNotFound = errors.New("report not found")
)

// CreateReport inserts a new recipe report.
func (r *Repository) CreateReport(ctx context.Context, report *model.Report) error {
	query := `
		INSERT INTO reports (id, user_id, recipe_id, reason, reported_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		report.ID,
		report.UserID,
		report.RecipeID,
		report.Reason,
		report.ReportedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}

// ListReports retrieves all reports with the reporter and recipe summaries
// expanded, newest first.
func (r *Repository) ListReports(ctx context.Context) ([]*model.Report, error) {
	query := `
		SELECT rp.id, rp.user_id, rp.recipe_id, rp.reason, rp.reported_at,
		       u.id, u.name, u.username,
		       rc.id, rc.title
		FROM reports rp
		JOIN users u ON u.id = rp.user_id
		JOIN recipes rc ON rc.id = rp.recipe_id
		ORDER BY rp.reported_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*model.Report, 0)
	for rows.Next() {
		var (
			report   model.Report
			reporter model.ReportUser
			recipe   model.ReportRecipe
		)
		if err := rows.Scan(
			&report.ID,
			&report.UserID,
			&report.RecipeID,
			&report.Reason,
			&report.ReportedAt,
			&reporter.ID,
			&reporter.Name,
			&reporter.Username,
			&recipe.ID,
			&recipe.Title,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		report.Reporter = &reporter
		report.Recipe = &recipe
		reports = append(reports, &report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reports: %w", err)
	}

	return reports, nil
}

// DeleteReport removes a report.
func (r *Repository) DeleteReport(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReportNotFound
	}
	return nil
}
