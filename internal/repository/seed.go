package repository

import (
	"context"
	"fmt"

	"github.com/winterfair/fairbot/internal/domain"
)

// SeedCatalog inserts the reference catalog rows, keeping rows that already
// exist untouched so redeploys do not clobber tuned content.
func (s *SQLiteStore) SeedCatalog(ctx context.Context, pavilions []*domain.Pavilion, tasks []*domain.Task, facts []*domain.Fact) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertPavilion = `
		INSERT INTO pavilions (id, name, emoji, location, price, reward, description, atmosphere, tasks_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`
	for _, pav := range pavilions {
		if _, err := tx.ExecContext(ctx, insertPavilion,
			pav.ID, pav.Name, pav.Emoji, pav.Location, pav.Price, pav.Reward, pav.Description, pav.Atmosphere, pav.TasksCount,
		); err != nil {
			return fmt.Errorf("seed pavilion %d: %w", pav.ID, err)
		}
	}

	const insertTask = `
		INSERT INTO tasks (id, pavilion_id, name, emoji, type, reward, fact_id)
		VALUES (?, ?, ?, ?, ?, ?, NULLIF(?, 0))
		ON CONFLICT(id) DO NOTHING
	`
	for _, task := range tasks {
		if _, err := tx.ExecContext(ctx, insertTask,
			task.ID, task.PavilionID, task.Name, task.Emoji, task.Type, task.Reward, task.FactID,
		); err != nil {
			return fmt.Errorf("seed task %d: %w", task.ID, err)
		}
	}

	const insertFact = `
		INSERT INTO facts (id, pavilion_id, text) VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`
	for _, fact := range facts {
		if _, err := tx.ExecContext(ctx, insertFact, fact.ID, fact.PavilionID, fact.Text); err != nil {
			return fmt.Errorf("seed fact %d: %w", fact.ID, err)
		}
	}

	return tx.Commit()
}
