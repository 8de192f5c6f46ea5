package sqlite

import (
	"context"
	"time"

	"github.com/xingubit/isperp/internal/erp/domain"
)

type setupStatusRepo struct {
	db dbtx
}

func (r *setupStatusRepo) GetSetupStatus(ctx context.Context) (domain.SetupStatus, error) {
	var s domain.SetupStatus
	err := r.db.QueryRowContext(ctx,
		`SELECT completed, step FROM setup_status WHERE id = 1`).
		Scan(&s.Completed, &s.Step)
	if err != nil {
		return domain.SetupStatus{}, mapNotFound(err)
	}
	return s, nil
}

func (r *setupStatusRepo) UpsertSetupStatus(ctx context.Context, s domain.SetupStatus) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO setup_status (id, completed, step, created_at, updated_at)
		 VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		        completed  = excluded.completed,
		        step       = excluded.step,
		        updated_at = excluded.updated_at`,
		s.Completed, s.Step, now, now)
	return err
}
