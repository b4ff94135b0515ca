package postgres

import (
	"context"
	"database/sql"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/repository"

	"github.com/lib/pq"
)

type preferenceRepository struct {
	db *sql.DB
}

func NewPreferenceRepository(db *sql.DB) repository.PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) GetByPersonIDs(ctx context.Context, personIDs []int64) ([]domain.NotificationFilterPreference, error) {
	if len(personIDs) == 0 {
		return nil, nil
	}
	query := `SELECT person_id, notifier_type, notification_category FROM notification_filter_preferences
	          WHERE person_id = ANY($1) ORDER BY person_id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(personIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prefs []domain.NotificationFilterPreference
	for rows.Next() {
		var p domain.NotificationFilterPreference
		if err := rows.Scan(&p.PersonID, &p.Notifier, &p.Category); err != nil {
			return nil, err
		}
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}
