package postgres

import (
	"context"
	"database/sql"

	"eurekastreams-backend/internal/repository"

	"github.com/lib/pq"
)

type deviceRepository struct {
	db *sql.DB
}

func NewDeviceRepository(db *sql.DB) repository.DeviceRepository {
	return &deviceRepository{db: db}
}

// GetPushTokens returns the registered device tokens per person. People without a
// device are absent from the map.
func (r *deviceRepository) GetPushTokens(ctx context.Context, personIDs []int64) (map[int64][]string, error) {
	tokens := make(map[int64][]string)
	if len(personIDs) == 0 {
		return tokens, nil
	}
	query := `SELECT person_id, push_token FROM person_devices
	          WHERE person_id = ANY($1) AND push_token <> '' ORDER BY person_id, id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(personIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var personID int64
		var token string
		if err := rows.Scan(&personID, &token); err != nil {
			return nil, err
		}
		tokens[personID] = append(tokens[personID], token)
	}
	return tokens, rows.Err()
}
