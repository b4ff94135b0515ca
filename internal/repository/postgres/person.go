package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/logger"
	"eurekastreams-backend/internal/repository"

	"github.com/lib/pq"
)

const personColumns = `id, account_id, commentable, stream_postable, account_locked, roles,
	display_name, email, title, avatar_id, parent_organization_id, followers_count, following_count, date_added`

type personRepository struct {
	db *sql.DB
}

func NewPersonRepository(db *sql.DB) repository.PersonRepository {
	return &personRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*domain.PersonModelView, error) {
	p := &domain.PersonModelView{}
	var roles []string
	err := row.Scan(&p.ID, &p.AccountID, &p.Commentable, &p.StreamPostable, &p.AccountLocked, pq.Array(&roles),
		&p.DisplayName, &p.Email, &p.Title, &p.AvatarID, &p.ParentOrganizationID, &p.FollowersCount, &p.FollowingCount, &p.DateAdded)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		p.Roles = append(p.Roles, domain.Role(role))
	}
	return p, nil
}

func (r *personRepository) queryPeople(ctx context.Context, query string, arg any) ([]*domain.PersonModelView, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []*domain.PersonModelView
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

func (r *personRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.PersonModelView, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + personColumns + ` FROM people WHERE id = ANY($1)`
	logger.DatabaseCall("SELECT", "people", "ids", len(ids))
	people, err := r.queryPeople(ctx, query, pq.Array(ids))
	logger.DatabaseResult("SELECT", int64(len(people)), err)
	return people, err
}

func (r *personRepository) GetByAccountIDs(ctx context.Context, accountIDs []string) ([]*domain.PersonModelView, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}
	keys := make([]string, len(accountIDs))
	for i, id := range accountIDs {
		keys[i] = domain.NormalizeKey(id)
	}
	query := `SELECT ` + personColumns + ` FROM people WHERE LOWER(account_id) = ANY($1)`
	logger.DatabaseCall("SELECT", "people", "accountIDs", strings.Join(keys, ","))
	people, err := r.queryPeople(ctx, query, pq.Array(keys))
	logger.DatabaseResult("SELECT", int64(len(people)), err)
	return people, err
}

func (r *personRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.PersonModelView, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE LOWER(account_id) = $1`
	p, err := scanPerson(r.db.QueryRowContext(ctx, query, domain.NormalizeKey(accountID)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *personRepository) GetFollowerIDs(ctx context.Context, personID int64) ([]int64, error) {
	query := `SELECT follower_id FROM followers WHERE following_id = $1 ORDER BY follower_id DESC`
	return queryIDs(ctx, r.db, query, personID)
}

func (r *personRepository) GetSystemAdminIDs(ctx context.Context) ([]int64, error) {
	query := `SELECT id FROM people WHERE $1 = ANY(roles) AND NOT account_locked ORDER BY id DESC`
	return queryIDs(ctx, r.db, query, string(domain.RoleSystemAdmin))
}
