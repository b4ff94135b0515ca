package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/logger"
	"eurekastreams-backend/internal/repository"

	"github.com/lib/pq"
)

const groupColumns = `id, short_name, name, public, commentable, stream_postable, pending,
	description, avatar_id, parent_organization_id, followers_count, created_by_account_id, date_added`

type groupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) repository.GroupRepository {
	return &groupRepository{db: db}
}

func scanGroup(row rowScanner) (*domain.DomainGroupModelView, error) {
	g := &domain.DomainGroupModelView{}
	err := row.Scan(&g.ID, &g.ShortName, &g.Name, &g.Public, &g.Commentable, &g.StreamPostable, &g.Pending,
		&g.Description, &g.AvatarID, &g.ParentOrganizationID, &g.FollowersCount, &g.CreatedByAccountID, &g.DateAdded)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *groupRepository) GetByID(ctx context.Context, id int64) (*domain.DomainGroupModelView, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE id = $1`
	g, err := scanGroup(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *groupRepository) GetByShortNames(ctx context.Context, shortNames []string) ([]*domain.DomainGroupModelView, error) {
	if len(shortNames) == 0 {
		return nil, nil
	}
	keys := make([]string, len(shortNames))
	for i, name := range shortNames {
		keys[i] = domain.NormalizeKey(name)
	}

	query := `SELECT ` + groupColumns + ` FROM groups WHERE LOWER(short_name) = ANY($1)`
	logger.DatabaseCall("SELECT", "groups", "shortNames", len(keys))
	rows, err := r.db.QueryContext(ctx, query, pq.Array(keys))
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	var groups []*domain.DomainGroupModelView
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	logger.DatabaseResult("SELECT", int64(len(groups)), rows.Err())
	return groups, rows.Err()
}

func (r *groupRepository) GetCoordinatorIDs(ctx context.Context, groupID int64) ([]int64, error) {
	query := `SELECT person_id FROM group_coordinators WHERE group_id = $1 ORDER BY person_id DESC`
	return queryIDs(ctx, r.db, query, groupID)
}

func (r *groupRepository) GetSubscriberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	query := `SELECT follower_id FROM group_followers
	          WHERE group_id = $1 AND receive_new_activity_notifications
	          ORDER BY follower_id DESC`
	return queryIDs(ctx, r.db, query, groupID)
}

func (r *groupRepository) GetUnrestrictedSubscriberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	query := `SELECT follower_id FROM group_followers
	          WHERE group_id = $1 AND receive_new_activity_notifications AND NOT coordinator_only_notifications
	          ORDER BY follower_id DESC`
	return queryIDs(ctx, r.db, query, groupID)
}
