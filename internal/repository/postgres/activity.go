package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/logger"
	"eurekastreams-backend/internal/repository"

	"github.com/lib/pq"
)

const activityColumns = `id, verb, base_object_type, base_object_properties, posted_time, like_count,
	actor_type, actor_id, actor_unique_id, actor_display_name, COALESCE(actor_avatar_id, ''),
	destination_type, destination_id, destination_unique_id, destination_display_name,
	original_actor_type, original_actor_id, original_actor_unique_id, original_actor_display_name`

const commentColumns = `c.id, c.activity_id, c.author_id, p.account_id, COALESCE(p.display_name, ''), c.body, c.time_sent`

type activityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

func scanActivity(row rowScanner) (*domain.ActivityDTO, error) {
	a := &domain.ActivityDTO{
		Actor:             &domain.StreamEntityDTO{Active: true},
		DestinationStream: &domain.StreamEntityDTO{},
	}
	var props []byte
	var origType, origUniqueID, origName sql.NullString
	var origID sql.NullInt64
	err := row.Scan(&a.ID, &a.Verb, &a.BaseObjectType, &props, &a.PostedTime, &a.LikeCount,
		&a.Actor.Type, &a.Actor.ID, &a.Actor.UniqueID, &a.Actor.DisplayName, &a.Actor.AvatarID,
		&a.DestinationStream.Type, &a.DestinationStream.ID, &a.DestinationStream.UniqueID, &a.DestinationStream.DisplayName,
		&origType, &origID, &origUniqueID, &origName)
	if err != nil {
		return nil, err
	}
	if len(props) > 0 {
		if err := json.Unmarshal(props, &a.BaseObjectProperties); err != nil {
			return nil, fmt.Errorf("activity %d properties: %w", a.ID, err)
		}
	}
	if origID.Valid {
		a.OriginalActor = &domain.StreamEntityDTO{
			ID:          origID.Int64,
			Type:        domain.EntityType(origType.String),
			UniqueID:    origUniqueID.String,
			DisplayName: origName.String,
			Active:      true,
		}
	}
	return a, nil
}

func scanComment(row rowScanner) (*domain.CommentDTO, error) {
	c := &domain.CommentDTO{AuthorActive: true}
	if err := row.Scan(&c.ID, &c.ActivityID, &c.AuthorID, &c.AuthorAccountID, &c.AuthorDisplayName, &c.Body, &c.TimeSent); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *activityRepository) GetByID(ctx context.Context, id int64) (*domain.ActivityDTO, error) {
	activities, err := r.load(ctx, []int64{id}, true)
	if err != nil || len(activities) == 0 {
		return nil, err
	}
	return activities[0], nil
}

// GetByIDs returns the activities found, in the order of ids, with their first
// and last comments.
func (r *activityRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.ActivityDTO, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.load(ctx, ids, false)
}

func (r *activityRepository) load(ctx context.Context, ids []int64, allComments bool) ([]*domain.ActivityDTO, error) {
	logger.EnterMethod("activityRepository.load", "count", len(ids), "allComments", allComments)

	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = ANY($1)`
	logger.DatabaseCall("SELECT", "activities", "count", len(ids))
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		logger.ExitMethodWithError("activityRepository.load", err)
		return nil, err
	}
	byID := make(map[int64]*domain.ActivityDTO, len(ids))
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			rows.Close()
			logger.ExitMethodWithError("activityRepository.load", err)
			return nil, err
		}
		byID[a.ID] = a
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		logger.ExitMethodWithError("activityRepository.load", err)
		return nil, err
	}
	logger.DatabaseResult("SELECT", int64(len(byID)), nil)
	if len(byID) == 0 {
		logger.ExitMethod("activityRepository.load", "found", 0)
		return nil, nil
	}

	if err := r.attachComments(ctx, byID, allComments); err != nil {
		logger.ExitMethodWithError("activityRepository.load", err)
		return nil, err
	}

	activities := make([]*domain.ActivityDTO, 0, len(byID))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			activities = append(activities, a)
		}
	}
	logger.ExitMethod("activityRepository.load", "found", len(activities))
	return activities, nil
}

func (r *activityRepository) attachComments(ctx context.Context, byID map[int64]*domain.ActivityDTO, all bool) error {
	ids := make([]int64, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	query := `SELECT ` + commentColumns + ` FROM comments c JOIN people p ON p.id = c.author_id
	          WHERE c.activity_id = ANY($1) ORDER BY c.activity_id, c.id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return err
		}
		a := byID[c.ActivityID]
		if a == nil {
			continue
		}
		a.CommentCount++
		if a.FirstComment == nil {
			a.FirstComment = c
		} else {
			a.LastComment = c
		}
		if all {
			a.Comments = append(a.Comments, c)
		}
	}
	return rows.Err()
}

func (r *activityRepository) GetCommentByID(ctx context.Context, id int64) (*domain.CommentDTO, error) {
	query := `SELECT ` + commentColumns + ` FROM comments c JOIN people p ON p.id = c.author_id WHERE c.id = $1`
	c, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *activityRepository) GetCommenterIDs(ctx context.Context, activityID int64) ([]int64, error) {
	query := `SELECT DISTINCT author_id FROM comments WHERE activity_id = $1 ORDER BY author_id DESC`
	return queryIDs(ctx, r.db, query, activityID)
}

func (r *activityRepository) GetSaverIDs(ctx context.Context, activityID int64) ([]int64, error) {
	query := `SELECT person_id FROM starred_activities WHERE activity_id = $1 ORDER BY person_id DESC`
	return queryIDs(ctx, r.db, query, activityID)
}

func (r *activityRepository) GetStarredActivityIDs(ctx context.Context, personID int64) ([]int64, error) {
	query := `SELECT activity_id FROM starred_activities WHERE person_id = $1 ORDER BY activity_id DESC`
	return queryIDs(ctx, r.db, query, personID)
}

func (r *activityRepository) GetLikedActivityIDs(ctx context.Context, personID int64) ([]int64, error) {
	query := `SELECT activity_id FROM liked_activities WHERE person_id = $1 ORDER BY activity_id DESC`
	return queryIDs(ctx, r.db, query, personID)
}

// GetLikerIDs returns, per activity, its likers in the order they liked it.
// Activities nobody liked are absent from the map.
func (r *activityRepository) GetLikerIDs(ctx context.Context, activityIDs []int64) (map[int64][]int64, error) {
	likers := make(map[int64][]int64)
	if len(activityIDs) == 0 {
		return likers, nil
	}
	query := `SELECT activity_id, person_id FROM liked_activities
	          WHERE activity_id = ANY($1) ORDER BY activity_id, date_liked, person_id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(activityIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var activityID, personID int64
		if err := rows.Scan(&activityID, &personID); err != nil {
			return nil, err
		}
		likers[activityID] = append(likers[activityID], personID)
	}
	return likers, rows.Err()
}

func (r *activityRepository) GetStreamActivityIDs(ctx context.Context, stream domain.StreamKey) ([]int64, error) {
	query := `SELECT id FROM activities WHERE destination_type = $1 AND destination_id = $2 ORDER BY id DESC`
	return queryIDs(ctx, r.db, query, string(stream.Type), stream.ID)
}
