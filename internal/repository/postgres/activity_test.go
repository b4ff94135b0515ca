package postgres_test

import (
	"context"
	"testing"
	"time"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var activityRowColumns = []string{"id", "verb", "base_object_type", "base_object_properties", "posted_time", "like_count",
	"actor_type", "actor_id", "actor_unique_id", "actor_display_name", "actor_avatar_id",
	"destination_type", "destination_id", "destination_unique_id", "destination_display_name",
	"original_actor_type", "original_actor_id", "original_actor_unique_id", "original_actor_display_name"}

var commentRowColumns = []string{"id", "activity_id", "author_id", "account_id", "display_name", "body", "time_sent"}

func TestActivityRepository_GetByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewActivityRepository(db)
	ctx := context.Background()
	posted := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		activities := sqlmock.NewRows(activityRowColumns).
			AddRow(20, "POST", "NOTE", []byte(`{"content":"hello"}`), posted, 2,
				"PERSON", 1, "jdoe", "Jane Doe", "",
				"GROUP", 9, "eng", "Engineering",
				nil, nil, nil, nil).
			AddRow(10, "SHARE", "NOTE", nil, posted, 0,
				"PERSON", 2, "asmith", "Al Smith", "a1",
				"PERSON", 2, "asmith", "Al Smith",
				"PERSON", 1, "jdoe", "Jane Doe")
		mock.ExpectQuery("SELECT (.+) FROM activities WHERE id = ANY\\(\\$1\\)").
			WithArgs(pq.Array([]int64{10, 20, 30})).
			WillReturnRows(activities)

		comments := sqlmock.NewRows(commentRowColumns).
			AddRow(100, 20, 5, "bob", "Bob", "first", posted).
			AddRow(101, 20, 6, "carl", "Carl", "middle", posted).
			AddRow(102, 20, 5, "bob", "Bob", "last", posted)
		mock.ExpectQuery("SELECT (.+) FROM comments c JOIN people p ON p.id = c.author_id WHERE c.activity_id = ANY\\(\\$1\\)").
			WillReturnRows(comments)

		got, err := repo.GetByIDs(ctx, []int64{10, 20, 30})
		require.NoError(t, err)
		require.Len(t, got, 2)

		reshare, post := got[0], got[1]
		assert.Equal(t, int64(10), reshare.ID)
		assert.True(t, reshare.IsReshare())
		assert.Equal(t, "jdoe", reshare.Author().UniqueID)
		assert.Zero(t, reshare.CommentCount)

		assert.Equal(t, domain.ActivityVerbPost, post.Verb)
		assert.Equal(t, "hello", post.BaseObjectProperties["content"])
		assert.Equal(t, domain.EntityTypeGroup, post.DestinationStream.Type)
		assert.True(t, post.Actor.Active)
		assert.Equal(t, 3, post.CommentCount)
		assert.Equal(t, int64(100), post.FirstComment.ID)
		assert.Equal(t, int64(102), post.LastComment.ID)
		assert.Empty(t, post.Comments)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoneFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM activities").
			WithArgs(pq.Array([]int64{99})).
			WillReturnRows(sqlmock.NewRows(activityRowColumns))

		got, err := repo.GetByIDs(ctx, []int64{99})
		assert.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestActivityRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewActivityRepository(db)
	posted := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM activities WHERE id = ANY\\(\\$1\\)").
		WithArgs(pq.Array([]int64{20})).
		WillReturnRows(sqlmock.NewRows(activityRowColumns).
			AddRow(20, "POST", "NOTE", nil, posted, 0,
				"PERSON", 1, "jdoe", "Jane Doe", "",
				"PERSON", 1, "jdoe", "Jane Doe",
				nil, nil, nil, nil))
	mock.ExpectQuery("SELECT (.+) FROM comments").
		WillReturnRows(sqlmock.NewRows(commentRowColumns).
			AddRow(100, 20, 5, "bob", "Bob", "only", posted))

	a, err := repo.GetByID(context.Background(), 20)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Len(t, a.Comments, 1)
	assert.Equal(t, int64(100), a.FirstComment.ID)
	assert.Nil(t, a.LastComment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepository_GetCommentByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewActivityRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM comments c JOIN people p ON p.id = c.author_id WHERE c.id = \\$1").
			WithArgs(int64(4545)).
			WillReturnRows(sqlmock.NewRows(commentRowColumns).
				AddRow(4545, 4444, 5555, "commenter", "Commenter", "nice", time.Now()))

		c, err := repo.GetCommentByID(ctx, 4545)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, int64(4444), c.ActivityID)
		assert.True(t, c.AuthorActive)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM comments").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(commentRowColumns))

		c, err := repo.GetCommentByID(ctx, 1)
		assert.NoError(t, err)
		assert.Nil(t, c)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepository_IDLists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewActivityRepository(db)
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		call  func() ([]int64, error)
	}{
		{"Commenters", "SELECT DISTINCT author_id FROM comments WHERE activity_id = \\$1", func() ([]int64, error) { return repo.GetCommenterIDs(ctx, 4444) }},
		{"Savers", "SELECT person_id FROM starred_activities WHERE activity_id = \\$1", func() ([]int64, error) { return repo.GetSaverIDs(ctx, 4444) }},
		{"Starred", "SELECT activity_id FROM starred_activities WHERE person_id = \\$1", func() ([]int64, error) { return repo.GetStarredActivityIDs(ctx, 4444) }},
		{"Liked", "SELECT activity_id FROM liked_activities WHERE person_id = \\$1", func() ([]int64, error) { return repo.GetLikedActivityIDs(ctx, 4444) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(tt.query).
				WithArgs(int64(4444)).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9).AddRow(3))

			ids, err := tt.call()
			assert.NoError(t, err)
			assert.Equal(t, []int64{9, 3}, ids)
		})
	}

	t.Run("Stream", func(t *testing.T) {
		mock.ExpectQuery("SELECT id FROM activities WHERE destination_type = \\$1 AND destination_id = \\$2 ORDER BY id DESC").
			WithArgs("GROUP", int64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(30).AddRow(20))

		ids, err := repo.GetStreamActivityIDs(ctx, domain.StreamKey{Type: domain.EntityTypeGroup, ID: 9})
		assert.NoError(t, err)
		assert.Equal(t, []int64{30, 20}, ids)
	})

	t.Run("Likers", func(t *testing.T) {
		mock.ExpectQuery("SELECT activity_id, person_id FROM liked_activities WHERE activity_id = ANY\\(\\$1\\)").
			WithArgs(pq.Array([]int64{20, 10})).
			WillReturnRows(sqlmock.NewRows([]string{"activity_id", "person_id"}).
				AddRow(20, 3).AddRow(20, 1).AddRow(10, 2))

		likers, err := repo.GetLikerIDs(ctx, []int64{20, 10})
		assert.NoError(t, err)
		assert.Equal(t, map[int64][]int64{20: {3, 1}, 10: {2}}, likers)
	})

	t.Run("LikersEmptyInput", func(t *testing.T) {
		likers, err := repo.GetLikerIDs(ctx, nil)
		assert.NoError(t, err)
		assert.Empty(t, likers)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
