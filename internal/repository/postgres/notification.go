package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/logger"
	"eurekastreams-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.InAppNotification) error {
	logger.EnterMethod("notificationRepository.Create", "recipientID", n.RecipientID, "type", n.Type, "eventID", n.EventID)

	if n.CreatedOn.IsZero() {
		n.CreatedOn = time.Now().UTC()
	}
	if n.AggregationCount <= 0 {
		n.AggregationCount = 1
	}
	query := `INSERT INTO in_app_notifications (event_id, recipient_id, notification_type, message, url, high_priority, is_read, aggregation_count, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	logger.DatabaseCall("INSERT", "in_app_notifications", "recipientID", n.RecipientID)

	err := r.db.QueryRowContext(ctx, query, n.EventID, n.RecipientID, string(n.Type), n.Message, n.URL, n.HighPriority, n.IsRead, n.AggregationCount, n.CreatedOn).Scan(&n.ID)
	logger.DatabaseResult("INSERT", 1, err, "notificationID", n.ID)

	if err != nil {
		logger.ExitMethodWithError("notificationRepository.Create", err, "recipientID", n.RecipientID)
	} else {
		logger.ExitMethod("notificationRepository.Create", "notificationID", n.ID)
	}
	return err
}

func (r *notificationRepository) FindUnread(ctx context.Context, recipientID int64, t domain.NotificationType, url string) (*domain.InAppNotification, error) {
	query := `SELECT id, event_id, recipient_id, notification_type, message, COALESCE(url, ''), high_priority, is_read, aggregation_count, created_on
	          FROM in_app_notifications
	          WHERE recipient_id = $1 AND notification_type = $2 AND COALESCE(url, '') = $3 AND NOT is_read
	          ORDER BY created_on DESC, id DESC LIMIT 1`
	logger.DatabaseCall("SELECT", "in_app_notifications", "recipientID", recipientID, "type", t)

	var n domain.InAppNotification
	err := r.db.QueryRowContext(ctx, query, recipientID, string(t), url).
		Scan(&n.ID, &n.EventID, &n.RecipientID, &n.Type, &n.Message, &n.URL, &n.HighPriority, &n.IsRead, &n.AggregationCount, &n.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		logger.DatabaseResult("SELECT", 0, nil)
		return nil, nil
	}
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	logger.DatabaseResult("SELECT", 1, nil, "notificationID", n.ID)
	return &n, nil
}

func (r *notificationRepository) Update(ctx context.Context, n *domain.InAppNotification) error {
	query := `UPDATE in_app_notifications
	          SET event_id = $1, message = $2, high_priority = $3, aggregation_count = $4, created_on = $5
	          WHERE id = $6`
	logger.DatabaseCall("UPDATE", "in_app_notifications", "notificationID", n.ID)
	result, err := r.db.ExecContext(ctx, query, n.EventID, n.Message, n.HighPriority, n.AggregationCount, n.CreatedOn, n.ID)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return err
	}
	rows, err := result.RowsAffected()
	logger.DatabaseResult("UPDATE", rows, err)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("notification %d: %w", n.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *notificationRepository) List(ctx context.Context, recipientID int64, limit, offset int32) ([]domain.InAppNotification, int32, error) {
	query := `SELECT id, event_id, recipient_id, notification_type, message, COALESCE(url, ''), high_priority, is_read, aggregation_count, created_on
	          FROM in_app_notifications WHERE recipient_id = $1 ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, recipientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var count int32
	countQuery := `SELECT count(*) FROM in_app_notifications WHERE recipient_id = $1`
	err = r.db.QueryRowContext(ctx, countQuery, recipientID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	var notes []domain.InAppNotification
	for rows.Next() {
		var n domain.InAppNotification
		if err := rows.Scan(&n.ID, &n.EventID, &n.RecipientID, &n.Type, &n.Message, &n.URL, &n.HighPriority, &n.IsRead, &n.AggregationCount, &n.CreatedOn); err != nil {
			return nil, 0, err
		}
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, recipientID int64) error {
	query := `UPDATE in_app_notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, recipientID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("notification %d for recipient %d: %w", id, recipientID, domain.ErrNotFound)
	}
	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID int64) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM in_app_notifications WHERE recipient_id = $1 AND NOT is_read`
	err := r.db.QueryRowContext(ctx, query, recipientID).Scan(&count)
	return count, err
}

func (r *notificationRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM in_app_notifications WHERE created_on < $1`
	logger.DatabaseCall("DELETE", "in_app_notifications", "cutoff", cutoff)
	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		logger.DatabaseResult("DELETE", 0, err)
		return 0, err
	}
	n, err := result.RowsAffected()
	logger.DatabaseResult("DELETE", n, err)
	return n, err
}
