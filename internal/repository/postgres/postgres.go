package postgres

import (
	"database/sql"

	"eurekastreams-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.PersonRepository
	repository.GroupRepository
	repository.CoordinatorRepository
	repository.ActivityRepository
	repository.NotificationRepository
	repository.PreferenceRepository
	repository.DeviceRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		PersonRepository:       NewPersonRepository(db),
		GroupRepository:        NewGroupRepository(db),
		CoordinatorRepository:  NewCoordinatorRepository(db),
		ActivityRepository:     NewActivityRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		PreferenceRepository:   NewPreferenceRepository(db),
		DeviceRepository:       NewDeviceRepository(db),
	}
}
