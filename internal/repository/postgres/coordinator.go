package postgres

import (
	"context"
	"database/sql"

	"eurekastreams-backend/internal/logger"
	"eurekastreams-backend/internal/repository"
)

type coordinatorRepository struct {
	db *sql.DB
}

func NewCoordinatorRepository(db *sql.DB) repository.CoordinatorRepository {
	return &coordinatorRepository{db: db}
}

// HasGroupCoordinatorAccessRecursively is true for coordinators of the group and
// for coordinators of any organization above it.
func (r *coordinatorRepository) HasGroupCoordinatorAccessRecursively(ctx context.Context, personID, groupID int64) (bool, error) {
	logger.EnterMethod("coordinatorRepository.HasGroupCoordinatorAccessRecursively", "personID", personID, "groupID", groupID)

	query := `WITH RECURSIVE org_tree(id) AS (
	              SELECT parent_organization_id FROM groups WHERE id = $2
	              UNION
	              SELECT o.parent_organization_id FROM organizations o JOIN org_tree t ON o.id = t.id
	              WHERE o.parent_organization_id IS NOT NULL AND o.parent_organization_id <> o.id
	          )
	          SELECT EXISTS (SELECT 1 FROM group_coordinators WHERE group_id = $2 AND person_id = $1)
	              OR EXISTS (SELECT 1 FROM organization_coordinators oc JOIN org_tree t ON oc.organization_id = t.id
	                         WHERE oc.person_id = $1)`
	var ok bool
	err := r.db.QueryRowContext(ctx, query, personID, groupID).Scan(&ok)
	if err != nil {
		logger.ExitMethodWithError("coordinatorRepository.HasGroupCoordinatorAccessRecursively", err)
		return false, err
	}
	logger.ExitMethod("coordinatorRepository.HasGroupCoordinatorAccessRecursively", "access", ok)
	return ok, nil
}

// IsOrgCoordinatorRecursively is true for coordinators of the organization or any
// of its ancestors.
func (r *coordinatorRepository) IsOrgCoordinatorRecursively(ctx context.Context, personID, orgID int64) (bool, error) {
	query := `WITH RECURSIVE org_tree(id) AS (
	              SELECT $2::bigint
	              UNION
	              SELECT o.parent_organization_id FROM organizations o JOIN org_tree t ON o.id = t.id
	              WHERE o.parent_organization_id IS NOT NULL AND o.parent_organization_id <> o.id
	          )
	          SELECT EXISTS (SELECT 1 FROM organization_coordinators oc JOIN org_tree t ON oc.organization_id = t.id
	                         WHERE oc.person_id = $1)`
	var ok bool
	if err := r.db.QueryRowContext(ctx, query, personID, orgID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
