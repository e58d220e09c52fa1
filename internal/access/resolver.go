// Package access decides whether a user may perform an action on a resource.
// The decision walks ownership, then share acceptance, then permission flags,
// and fails closed whenever data is missing.
package access

import (
	"context"
	"fmt"

	"github.com/focusflowhq/backend/internal/domain"
	"github.com/google/uuid"
)

// ResourceType identifies which table a resource id points into
type ResourceType string

const (
	ResourceWorkspace      ResourceType = "workspace"
	ResourceGoal           ResourceType = "goal"
	ResourceTask           ResourceType = "task"
	ResourceTrackingRecord ResourceType = "tracking_record"
)

// Action is a capability being requested on a resource
type Action string

const (
	ActionList         Action = "list"
	ActionEdit         Action = "edit"
	ActionDelete       Action = "delete"
	ActionAddTask      Action = "addTask"
	ActionSubmitRecord Action = "submitRecord"
)

// Ref locates a resource's owner and containing workspace
type Ref struct {
	OwnerID     uuid.UUID
	WorkspaceID uuid.UUID
}

// Store provides the reads the resolver needs. Lookups return (nil, nil) when
// the row does not exist; only infrastructure failures return an error.
type Store interface {
	GetWorkspaceRef(ctx context.Context, id uuid.UUID) (*Ref, error)
	GetGoalRef(ctx context.Context, id uuid.UUID) (*Ref, error)
	GetTaskRef(ctx context.Context, id uuid.UUID) (*Ref, error)
	GetTrackingRecordTask(ctx context.Context, id uuid.UUID) (*uuid.UUID, error)
	ListShares(ctx context.Context, workspaceID, userID uuid.UUID) ([]domain.WorkspaceShare, error)
	GetPermission(ctx context.Context, userID, resourceID uuid.UUID, resourceType string) (*domain.Permission, error)
}

type flagFn func(*domain.Permission) bool

type flagKey struct {
	resource ResourceType
	action   Action
}

// resourceFlags maps (resourceType, action) to the flag checked on a
// resource-specific permission row. Combinations absent from the table are
// denied outright.
var resourceFlags = map[flagKey]flagFn{
	{ResourceWorkspace, ActionList}:   func(p *domain.Permission) bool { return p.CanList },
	{ResourceWorkspace, ActionEdit}:   func(p *domain.Permission) bool { return p.CanEdit },
	{ResourceWorkspace, ActionDelete}: func(p *domain.Permission) bool { return p.CanDelete },

	{ResourceGoal, ActionList}:    func(p *domain.Permission) bool { return p.CanList },
	{ResourceGoal, ActionEdit}:    func(p *domain.Permission) bool { return p.CanEdit },
	{ResourceGoal, ActionDelete}:  func(p *domain.Permission) bool { return p.CanDelete },
	{ResourceGoal, ActionAddTask}: func(p *domain.Permission) bool { return p.CanAddTask },

	{ResourceTask, ActionList}:         func(p *domain.Permission) bool { return p.CanList },
	{ResourceTask, ActionEdit}:         func(p *domain.Permission) bool { return p.CanEdit },
	{ResourceTask, ActionDelete}:       func(p *domain.Permission) bool { return p.CanDelete },
	{ResourceTask, ActionSubmitRecord}: func(p *domain.Permission) bool { return p.CanSubmitRecord },
}

// workspaceFallbackFlags maps actions to the flag checked on the
// workspace-level fallback row. addTask and submitRecord fall back to edit.
var workspaceFallbackFlags = map[Action]flagFn{
	ActionList:         func(p *domain.Permission) bool { return p.CanList },
	ActionEdit:         func(p *domain.Permission) bool { return p.CanEdit },
	ActionDelete:       func(p *domain.Permission) bool { return p.CanDelete },
	ActionAddTask:      func(p *domain.Permission) bool { return p.CanEdit },
	ActionSubmitRecord: func(p *domain.Permission) bool { return p.CanEdit },
}

// Resolver decides allow/deny for (user, resource, action) triples. It only
// reads; denials are the sentinel errors in the domain package, infrastructure
// failures are wrapped and stay distinguishable from denials.
type Resolver struct {
	store Store
}

// NewResolver creates a resolver over the given store
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Authorize returns nil when the action is allowed. Owners bypass every other
// check. Non-owners need an accepted share on the containing workspace plus a
// permission row (resource-specific first, workspace-level as fallback) whose
// flag for the action is set.
func (r *Resolver) Authorize(ctx context.Context, userID uuid.UUID, resourceType ResourceType, resourceID uuid.UUID, action Action) error {
	// Tracking records carry no permissions of their own; resolve to the
	// parent task and authorize against that.
	if resourceType == ResourceTrackingRecord {
		taskID, err := r.store.GetTrackingRecordTask(ctx, resourceID)
		if err != nil {
			return fmt.Errorf("resolve tracking record %s: %w", resourceID, err)
		}
		if taskID == nil {
			return domain.ErrResourceNotFound
		}
		resourceType = ResourceTask
		resourceID = *taskID
	}

	ref, err := r.resolveRef(ctx, resourceType, resourceID)
	if err != nil {
		return err
	}
	if ref == nil {
		return domain.ErrResourceNotFound
	}

	if ref.OwnerID == userID {
		return nil
	}

	shares, err := r.store.ListShares(ctx, ref.WorkspaceID, userID)
	if err != nil {
		return fmt.Errorf("list shares for workspace %s: %w", ref.WorkspaceID, err)
	}
	if len(shares) == 0 {
		return domain.ErrNoAccess
	}
	if !anyAccepted(shares) {
		return domain.ErrShareNotAccepted
	}

	perm, err := r.store.GetPermission(ctx, userID, resourceID, string(resourceType))
	if err != nil {
		return fmt.Errorf("get permission for %s %s: %w", resourceType, resourceID, err)
	}
	if perm != nil {
		check, ok := resourceFlags[flagKey{resourceType, action}]
		if !ok || !check(perm) {
			return domain.ErrInsufficientPermission
		}
		return nil
	}

	wsPerm, err := r.store.GetPermission(ctx, userID, ref.WorkspaceID, domain.ResourceWorkspace)
	if err != nil {
		return fmt.Errorf("get workspace permission for %s: %w", ref.WorkspaceID, err)
	}
	if wsPerm == nil {
		return domain.ErrNoPermissionDefined
	}
	check, ok := workspaceFallbackFlags[action]
	if !ok || !check(wsPerm) {
		return domain.ErrInsufficientPermission
	}
	return nil
}

func (r *Resolver) resolveRef(ctx context.Context, resourceType ResourceType, id uuid.UUID) (*Ref, error) {
	var (
		ref *Ref
		err error
	)
	switch resourceType {
	case ResourceWorkspace:
		ref, err = r.store.GetWorkspaceRef(ctx, id)
	case ResourceGoal:
		ref, err = r.store.GetGoalRef(ctx, id)
	case ResourceTask:
		ref, err = r.store.GetTaskRef(ctx, id)
	default:
		return nil, fmt.Errorf("unknown resource type %q", resourceType)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve %s %s: %w", resourceType, id, err)
	}
	return ref, nil
}

func anyAccepted(shares []domain.WorkspaceShare) bool {
	for _, s := range shares {
		if s.Status == domain.ShareStatusAccepted {
			return true
		}
	}
	return false
}
