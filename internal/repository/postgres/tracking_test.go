package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/focusflowhq/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDB connects to the database named by TEST_DATABASE_URL. The schema must
// already be migrated.
func testDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("Requires database connection - set TEST_DATABASE_URL and run as integration test")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return &DB{Pool: pool}
}

func seedUser(t *testing.T, db *DB, name string) *domain.User {
	t.Helper()
	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     fmt.Sprintf("%s-%s", name, uuid.NewString()[:8]),
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		PasswordHash: "x",
		Timezone:     "UTC",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	t.Cleanup(func() {
		db.Pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, user.ID)
	})
	return user
}

func seedWorkspace(t *testing.T, db *DB, ownerID uuid.UUID) *domain.Workspace {
	t.Helper()
	now := time.Now()
	ws := &domain.Workspace{
		ID:        uuid.New(),
		UserID:    ownerID,
		Name:      "ws-" + uuid.NewString()[:8],
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, NewWorkspaceRepository(db).Create(context.Background(), ws))
	return ws
}

func seedGoal(t *testing.T, db *DB, ownerID, workspaceID uuid.UUID) *domain.Goal {
	t.Helper()
	now := time.Now()
	goal := &domain.Goal{
		ID:          uuid.New(),
		UserID:      ownerID,
		WorkspaceID: workspaceID,
		Name:        "goal-" + uuid.NewString()[:8],
		Status:      domain.GoalStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, NewGoalRepository(db).Create(context.Background(), goal))
	return goal
}

func seedTask(t *testing.T, db *DB, ownerID, goalID uuid.UUID, name string) *domain.Task {
	t.Helper()
	now := time.Now()
	task := &domain.Task{
		ID:        uuid.New(),
		UserID:    ownerID,
		GoalID:    goalID,
		Name:      name,
		Status:    domain.TaskStatusPending,
		Priority:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, NewTaskRepository(db).Create(context.Background(), task))
	return task
}

func seedStoppedRecord(t *testing.T, db *DB, userID, taskID uuid.UUID, start time.Time, seconds int64) {
	t.Helper()
	end := start.Add(time.Duration(seconds) * time.Second)
	rec := &domain.TrackingRecord{
		ID:        uuid.New(),
		TaskID:    taskID,
		UserID:    userID,
		StartTime: start,
		EndTime:   &end,
		Duration:  &seconds,
		CreatedAt: start,
		UpdatedAt: start,
	}
	require.NoError(t, NewTrackingRepository(db).Insert(context.Background(), rec))
}

// The summary union: the caller's records on their own tasks and on tasks in
// workspaces shared with them land in one result set, summed per task name.
func TestSummarize_UnionMergesByTaskName(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	// Alice's workspace, shared with Bob.
	aliceWS := seedWorkspace(t, db, alice.ID)
	aliceGoal := seedGoal(t, db, alice.ID, aliceWS.ID)
	sharedDeepWork := seedTask(t, db, alice.ID, aliceGoal.ID, "deep work")
	sharedReview := seedTask(t, db, alice.ID, aliceGoal.ID, "review")

	now := time.Now()
	share := &domain.WorkspaceShare{
		ID:               uuid.New(),
		WorkspaceID:      aliceWS.ID,
		SharedWithUserID: bob.ID,
		InvitedByUserID:  alice.ID,
		Status:           domain.ShareStatusAccepted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	require.NoError(t, NewShareRepository(db).Create(ctx, share))

	// Bob's own workspace with a task of the same name.
	bobWS := seedWorkspace(t, db, bob.ID)
	bobGoal := seedGoal(t, db, bob.ID, bobWS.ID)
	ownDeepWork := seedTask(t, db, bob.ID, bobGoal.ID, "deep work")

	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	seedStoppedRecord(t, db, bob.ID, ownDeepWork.ID, start, 240)
	seedStoppedRecord(t, db, bob.ID, sharedDeepWork.ID, start.Add(time.Hour), 180)
	seedStoppedRecord(t, db, bob.ID, sharedReview.ID, start.Add(2*time.Hour), 300)

	// Alice's own records must never show up in Bob's summary.
	seedStoppedRecord(t, db, alice.ID, sharedDeepWork.ID, start, 999)

	rows, err := NewTrackingRepository(db).Summarize(ctx, bob.ID, nil, nil, domain.SummaryFilter{})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "deep work", rows[0].TaskName)
	assert.Equal(t, int64(420), rows[0].TotalDurationSeconds)
	assert.Equal(t, "review", rows[1].TaskName)
	assert.Equal(t, int64(300), rows[1].TotalDurationSeconds)
}

func TestSummarize_WindowExcludesRecordsOutsideBounds(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	bob := seedUser(t, db, "bob")
	ws := seedWorkspace(t, db, bob.ID)
	goal := seedGoal(t, db, bob.ID, ws.ID)
	task := seedTask(t, db, bob.ID, goal.ID, "deep work")

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	seedStoppedRecord(t, db, bob.ID, task.ID, from.Add(9*time.Hour), 600)
	seedStoppedRecord(t, db, bob.ID, task.ID, from.Add(-time.Hour), 999)
	seedStoppedRecord(t, db, bob.ID, task.ID, to, 999)

	rows, err := NewTrackingRepository(db).Summarize(ctx, bob.ID, &from, &to, domain.SummaryFilter{})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, int64(600), rows[0].TotalDurationSeconds)
}
