package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelops/complaints/internal/errs"
	"github.com/hostelops/complaints/internal/models"
	"github.com/hostelops/complaints/internal/repo"
	"github.com/hostelops/complaints/internal/testutil"
)

var base = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func seedUser(t *testing.T, r *repo.GormRepo, name string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@hostel.test", PasswordHash: "x", Role: role, CreatedAt: base}
	require.NoError(t, r.CreateUserIfNotExists(context.Background(), u))
	return u
}

func seedComplaint(t *testing.T, r *repo.GormRepo, owner uuid.UUID, category string, status models.Status, at time.Time) *models.Complaint {
	t.Helper()
	c, err := r.CreateComplaint(context.Background(), &models.Complaint{
		UserID:      owner,
		Category:    category,
		Description: category + " issue",
		Priority:    models.PriorityMedium,
		Status:      status,
		CreatedAt:   at,
		UpdatedAt:   at,
	})
	require.NoError(t, err)
	return c
}

func TestUsers_CreateAndConflict(t *testing.T) {
	t.Parallel()

	r := repo.New(testutil.NewDB(t))
	ctx := context.Background()

	u := seedUser(t, r, "alice", models.RoleStudent)
	assert.NotEqual(t, uuid.Nil, u.ID)

	got, err := r.GetUserByEmail(ctx, "alice@hostel.test")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, models.RoleStudent, got.Role)

	dup := &models.User{Name: "Alice 2", Email: "alice@hostel.test", PasswordHash: "y", Role: models.RoleAdmin}
	err = r.CreateUserIfNotExists(ctx, dup)
	require.ErrorIs(t, err, errs.ErrConflict)

	_, err = r.GetUserByEmail(ctx, "nobody@hostel.test")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestListComplaints_OrderFiltersAndOwner(t *testing.T) {
	t.Parallel()

	r := repo.New(testutil.NewDB(t))
	ctx := context.Background()

	alice := seedUser(t, r, "alice", models.RoleStudent)
	bob := seedUser(t, r, "bob", models.RoleStudent)

	oldest := seedComplaint(t, r, alice.ID, "Plumbing", models.StatusPending, base)
	middle := seedComplaint(t, r, bob.ID, "Electrical", models.StatusResolved, base.Add(time.Hour))
	newest := seedComplaint(t, r, alice.ID, "Electrical", models.StatusPending, base.Add(2*time.Hour))

	all, err := r.ListComplaints(ctx, models.ComplaintFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{newest.ID, middle.ID, oldest.ID}, ids(all))
	require.NotNil(t, all[1].Owner)
	assert.Equal(t, "bob", all[1].Owner.Name)
	assert.Equal(t, "bob@hostel.test", all[1].Owner.Email)
	assert.Empty(t, all[1].Owner.PasswordHash)

	pending := models.StatusPending
	byStatus, err := r.ListComplaints(ctx, models.ComplaintFilter{Status: &pending})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{newest.ID, oldest.ID}, ids(byStatus))

	byCategory, err := r.ListComplaints(ctx, models.ComplaintFilter{Category: "Electrical"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{newest.ID, middle.ID}, ids(byCategory))

	both, err := r.ListComplaints(ctx, models.ComplaintFilter{Status: &pending, Category: "Electrical"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{newest.ID}, ids(both))

	owned, err := r.ListComplaints(ctx, models.ComplaintFilter{OwnerID: &bob.ID})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{middle.ID}, ids(owned))

	none, err := r.ListComplaints(ctx, models.ComplaintFilter{Category: "electrical"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateComplaintStatus(t *testing.T) {
	t.Parallel()

	r := repo.New(testutil.NewDB(t))
	ctx := context.Background()

	alice := seedUser(t, r, "alice", models.RoleStudent)
	c := seedComplaint(t, r, alice.ID, "Plumbing", models.StatusPending, base)

	later := base.Add(30 * time.Minute)
	updated, err := r.UpdateComplaintStatus(ctx, c.ID, models.StatusInProgress, later)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.True(t, updated.UpdatedAt.Equal(later), "updated_at %v", updated.UpdatedAt)
	assert.True(t, updated.CreatedAt.Equal(base))
	require.NotNil(t, updated.Owner)
	assert.Equal(t, "alice", updated.Owner.Name)

	_, err = r.UpdateComplaintStatus(ctx, uuid.New(), models.StatusResolved, later)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSearchComplaints_Fallback(t *testing.T) {
	t.Parallel()

	r := repo.New(testutil.NewDB(t))
	ctx := context.Background()

	alice := seedUser(t, r, "alice", models.RoleStudent)
	bob := seedUser(t, r, "bob", models.RoleStudent)
	a := seedComplaint(t, r, alice.ID, "Plumbing", models.StatusPending, base)
	b := seedComplaint(t, r, bob.ID, "Plumbing", models.StatusPending, base.Add(time.Minute))
	seedComplaint(t, r, bob.ID, "Internet", models.StatusPending, base.Add(2*time.Minute))

	hits, err := r.SearchComplaints(ctx, "PLUMB", nil, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b.ID, a.ID}, ids(hits))

	own, err := r.SearchComplaints(ctx, "plumbing", &alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a.ID}, ids(own))

	secondPage, err := r.SearchComplaints(ctx, "plumb", nil, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a.ID}, ids(secondPage))

	wild, err := r.SearchComplaints(ctx, "%", nil, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, wild)
}

func ids(cs []models.Complaint) []uuid.UUID {
	out := make([]uuid.UUID, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}
