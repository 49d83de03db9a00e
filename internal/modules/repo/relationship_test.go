package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rehablink-io/Rehablink/internal/modules/model"
)

// setupRelationshipTestDB creates a test database connection for relationship tests
func setupRelationshipTestDB(t *testing.T) *gorm.DB {
	// Skip if no test database is configured
	dsn := "host=localhost user=rehablink password=helloworld dbname=rehablink port=15432 sslmode=disable"
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Skip("Test database not available, skipping integration tests")
		return nil
	}

	db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto")

	err = db.AutoMigrate(
		&model.User{},
		&model.Relationship{},
	)
	require.NoError(t, err)

	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_relationships_patient_live " +
		"ON relationships (patient_id) WHERE status IN ('pending', 'active')")

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role model.Role) *model.User {
	u := &model.User{
		ID:    uuid.New(),
		Name:  "test " + string(role),
		Email: uuid.NewString() + "@rehablink.test",
		Role:  role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// cleanupRelationshipTestDB cleans up test data
func cleanupRelationshipTestDB(t *testing.T, db *gorm.DB, userIDs ...uuid.UUID) {
	db.Exec("DELETE FROM relationships WHERE patient_id IN ? OR clinician_id IN ?", userIDs, userIDs)
	db.Exec("DELETE FROM users WHERE id IN ?", userIDs)
}

func TestRelationshipRepo_CreateRequestExclusive(t *testing.T) {
	db := setupRelationshipTestDB(t)
	if db == nil {
		return // Test was skipped
	}

	repo := NewRelationshipRepo(db)
	ctx := context.Background()

	t.Run("creates pending request", func(t *testing.T) {
		patient := createTestUser(t, db, model.RolePatient)
		clinician := createTestUser(t, db, model.RoleClinician)
		defer cleanupRelationshipTestDB(t, db, patient.ID, clinician.ID)

		rel := &model.Relationship{PatientID: patient.ID, ClinicianID: clinician.ID, Reason: "knee rehab"}
		require.NoError(t, repo.CreateRequestExclusive(ctx, rel))
		assert.Equal(t, model.RelationshipPending, rel.Status)

		got, err := repo.GetPair(ctx, patient.ID, clinician.ID)
		require.NoError(t, err)
		assert.Equal(t, model.RelationshipPending, got.Status)
	})

	t.Run("same pair twice conflicts", func(t *testing.T) {
		patient := createTestUser(t, db, model.RolePatient)
		clinician := createTestUser(t, db, model.RoleClinician)
		defer cleanupRelationshipTestDB(t, db, patient.ID, clinician.ID)

		require.NoError(t, repo.CreateRequestExclusive(ctx, &model.Relationship{PatientID: patient.ID, ClinicianID: clinician.ID}))

		err := repo.CreateRequestExclusive(ctx, &model.Relationship{PatientID: patient.ID, ClinicianID: clinician.ID})
		assert.ErrorIs(t, err, ErrPairExists)
	})

	t.Run("new request supersedes pending request to another clinician", func(t *testing.T) {
		patient := createTestUser(t, db, model.RolePatient)
		first := createTestUser(t, db, model.RoleClinician)
		second := createTestUser(t, db, model.RoleClinician)
		defer cleanupRelationshipTestDB(t, db, patient.ID, first.ID, second.ID)

		require.NoError(t, repo.CreateRequestExclusive(ctx, &model.Relationship{PatientID: patient.ID, ClinicianID: first.ID}))
		require.NoError(t, repo.CreateRequestExclusive(ctx, &model.Relationship{PatientID: patient.ID, ClinicianID: second.ID}))

		old, err := repo.GetPair(ctx, patient.ID, first.ID)
		require.NoError(t, err)
		assert.Equal(t, model.RelationshipTerminated, old.Status)

		current, err := repo.GetPair(ctx, patient.ID, second.ID)
		require.NoError(t, err)
		assert.Equal(t, model.RelationshipPending, current.Status)
	})

	t.Run("active pairing blocks new requests", func(t *testing.T) {
		patient := createTestUser(t, db, model.RolePatient)
		current := createTestUser(t, db, model.RoleClinician)
		other := createTestUser(t, db, model.RoleClinician)
		defer cleanupRelationshipTestDB(t, db, patient.ID, current.ID, other.ID)

		require.NoError(t, repo.CreateAssignmentExclusive(ctx, &model.Relationship{PatientID: patient.ID, ClinicianID: current.ID}))

		err := repo.CreateRequestExclusive(ctx, &model.Relationship{PatientID: patient.ID, ClinicianID: other.ID})
		assert.ErrorIs(t, err, ErrLiveExists)
	})

	t.Run("terminated pair is revived instead of duplicated", func(t *testing.T) {
		patient := createTestUser(t, db, model.RolePatient)
		clinician := createTestUser(t, db, model.RoleClinician)
		defer cleanupRelationshipTestDB(t, db, patient.ID, clinician.ID)

		rel := &model.Relationship{PatientID: patient.ID, ClinicianID: clinician.ID}
		require.NoError(t, repo.CreateRequestExclusive(ctx, rel))
		firstID := rel.ID

		ok, err := repo.Transition(ctx, rel.ID,
			[]model.RelationshipStatus{model.RelationshipPending},
			map[string]interface{}{"status": model.RelationshipTerminated, "ended_at": time.Now()})
		require.NoError(t, err)
		require.True(t, ok)

		revived := &model.Relationship{PatientID: patient.ID, ClinicianID: clinician.ID, Reason: "second try"}
		require.NoError(t, repo.CreateRequestExclusive(ctx, revived))
		assert.Equal(t, firstID, revived.ID)
		assert.Equal(t, model.RelationshipPending, revived.Status)

		var count int64
		require.NoError(t, db.Model(&model.Relationship{}).
			Where("patient_id = ? AND clinician_id = ?", patient.ID, clinician.ID).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestRelationshipRepo_CreateAssignmentExclusive(t *testing.T) {
	db := setupRelationshipTestDB(t)
	if db == nil {
		return // Test was skipped
	}

	repo := NewRelationshipRepo(db)
	ctx := context.Background()

	t.Run("assignment starts active with a start time", func(t *testing.T) {
		patient := createTestUser(t, db, model.RolePatient)
		clinician := createTestUser(t, db, model.RoleClinician)
		defer cleanupRelationshipTestDB(t, db, patient.ID, clinician.ID)

		rel := &model.Relationship{PatientID: patient.ID, ClinicianID: clinician.ID, AssignedBy: clinician.ID}
		require.NoError(t, repo.CreateAssignmentExclusive(ctx, rel))
		assert.Equal(t, model.RelationshipActive, rel.Status)
		assert.NotNil(t, rel.StartedAt)
	})

	t.Run("patient with live row cannot be assigned", func(t *testing.T) {
		patient := createTestUser(t, db, model.RolePatient)
		first := createTestUser(t, db, model.RoleClinician)
		second := createTestUser(t, db, model.RoleClinician)
		defer cleanupRelationshipTestDB(t, db, patient.ID, first.ID, second.ID)

		require.NoError(t, repo.CreateRequestExclusive(ctx, &model.Relationship{PatientID: patient.ID, ClinicianID: first.ID}))

		err := repo.CreateAssignmentExclusive(ctx, &model.Relationship{PatientID: patient.ID, ClinicianID: second.ID})
		assert.ErrorIs(t, err, ErrLiveExists)
	})
}

func TestRelationshipRepo_Transition(t *testing.T) {
	db := setupRelationshipTestDB(t)
	if db == nil {
		return // Test was skipped
	}

	repo := NewRelationshipRepo(db)
	ctx := context.Background()

	patient := createTestUser(t, db, model.RolePatient)
	clinician := createTestUser(t, db, model.RoleClinician)
	defer cleanupRelationshipTestDB(t, db, patient.ID, clinician.ID)

	rel := &model.Relationship{PatientID: patient.ID, ClinicianID: clinician.ID}
	require.NoError(t, repo.CreateRequestExclusive(ctx, rel))

	t.Run("guarded transition applies once", func(t *testing.T) {
		now := time.Now()
		ok, err := repo.Transition(ctx, rel.ID,
			[]model.RelationshipStatus{model.RelationshipPending, model.RelationshipSuspended},
			map[string]interface{}{"status": model.RelationshipActive, "started_at": now})
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := repo.Get(ctx, rel.ID)
		require.NoError(t, err)
		assert.Equal(t, model.RelationshipActive, got.Status)
		assert.NotNil(t, got.StartedAt)
	})

	t.Run("losing racer observes false", func(t *testing.T) {
		// Row is active now, so a pending-only guard must not match.
		ok, err := repo.Transition(ctx, rel.ID,
			[]model.RelationshipStatus{model.RelationshipPending},
			map[string]interface{}{"status": model.RelationshipActive})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown id is not an error, just no match", func(t *testing.T) {
		ok, err := repo.Transition(ctx, uuid.New(),
			[]model.RelationshipStatus{model.RelationshipActive},
			map[string]interface{}{"status": model.RelationshipSuspended})
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRelationshipRepo_DeletePending(t *testing.T) {
	db := setupRelationshipTestDB(t)
	if db == nil {
		return // Test was skipped
	}

	repo := NewRelationshipRepo(db)
	ctx := context.Background()

	t.Run("pending request is removed outright", func(t *testing.T) {
		patient := createTestUser(t, db, model.RolePatient)
		clinician := createTestUser(t, db, model.RoleClinician)
		defer cleanupRelationshipTestDB(t, db, patient.ID, clinician.ID)

		require.NoError(t, repo.CreateRequestExclusive(ctx, &model.Relationship{PatientID: patient.ID, ClinicianID: clinician.ID}))

		deleted, err := repo.DeletePending(ctx, patient.ID)
		require.NoError(t, err)
		assert.Equal(t, clinician.ID, deleted.ClinicianID)

		_, err = repo.GetPair(ctx, patient.ID, clinician.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("nothing pending", func(t *testing.T) {
		patient := createTestUser(t, db, model.RolePatient)
		defer cleanupRelationshipTestDB(t, db, patient.ID)

		_, err := repo.DeletePending(ctx, patient.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestRelationshipRepo_RecordSessionOutcome(t *testing.T) {
	db := setupRelationshipTestDB(t)
	if db == nil {
		return // Test was skipped
	}

	repo := NewRelationshipRepo(db)
	ctx := context.Background()

	patient := createTestUser(t, db, model.RolePatient)
	clinician := createTestUser(t, db, model.RoleClinician)
	defer cleanupRelationshipTestDB(t, db, patient.ID, clinician.ID)

	rel := &model.Relationship{PatientID: patient.ID, ClinicianID: clinician.ID}
	require.NoError(t, repo.CreateAssignmentExclusive(ctx, rel))

	require.NoError(t, repo.RecordSessionOutcome(ctx, rel.ID, 80))
	require.NoError(t, repo.RecordSessionOutcome(ctx, rel.ID, 90))

	got, err := repo.Get(ctx, rel.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalSessions)
	assert.InDelta(t, 85.0, got.AverageScore, 0.001)
	assert.NotNil(t, got.LastInteractionAt)
}

func TestRelationshipRepo_LivePerPatientIndex(t *testing.T) {
	db := setupRelationshipTestDB(t)
	if db == nil {
		return // Test was skipped
	}

	ctx := context.Background()

	t.Run("second live row is rejected by the database", func(t *testing.T) {
		patient := createTestUser(t, db, model.RolePatient)
		clinicianA := createTestUser(t, db, model.RoleClinician)
		clinicianB := createTestUser(t, db, model.RoleClinician)
		defer cleanupRelationshipTestDB(t, db, patient.ID, clinicianA.ID, clinicianB.ID)

		first := &model.Relationship{PatientID: patient.ID, ClinicianID: clinicianA.ID, Status: model.RelationshipPending}
		require.NoError(t, db.WithContext(ctx).Create(first).Error)

		// A racer that saw no live rows before the first insert committed
		// ends up here: its own insert must fail.
		second := &model.Relationship{PatientID: patient.ID, ClinicianID: clinicianB.ID, Status: model.RelationshipPending}
		err := db.WithContext(ctx).Create(second).Error
		require.Error(t, err)
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

		var count int64
		require.NoError(t, db.Model(&model.Relationship{}).
			Where("patient_id = ? AND status IN ?", patient.ID, liveStatuses).
			Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("terminated rows do not block a new request", func(t *testing.T) {
		patient := createTestUser(t, db, model.RolePatient)
		clinicianA := createTestUser(t, db, model.RoleClinician)
		clinicianB := createTestUser(t, db, model.RoleClinician)
		defer cleanupRelationshipTestDB(t, db, patient.ID, clinicianA.ID, clinicianB.ID)

		ended := time.Now()
		done := &model.Relationship{
			PatientID: patient.ID, ClinicianID: clinicianA.ID,
			Status: model.RelationshipTerminated, EndedAt: &ended,
		}
		require.NoError(t, db.WithContext(ctx).Create(done).Error)

		fresh := &model.Relationship{PatientID: patient.ID, ClinicianID: clinicianB.ID, Status: model.RelationshipPending}
		assert.NoError(t, db.WithContext(ctx).Create(fresh).Error)
	})
}
