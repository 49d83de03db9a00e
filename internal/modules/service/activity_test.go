package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rehablink-io/Rehablink/internal/config"
	"github.com/rehablink-io/Rehablink/internal/modules/model"
	"github.com/rehablink-io/Rehablink/internal/modules/repo"
)

func newActivityServiceForTest(r *MockActivityRepo, rels *MockRelationshipRepo, pub *MockPublisher) ActivityService {
	cfg := &config.Config{
		RabbitMQ: config.MQCfg{
			ExchangeName: config.MQExchangeName{Activity: "rehablink.activity"},
			RoutingKey:   config.MQRoutingKey{ActivityRecorded: "activity.recorded"},
		},
	}
	return NewActivityService(r, rels, pub, cfg, zap.NewNop())
}

func TestActivityService_Record(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("defaults to public visibility", func(t *testing.T) {
		r := &MockActivityRepo{}
		pub := &MockPublisher{}
		r.On("Create", ctx, mock.MatchedBy(func(a *model.Activity) bool {
			return a.UserID == userID && a.Visibility == model.VisibilityPublic
		})).Return(nil)
		pub.On("PublishJSON", ctx, "rehablink.activity", "activity.recorded",
			mock.AnythingOfType("service.ActivityRecordedEvent")).Return(nil)

		svc := newActivityServiceForTest(r, &MockRelationshipRepo{}, pub)
		a, err := svc.Record(ctx, RecordActivityInput{
			UserID: userID,
			Type:   model.ActivityGoalAchieved,
			Title:  "Hit the weekly target",
		})

		require.NoError(t, err)
		assert.Equal(t, model.VisibilityPublic, a.Visibility)
		r.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := newActivityServiceForTest(&MockActivityRepo{}, &MockRelationshipRepo{}, &MockPublisher{})
		_, err := svc.Record(ctx, RecordActivityInput{UserID: userID})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("publish failure keeps the write", func(t *testing.T) {
		r := &MockActivityRepo{}
		pub := &MockPublisher{}
		r.On("Create", ctx, mock.Anything).Return(nil)
		pub.On("PublishJSON", ctx, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		svc := newActivityServiceForTest(r, &MockRelationshipRepo{}, pub)
		a, err := svc.Record(ctx, RecordActivityInput{
			UserID: userID, Type: model.ActivityGoalAchieved, Title: "x",
		})
		assert.NoError(t, err)
		assert.NotNil(t, a)
	})
}

func TestActivityService_Feed(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	counterpartID := uuid.New()

	r := &MockActivityRepo{}
	rels := &MockRelationshipRepo{}
	rels.On("ListActiveCounterparts", ctx, userID, model.RolePatient).Return([]uuid.UUID{counterpartID}, nil)
	r.On("Feed", ctx, userID, model.RolePatient, []uuid.UUID{counterpartID}, 20, 0).Return([]model.Activity{}, nil)

	svc := newActivityServiceForTest(r, rels, &MockPublisher{})
	_, err := svc.Feed(ctx, userID, model.RolePatient, 0, 0)

	require.NoError(t, err)
	r.AssertExpectations(t)
	rels.AssertExpectations(t)
}

func TestActivityService_Stats(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("known periods", func(t *testing.T) {
		for _, period := range []string{"", "all", "day", "week", "month"} {
			r := &MockActivityRepo{}
			r.On("Stats", ctx, userID, mock.AnythingOfType("time.Time")).Return(&repo.ActivityStats{Total: 3}, nil)

			svc := newActivityServiceForTest(r, &MockRelationshipRepo{}, &MockPublisher{})
			stats, err := svc.Stats(ctx, userID, period)
			require.NoError(t, err, "period %q", period)
			assert.EqualValues(t, 3, stats.Total)
		}
	})

	t.Run("unknown period", func(t *testing.T) {
		svc := newActivityServiceForTest(&MockActivityRepo{}, &MockRelationshipRepo{}, &MockPublisher{})
		_, err := svc.Stats(ctx, userID, "fortnight")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestActivityService_MarkReadArchive(t *testing.T) {
	ctx := context.Background()
	activityID := uuid.New()
	userID := uuid.New()

	t.Run("marks the caller's own entry", func(t *testing.T) {
		r := &MockActivityRepo{}
		r.On("MarkRead", ctx, activityID, userID).Return(true, nil)

		svc := newActivityServiceForTest(r, &MockRelationshipRepo{}, &MockPublisher{})
		assert.NoError(t, svc.MarkRead(ctx, activityID, userID))
		r.AssertExpectations(t)
	})

	t.Run("someone else's entry reads absent", func(t *testing.T) {
		r := &MockActivityRepo{}
		r.On("MarkRead", ctx, activityID, userID).Return(false, nil)

		svc := newActivityServiceForTest(r, &MockRelationshipRepo{}, &MockPublisher{})
		assert.ErrorIs(t, svc.MarkRead(ctx, activityID, userID), ErrNotFound)
	})

	t.Run("archive hides the entry from the feed", func(t *testing.T) {
		r := &MockActivityRepo{}
		r.On("Archive", ctx, activityID, userID).Return(true, nil)

		svc := newActivityServiceForTest(r, &MockRelationshipRepo{}, &MockPublisher{})
		assert.NoError(t, svc.Archive(ctx, activityID, userID))
	})

	t.Run("archive on an unknown entry", func(t *testing.T) {
		r := &MockActivityRepo{}
		r.On("Archive", ctx, activityID, userID).Return(false, nil)

		svc := newActivityServiceForTest(r, &MockRelationshipRepo{}, &MockPublisher{})
		assert.ErrorIs(t, svc.Archive(ctx, activityID, userID), ErrNotFound)
	})
}
