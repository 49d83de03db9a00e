package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/rehablink-io/Rehablink/internal/infra/httpclient"
	"github.com/rehablink-io/Rehablink/internal/modules/model"
	"github.com/rehablink-io/Rehablink/internal/modules/repo"
)

// MockRelationshipRepo is a mock implementation of repo.RelationshipRepo
type MockRelationshipRepo struct {
	mock.Mock
}

func (m *MockRelationshipRepo) Create(ctx context.Context, rel *model.Relationship) error {
	args := m.Called(ctx, rel)
	return args.Error(0)
}

func (m *MockRelationshipRepo) CreateRequestExclusive(ctx context.Context, rel *model.Relationship) error {
	args := m.Called(ctx, rel)
	return args.Error(0)
}

func (m *MockRelationshipRepo) CreateAssignmentExclusive(ctx context.Context, rel *model.Relationship) error {
	args := m.Called(ctx, rel)
	return args.Error(0)
}

func (m *MockRelationshipRepo) DeletePending(ctx context.Context, patientID uuid.UUID) (*model.Relationship, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Relationship), args.Error(1)
}

func (m *MockRelationshipRepo) Get(ctx context.Context, id uuid.UUID) (*model.Relationship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Relationship), args.Error(1)
}

func (m *MockRelationshipRepo) GetPair(ctx context.Context, patientID, clinicianID uuid.UUID) (*model.Relationship, error) {
	args := m.Called(ctx, patientID, clinicianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Relationship), args.Error(1)
}

func (m *MockRelationshipRepo) ListByUser(ctx context.Context, userID uuid.UUID, role model.Role, statuses []model.RelationshipStatus) ([]model.Relationship, error) {
	args := m.Called(ctx, userID, role, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Relationship), args.Error(1)
}

func (m *MockRelationshipRepo) ListActiveCounterparts(ctx context.Context, userID uuid.UUID, role model.Role) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRelationshipRepo) ListPendingForClinician(ctx context.Context, clinicianID uuid.UUID) ([]model.Relationship, error) {
	args := m.Called(ctx, clinicianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Relationship), args.Error(1)
}

func (m *MockRelationshipRepo) Transition(ctx context.Context, id uuid.UUID, from []model.RelationshipStatus, updates map[string]interface{}) (bool, error) {
	args := m.Called(ctx, id, from, updates)
	return args.Bool(0), args.Error(1)
}

func (m *MockRelationshipRepo) UpdatePatientSettings(ctx context.Context, id uuid.UUID, s model.PatientSettings) (bool, error) {
	args := m.Called(ctx, id, s)
	return args.Bool(0), args.Error(1)
}

func (m *MockRelationshipRepo) UpdateClinicianSettings(ctx context.Context, id uuid.UUID, s model.ClinicianSettings) (bool, error) {
	args := m.Called(ctx, id, s)
	return args.Bool(0), args.Error(1)
}

func (m *MockRelationshipRepo) RecordSessionOutcome(ctx context.Context, id uuid.UUID, score float64) error {
	args := m.Called(ctx, id, score)
	return args.Error(0)
}

func (m *MockRelationshipRepo) TouchInteraction(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSessionRepo is a mock implementation of repo.SessionRepo
type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Create(ctx context.Context, s *model.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepo) Get(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepo) GetDetail(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepo) Transition(ctx context.Context, id uuid.UUID, from []model.SessionStatus, updates map[string]interface{}) (bool, error) {
	args := m.Called(ctx, id, from, updates)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepo) AppendFrame(ctx context.Context, f *model.PoseFrame) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockSessionRepo) LastFrame(ctx context.Context, sessionID uuid.UUID) (*model.PoseFrame, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PoseFrame), args.Error(1)
}

func (m *MockSessionRepo) AppendRep(ctx context.Context, rep *model.RepRecord) (*model.Session, error) {
	args := m.Called(ctx, rep)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, status model.SessionStatus, limit, offset int) ([]model.Session, error) {
	args := m.Called(ctx, patientID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Session), args.Error(1)
}

func (m *MockSessionRepo) ListByClinicianPatients(ctx context.Context, patientIDs []uuid.UUID, limit, offset int) ([]model.Session, error) {
	args := m.Called(ctx, patientIDs, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Session), args.Error(1)
}

func (m *MockSessionRepo) ActiveByPatient(ctx context.Context, patientID uuid.UUID) (*model.Session, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepo) ListFrames(ctx context.Context, sessionID uuid.UUID, limit, offset int) ([]model.PoseFrame, error) {
	args := m.Called(ctx, sessionID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PoseFrame), args.Error(1)
}

func (m *MockSessionRepo) ListReps(ctx context.Context, sessionID uuid.UUID) ([]model.RepRecord, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RepRecord), args.Error(1)
}

func (m *MockSessionRepo) StaleLive(ctx context.Context, cutoff time.Time) ([]model.Session, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Session), args.Error(1)
}

// MockUserRepo is a mock implementation of repo.UserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepo) SetPresence(ctx context.Context, id uuid.UUID, online bool, lastSeen time.Time) error {
	args := m.Called(ctx, id, online, lastSeen)
	return args.Error(0)
}

// MockExerciseRepo is a mock implementation of repo.ExerciseRepo
type MockExerciseRepo struct {
	mock.Mock
}

func (m *MockExerciseRepo) Create(ctx context.Context, e *model.Exercise) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExerciseRepo) Get(ctx context.Context, id uuid.UUID) (*model.Exercise, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Exercise), args.Error(1)
}

func (m *MockExerciseRepo) GetByName(ctx context.Context, name string) (*model.Exercise, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Exercise), args.Error(1)
}

func (m *MockExerciseRepo) FirstOrCreateByName(ctx context.Context, template *model.Exercise) (*model.Exercise, error) {
	args := m.Called(ctx, template)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Exercise), args.Error(1)
}

func (m *MockExerciseRepo) List(ctx context.Context, category string, limit, offset int) ([]model.Exercise, error) {
	args := m.Called(ctx, category, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Exercise), args.Error(1)
}

// MockNotificationRepo is a mock implementation of repo.NotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepo) CreateBatch(ctx context.Context, ns []model.Notification) error {
	args := m.Called(ctx, ns)
	return args.Error(0)
}

func (m *MockNotificationRepo) Get(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationRepo) List(ctx context.Context, recipientID uuid.UUID, opts repo.NotificationListOpts) ([]model.Notification, error) {
	args := m.Called(ctx, recipientID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationRepo) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepo) MarkRead(ctx context.Context, id, recipientID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, recipientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepo) MarkManyRead(ctx context.Context, ids []uuid.UUID, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepo) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepo) Archive(ctx context.Context, id, recipientID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, recipientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepo) Delete(ctx context.Context, id, recipientID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, recipientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepo) MarkDelivered(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepo) Stats(ctx context.Context, recipientID uuid.UUID) (*repo.NotificationStats, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repo.NotificationStats), args.Error(1)
}

// MockActivityRepo is a mock implementation of repo.ActivityRepo
type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Create(ctx context.Context, a *model.Activity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockActivityRepo) Feed(ctx context.Context, viewerID uuid.UUID, viewerRole model.Role, counterpartIDs []uuid.UUID, limit, offset int) ([]model.Activity, error) {
	args := m.Called(ctx, viewerID, viewerRole, counterpartIDs, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Activity), args.Error(1)
}

func (m *MockActivityRepo) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]model.Activity, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Activity), args.Error(1)
}

func (m *MockActivityRepo) Stats(ctx context.Context, userID uuid.UUID, since time.Time) (*repo.ActivityStats, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repo.ActivityStats), args.Error(1)
}

func (m *MockActivityRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockActivityRepo) Archive(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

// MockPublisher is a mock implementation of the MQ publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, exchangeName string, routingKey string, body any) error {
	args := m.Called(ctx, exchangeName, routingKey, body)
	return args.Error(0)
}

// MockPoseInferrer is a mock implementation of PoseInferrer
type MockPoseInferrer struct {
	mock.Mock
}

func (m *MockPoseInferrer) Infer(ctx context.Context, req httpclient.InferRequest) (*httpclient.InferResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*httpclient.InferResult), args.Error(1)
}

// MockNotificationService is a mock implementation of NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Send(ctx context.Context, in CreateNotificationInput) (*model.Notification, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationService) SendMany(ctx context.Context, recipients []uuid.UUID, in CreateNotificationInput) ([]model.Notification, error) {
	args := m.Called(ctx, recipients, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationService) SendToCounterparts(ctx context.Context, userID uuid.UUID, role model.Role, in CreateNotificationInput) ([]model.Notification, error) {
	args := m.Called(ctx, userID, role, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationService) SendProgressAlert(ctx context.Context, clinicianID, patientID uuid.UUID, patientName string, sessionID uuid.UUID, score float64) (*model.Notification, error) {
	args := m.Called(ctx, clinicianID, patientID, patientName, sessionID, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationService) List(ctx context.Context, recipientID uuid.UUID, opts repo.NotificationListOpts) ([]model.Notification, error) {
	args := m.Called(ctx, recipientID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	args := m.Called(ctx, id, recipientID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkManyRead(ctx context.Context, ids []uuid.UUID, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) Archive(ctx context.Context, id, recipientID uuid.UUID) error {
	args := m.Called(ctx, id, recipientID)
	return args.Error(0)
}

func (m *MockNotificationService) Delete(ctx context.Context, id, recipientID uuid.UUID) error {
	args := m.Called(ctx, id, recipientID)
	return args.Error(0)
}

func (m *MockNotificationService) Stats(ctx context.Context, recipientID uuid.UUID) (*repo.NotificationStats, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repo.NotificationStats), args.Error(1)
}

// MockActivityService is a mock implementation of ActivityService
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) Record(ctx context.Context, in RecordActivityInput) (*model.Activity, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Activity), args.Error(1)
}

func (m *MockActivityService) Feed(ctx context.Context, userID uuid.UUID, role model.Role, limit, offset int) ([]model.Activity, error) {
	args := m.Called(ctx, userID, role, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Activity), args.Error(1)
}

func (m *MockActivityService) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]model.Activity, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Activity), args.Error(1)
}

func (m *MockActivityService) Stats(ctx context.Context, userID uuid.UUID, period string) (*repo.ActivityStats, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repo.ActivityStats), args.Error(1)
}

func (m *MockActivityService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockActivityService) Archive(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockRelationshipService is a mock implementation of RelationshipService
type MockRelationshipService struct {
	mock.Mock
}

func (m *MockRelationshipService) RequestConnection(ctx context.Context, patientID, clinicianID uuid.UUID, reason string) (*model.Relationship, error) {
	args := m.Called(ctx, patientID, clinicianID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Relationship), args.Error(1)
}

func (m *MockRelationshipService) AssignPatient(ctx context.Context, clinicianID, patientID uuid.UUID, reason string) (*model.Relationship, error) {
	args := m.Called(ctx, clinicianID, patientID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Relationship), args.Error(1)
}

func (m *MockRelationshipService) CancelPendingRequest(ctx context.Context, patientID uuid.UUID) error {
	args := m.Called(ctx, patientID)
	return args.Error(0)
}

func (m *MockRelationshipService) UpdateStatus(ctx context.Context, clinicianID, patientID uuid.UUID, newStatus model.RelationshipStatus, reason string) (*model.Relationship, error) {
	args := m.Called(ctx, clinicianID, patientID, newStatus, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Relationship), args.Error(1)
}

func (m *MockRelationshipService) Disconnect(ctx context.Context, patientID uuid.UUID, reason string) error {
	args := m.Called(ctx, patientID, reason)
	return args.Error(0)
}

func (m *MockRelationshipService) RemovePatient(ctx context.Context, clinicianID, patientID uuid.UUID, reason string) error {
	args := m.Called(ctx, clinicianID, patientID, reason)
	return args.Error(0)
}

func (m *MockRelationshipService) SendRecommendation(ctx context.Context, clinicianID, patientID uuid.UUID, message string) (*model.Notification, error) {
	args := m.Called(ctx, clinicianID, patientID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockRelationshipService) UpdateSettings(ctx context.Context, clinicianID, patientID uuid.UUID, ps *model.PatientSettings, cs *model.ClinicianSettings) error {
	args := m.Called(ctx, clinicianID, patientID, ps, cs)
	return args.Error(0)
}

func (m *MockRelationshipService) RecordSessionOutcome(ctx context.Context, patientID uuid.UUID, score float64) (*model.Relationship, error) {
	args := m.Called(ctx, patientID, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Relationship), args.Error(1)
}

func (m *MockRelationshipService) ListPatients(ctx context.Context, clinicianID uuid.UUID) ([]model.Relationship, error) {
	args := m.Called(ctx, clinicianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Relationship), args.Error(1)
}

func (m *MockRelationshipService) ListClinicians(ctx context.Context, patientID uuid.UUID) ([]model.Relationship, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Relationship), args.Error(1)
}

func (m *MockRelationshipService) GetPatientDetails(ctx context.Context, clinicianID, patientID uuid.UUID) (*model.Relationship, error) {
	args := m.Called(ctx, clinicianID, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Relationship), args.Error(1)
}

func (m *MockRelationshipService) GetConnectionStatus(ctx context.Context, patientID uuid.UUID) (*model.Relationship, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Relationship), args.Error(1)
}

func (m *MockRelationshipService) ListPendingRequests(ctx context.Context, clinicianID uuid.UUID) ([]model.Relationship, error) {
	args := m.Called(ctx, clinicianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Relationship), args.Error(1)
}

func (m *MockRelationshipService) ActiveCounterparts(ctx context.Context, userID uuid.UUID, role model.Role) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}
