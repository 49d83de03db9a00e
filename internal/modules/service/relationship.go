package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rehablink-io/Rehablink/internal/modules/model"
	"github.com/rehablink-io/Rehablink/internal/modules/repo"
)

type RelationshipService interface {
	// RequestConnection creates a pending pairing from patient to clinician.
	// An outstanding request to a different clinician is superseded; an
	// existing pairing with this clinician, or an active pairing with anyone,
	// conflicts.
	RequestConnection(ctx context.Context, patientID, clinicianID uuid.UUID, reason string) (*model.Relationship, error)
	// AssignPatient creates the pairing directly in active, clinician side.
	AssignPatient(ctx context.Context, clinicianID, patientID uuid.UUID, reason string) (*model.Relationship, error)
	// CancelPendingRequest deletes the patient's outstanding request.
	CancelPendingRequest(ctx context.Context, patientID uuid.UUID) error
	// UpdateStatus applies a clinician-initiated transition on the pair.
	UpdateStatus(ctx context.Context, clinicianID, patientID uuid.UUID, newStatus model.RelationshipStatus, reason string) (*model.Relationship, error)
	// Disconnect terminates the patient's live pairing, patient side.
	Disconnect(ctx context.Context, patientID uuid.UUID, reason string) error
	// RemovePatient terminates the pairing, clinician side.
	RemovePatient(ctx context.Context, clinicianID, patientID uuid.UUID, reason string) error

	SendRecommendation(ctx context.Context, clinicianID, patientID uuid.UUID, message string) (*model.Notification, error)
	UpdateSettings(ctx context.Context, clinicianID, patientID uuid.UUID, ps *model.PatientSettings, cs *model.ClinicianSettings) error
	// RecordSessionOutcome folds a finished session score into the patient's
	// active relationship aggregates. Returns nil when the patient has no
	// active relationship.
	RecordSessionOutcome(ctx context.Context, patientID uuid.UUID, score float64) (*model.Relationship, error)

	ListPatients(ctx context.Context, clinicianID uuid.UUID) ([]model.Relationship, error)
	ListClinicians(ctx context.Context, patientID uuid.UUID) ([]model.Relationship, error)
	GetPatientDetails(ctx context.Context, clinicianID, patientID uuid.UUID) (*model.Relationship, error)
	GetConnectionStatus(ctx context.Context, patientID uuid.UUID) (*model.Relationship, error)
	ListPendingRequests(ctx context.Context, clinicianID uuid.UUID) ([]model.Relationship, error)
	ActiveCounterparts(ctx context.Context, userID uuid.UUID, role model.Role) ([]uuid.UUID, error)
}

type relationshipService struct {
	r     repo.RelationshipRepo
	users repo.UserRepo
	notif NotificationService
	acts  ActivityService
	log   *zap.Logger
}

func NewRelationshipService(r repo.RelationshipRepo, users repo.UserRepo, notif NotificationService, acts ActivityService, log *zap.Logger) RelationshipService {
	return &relationshipService{r: r, users: users, notif: notif, acts: acts, log: log}
}

func (s *relationshipService) userName(ctx context.Context, id uuid.UUID) string {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return "A user"
	}
	return u.Name
}

// notify is the side-effect leg of a transition; failures are logged, never
// returned, so they cannot undo the transition itself.
func (s *relationshipService) notify(ctx context.Context, in CreateNotificationInput) {
	if _, err := s.notif.Send(ctx, in); err != nil {
		s.log.Warn("relationship notification failed",
			zap.String("recipient_id", in.RecipientID.String()),
			zap.String("type", string(in.Type)),
			zap.Error(err))
	}
}

func (s *relationshipService) record(ctx context.Context, in RecordActivityInput) {
	if _, err := s.acts.Record(ctx, in); err != nil {
		s.log.Warn("relationship activity append failed",
			zap.String("user_id", in.UserID.String()),
			zap.String("type", string(in.Type)),
			zap.Error(err))
	}
}

func (s *relationshipService) RequestConnection(ctx context.Context, patientID, clinicianID uuid.UUID, reason string) (*model.Relationship, error) {
	if patientID == uuid.Nil || clinicianID == uuid.Nil {
		return nil, fmt.Errorf("%w: patient and clinician ids are required", ErrValidation)
	}
	clinician, err := s.users.Get(ctx, clinicianID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: clinician %s", ErrNotFound, clinicianID)
	}
	if err != nil {
		return nil, err
	}
	if clinician.Role != model.RoleClinician {
		return nil, fmt.Errorf("%w: %s is not a clinician", ErrValidation, clinicianID)
	}

	rel := &model.Relationship{
		PatientID:   patientID,
		ClinicianID: clinicianID,
		AssignedBy:  patientID,
		Reason:      reason,
	}
	if err := s.r.CreateRequestExclusive(ctx, rel); err != nil {
		if errors.Is(err, repo.ErrPairExists) || errors.Is(err, repo.ErrLiveExists) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	patientName := s.userName(ctx, patientID)
	s.notify(ctx, CreateNotificationInput{
		RecipientID:    clinicianID,
		SenderID:       &patientID,
		RelationshipID: &rel.ID,
		Type:           model.NotificationInfo,
		Title:          "New Connection Request",
		Message:        fmt.Sprintf("%s requested to connect with you", patientName),
		Category:       "connection",
	})
	s.record(ctx, RecordActivityInput{
		UserID:        patientID,
		RelatedUserID: &clinicianID,
		Type:          model.ActivityConnectionRequest,
		Title:         "Connection requested",
		Description:   fmt.Sprintf("Requested a connection with %s", clinician.Name),
		Visibility:    model.VisibilityPrivate,
	})
	return rel, nil
}

func (s *relationshipService) AssignPatient(ctx context.Context, clinicianID, patientID uuid.UUID, reason string) (*model.Relationship, error) {
	patient, err := s.users.Get(ctx, patientID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: patient %s", ErrNotFound, patientID)
	}
	if err != nil {
		return nil, err
	}
	if patient.Role != model.RolePatient {
		return nil, fmt.Errorf("%w: %s is not a patient", ErrValidation, patientID)
	}

	rel := &model.Relationship{
		PatientID:   patientID,
		ClinicianID: clinicianID,
		AssignedBy:  clinicianID,
		Reason:      reason,
	}
	if err := s.r.CreateAssignmentExclusive(ctx, rel); err != nil {
		if errors.Is(err, repo.ErrPairExists) || errors.Is(err, repo.ErrLiveExists) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	clinicianName := s.userName(ctx, clinicianID)
	s.notify(ctx, CreateNotificationInput{
		RecipientID:    patientID,
		SenderID:       &clinicianID,
		RelationshipID: &rel.ID,
		Type:           model.NotificationSuccess,
		Title:          "Clinician Assigned",
		Message:        fmt.Sprintf("%s is now your clinician", clinicianName),
		Category:       "connection",
	})
	s.record(ctx, RecordActivityInput{
		UserID:        clinicianID,
		RelatedUserID: &patientID,
		Type:          model.ActivityConnectionChanged,
		Title:         "Patient assigned",
		Description:   fmt.Sprintf("Added %s to the care roster", patient.Name),
		Visibility:    model.VisibilityClinicianOnly,
	})
	return rel, nil
}

func (s *relationshipService) CancelPendingRequest(ctx context.Context, patientID uuid.UUID) error {
	rel, err := s.r.DeletePending(ctx, patientID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: no pending request", ErrNotFound)
	}
	if err != nil {
		return err
	}

	patientName := s.userName(ctx, patientID)
	s.notify(ctx, CreateNotificationInput{
		RecipientID: rel.ClinicianID,
		SenderID:    &patientID,
		Type:        model.NotificationInfo,
		Title:       "Request Cancelled",
		Message:     fmt.Sprintf("%s withdrew their connection request", patientName),
		Category:    "connection",
	})
	return nil
}

// clinicianTransitions is the allowed transition table for UpdateStatus.
var clinicianTransitions = map[model.RelationshipStatus][]model.RelationshipStatus{
	model.RelationshipActive:     {model.RelationshipPending, model.RelationshipSuspended},
	model.RelationshipSuspended:  {model.RelationshipActive},
	model.RelationshipTerminated: {model.RelationshipPending, model.RelationshipActive},
}

// statusNotices maps the target status to the patient-facing notification.
var statusNotices = map[model.RelationshipStatus]struct {
	Type  model.NotificationType
	Title string
	Body  string
}{
	model.RelationshipActive:     {model.NotificationSuccess, "Connection Approved", "%s accepted your connection"},
	model.RelationshipSuspended:  {model.NotificationWarning, "Connection Suspended", "%s temporarily suspended your connection"},
	model.RelationshipTerminated: {model.NotificationInfo, "Connection Ended", "%s ended your connection"},
}

func (s *relationshipService) UpdateStatus(ctx context.Context, clinicianID, patientID uuid.UUID, newStatus model.RelationshipStatus, reason string) (*model.Relationship, error) {
	from, ok := clinicianTransitions[newStatus]
	if !ok {
		return nil, fmt.Errorf("%w: cannot move a relationship to %q", ErrInvalidTransition, newStatus)
	}

	rel, err := s.r.GetPair(ctx, patientID, clinicianID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no relationship with this patient", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": newStatus}
	if reason != "" {
		updates["reason"] = reason
	}
	now := time.Now()
	switch newStatus {
	case model.RelationshipActive:
		updates["started_at"] = now
		updates["ended_at"] = nil
	case model.RelationshipTerminated:
		updates["ended_at"] = now
	}

	ok, err = s.r.Transition(ctx, rel.ID, from, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: relationship is %s", ErrInvalidTransition, rel.Status)
	}
	rel, err = s.r.Get(ctx, rel.ID)
	if err != nil {
		return nil, err
	}

	if notice, ok := statusNotices[newStatus]; ok {
		clinicianName := s.userName(ctx, clinicianID)
		s.notify(ctx, CreateNotificationInput{
			RecipientID:    patientID,
			SenderID:       &clinicianID,
			RelationshipID: &rel.ID,
			Type:           notice.Type,
			Title:          notice.Title,
			Message:        fmt.Sprintf(notice.Body, clinicianName),
			Category:       "connection",
		})
	}
	s.record(ctx, RecordActivityInput{
		UserID:        clinicianID,
		RelatedUserID: &patientID,
		Type:          model.ActivityConnectionChanged,
		Title:         "Connection " + string(newStatus),
		Metadata:      map[string]interface{}{"status": string(newStatus)},
		Visibility:    model.VisibilityClinicianOnly,
	})
	return rel, nil
}

func (s *relationshipService) Disconnect(ctx context.Context, patientID uuid.UUID, reason string) error {
	rels, err := s.r.ListByUser(ctx, patientID, model.RolePatient,
		[]model.RelationshipStatus{model.RelationshipPending, model.RelationshipActive})
	if err != nil {
		return err
	}
	if len(rels) == 0 {
		return fmt.Errorf("%w: no live relationship", ErrNotFound)
	}
	rel := rels[0]

	updates := map[string]interface{}{
		"status":   model.RelationshipTerminated,
		"ended_at": time.Now(),
	}
	if reason != "" {
		updates["reason"] = reason
	}
	ok, err := s.r.Transition(ctx, rel.ID,
		[]model.RelationshipStatus{model.RelationshipPending, model.RelationshipActive}, updates)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: relationship already settled", ErrConflict)
	}

	patientName := s.userName(ctx, patientID)
	s.notify(ctx, CreateNotificationInput{
		RecipientID:    rel.ClinicianID,
		SenderID:       &patientID,
		RelationshipID: &rel.ID,
		Type:           model.NotificationInfo,
		Title:          "Patient Disconnected",
		Message:        fmt.Sprintf("%s ended the connection", patientName),
		Category:       "connection",
	})
	s.record(ctx, RecordActivityInput{
		UserID:        patientID,
		RelatedUserID: &rel.ClinicianID,
		Type:          model.ActivityConnectionChanged,
		Title:         "Connection ended",
		Visibility:    model.VisibilityPrivate,
	})
	return nil
}

func (s *relationshipService) RemovePatient(ctx context.Context, clinicianID, patientID uuid.UUID, reason string) error {
	_, err := s.UpdateStatus(ctx, clinicianID, patientID, model.RelationshipTerminated, reason)
	return err
}

func (s *relationshipService) SendRecommendation(ctx context.Context, clinicianID, patientID uuid.UUID, message string) (*model.Notification, error) {
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}
	rel, err := s.r.GetPair(ctx, patientID, clinicianID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no relationship with this patient", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if rel.Status != model.RelationshipActive {
		return nil, fmt.Errorf("%w: relationship is %s", ErrForbidden, rel.Status)
	}

	clinicianName := s.userName(ctx, clinicianID)
	n, err := s.notif.Send(ctx, CreateNotificationInput{
		RecipientID:    patientID,
		SenderID:       &clinicianID,
		RelationshipID: &rel.ID,
		Type:           model.NotificationRecommendation,
		Title:          fmt.Sprintf("Recommendation from %s", clinicianName),
		Message:        message,
		Priority:       model.PriorityHigh,
		Category:       "care",
	})
	if err != nil {
		return nil, err
	}
	if err := s.r.TouchInteraction(ctx, rel.ID); err != nil {
		s.log.Warn("touch interaction failed", zap.String("relationship_id", rel.ID.String()), zap.Error(err))
	}
	return n, nil
}

func (s *relationshipService) UpdateSettings(ctx context.Context, clinicianID, patientID uuid.UUID, ps *model.PatientSettings, cs *model.ClinicianSettings) error {
	rel, err := s.r.GetPair(ctx, patientID, clinicianID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: no relationship with this patient", ErrNotFound)
	}
	if err != nil {
		return err
	}
	if rel.Status != model.RelationshipActive {
		return fmt.Errorf("%w: relationship is %s", ErrForbidden, rel.Status)
	}

	if ps != nil {
		if _, err := s.r.UpdatePatientSettings(ctx, rel.ID, *ps); err != nil {
			return err
		}
	}
	if cs != nil {
		if _, err := s.r.UpdateClinicianSettings(ctx, rel.ID, *cs); err != nil {
			return err
		}
	}
	return nil
}

func (s *relationshipService) RecordSessionOutcome(ctx context.Context, patientID uuid.UUID, score float64) (*model.Relationship, error) {
	rels, err := s.r.ListByUser(ctx, patientID, model.RolePatient,
		[]model.RelationshipStatus{model.RelationshipActive})
	if err != nil {
		return nil, err
	}
	if len(rels) == 0 {
		return nil, nil
	}
	rel := rels[0]
	if err := s.r.RecordSessionOutcome(ctx, rel.ID, score); err != nil {
		return nil, err
	}
	return &rel, nil
}

func (s *relationshipService) ListPatients(ctx context.Context, clinicianID uuid.UUID) ([]model.Relationship, error) {
	return s.r.ListByUser(ctx, clinicianID, model.RoleClinician,
		[]model.RelationshipStatus{model.RelationshipActive, model.RelationshipSuspended})
}

func (s *relationshipService) ListClinicians(ctx context.Context, patientID uuid.UUID) ([]model.Relationship, error) {
	return s.r.ListByUser(ctx, patientID, model.RolePatient,
		[]model.RelationshipStatus{model.RelationshipActive, model.RelationshipSuspended})
}

func (s *relationshipService) GetPatientDetails(ctx context.Context, clinicianID, patientID uuid.UUID) (*model.Relationship, error) {
	rel, err := s.r.GetPair(ctx, patientID, clinicianID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no relationship with this patient", ErrNotFound)
	}
	return rel, err
}

func (s *relationshipService) GetConnectionStatus(ctx context.Context, patientID uuid.UUID) (*model.Relationship, error) {
	rels, err := s.r.ListByUser(ctx, patientID, model.RolePatient, nil)
	if err != nil {
		return nil, err
	}
	// The live row wins; otherwise report the most recent settled one.
	for i := range rels {
		if rels[i].Status.Live() || rels[i].Status == model.RelationshipSuspended {
			return &rels[i], nil
		}
	}
	if len(rels) == 0 {
		return nil, fmt.Errorf("%w: no relationship", ErrNotFound)
	}
	return &rels[0], nil
}

func (s *relationshipService) ListPendingRequests(ctx context.Context, clinicianID uuid.UUID) ([]model.Relationship, error) {
	return s.r.ListPendingForClinician(ctx, clinicianID)
}

func (s *relationshipService) ActiveCounterparts(ctx context.Context, userID uuid.UUID, role model.Role) ([]uuid.UUID, error) {
	return s.r.ListActiveCounterparts(ctx, userID, role)
}
