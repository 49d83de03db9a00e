package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rehablink-io/Rehablink/internal/config"
	"github.com/rehablink-io/Rehablink/internal/infra/httpclient"
	"github.com/rehablink-io/Rehablink/internal/modules/model"
	"github.com/rehablink-io/Rehablink/internal/modules/repo"
	"github.com/rehablink-io/Rehablink/internal/push"
	"github.com/rehablink-io/Rehablink/internal/telemetry"
)

// PoseInferrer is the slice of the pose client the coordinator needs.
type PoseInferrer interface {
	Infer(ctx context.Context, req httpclient.InferRequest) (*httpclient.InferResult, error)
}

type StartSessionInput struct {
	PatientID   uuid.UUID
	ExerciseID  *uuid.UUID
	ClinicianID *uuid.UUID
	DeviceInfo  model.DeviceInfo
}

type FrameInput struct {
	Timestamp int64
	Landmarks []model.Landmark
}

type IngestResult struct {
	Frame        *model.PoseFrame `json:"frame"`
	Accuracy     float64          `json:"accuracy"`
	Feedback     []string         `json:"feedback,omitempty"`
	RepCompleted bool             `json:"rep_completed"`
	TotalReps    int              `json:"total_reps"`
	Degraded     bool             `json:"degraded,omitempty"`
}

type EndSessionInput struct {
	TotalReps        *int
	AverageScore     *float64
	MaxScore         *float64
	MinScore         *float64
	OverallFeedback  []string
	ImprovementAreas []string
	Strengths        []string
}

type SessionService interface {
	Start(ctx context.Context, in StartSessionInput) (*model.Session, error)
	// IngestFrame appends one analyzed frame. Calls for the same session are
	// serialized; frames for different sessions proceed in parallel. Mutating
	// calls are scoped to the owning patient: someone else's session reads as
	// absent.
	IngestFrame(ctx context.Context, sessionID, callerID uuid.UUID, in FrameInput) (*IngestResult, error)
	End(ctx context.Context, sessionID, callerID uuid.UUID, in EndSessionInput) (*model.Session, error)
	Cancel(ctx context.Context, sessionID, callerID uuid.UUID, reason string) (*model.Session, error)
	Pause(ctx context.Context, sessionID, callerID uuid.UUID) error
	Resume(ctx context.Context, sessionID, callerID uuid.UUID) error
	UploadVideo(ctx context.Context, sessionID, callerID uuid.UUID, videoURL, thumbnailURL string) error
	// Get returns the session with its reps when the viewer is the owning
	// patient, the assigned clinician, or a clinician connected to the owner.
	Get(ctx context.Context, sessionID uuid.UUID, viewer *model.User) (*model.Session, error)
	ListPatientSessions(ctx context.Context, patientID uuid.UUID, status model.SessionStatus, limit, offset int) ([]model.Session, error)
	ListClinicianSessions(ctx context.Context, clinicianID uuid.UUID, limit, offset int) ([]model.Session, error)
	// ListForClinician lists one patient's sessions after verifying the
	// clinician actually has a relationship with them.
	ListForClinician(ctx context.Context, clinicianID, patientID uuid.UUID, status model.SessionStatus, limit, offset int) ([]model.Session, error)
	// RunReaper cancels sessions idle past the configured window until ctx is
	// done. No-op when the window is zero.
	RunReaper(ctx context.Context)
}

// sessionState serializes ingestion for one session and caches the ordering
// watermarks so the hot path does not re-read them per frame.
type sessionState struct {
	mu     sync.Mutex
	seeded bool
	seq    int
	lastTS int64
}

type sessionService struct {
	r         repo.SessionRepo
	exercises repo.ExerciseRepo
	users     repo.UserRepo
	rels      RelationshipService
	notif     NotificationService
	acts      ActivityService
	pose      PoseInferrer
	ch        push.Channel
	cfg       *config.Config
	log       *zap.Logger

	sf     singleflight.Group
	mu     sync.Mutex
	states map[uuid.UUID]*sessionState
}

func NewSessionService(
	r repo.SessionRepo,
	exercises repo.ExerciseRepo,
	users repo.UserRepo,
	rels RelationshipService,
	notif NotificationService,
	acts ActivityService,
	pose PoseInferrer,
	ch push.Channel,
	cfg *config.Config,
	log *zap.Logger,
) SessionService {
	return &sessionService{
		r:         r,
		exercises: exercises,
		users:     users,
		rels:      rels,
		notif:     notif,
		acts:      acts,
		pose:      pose,
		ch:        ch,
		cfg:       cfg,
		log:       log,
		states:    make(map[uuid.UUID]*sessionState),
	}
}

func (s *sessionService) state(id uuid.UUID) *sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	if !ok {
		st = &sessionState{}
		s.states[id] = st
	}
	return st
}

func (s *sessionService) dropState(id uuid.UUID) {
	s.mu.Lock()
	delete(s.states, id)
	s.mu.Unlock()
}

// owned loads the session and hides it behind ErrNotFound unless callerID is
// its patient.
func (s *sessionService) owned(ctx context.Context, sessionID, callerID uuid.UUID) (*model.Session, error) {
	session, err := s.r.Get(ctx, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
	}
	if err != nil {
		return nil, err
	}
	if session.PatientID != callerID {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
	}
	return session, nil
}

// liveSessionExercise resolves the patient's sentinel exercise for ad-hoc
// sessions, creating it at most once across concurrent starts.
func (s *sessionService) liveSessionExercise(ctx context.Context, patientID uuid.UUID) (*model.Exercise, error) {
	v, err, _ := s.sf.Do("live-session-exercise:"+patientID.String(), func() (interface{}, error) {
		return s.exercises.FirstOrCreateByName(ctx, &model.Exercise{
			Name:        model.LiveSessionExerciseName,
			Description: "Ad-hoc session without a prescribed exercise",
			Category:    "general",
			Difficulty:  "adaptive",
			CreatedBy:   &patientID,
		})
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Exercise), nil
}

func (s *sessionService) Start(ctx context.Context, in StartSessionInput) (*model.Session, error) {
	if in.PatientID == uuid.Nil {
		return nil, fmt.Errorf("%w: patient_id is required", ErrValidation)
	}
	if _, err := s.users.Get(ctx, in.PatientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: patient %s", ErrNotFound, in.PatientID)
		}
		return nil, err
	}

	var exercise *model.Exercise
	var err error
	if in.ExerciseID != nil {
		exercise, err = s.exercises.Get(ctx, *in.ExerciseID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: exercise %s", ErrNotFound, *in.ExerciseID)
		}
	} else {
		exercise, err = s.liveSessionExercise(ctx, in.PatientID)
	}
	if err != nil {
		return nil, err
	}

	if existing, err := s.r.ActiveByPatient(ctx, in.PatientID); err == nil {
		return nil, fmt.Errorf("%w: session %s is still %s", ErrConflict, existing.ID, existing.Status)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	clinicianID := in.ClinicianID
	if clinicianID == nil {
		ids, err := s.rels.ActiveCounterparts(ctx, in.PatientID, model.RolePatient)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			clinicianID = &ids[0]
		}
	}

	session := &model.Session{
		PatientID:   in.PatientID,
		ClinicianID: clinicianID,
		ExerciseID:  exercise.ID,
		Status:      model.SessionActive,
		StartTime:   time.Now(),
		DeviceInfo:  datatypes.NewJSONType(in.DeviceInfo),
	}
	if err := s.r.Create(ctx, session); err != nil {
		return nil, err
	}

	if _, err := s.acts.Record(ctx, RecordActivityInput{
		UserID:     in.PatientID,
		SessionID:  &session.ID,
		ExerciseID: &exercise.ID,
		Type:       model.ActivityExerciseStarted,
		Title:      "Started " + exercise.Name,
		Visibility: model.VisibilityClinicianOnly,
	}); err != nil {
		s.log.Warn("session start activity failed", zap.String("session_id", session.ID.String()), zap.Error(err))
	}
	if clinicianID != nil && s.ch != nil {
		msg := push.Message{
			Type: push.EventSessionStarted,
			Data: map[string]interface{}{
				"session_id": session.ID.String(),
				"patient_id": in.PatientID.String(),
				"exercise":   exercise.Name,
			},
		}
		if err := s.ch.Publish(ctx, *clinicianID, msg); err != nil {
			s.log.Warn("session start push failed", zap.String("session_id", session.ID.String()), zap.Error(err))
		}
	}
	return session, nil
}

func (s *sessionService) IngestFrame(ctx context.Context, sessionID, callerID uuid.UUID, in FrameInput) (*IngestResult, error) {
	if len(in.Landmarks) == 0 {
		return nil, fmt.Errorf("%w: landmarks are required", ErrValidation)
	}

	st := s.state(sessionID)
	st.mu.Lock()
	defer st.mu.Unlock()

	started := time.Now()

	session, err := s.owned(ctx, sessionID, callerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			telemetry.RecordFrameError(ctx, "not_found")
		}
		return nil, err
	}
	if session.Status.Terminal() {
		telemetry.RecordFrameError(ctx, "terminal")
		return nil, fmt.Errorf("%w: session is %s", ErrSessionNotActive, session.Status)
	}

	if !st.seeded {
		last, err := s.r.LastFrame(ctx, sessionID)
		switch {
		case err == nil:
			st.seq = last.Seq
			st.lastTS = last.Timestamp
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return nil, err
		}
		st.seeded = true
	}
	if in.Timestamp <= st.lastTS {
		telemetry.RecordFrameError(ctx, "stale_timestamp")
		return nil, fmt.Errorf("%w: got %d after %d", ErrStaleFrame, in.Timestamp, st.lastTS)
	}
	prevTS := st.lastTS

	exerciseName := model.LiveSessionExerciseName
	if ex, err := s.exercises.Get(ctx, session.ExerciseID); err == nil {
		exerciseName = ex.Name
	}
	verdict, err := s.pose.Infer(ctx, httpclient.InferRequest{
		ExerciseName: exerciseName,
		Landmarks:    in.Landmarks,
	})
	if err != nil {
		telemetry.RecordFrameError(ctx, "inference")
		return nil, err
	}

	frame := &model.PoseFrame{
		SessionID:     sessionID,
		Seq:           st.seq + 1,
		Timestamp:     in.Timestamp,
		Landmarks:     datatypes.NewJSONType(in.Landmarks),
		DerivedAngles: datatypes.NewJSONType(verdict.DerivedAngles),
		IsCorrectForm: verdict.IsCorrectForm,
		Confidence:    verdict.Accuracy,
	}
	if err := s.r.AppendFrame(ctx, frame); err != nil {
		return nil, err
	}
	st.seq = frame.Seq
	st.lastTS = in.Timestamp

	result := &IngestResult{
		Frame:     frame,
		Accuracy:  verdict.Accuracy,
		Feedback:  verdict.Feedback,
		TotalReps: session.TotalReps,
		Degraded:  verdict.Degraded,
	}

	// Degraded verdicts never complete a rep; the local heuristic has no rep
	// model and must not inflate the counter.
	if verdict.IsRepComplete && !verdict.Degraded && session.Status == model.SessionActive {
		repStart := prevTS
		if repStart == 0 {
			repStart = in.Timestamp
		}
		rep := &model.RepRecord{
			SessionID: sessionID,
			StartTime: repStart,
			EndTime:   in.Timestamp,
			Score:     verdict.Accuracy,
			Feedback:  datatypes.NewJSONSlice(verdict.Feedback),
		}
		updated, err := s.r.AppendRep(ctx, rep)
		if err != nil {
			if errors.Is(err, repo.ErrSessionNotActive) {
				telemetry.RecordFrameError(ctx, "rep_on_settled_session")
			} else {
				return nil, err
			}
		} else {
			result.RepCompleted = true
			result.TotalReps = updated.TotalReps
		}
	}

	telemetry.RecordFrameIngest(ctx, float64(time.Since(started).Milliseconds()), verdict.Degraded, result.RepCompleted)
	return result, nil
}

func (s *sessionService) End(ctx context.Context, sessionID, callerID uuid.UUID, in EndSessionInput) (*model.Session, error) {
	session, err := s.owned(ctx, sessionID, callerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":           model.SessionCompleted,
		"end_time":         now,
		"duration_seconds": int(now.Sub(session.StartTime).Seconds()),
	}
	if in.TotalReps != nil {
		updates["total_reps"] = *in.TotalReps
	}
	if in.AverageScore != nil {
		updates["average_score"] = *in.AverageScore
	}
	if in.MaxScore != nil {
		updates["max_score"] = *in.MaxScore
	}
	if in.MinScore != nil {
		updates["min_score"] = *in.MinScore
	}
	if len(in.OverallFeedback) > 0 {
		updates["overall_feedback"] = datatypes.NewJSONSlice(in.OverallFeedback)
	}
	if len(in.ImprovementAreas) > 0 {
		updates["improvement_areas"] = datatypes.NewJSONSlice(in.ImprovementAreas)
	}
	if len(in.Strengths) > 0 {
		updates["strengths"] = datatypes.NewJSONSlice(in.Strengths)
	}

	ok, err := s.r.Transition(ctx, sessionID,
		[]model.SessionStatus{model.SessionActive, model.SessionPaused}, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: session already %s", ErrNotFound, session.Status)
	}
	s.dropState(sessionID)

	session, err = s.r.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.finishSideEffects(ctx, session, false)
	return session, nil
}

func (s *sessionService) Cancel(ctx context.Context, sessionID, callerID uuid.UUID, reason string) (*model.Session, error) {
	session, err := s.owned(ctx, sessionID, callerID)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, session, reason)
}

// cancel settles an already-loaded session; the reaper enters here since it
// acts on the system's behalf rather than a caller's.
func (s *sessionService) cancel(ctx context.Context, session *model.Session, reason string) (*model.Session, error) {
	sessionID := session.ID
	now := time.Now()
	ok, err := s.r.Transition(ctx, sessionID,
		[]model.SessionStatus{model.SessionActive, model.SessionPaused},
		map[string]interface{}{
			"status":           model.SessionCancelled,
			"end_time":         now,
			"duration_seconds": int(now.Sub(session.StartTime).Seconds()),
		})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: session already %s", ErrNotFound, session.Status)
	}
	s.dropState(sessionID)

	session, err = s.r.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		s.log.Info("session cancelled", zap.String("session_id", sessionID.String()), zap.String("reason", reason))
	}
	s.finishSideEffects(ctx, session, true)
	return session, nil
}

// finishSideEffects records the activity, folds the outcome into the active
// relationship and alerts the clinician. Best-effort after the transition.
func (s *sessionService) finishSideEffects(ctx context.Context, session *model.Session, cancelled bool) {
	actType := model.ActivityExerciseCompleted
	title := "Completed a session"
	if cancelled {
		actType = model.ActivityExerciseCancelled
		title = "Cancelled a session"
	}
	if _, err := s.acts.Record(ctx, RecordActivityInput{
		UserID:     session.PatientID,
		SessionID:  &session.ID,
		ExerciseID: &session.ExerciseID,
		Type:       actType,
		Title:      title,
		Metadata: map[string]interface{}{
			"total_reps":       session.TotalReps,
			"average_score":    session.AverageScore,
			"duration_seconds": session.DurationSeconds,
		},
		Visibility: model.VisibilityClinicianOnly,
	}); err != nil {
		s.log.Warn("session finish activity failed", zap.String("session_id", session.ID.String()), zap.Error(err))
	}

	if cancelled {
		return
	}

	rel, err := s.rels.RecordSessionOutcome(ctx, session.PatientID, session.AverageScore)
	if err != nil {
		s.log.Warn("record session outcome failed", zap.String("session_id", session.ID.String()), zap.Error(err))
	}

	clinicianID := session.ClinicianID
	if clinicianID == nil && rel != nil {
		clinicianID = &rel.ClinicianID
	}
	if clinicianID == nil {
		return
	}

	patientName := "Your patient"
	if u, err := s.users.Get(ctx, session.PatientID); err == nil {
		patientName = u.Name
	}
	if _, err := s.notif.SendProgressAlert(ctx, *clinicianID, session.PatientID, patientName, session.ID, session.AverageScore); err != nil {
		s.log.Warn("progress alert failed", zap.String("session_id", session.ID.String()), zap.Error(err))
	}
	if s.ch != nil {
		msg := push.Message{
			Type: push.EventSessionEnded,
			Data: map[string]interface{}{
				"session_id":    session.ID.String(),
				"patient_id":    session.PatientID.String(),
				"total_reps":    session.TotalReps,
				"average_score": session.AverageScore,
			},
		}
		if err := s.ch.Publish(ctx, *clinicianID, msg); err != nil {
			s.log.Warn("session end push failed", zap.String("session_id", session.ID.String()), zap.Error(err))
		}
	}
}

func (s *sessionService) Pause(ctx context.Context, sessionID, callerID uuid.UUID) error {
	if _, err := s.owned(ctx, sessionID, callerID); err != nil {
		return err
	}
	ok, err := s.r.Transition(ctx, sessionID,
		[]model.SessionStatus{model.SessionActive},
		map[string]interface{}{"status": model.SessionPaused})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: session is not active", ErrInvalidTransition)
	}
	return nil
}

func (s *sessionService) Resume(ctx context.Context, sessionID, callerID uuid.UUID) error {
	if _, err := s.owned(ctx, sessionID, callerID); err != nil {
		return err
	}
	ok, err := s.r.Transition(ctx, sessionID,
		[]model.SessionStatus{model.SessionPaused},
		map[string]interface{}{"status": model.SessionActive})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: session is not paused", ErrInvalidTransition)
	}
	return nil
}

func (s *sessionService) UploadVideo(ctx context.Context, sessionID, callerID uuid.UUID, videoURL, thumbnailURL string) error {
	if videoURL == "" {
		return fmt.Errorf("%w: video_url is required", ErrValidation)
	}
	session, err := s.owned(ctx, sessionID, callerID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{"video_url": videoURL}
	if thumbnailURL != "" {
		updates["thumbnail_url"] = thumbnailURL
	}
	if _, err := s.r.Transition(ctx, sessionID,
		[]model.SessionStatus{model.SessionActive, model.SessionPaused, model.SessionCompleted, model.SessionCancelled},
		updates); err != nil {
		return err
	}

	if _, err := s.acts.Record(ctx, RecordActivityInput{
		UserID:     session.PatientID,
		SessionID:  &session.ID,
		Type:       model.ActivitySessionUploaded,
		Title:      "Uploaded a session recording",
		Visibility: model.VisibilityClinicianOnly,
	}); err != nil {
		s.log.Warn("video upload activity failed", zap.String("session_id", sessionID.String()), zap.Error(err))
	}
	return nil
}

func (s *sessionService) Get(ctx context.Context, sessionID uuid.UUID, viewer *model.User) (*model.Session, error) {
	session, err := s.r.GetDetail(ctx, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
	}
	if err != nil {
		return nil, err
	}
	if !s.canView(ctx, session, viewer) {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
	}
	return session, nil
}

func (s *sessionService) canView(ctx context.Context, session *model.Session, viewer *model.User) bool {
	if viewer == nil {
		return false
	}
	if session.PatientID == viewer.ID {
		return true
	}
	if viewer.Role != model.RoleClinician {
		return false
	}
	if session.ClinicianID != nil && *session.ClinicianID == viewer.ID {
		return true
	}
	_, err := s.rels.GetPatientDetails(ctx, viewer.ID, session.PatientID)
	return err == nil
}

func (s *sessionService) ListPatientSessions(ctx context.Context, patientID uuid.UUID, status model.SessionStatus, limit, offset int) ([]model.Session, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.r.ListByPatient(ctx, patientID, status, limit, offset)
}

func (s *sessionService) ListClinicianSessions(ctx context.Context, clinicianID uuid.UUID, limit, offset int) ([]model.Session, error) {
	if limit <= 0 {
		limit = 20
	}
	patientIDs, err := s.rels.ActiveCounterparts(ctx, clinicianID, model.RoleClinician)
	if err != nil {
		return nil, err
	}
	return s.r.ListByClinicianPatients(ctx, patientIDs, limit, offset)
}

func (s *sessionService) ListForClinician(ctx context.Context, clinicianID, patientID uuid.UUID, status model.SessionStatus, limit, offset int) ([]model.Session, error) {
	if _, err := s.rels.GetPatientDetails(ctx, clinicianID, patientID); err != nil {
		return nil, err
	}
	return s.ListPatientSessions(ctx, patientID, status, limit, offset)
}

func (s *sessionService) RunReaper(ctx context.Context) {
	idle := s.cfg.Session.IdleTimeout
	if idle <= 0 {
		return
	}
	interval := s.cfg.Session.ReaperInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.reapOnce(ctx, time.Now().Add(-idle))
		}
	}
}

func (s *sessionService) reapOnce(ctx context.Context, cutoff time.Time) {
	stale, err := s.r.StaleLive(ctx, cutoff)
	if err != nil {
		s.log.Warn("stale session query failed", zap.Error(err))
		return
	}
	for i := range stale {
		if _, err := s.cancel(ctx, &stale[i], "abandoned: no frame activity"); err != nil {
			s.log.Warn("reap session failed", zap.String("session_id", stale[i].ID.String()), zap.Error(err))
			continue
		}
		s.log.Info("reaped abandoned session",
			zap.String("session_id", stale[i].ID.String()),
			zap.Time("cutoff", cutoff))
	}
}
