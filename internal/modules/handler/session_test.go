package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rehablink-io/Rehablink/internal/modules/model"
	"github.com/rehablink-io/Rehablink/internal/modules/serializer"
	"github.com/rehablink-io/Rehablink/internal/modules/service"
)

// MockSessionService is a mock implementation of SessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Start(ctx context.Context, in service.StartSessionInput) (*model.Session, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionService) IngestFrame(ctx context.Context, sessionID, callerID uuid.UUID, in service.FrameInput) (*service.IngestResult, error) {
	args := m.Called(ctx, sessionID, callerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IngestResult), args.Error(1)
}

func (m *MockSessionService) End(ctx context.Context, sessionID, callerID uuid.UUID, in service.EndSessionInput) (*model.Session, error) {
	args := m.Called(ctx, sessionID, callerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionService) Cancel(ctx context.Context, sessionID, callerID uuid.UUID, reason string) (*model.Session, error) {
	args := m.Called(ctx, sessionID, callerID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionService) Pause(ctx context.Context, sessionID, callerID uuid.UUID) error {
	args := m.Called(ctx, sessionID, callerID)
	return args.Error(0)
}

func (m *MockSessionService) Resume(ctx context.Context, sessionID, callerID uuid.UUID) error {
	args := m.Called(ctx, sessionID, callerID)
	return args.Error(0)
}

func (m *MockSessionService) UploadVideo(ctx context.Context, sessionID, callerID uuid.UUID, videoURL, thumbnailURL string) error {
	args := m.Called(ctx, sessionID, callerID, videoURL, thumbnailURL)
	return args.Error(0)
}

func (m *MockSessionService) Get(ctx context.Context, sessionID uuid.UUID, viewer *model.User) (*model.Session, error) {
	args := m.Called(ctx, sessionID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionService) ListPatientSessions(ctx context.Context, patientID uuid.UUID, status model.SessionStatus, limit, offset int) ([]model.Session, error) {
	args := m.Called(ctx, patientID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Session), args.Error(1)
}

func (m *MockSessionService) ListClinicianSessions(ctx context.Context, clinicianID uuid.UUID, limit, offset int) ([]model.Session, error) {
	args := m.Called(ctx, clinicianID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Session), args.Error(1)
}

func (m *MockSessionService) ListForClinician(ctx context.Context, clinicianID, patientID uuid.UUID, status model.SessionStatus, limit, offset int) ([]model.Session, error) {
	args := m.Called(ctx, clinicianID, patientID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Session), args.Error(1)
}

func (m *MockSessionService) RunReaper(ctx context.Context) {
	m.Called(ctx)
}

func testLandmarks() []model.Landmark {
	lm := make([]model.Landmark, 33)
	for i := range lm {
		lm[i] = model.Landmark{X: 0.5, Y: 0.5, Z: 0, Visibility: 0.9}
	}
	return lm
}

func TestSessionHandler_Start(t *testing.T) {
	patient := &model.User{ID: uuid.New(), Role: model.RolePatient}
	exerciseID := uuid.New()

	tests := []struct {
		name           string
		body           StartSessionReq
		setup          func(*MockSessionService)
		expectedStatus int
	}{
		{
			name: "start with explicit exercise",
			body: StartSessionReq{ExerciseID: &exerciseID, DeviceInfo: model.DeviceInfo{Platform: "ios"}},
			setup: func(svc *MockSessionService) {
				svc.On("Start", mock.Anything, mock.MatchedBy(func(in service.StartSessionInput) bool {
					return in.PatientID == patient.ID && in.ExerciseID != nil && *in.ExerciseID == exerciseID
				})).Return(&model.Session{ID: uuid.New(), PatientID: patient.ID, Status: model.SessionActive}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "start ad-hoc without exercise",
			body: StartSessionReq{},
			setup: func(svc *MockSessionService) {
				svc.On("Start", mock.Anything, mock.MatchedBy(func(in service.StartSessionInput) bool {
					return in.PatientID == patient.ID && in.ExerciseID == nil
				})).Return(&model.Session{ID: uuid.New(), PatientID: patient.ID, Status: model.SessionActive}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "live session already exists",
			body: StartSessionReq{},
			setup: func(svc *MockSessionService) {
				svc.On("Start", mock.Anything, mock.Anything).Return(nil, service.ErrConflict)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockSessionService{}
			tt.setup(mockService)

			handler := NewSessionHandler(mockService)
			router := setupRouter(patient)
			router.POST("/session", handler.Start)

			req := httptest.NewRequest("POST", "/session", jsonBody(t, tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestSessionHandler_IngestFrame(t *testing.T) {
	patient := &model.User{ID: uuid.New(), Role: model.RolePatient}
	sessionUUID := uuid.New()

	tests := []struct {
		name           string
		paramID        string
		body           interface{}
		setup          func(*MockSessionService)
		expectedStatus int
	}{
		{
			name:    "frame accepted",
			paramID: sessionUUID.String(),
			body:    IngestFrameReq{Timestamp: 1000, Landmarks: testLandmarks()},
			setup: func(svc *MockSessionService) {
				svc.On("IngestFrame", mock.Anything, sessionUUID, patient.ID, mock.MatchedBy(func(in service.FrameInput) bool {
					return in.Timestamp == 1000 && len(in.Landmarks) == 33
				})).Return(&service.IngestResult{Accuracy: 87.5, TotalReps: 3}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing landmarks fails binding",
			paramID:        sessionUUID.String(),
			body:           map[string]interface{}{"timestamp": 1000},
			setup:          func(svc *MockSessionService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed session id",
			paramID:        "oops",
			body:           IngestFrameReq{Timestamp: 1000, Landmarks: testLandmarks()},
			setup:          func(svc *MockSessionService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "stale frame",
			paramID: sessionUUID.String(),
			body:    IngestFrameReq{Timestamp: 500, Landmarks: testLandmarks()},
			setup: func(svc *MockSessionService) {
				svc.On("IngestFrame", mock.Anything, sessionUUID, patient.ID, mock.Anything).
					Return(nil, service.ErrStaleFrame)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "session already settled",
			paramID: sessionUUID.String(),
			body:    IngestFrameReq{Timestamp: 1000, Landmarks: testLandmarks()},
			setup: func(svc *MockSessionService) {
				svc.On("IngestFrame", mock.Anything, sessionUUID, patient.ID, mock.Anything).
					Return(nil, service.ErrSessionNotActive)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockSessionService{}
			tt.setup(mockService)

			handler := NewSessionHandler(mockService)
			router := setupRouter(patient)
			router.POST("/session/:id/frames", handler.IngestFrame)

			req := httptest.NewRequest("POST", "/session/"+tt.paramID+"/frames", jsonBody(t, tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestSessionHandler_End(t *testing.T) {
	patient := &model.User{ID: uuid.New(), Role: model.RolePatient}
	sessionUUID := uuid.New()

	t.Run("end without overrides", func(t *testing.T) {
		mockService := &MockSessionService{}
		mockService.On("End", mock.Anything, sessionUUID, patient.ID, service.EndSessionInput{}).
			Return(&model.Session{ID: sessionUUID, Status: model.SessionCompleted}, nil)

		handler := NewSessionHandler(mockService)
		router := setupRouter(patient)
		router.POST("/session/:id/end", handler.End)

		req := httptest.NewRequest("POST", "/session/"+sessionUUID.String()+"/end", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp serializer.Response
		require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))
		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, string(model.SessionCompleted), data["status"])
	})

	t.Run("end with client summary", func(t *testing.T) {
		totalReps := 20
		avg := 77.5
		mockService := &MockSessionService{}
		mockService.On("End", mock.Anything, sessionUUID, patient.ID, mock.MatchedBy(func(in service.EndSessionInput) bool {
			return in.TotalReps != nil && *in.TotalReps == totalReps &&
				in.AverageScore != nil && *in.AverageScore == avg
		})).Return(&model.Session{ID: sessionUUID, Status: model.SessionCompleted}, nil)

		handler := NewSessionHandler(mockService)
		router := setupRouter(patient)
		router.POST("/session/:id/end", handler.End)

		req := httptest.NewRequest("POST", "/session/"+sessionUUID.String()+"/end",
			jsonBody(t, EndSessionReq{TotalReps: &totalReps, AverageScore: &avg}))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ending a settled session", func(t *testing.T) {
		mockService := &MockSessionService{}
		mockService.On("End", mock.Anything, sessionUUID, patient.ID, mock.Anything).
			Return(nil, service.ErrNotFound)

		handler := NewSessionHandler(mockService)
		router := setupRouter(patient)
		router.POST("/session/:id/end", handler.End)

		req := httptest.NewRequest("POST", "/session/"+sessionUUID.String()+"/end", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSessionHandler_PauseResume(t *testing.T) {
	patient := &model.User{ID: uuid.New(), Role: model.RolePatient}
	sessionUUID := uuid.New()

	t.Run("pause active session", func(t *testing.T) {
		mockService := &MockSessionService{}
		mockService.On("Pause", mock.Anything, sessionUUID, patient.ID).Return(nil)

		handler := NewSessionHandler(mockService)
		router := setupRouter(patient)
		router.POST("/session/:id/pause", handler.Pause)

		req := httptest.NewRequest("POST", "/session/"+sessionUUID.String()+"/pause", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("resume when not paused", func(t *testing.T) {
		mockService := &MockSessionService{}
		mockService.On("Resume", mock.Anything, sessionUUID, patient.ID).Return(service.ErrInvalidTransition)

		handler := NewSessionHandler(mockService)
		router := setupRouter(patient)
		router.POST("/session/:id/resume", handler.Resume)

		req := httptest.NewRequest("POST", "/session/"+sessionUUID.String()+"/resume", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestSessionHandler_UploadVideo(t *testing.T) {
	patient := &model.User{ID: uuid.New(), Role: model.RolePatient}
	sessionUUID := uuid.New()

	t.Run("valid urls", func(t *testing.T) {
		mockService := &MockSessionService{}
		mockService.On("UploadVideo", mock.Anything, sessionUUID, patient.ID,
			"https://cdn.example.com/v/1.mp4", "https://cdn.example.com/t/1.jpg").Return(nil)

		handler := NewSessionHandler(mockService)
		router := setupRouter(patient)
		router.POST("/session/:id/video", handler.UploadVideo)

		req := httptest.NewRequest("POST", "/session/"+sessionUUID.String()+"/video",
			jsonBody(t, UploadVideoReq{VideoURL: "https://cdn.example.com/v/1.mp4", ThumbnailURL: "https://cdn.example.com/t/1.jpg"}))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("non-url rejected by binding", func(t *testing.T) {
		mockService := &MockSessionService{}

		handler := NewSessionHandler(mockService)
		router := setupRouter(patient)
		router.POST("/session/:id/video", handler.UploadVideo)

		req := httptest.NewRequest("POST", "/session/"+sessionUUID.String()+"/video",
			jsonBody(t, map[string]interface{}{"video_url": "not a url"}))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "UploadVideo", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSessionHandler_List(t *testing.T) {
	patientID := uuid.New()
	clinicianID := uuid.New()

	tests := []struct {
		name           string
		user           *model.User
		queryParams    string
		setup          func(*MockSessionService)
		expectedStatus int
	}{
		{
			name:        "patient list with defaults",
			user:        &model.User{ID: patientID, Role: model.RolePatient},
			queryParams: "",
			setup: func(svc *MockSessionService) {
				svc.On("ListPatientSessions", mock.Anything, patientID, model.SessionStatus(""), 20, 0).
					Return([]model.Session{{ID: uuid.New()}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "patient list filtered by status",
			user:        &model.User{ID: patientID, Role: model.RolePatient},
			queryParams: "?status=completed&limit=5",
			setup: func(svc *MockSessionService) {
				svc.On("ListPatientSessions", mock.Anything, patientID, model.SessionCompleted, 5, 0).
					Return([]model.Session{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "clinician sees roster sessions",
			user:        &model.User{ID: clinicianID, Role: model.RoleClinician},
			queryParams: "",
			setup: func(svc *MockSessionService) {
				svc.On("ListClinicianSessions", mock.Anything, clinicianID, 20, 0).
					Return([]model.Session{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown status value",
			user:           &model.User{ID: patientID, Role: model.RolePatient},
			queryParams:    "?status=archived",
			setup:          func(svc *MockSessionService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "limit above cap",
			user:           &model.User{ID: patientID, Role: model.RolePatient},
			queryParams:    "?limit=500",
			setup:          func(svc *MockSessionService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockSessionService{}
			tt.setup(mockService)

			handler := NewSessionHandler(mockService)
			router := setupRouter(tt.user)
			router.GET("/session", handler.List)

			req := httptest.NewRequest("GET", "/session"+tt.queryParams, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestSessionHandler_ListForPatient(t *testing.T) {
	clinician := &model.User{ID: uuid.New(), Role: model.RoleClinician}
	patientID := uuid.New()

	t.Run("connected patient", func(t *testing.T) {
		mockService := &MockSessionService{}
		mockService.On("ListForClinician", mock.Anything, clinician.ID, patientID, model.SessionStatus(""), 20, 0).
			Return([]model.Session{{ID: uuid.New(), PatientID: patientID}}, nil)

		handler := NewSessionHandler(mockService)
		router := setupRouter(clinician)
		router.GET("/clinician/patients/:id/sessions", handler.ListForPatient)

		req := httptest.NewRequest("GET", "/clinician/patients/"+patientID.String()+"/sessions", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("no relationship with the patient", func(t *testing.T) {
		mockService := &MockSessionService{}
		mockService.On("ListForClinician", mock.Anything, clinician.ID, patientID, model.SessionStatus(""), 20, 0).
			Return(nil, service.ErrNotFound)

		handler := NewSessionHandler(mockService)
		router := setupRouter(clinician)
		router.GET("/clinician/patients/:id/sessions", handler.ListForPatient)

		req := httptest.NewRequest("GET", "/clinician/patients/"+patientID.String()+"/sessions", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
