package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rehablink-io/Rehablink/internal/modules/model"
	"github.com/rehablink-io/Rehablink/internal/modules/serializer"
	"github.com/rehablink-io/Rehablink/internal/modules/service"
)

type SessionHandler struct {
	svc service.SessionService
}

func NewSessionHandler(svc service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid session id", err))
		return uuid.Nil, false
	}
	return id, true
}

type StartSessionReq struct {
	ExerciseID *uuid.UUID       `json:"exercise_id"`
	DeviceInfo model.DeviceInfo `json:"device_info"`
}

// Start godoc
//
//	@Summary		Start an exercise session
//	@Tags			session
//	@Accept			json
//	@Produce		json
//	@Param			body	body	StartSessionReq	true	"Request"
//	@Success		200	{object}	serializer.Response{data=model.Session}
//	@Router			/session [post]
func (h *SessionHandler) Start(c *gin.Context) {
	var req StartSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	session, err := h.svc.Start(c.Request.Context(), service.StartSessionInput{
		PatientID:  currentUser(c).ID,
		ExerciseID: req.ExerciseID,
		DeviceInfo: req.DeviceInfo,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: session})
}

type IngestFrameReq struct {
	Timestamp int64            `json:"timestamp" binding:"required"`
	Landmarks []model.Landmark `json:"landmarks" binding:"required,min=1"`
}

// IngestFrame godoc
//
//	@Summary		Submit one pose frame for analysis
//	@Tags			session
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string			true	"Session ID"
//	@Param			body	body	IngestFrameReq	true	"Frame"
//	@Success		200	{object}	serializer.Response{data=service.IngestResult}
//	@Router			/session/{id}/frames [post]
func (h *SessionHandler) IngestFrame(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req IngestFrameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	result, err := h.svc.IngestFrame(c.Request.Context(), id, currentUser(c).ID, service.FrameInput{
		Timestamp: req.Timestamp,
		Landmarks: req.Landmarks,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: result})
}

type EndSessionReq struct {
	TotalReps        *int     `json:"total_reps"`
	AverageScore     *float64 `json:"average_score"`
	MaxScore         *float64 `json:"max_score"`
	MinScore         *float64 `json:"min_score"`
	OverallFeedback  []string `json:"overall_feedback"`
	ImprovementAreas []string `json:"improvement_areas"`
	Strengths        []string `json:"strengths"`
}

// End godoc
//
//	@Summary		Complete a session
//	@Tags			session
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string			true	"Session ID"
//	@Param			body	body	EndSessionReq	false	"Summary overrides"
//	@Success		200	{object}	serializer.Response{data=model.Session}
//	@Router			/session/{id}/end [post]
func (h *SessionHandler) End(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req EndSessionReq
	_ = c.ShouldBindJSON(&req)
	session, err := h.svc.End(c.Request.Context(), id, currentUser(c).ID, service.EndSessionInput{
		TotalReps:        req.TotalReps,
		AverageScore:     req.AverageScore,
		MaxScore:         req.MaxScore,
		MinScore:         req.MinScore,
		OverallFeedback:  req.OverallFeedback,
		ImprovementAreas: req.ImprovementAreas,
		Strengths:        req.Strengths,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: session})
}

// Cancel godoc
//
//	@Summary		Cancel a session
//	@Tags			session
//	@Produce		json
//	@Param			id	path	string	true	"Session ID"
//	@Success		200	{object}	serializer.Response{data=model.Session}
//	@Router			/session/{id}/cancel [post]
func (h *SessionHandler) Cancel(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	session, err := h.svc.Cancel(c.Request.Context(), id, currentUser(c).ID, c.Query("reason"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: session})
}

// Pause godoc
//
//	@Summary		Pause an active session
//	@Tags			session
//	@Produce		json
//	@Param			id	path	string	true	"Session ID"
//	@Success		200	{object}	serializer.Response
//	@Router			/session/{id}/pause [post]
func (h *SessionHandler) Pause(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.svc.Pause(c.Request.Context(), id, currentUser(c).ID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "paused"})
}

// Resume godoc
//
//	@Summary		Resume a paused session
//	@Tags			session
//	@Produce		json
//	@Param			id	path	string	true	"Session ID"
//	@Success		200	{object}	serializer.Response
//	@Router			/session/{id}/resume [post]
func (h *SessionHandler) Resume(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.svc.Resume(c.Request.Context(), id, currentUser(c).ID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "resumed"})
}

type UploadVideoReq struct {
	VideoURL     string `json:"video_url" binding:"required,url"`
	ThumbnailURL string `json:"thumbnail_url" binding:"omitempty,url"`
}

// UploadVideo godoc
//
//	@Summary		Attach a recording URL to a session
//	@Tags			session
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string			true	"Session ID"
//	@Param			body	body	UploadVideoReq	true	"Request"
//	@Success		200	{object}	serializer.Response
//	@Router			/session/{id}/video [post]
func (h *SessionHandler) UploadVideo(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req UploadVideoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	if err := h.svc.UploadVideo(c.Request.Context(), id, currentUser(c).ID, req.VideoURL, req.ThumbnailURL); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "video attached"})
}

// Get godoc
//
//	@Summary		Get one session with its reps
//	@Tags			session
//	@Produce		json
//	@Param			id	path	string	true	"Session ID"
//	@Success		200	{object}	serializer.Response{data=model.Session}
//	@Router			/session/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	session, err := h.svc.Get(c.Request.Context(), id, currentUser(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: session})
}

type ListSessionsReq struct {
	Status model.SessionStatus `form:"status" binding:"omitempty,oneof=active paused completed cancelled"`
	Limit  int                 `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int                 `form:"offset,default=0" binding:"min=0"`
}

// List godoc
//
//	@Summary		List the caller's sessions
//	@Tags			session
//	@Produce		json
//	@Param			status	query	string	false	"Filter by status"
//	@Param			limit	query	integer	false	"Page size, default 20"
//	@Param			offset	query	integer	false	"Page offset"
//	@Success		200	{object}	serializer.Response{data=[]model.Session}
//	@Router			/session [get]
func (h *SessionHandler) List(c *gin.Context) {
	var req ListSessionsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	user := currentUser(c)

	var sessions []model.Session
	var err error
	if user.Role == model.RoleClinician {
		sessions, err = h.svc.ListClinicianSessions(c.Request.Context(), user.ID, req.Limit, req.Offset)
	} else {
		sessions, err = h.svc.ListPatientSessions(c.Request.Context(), user.ID, req.Status, req.Limit, req.Offset)
	}
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: sessions})
}

// ListForPatient godoc
//
//	@Summary		List one patient's sessions (clinician view)
//	@Tags			session
//	@Produce		json
//	@Param			id	path	string	true	"Patient ID"
//	@Success		200	{object}	serializer.Response{data=[]model.Session}
//	@Router			/clinician/patients/{id}/sessions [get]
func (h *SessionHandler) ListForPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid patient id", err))
		return
	}
	var req ListSessionsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	sessions, err := h.svc.ListForClinician(c.Request.Context(), currentUser(c).ID, patientID, req.Status, req.Limit, req.Offset)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: sessions})
}
