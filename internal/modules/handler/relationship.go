package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rehablink-io/Rehablink/internal/modules/model"
	"github.com/rehablink-io/Rehablink/internal/modules/serializer"
	"github.com/rehablink-io/Rehablink/internal/modules/service"
)

type RelationshipHandler struct {
	svc service.RelationshipService
}

func NewRelationshipHandler(svc service.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{svc: svc}
}

type RequestConnectionReq struct {
	ClinicianID uuid.UUID `json:"clinician_id" binding:"required"`
	Reason      string    `json:"reason" binding:"max=500"`
}

// RequestConnection godoc
//
//	@Summary		Request a connection with a clinician
//	@Tags			relationship
//	@Accept			json
//	@Produce		json
//	@Param			body	body	RequestConnectionReq	true	"Request"
//	@Success		200	{object}	serializer.Response{data=model.Relationship}
//	@Router			/patient/connection [post]
func (h *RelationshipHandler) RequestConnection(c *gin.Context) {
	var req RequestConnectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	rel, err := h.svc.RequestConnection(c.Request.Context(), currentUser(c).ID, req.ClinicianID, req.Reason)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: rel})
}

type DisconnectReq struct {
	Reason string `json:"reason" binding:"max=500"`
}

// Disconnect godoc
//
//	@Summary		Cancel a pending request or end the active connection
//	@Tags			relationship
//	@Produce		json
//	@Success		200	{object}	serializer.Response
//	@Router			/patient/connection [delete]
func (h *RelationshipHandler) Disconnect(c *gin.Context) {
	var req DisconnectReq
	_ = c.ShouldBindJSON(&req)

	patientID := currentUser(c).ID
	// A pending request is withdrawn outright; only its absence escalates to
	// terminating the live connection.
	err := h.svc.CancelPendingRequest(c.Request.Context(), patientID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, serializer.Response{Msg: "request cancelled"})
		return
	case !errors.Is(err, service.ErrNotFound):
		respondErr(c, err)
		return
	}
	if err := h.svc.Disconnect(c.Request.Context(), patientID, req.Reason); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "disconnected"})
}

// ConnectionStatus godoc
//
//	@Summary		Get the patient's current connection
//	@Tags			relationship
//	@Produce		json
//	@Success		200	{object}	serializer.Response{data=model.Relationship}
//	@Router			/patient/connection [get]
func (h *RelationshipHandler) ConnectionStatus(c *gin.Context) {
	rel, err := h.svc.GetConnectionStatus(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: rel})
}

// ListClinicians godoc
//
//	@Summary		List the patient's clinicians
//	@Tags			relationship
//	@Produce		json
//	@Success		200	{object}	serializer.Response{data=[]model.Relationship}
//	@Router			/patient/clinicians [get]
func (h *RelationshipHandler) ListClinicians(c *gin.Context) {
	rels, err := h.svc.ListClinicians(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: rels})
}

type AssignPatientReq struct {
	PatientID uuid.UUID `json:"patient_id" binding:"required"`
	Reason    string    `json:"reason" binding:"max=500"`
}

// AssignPatient godoc
//
//	@Summary		Assign a patient to the clinician directly
//	@Tags			relationship
//	@Accept			json
//	@Produce		json
//	@Param			body	body	AssignPatientReq	true	"Request"
//	@Success		200	{object}	serializer.Response{data=model.Relationship}
//	@Router			/clinician/patients [post]
func (h *RelationshipHandler) AssignPatient(c *gin.Context) {
	var req AssignPatientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	rel, err := h.svc.AssignPatient(c.Request.Context(), currentUser(c).ID, req.PatientID, req.Reason)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: rel})
}

// ListPatients godoc
//
//	@Summary		List the clinician's patients
//	@Tags			relationship
//	@Produce		json
//	@Success		200	{object}	serializer.Response{data=[]model.Relationship}
//	@Router			/clinician/patients [get]
func (h *RelationshipHandler) ListPatients(c *gin.Context) {
	rels, err := h.svc.ListPatients(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: rels})
}

// GetPatient godoc
//
//	@Summary		Get one patient's relationship detail
//	@Tags			relationship
//	@Produce		json
//	@Param			id	path	string	true	"Patient ID"
//	@Success		200	{object}	serializer.Response{data=model.Relationship}
//	@Router			/clinician/patients/{id} [get]
func (h *RelationshipHandler) GetPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid patient id", err))
		return
	}
	rel, err := h.svc.GetPatientDetails(c.Request.Context(), currentUser(c).ID, patientID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: rel})
}

// RemovePatient godoc
//
//	@Summary		End the connection with a patient
//	@Tags			relationship
//	@Produce		json
//	@Param			id	path	string	true	"Patient ID"
//	@Success		200	{object}	serializer.Response
//	@Router			/clinician/patients/{id} [delete]
func (h *RelationshipHandler) RemovePatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid patient id", err))
		return
	}
	if err := h.svc.RemovePatient(c.Request.Context(), currentUser(c).ID, patientID, c.Query("reason")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "patient removed"})
}

// ListRequests godoc
//
//	@Summary		List pending connection requests
//	@Tags			relationship
//	@Produce		json
//	@Success		200	{object}	serializer.Response{data=[]model.Relationship}
//	@Router			/clinician/requests [get]
func (h *RelationshipHandler) ListRequests(c *gin.Context) {
	rels, err := h.svc.ListPendingRequests(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: rels})
}

type UpdateStatusReq struct {
	Status model.RelationshipStatus `json:"status" binding:"required,oneof=active suspended terminated"`
	Reason string                   `json:"reason" binding:"max=500"`
}

// UpdateStatus godoc
//
//	@Summary		Approve, reject, suspend, reactivate or end a connection
//	@Tags			relationship
//	@Accept			json
//	@Produce		json
//	@Param			patient_id	path	string			true	"Patient ID"
//	@Param			body		body	UpdateStatusReq	true	"Request"
//	@Success		200	{object}	serializer.Response{data=model.Relationship}
//	@Router			/clinician/requests/{patient_id} [put]
func (h *RelationshipHandler) UpdateStatus(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid patient id", err))
		return
	}
	var req UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	rel, err := h.svc.UpdateStatus(c.Request.Context(), currentUser(c).ID, patientID, req.Status, req.Reason)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: rel})
}

type SendRecommendationReq struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// SendRecommendation godoc
//
//	@Summary		Send a care recommendation to a patient
//	@Tags			relationship
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string					true	"Patient ID"
//	@Param			body	body	SendRecommendationReq	true	"Request"
//	@Success		200	{object}	serializer.Response{data=model.Notification}
//	@Router			/clinician/patients/{id}/recommendations [post]
func (h *RelationshipHandler) SendRecommendation(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid patient id", err))
		return
	}
	var req SendRecommendationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	n, err := h.svc.SendRecommendation(c.Request.Context(), currentUser(c).ID, patientID, req.Message)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: n})
}

type UpdateSettingsReq struct {
	PatientSettings   *model.PatientSettings   `json:"patient_settings"`
	ClinicianSettings *model.ClinicianSettings `json:"clinician_settings"`
}

// UpdateSettings godoc
//
//	@Summary		Update the per-pair care settings
//	@Tags			relationship
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string				true	"Patient ID"
//	@Param			body	body	UpdateSettingsReq	true	"Request"
//	@Success		200	{object}	serializer.Response
//	@Router			/clinician/patients/{id}/settings [put]
func (h *RelationshipHandler) UpdateSettings(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid patient id", err))
		return
	}
	var req UpdateSettingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	if err := h.svc.UpdateSettings(c.Request.Context(), currentUser(c).ID, patientID, req.PatientSettings, req.ClinicianSettings); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "settings updated"})
}
