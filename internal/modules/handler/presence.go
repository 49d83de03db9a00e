package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rehablink-io/Rehablink/internal/modules/serializer"
	"github.com/rehablink-io/Rehablink/internal/modules/service"
)

type PresenceHandler struct {
	svc service.PresenceService
}

func NewPresenceHandler(svc service.PresenceService) *PresenceHandler {
	return &PresenceHandler{svc: svc}
}

type ConnectReq struct {
	ConnectionID string `json:"connection_id" binding:"required,max=128"`
}

// Connect godoc
//
//	@Summary		Register a live connection for the caller
//	@Tags			presence
//	@Accept			json
//	@Produce		json
//	@Param			body	body	ConnectReq	true	"Request"
//	@Success		200	{object}	serializer.Response
//	@Router			/presence/connect [post]
func (h *PresenceHandler) Connect(c *gin.Context) {
	var req ConnectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	user := currentUser(c)
	if err := h.svc.Connect(c.Request.Context(), req.ConnectionID, user.ID, user.Role); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "online"})
}

// Disconnect godoc
//
//	@Summary		Release a live connection
//	@Tags			presence
//	@Accept			json
//	@Produce		json
//	@Param			body	body	ConnectReq	true	"Request"
//	@Success		200	{object}	serializer.Response
//	@Router			/presence/disconnect [post]
func (h *PresenceHandler) Disconnect(c *gin.Context) {
	var req ConnectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	if err := h.svc.Disconnect(c.Request.Context(), req.ConnectionID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "disconnected"})
}

type SetStatusReq struct {
	IsOnline *bool `json:"is_online" binding:"required"`
}

// SetStatus godoc
//
//	@Summary		Explicitly set the caller's online flag
//	@Tags			presence
//	@Accept			json
//	@Produce		json
//	@Param			body	body	SetStatusReq	true	"Request"
//	@Success		200	{object}	serializer.Response
//	@Router			/presence/status [put]
func (h *PresenceHandler) SetStatus(c *gin.Context) {
	var req SetStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	user := currentUser(c)
	if err := h.svc.SetStatus(c.Request.Context(), user.ID, user.Role, *req.IsOnline); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "status updated"})
}
