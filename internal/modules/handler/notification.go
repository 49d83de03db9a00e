package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rehablink-io/Rehablink/internal/modules/model"
	"github.com/rehablink-io/Rehablink/internal/modules/repo"
	"github.com/rehablink-io/Rehablink/internal/modules/serializer"
	"github.com/rehablink-io/Rehablink/internal/modules/service"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

type ListNotificationsReq struct {
	UnreadOnly bool   `form:"unread_only,default=false"`
	Type       string `form:"type"`
	Limit      int    `form:"limit,default=20" binding:"min=1,max=100"`
	Offset     int    `form:"offset,default=0" binding:"min=0"`
}

// List godoc
//
//	@Summary		List the caller's notifications
//	@Tags			notification
//	@Produce		json
//	@Param			unread_only	query	boolean	false	"Only unread"
//	@Param			type		query	string	false	"Filter by type"
//	@Param			limit		query	integer	false	"Page size, default 20"
//	@Param			offset		query	integer	false	"Page offset"
//	@Success		200	{object}	serializer.Response{data=[]model.Notification}
//	@Router			/notification [get]
func (h *NotificationHandler) List(c *gin.Context) {
	var req ListNotificationsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	opts := repo.NotificationListOpts{
		UnreadOnly: req.UnreadOnly,
		Limit:      req.Limit,
		Offset:     req.Offset,
	}
	if req.Type != "" {
		opts.Types = []model.NotificationType{model.NotificationType(req.Type)}
	}
	ns, err := h.svc.List(c.Request.Context(), currentUser(c).ID, opts)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: ns})
}

type BroadcastReq struct {
	Title    string         `json:"title" binding:"required,max=200"`
	Message  string         `json:"message" binding:"max=2000"`
	Priority model.Priority `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
}

// Broadcast godoc
//
//	@Summary		Send an announcement to every active counterpart
//	@Tags			notification
//	@Accept			json
//	@Produce		json
//	@Param			body	body	BroadcastReq	true	"Request"
//	@Success		200	{object}	serializer.Response{data=[]model.Notification}
//	@Router			/notification/broadcast [post]
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req BroadcastReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	user := currentUser(c)
	ns, err := h.svc.SendToCounterparts(c.Request.Context(), user.ID, user.Role, service.CreateNotificationInput{
		Type:     model.NotificationInfo,
		Title:    req.Title,
		Message:  req.Message,
		Priority: req.Priority,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: ns})
}

// UnreadCount godoc
//
//	@Summary		Count unread notifications
//	@Tags			notification
//	@Produce		json
//	@Success		200	{object}	serializer.Response{data=int64}
//	@Router			/notification/unread_count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.svc.UnreadCount(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: count})
}

type MarkReadReq struct {
	IDs []uuid.UUID `json:"ids"`
	All bool        `json:"all"`
}

// MarkRead godoc
//
//	@Summary		Mark notifications read (a list of ids, or all)
//	@Tags			notification
//	@Accept			json
//	@Produce		json
//	@Param			body	body	MarkReadReq	true	"Request"
//	@Success		200	{object}	serializer.Response{data=int64}
//	@Router			/notification/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req MarkReadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	if !req.All && len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("ids or all is required", nil))
		return
	}

	var count int64
	var err error
	if req.All {
		count, err = h.svc.MarkAllRead(c.Request.Context(), currentUser(c).ID)
	} else {
		count, err = h.svc.MarkManyRead(c.Request.Context(), req.IDs, currentUser(c).ID)
	}
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: count})
}

// MarkOneRead godoc
//
//	@Summary		Mark one notification read
//	@Tags			notification
//	@Produce		json
//	@Param			id	path	string	true	"Notification ID"
//	@Success		200	{object}	serializer.Response
//	@Router			/notification/{id}/read [put]
func (h *NotificationHandler) MarkOneRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid notification id", err))
		return
	}
	if err := h.svc.MarkRead(c.Request.Context(), id, currentUser(c).ID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "read"})
}

// Archive godoc
//
//	@Summary		Archive a notification
//	@Tags			notification
//	@Produce		json
//	@Param			id	path	string	true	"Notification ID"
//	@Success		200	{object}	serializer.Response
//	@Router			/notification/{id}/archive [put]
func (h *NotificationHandler) Archive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid notification id", err))
		return
	}
	if err := h.svc.Archive(c.Request.Context(), id, currentUser(c).ID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "archived"})
}

// Delete godoc
//
//	@Summary		Delete a notification
//	@Tags			notification
//	@Produce		json
//	@Param			id	path	string	true	"Notification ID"
//	@Success		200	{object}	serializer.Response
//	@Router			/notification/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid notification id", err))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, currentUser(c).ID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}

// Stats godoc
//
//	@Summary		Notification totals by type and priority
//	@Tags			notification
//	@Produce		json
//	@Success		200	{object}	serializer.Response{data=repo.NotificationStats}
//	@Router			/notification/stats [get]
func (h *NotificationHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: stats})
}
