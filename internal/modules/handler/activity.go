package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rehablink-io/Rehablink/internal/modules/serializer"
	"github.com/rehablink-io/Rehablink/internal/modules/service"
)

type ActivityHandler struct {
	svc service.ActivityService
}

func NewActivityHandler(svc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

type FeedReq struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// Feed godoc
//
//	@Summary		Activity feed for the caller and their active counterparts
//	@Tags			activity
//	@Produce		json
//	@Param			limit	query	integer	false	"Page size, default 20"
//	@Param			offset	query	integer	false	"Page offset"
//	@Success		200	{object}	serializer.Response{data=[]model.Activity}
//	@Router			/activity [get]
func (h *ActivityHandler) Feed(c *gin.Context) {
	var req FeedReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	user := currentUser(c)
	activities, err := h.svc.Feed(c.Request.Context(), user.ID, user.Role, req.Limit, req.Offset)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: activities})
}

// Recent godoc
//
//	@Summary		The caller's most recent activities
//	@Tags			activity
//	@Produce		json
//	@Param			limit	query	integer	false	"Max entries, default 10"
//	@Success		200	{object}	serializer.Response{data=[]model.Activity}
//	@Router			/activity/recent [get]
func (h *ActivityHandler) Recent(c *gin.Context) {
	var req FeedReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	activities, err := h.svc.Recent(c.Request.Context(), currentUser(c).ID, req.Limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: activities})
}

// Stats godoc
//
//	@Summary		Activity totals by type over a period
//	@Tags			activity
//	@Produce		json
//	@Param			period	query	string	false	"day, week, month or all (default all)"
//	@Success		200	{object}	serializer.Response{data=repo.ActivityStats}
//	@Router			/activity/stats [get]
func (h *ActivityHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), currentUser(c).ID, c.Query("period"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: stats})
}

func activityID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid activity id", err))
		return uuid.Nil, false
	}
	return id, true
}

// MarkRead godoc
//
//	@Summary		Mark one of the caller's activities as read
//	@Tags			activity
//	@Produce		json
//	@Param			id	path	string	true	"Activity ID"
//	@Success		200	{object}	serializer.Response
//	@Router			/activity/{id}/read [put]
func (h *ActivityHandler) MarkRead(c *gin.Context) {
	id, ok := activityID(c)
	if !ok {
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
//	@Summary		Archive one of the caller's activities
//	@Tags			activity
//	@Produce		json
//	@Param			id	path	string	true	"Activity ID"
//	@Success		200	{object}	serializer.Response
//	@Router			/activity/{id}/archive [put]
func (h *ActivityHandler) Archive(c *gin.Context) {
	id, ok := activityID(c)
	if !ok {
		return
	}
	if err := h.svc.Archive(c.Request.Context(), id, currentUser(c).ID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "archived"})
}
