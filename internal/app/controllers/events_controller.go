package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mertdogan/campusdesk/internal/pkg/events"
	"github.com/mertdogan/campusdesk/internal/pkg/logger"
)

// EventsController exposes the websocket notification side-channel
type EventsController struct {
	hub *events.Hub
}

// NewEventsController creates a new EventsController
func NewEventsController(hub *events.Hub) *EventsController {
	return &EventsController{hub: hub}
}

// Subscribe upgrades the connection to a websocket notification feed
// @Summary Subscribe to notifications
// @Description Opens a websocket delivering post-notice and leave-status events for the requested topics
// @Tags events
// @Security BearerAuth
// @Param topics query string false "Comma-separated topic list" default(post-notice,leave-status)
// @Success 101 "Switching protocols"
// @Router /events/subscribe [get]
func (c *EventsController) Subscribe(ctx *gin.Context) {
	userID, _, ok := caller(ctx)
	if !ok {
		return
	}

	topics := []string{events.TopicPostNotice, events.TopicLeaveStatus}
	if raw := ctx.Query("topics"); raw != "" {
		topics = strings.Split(raw, ",")
	}

	wsLogger := logger.WithField("component", "events")
	if err := events.ServeWS(c.hub, ctx.Writer, ctx.Request, userID, topics, wsLogger); err != nil {
		logger.Warn().Err(err).Int64("userID", userID).Msg("Websocket upgrade failed")
	}
}
