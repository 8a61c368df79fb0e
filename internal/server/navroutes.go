package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/resume-slides/internal/gesture"
)

// inputForm is a raw input sample posted by the page, as a form or JSON.
type inputForm struct {
	DeltaY float64 `form:"deltaY" json:"deltaY"`
	Y      float64 `form:"y" json:"y"`
	Key    string  `form:"key" json:"key"`
}

func session(c *gin.Context) *Session {
	return c.MustGet(sessionKey).(*Session)
}

func (s *Server) handleNavState(c *gin.Context) {
	s.respondDeck(c, session(c), gesture.None)
}

// dispatch timestamps the sample with the server clock so every session's
// cooldown is measured on one timeline.
func (s *Server) dispatch(c *gin.Context, t gesture.EventType) {
	var in inputForm
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess := session(c)
	action := sess.Dispatch(gesture.Event{
		Type:   t,
		DeltaY: in.DeltaY,
		Y:      in.Y,
		Key:    in.Key,
		At:     s.clock.Now(),
	})
	s.respondDeck(c, sess, action)
}

func (s *Server) handleWheel(c *gin.Context) { s.dispatch(c, gesture.WheelEvent) }

func (s *Server) handleKey(c *gin.Context) { s.dispatch(c, gesture.KeyDownEvent) }

func (s *Server) handleTouch(t gesture.EventType) gin.HandlerFunc {
	return func(c *gin.Context) { s.dispatch(c, t) }
}

// handleGoTo serves the indicator dots. An out-of-range index is ignored,
// the same as any other rejected navigation.
func (s *Server) handleGoTo(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}
	sess := session(c)
	sess.Controller().GoTo(index)
	s.respondDeck(c, sess, gesture.None)
}

// handleStep serves the arrow buttons.
func (s *Server) handleStep(delta int) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session(c)
		action := gesture.None
		switch {
		case delta > 0 && sess.Controller().Next():
			action = gesture.Next
		case delta < 0 && sess.Controller().Previous():
			action = gesture.Previous
		}
		s.respondDeck(c, sess, action)
	}
}
