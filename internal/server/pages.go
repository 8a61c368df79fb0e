package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/resume-slides/internal/analytics"
	"github.com/Zachkp/resume-slides/internal/content"
)

type pageData struct {
	Deck          deckData
	Profile       content.Profile
	Analytics     bool
	MeasurementID string
}

func (s *Server) handleIndex(c *gin.Context) {
	sess := s.sessionFor(c)
	d, err := s.deck(sess)
	if err != nil {
		s.log.Error("rendering page", zap.Error(err))
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.HTML(http.StatusOK, "index.html", pageData{
		Deck:          d,
		Profile:       d.Profile,
		Analytics:     s.tracker.Enabled(),
		MeasurementID: s.cfg.Analytics.MeasurementID,
	})
}

// handleSection renders a single slide body, for lazy loading or refreshes.
func (s *Server) handleSection(c *gin.Context) {
	s.renderFragment(c, s.sessionFor(c), c.Param("id"))
}

func (s *Server) renderFragment(c *gin.Context, sess *Session, id string) {
	sec, ok := s.sections.Lookup(id)
	if !ok || !s.hasSurface(id) {
		c.String(http.StatusNotFound, "unknown section")
		return
	}
	c.HTML(http.StatusOK, sectionTemplate(id), s.sectionData(sess, sec))
}

func trackingContext(c *gin.Context, sess *Session) context.Context {
	return analytics.WithSession(c.Request.Context(), sess.ID)
}

// handleToggleCategory opens a skill category, closing whichever was open.
func (s *Server) handleToggleCategory(c *gin.Context) {
	sess := session(c)
	title := c.PostForm("title")
	if _, ok := s.content.Get().SkillCategory(title); !ok {
		c.String(http.StatusNotFound, "unknown skill category")
		return
	}
	if sess.ToggleCategory(title) {
		s.tracker.TrackSkillCategoryExpand(trackingContext(c, sess), title)
	}
	s.renderFragment(c, sess, "skills")
}

func (s *Server) handleToggleProject(c *gin.Context) {
	sess := session(c)
	title := c.PostForm("title")
	if _, ok := s.content.Get().Project(title); !ok {
		c.String(http.StatusNotFound, "unknown project")
		return
	}
	sess.ToggleProject(title)
	s.renderFragment(c, sess, "projects")
}

func (s *Server) handleToggleRotation(c *gin.Context) {
	sess := session(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "rotation id must be an integer")
		return
	}
	rot, ok := s.content.Get().Rotation(id)
	if !ok {
		c.String(http.StatusNotFound, "unknown rotation")
		return
	}
	if sess.SelectRotation(id) {
		s.tracker.TrackRotationClick(trackingContext(c, sess), rot.Title)
	}
	s.renderFragment(c, sess, "experience")
}

func (s *Server) handleSkillClick(c *gin.Context) {
	skill := c.PostForm("skill")
	if skill == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	s.tracker.TrackSkillClick(trackingContext(c, session(c)), skill)
	c.Status(http.StatusNoContent)
}

// handleProjectClick records an outbound project link before the browser
// follows it.
func (s *Server) handleProjectClick(c *gin.Context) {
	title := c.PostForm("title")
	link := analytics.LinkType(c.PostForm("link"))
	if link != analytics.LinkView && link != analytics.LinkGitHub {
		c.String(http.StatusBadRequest, "link must be view or github")
		return
	}
	if _, ok := s.content.Get().Project(title); !ok {
		c.String(http.StatusNotFound, "unknown project")
		return
	}
	s.tracker.TrackProjectClick(trackingContext(c, session(c)), title, link)
	c.Status(http.StatusNoContent)
}
