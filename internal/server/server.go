// Package server serves the résumé slides over HTTP with gin. The browser
// forwards raw input to the /nav endpoints; the server owns each visitor's
// navigation state and answers with HTMX fragments.
package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/resume-slides/internal/analytics"
	"github.com/Zachkp/resume-slides/internal/config"
	"github.com/Zachkp/resume-slides/internal/contact"
	"github.com/Zachkp/resume-slides/internal/content"
	"github.com/Zachkp/resume-slides/internal/gesture"
	"github.com/Zachkp/resume-slides/internal/nav"
	"github.com/Zachkp/resume-slides/internal/store"
	"github.com/Zachkp/resume-slides/web"
)

// Deps are the collaborators a Server is built from. Store and Mailer may
// be nil; the features that need them degrade to no-ops.
type Deps struct {
	Config  *config.Config
	Content *content.Holder
	Store   *store.Store
	Tracker *analytics.Tracker
	Mailer  *contact.Mailer
	Clock   nav.Clock
	Log     *zap.Logger
}

type Server struct {
	cfg      *config.Config
	content  *content.Holder
	store    *store.Store
	tracker  *analytics.Tracker
	mailer   *contact.Mailer
	clock    nav.Clock
	log      *zap.Logger
	sections *nav.Registry
	sessions *Sessions
	tmpl     *template.Template
	engine   *gin.Engine

	adminToken  string
	hashingSalt string
}

func New(d Deps) (*Server, error) {
	if d.Config == nil || d.Content == nil {
		return nil, errors.New("config and content are required")
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Clock == nil {
		d.Clock = nav.RealClock()
	}
	if d.Tracker == nil {
		d.Tracker = analytics.New(nil, d.Log)
	}

	sections, err := nav.NewRegistry(d.Config.Navigation.Sections...)
	if err != nil {
		return nil, fmt.Errorf("building sections: %w", err)
	}

	tmpl, err := web.Templates(templateFuncs)
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		cfg:         d.Config,
		content:     d.Content,
		store:       d.Store,
		tracker:     d.Tracker,
		mailer:      d.Mailer,
		clock:       d.Clock,
		log:         d.Log,
		sections:    sections,
		tmpl:        tmpl,
		adminToken:  randomToken(),
		hashingSalt: randomToken(),
	}

	s.sessions = NewSessions(SessionOptions{
		Sections:   sections,
		Transition: d.Config.Navigation.Transition(),
		Gesture: gesture.Config{
			Cooldown:  d.Config.Navigation.Cooldown(),
			Threshold: d.Config.Navigation.ThresholdPX,
		},
		Idle:       d.Config.Session.Idle(),
		Clock:      d.Clock,
		HasSurface: s.hasSurface,
		OnNavigate: func(sess *Session, _, to nav.Section) {
			ctx := analytics.WithSession(context.Background(), sess.ID)
			s.tracker.TrackSectionNavigation(ctx, to.ID)
		},
		Log: d.Log,
	})

	s.engine = s.routes()
	return s, nil
}

func randomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("generating token: %v", err))
	}
	return hex.EncodeToString(b)
}

// hasSurface reports whether the section has a template to render into.
func (s *Server) hasSurface(id string) bool {
	return s.tmpl.Lookup(sectionTemplate(id)) != nil
}

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) Sessions() *Sessions { return s.sessions }

// Run serves on the configured port until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sessions.Run(sweepCtx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.tracker.Flush()
	return nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log, s.hashIP))
	r.SetHTMLTemplate(s.tmpl)

	r.StaticFS("/static", http.FS(web.Static()))
	r.Static("/images", "./images")

	r.Use(s.visitorTracking())

	r.GET("/", s.handleIndex)
	r.GET("/sections/:id", s.handleSection)

	navGroup := r.Group("/nav", s.withSession())
	{
		navGroup.GET("/state", s.handleNavState)
		navGroup.POST("/wheel", s.handleWheel)
		navGroup.POST("/touch/start", s.handleTouch(gesture.TouchStartEvent))
		navGroup.POST("/touch/move", s.handleTouch(gesture.TouchMoveEvent))
		navGroup.POST("/touch/end", s.handleTouch(gesture.TouchEndEvent))
		navGroup.POST("/key", s.handleKey)
		navGroup.POST("/goto/:index", s.handleGoTo)
		navGroup.POST("/next", s.handleStep(1))
		navGroup.POST("/previous", s.handleStep(-1))
	}

	cards := r.Group("/", s.withSession())
	{
		cards.POST("/skills/toggle", s.handleToggleCategory)
		cards.POST("/projects/toggle", s.handleToggleProject)
		cards.POST("/rotations/:id/toggle", s.handleToggleRotation)
		cards.POST("/events/skill-click", s.handleSkillClick)
		cards.POST("/events/project-click", s.handleProjectClick)
	}

	art := r.Group("/art")
	{
		art.GET("/blobs.svg", s.handleBlobs)
		art.GET("/circuit.svg", s.handleCircuit)
		art.GET("/particles.svg", s.handleParticles)
	}

	r.GET("/contact-form", s.handleContactForm)
	r.POST("/contact", s.handleContact)

	s.setupAdminRoutes(r)
	return r
}
