package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/resume-slides/internal/store"
)

const (
	sessionCookie = "resume_sid"
	sessionKey    = "session"
)

// hashIP hashes an address with the per-process salt so visitors can be
// counted without storing where they came from.
func (s *Server) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.hashingSalt))
	return hex.EncodeToString(sum[:])[:16]
}

func requestLogger(log *zap.Logger, hash func(string) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client", hash(c.ClientIP())),
		)
	}
}

// untrackedPrefixes are never recorded as page views.
var untrackedPrefixes = []string{
	"/static/", "/images/", "/admin/", "/favicon", "/privacy",
	"/art/", "/nav/", "/events/", "/skills/", "/projects/", "/rotations/",
}

// visitorTracking records page views with hashed IPs, honouring Do Not Track.
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if s.store == nil || c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		for _, p := range untrackedPrefixes {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}

		v := store.Visit{
			HashedIP:  s.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			At:        s.clock.Now(),
		}
		go func() {
			if err := s.store.RecordVisit(context.Background(), v); err != nil {
				s.log.Warn("recording visitor", zap.Error(err))
			}
		}()
		c.Next()
	}
}

// sessionFor returns the caller's session, starting one if the cookie is
// missing or refers to an evicted session.
func (s *Server) sessionFor(c *gin.Context) *Session {
	if v, ok := c.Get(sessionKey); ok {
		return v.(*Session)
	}
	if id, err := c.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions.Get(id); ok {
			c.Set(sessionKey, sess)
			return sess
		}
	}

	sess := s.sessions.Create()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sess.ID, 0, "/", "", false, true)
	c.Set(sessionKey, sess)
	return sess
}

func (s *Server) withSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.sessionFor(c)
		c.Next()
	}
}
