package server

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Zachkp/resume-slides/internal/store"
)

const adminCookie = "admin_token"

var errNoStore = errors.New("statistics are not available without a database")

// checkLogin reports whether user/pass match the configured admin and
// whether login is possible at all. In debug mode a missing username or
// password falls back to admin/admin123; in release mode it disables login.
func (s *Server) checkLogin(user, pass string) (ok, enabled bool) {
	cfg := s.cfg.Admin
	debug := gin.Mode() == gin.DebugMode

	wantUser := cfg.Username
	if wantUser == "" {
		if !debug {
			return false, false
		}
		wantUser = "admin"
		s.log.Warn("using default admin username, set ADMIN_USERNAME")
	}

	var passOK bool
	switch {
	case cfg.PasswordHash != "":
		passOK = bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(pass)) == nil
	case cfg.Password != "":
		passOK = equal(pass, cfg.Password)
	case debug:
		s.log.Warn("using default admin password, set ADMIN_PASSWORD")
		passOK = equal(pass, "admin123")
	default:
		return false, false
	}
	return equal(user, wantUser) && passOK, true
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || !equal(token, s.adminToken) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) stats(c *gin.Context) (*store.Stats, error) {
	if s.store == nil {
		return nil, errNoStore
	}
	return s.store.Stats(c.Request.Context(), s.clock.Now())
}

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":         "Privacy Policy",
			"retentionDays": s.cfg.Database.RetentionDays,
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		ok, enabled := s.checkLogin(c.PostForm("username"), c.PostForm("password"))
		if !enabled {
			c.HTML(http.StatusServiceUnavailable, "admin-login.html", gin.H{
				"error": "Admin login is disabled",
			})
			return
		}

		client := s.hashIP(c.ClientIP())
		if ok {
			c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", false, true)
			s.log.Info("admin login", zap.String("client", client))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		s.log.Warn("failed admin login", zap.String("client", client))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin", s.adminAuth())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.stats(c)
		if err != nil {
			s.log.Error("loading admin stats", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.stats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		if s.store == nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": errNoStore.Error()})
			return
		}
		visitors, err := s.store.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			s.log.Error("loading visitors", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.stats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.log.Info("admin stats exported", zap.String("client", s.hashIP(c.ClientIP())))
		c.JSON(http.StatusOK, stats)
	})

	// Deletes everything older than the retention window.
	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		if s.store == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": errNoStore.Error()})
			return
		}
		n, err := s.store.Cleanup(c.Request.Context(), s.clock.Now(), s.cfg.Database.Retention())
		if err != nil {
			s.log.Error("privacy cleanup", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
			return
		}
		s.log.Info("privacy cleanup", zap.Int64("deleted", n))
		c.JSON(http.StatusOK, gin.H{"deleted": n})
	})
}
