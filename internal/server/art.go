package server

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/resume-slides/internal/artwork"
)

// artSeed reads ?seed=, falling back to the configured seed.
func (s *Server) artSeed(c *gin.Context) (uint64, bool) {
	raw := c.Query("seed")
	if raw == "" {
		return s.cfg.Artwork.Seed, true
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "seed must be an unsigned integer")
		return 0, false
	}
	return seed, true
}

// serveSVG renders the artwork for the request's seed. The output is a pure
// function of the seed, so browsers may cache it.
func (s *Server) serveSVG(c *gin.Context, write func(w io.Writer, seed uint64) error) {
	seed, ok := s.artSeed(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := write(&buf, seed); err != nil {
		s.log.Error("rendering artwork", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

func (s *Server) handleBlobs(c *gin.Context) {
	spec := artwork.DefaultBlob
	if n := s.cfg.Artwork.BlobPoints; n > 0 {
		spec.Points = n
	}
	s.serveSVG(c, func(w io.Writer, seed uint64) error {
		return artwork.WriteBlobs(w, seed, s.cfg.Artwork.BlobCount, spec)
	})
}

func (s *Server) handleCircuit(c *gin.Context) {
	s.serveSVG(c, func(w io.Writer, seed uint64) error {
		return artwork.WriteCircuit(w, seed, s.cfg.Artwork.CircuitPaths)
	})
}

func (s *Server) handleParticles(c *gin.Context) {
	s.serveSVG(c, func(w io.Writer, seed uint64) error {
		return artwork.WriteParticles(w, seed, s.cfg.Artwork.Particles)
	})
}
