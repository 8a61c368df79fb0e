package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/resume-slides/internal/content"
	"github.com/Zachkp/resume-slides/internal/gesture"
	"github.com/Zachkp/resume-slides/internal/nav"
)

var templateFuncs = template.FuncMap{
	"wrap": content.WrapLabel,
	"pct":  func(level int) string { return strconv.Itoa(level) + "%" },
	"num":  func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
	"vals": hxVals,
}

// hxVals encodes key/value pairs as the JSON object htmx reads from hx-vals.
func hxVals(kv ...string) string {
	m := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	b, _ := json.Marshal(m)
	return string(b)
}

// sectionTemplate names the template that draws a section's slide.
func sectionTemplate(id string) string { return "section-" + id }

// sectionData is what each section template receives.
type sectionData struct {
	Section     nav.Section
	Content     *content.Content
	Cards       sessionView
	Wheel       []content.WheelPosition
	ArtSeed     uint64
	Analytics   bool
	Measurement string
}

// slide is one rendered section container.
type slide struct {
	nav.Surface
	Body template.HTML
}

// deckData is what the deck fragment and the full page render from.
type deckData struct {
	nav.Shell
	Slides  []slide
	Profile content.Profile
}

func (s *Server) sectionData(sess *Session, sec nav.Section) sectionData {
	c := s.content.Get()
	d := sectionData{
		Section:     sec,
		Content:     c,
		Cards:       sess.view(),
		ArtSeed:     s.cfg.Artwork.Seed,
		Analytics:   s.tracker.Enabled(),
		Measurement: s.cfg.Analytics.MeasurementID,
	}
	if c.Program != nil {
		d.Wheel = c.Program.Wheel()
	}
	return d
}

// renderSection executes the section's template. A section without one
// renders as an empty container.
func (s *Server) renderSection(sess *Session, sec nav.Section) (template.HTML, error) {
	name := sectionTemplate(sec.ID)
	if s.tmpl.Lookup(name) == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, s.sectionData(sess, sec)); err != nil {
		return "", fmt.Errorf("rendering section %s: %w", sec.ID, err)
	}
	return template.HTML(buf.String()), nil
}

func (s *Server) deck(sess *Session) (deckData, error) {
	shell := nav.NewShell(s.sections, sess.Controller().Snapshot())
	d := deckData{
		Shell:   shell,
		Slides:  make([]slide, 0, len(shell.Surfaces)),
		Profile: s.content.Get().Profile,
	}
	for _, sf := range shell.Surfaces {
		body, err := s.renderSection(sess, sf.Section)
		if err != nil {
			return deckData{}, err
		}
		d.Slides = append(d.Slides, slide{Surface: sf, Body: body})
	}
	return d, nil
}

// scrollTrigger tells htmx on the page to scroll the named section into view.
func scrollTrigger(c *gin.Context, id string) {
	if id == "" {
		return
	}
	b, _ := json.Marshal(map[string]string{"scrollToSection": id})
	c.Header("HX-Trigger-After-Swap", string(b))
}

func isHTMX(c *gin.Context) bool { return c.GetHeader("HX-Request") == "true" }

// respondDeck answers a navigation request: the deck fragment for htmx, the
// controller snapshot as JSON otherwise.
func (s *Server) respondDeck(c *gin.Context, sess *Session, action gesture.Action) {
	scrollTrigger(c, sess.TakeScroll())

	if !isHTMX(c) {
		resp := snapshotJSON(sess.Controller().Snapshot())
		if action != gesture.None {
			resp.Action = action.String()
		}
		c.JSON(http.StatusOK, resp)
		return
	}
	d, err := s.deck(sess)
	if err != nil {
		s.log.Error("rendering deck", zap.Error(err))
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.HTML(http.StatusOK, "deck", d)
}

type snapshotResponse struct {
	Index         int    `json:"index"`
	Section       string `json:"section"`
	Count         int    `json:"count"`
	State         string `json:"state"`
	Transitioning bool   `json:"transitioning"`
	Action        string `json:"action,omitempty"`
}

func snapshotJSON(snap nav.Snapshot) snapshotResponse {
	return snapshotResponse{
		Index:         snap.Current.Index,
		Section:       snap.Current.ID,
		Count:         snap.Count,
		State:         snap.State.String(),
		Transitioning: snap.Transitioning,
	}
}
