package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/resume-slides/internal/contact"
)

func (s *Server) handleContactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"title": "Contact Me",
	})
}

// handleContact sends the form by mail and answers with a success or error
// fragment. Failures are reported in the fragment, not the status code, so
// htmx swaps them in.
func (s *Server) handleContact(c *gin.Context) {
	msg := contact.Message{
		Name:    c.PostForm("fullName"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	}
	if err := msg.Validate(); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please check the form: " + err.Error() + ".",
		})
		return
	}

	err := contact.ErrNotConfigured
	if s.mailer != nil {
		err = s.mailer.Send(msg)
	}
	if err != nil {
		if errors.Is(err, contact.ErrNotConfigured) {
			s.log.Warn("contact form submitted but SMTP is not configured")
		}
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
