package content

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))

// Markdown renders a snippet to HTML. Raw HTML in the source is dropped
// by goldmark's default renderer.
func Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (c *Content) render() error {
	c.Profile.AboutHTML = make([]template.HTML, 0, len(c.Profile.About))
	for i, p := range c.Profile.About {
		h, err := Markdown(p)
		if err != nil {
			return fmt.Errorf("rendering profile.about[%d]: %w", i, err)
		}
		c.Profile.AboutHTML = append(c.Profile.AboutHTML, h)
	}
	for i := range c.Projects {
		h, err := Markdown(c.Projects[i].Description)
		if err != nil {
			return fmt.Errorf("rendering projects[%d].description: %w", i, err)
		}
		c.Projects[i].DescriptionHTML = h
	}
	return nil
}

// WrapLabel splits a label over at most two lines, balancing word counts.
func WrapLabel(text string) []string {
	words := strings.Fields(text)
	switch len(words) {
	case 0:
		return nil
	case 1, 2:
		return words
	}
	mid := (len(words) + 1) / 2
	return []string{
		strings.Join(words[:mid], " "),
		strings.Join(words[mid:], " "),
	}
}
