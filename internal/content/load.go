package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Parse decodes, renders and validates a YAML document. Unknown keys are
// rejected so typos in the content file surface at load time.
func Parse(data []byte) (*Content, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Content
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("content is empty")
		}
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}
	if err := c.render(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns the embedded content.
func Default() (*Content, error) {
	return Parse(defaultYAML)
}

// Load reads content from path, or the embedded default when path is empty.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Holder hands out the current Content and lets a reload replace it.
type Holder struct {
	v atomic.Pointer[Content]
}

func NewHolder(c *Content) *Holder {
	h := &Holder{}
	h.v.Store(c)
	return h
}

func (h *Holder) Get() *Content { return h.v.Load() }
func (h *Holder) Set(c *Content) { h.v.Store(c) }
