package artwork

import (
	"fmt"
	"io"
	"text/template"
)

// Field sizes in SVG user units.
const (
	ParticleWidth  = 400.0
	ParticleHeight = 300.0
)

var funcs = template.FuncMap{
	"num": num,
	"sub": func(a, b float64) float64 { return a - b },
}

var blobsTmpl = template.Must(template.New("blobs").Funcs(funcs).Parse(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="-300 -300 600 600" preserveAspectRatio="xMidYMid slice">
<defs><radialGradient id="blob-gradient" cx="50%" cy="50%" r="50%"><stop offset="0%" stop-color="rgba(255, 255, 255, 0.2)"/><stop offset="100%" stop-color="rgba(255, 255, 255, 0.1)"/></radialGradient></defs>
<g>{{range .}}
<path d="{{.Initial}}" fill="{{.Fill}}"><animate attributeName="d" values="{{.Initial}};{{.Target}};{{.Initial}}" dur="{{num .Duration}}s" begin="{{num .Delay}}s" repeatCount="indefinite"/><animateTransform attributeName="transform" type="rotate" values="0;{{num .Rotate}};0" dur="{{num .Duration}}s" begin="{{num .Delay}}s" repeatCount="indefinite"/></path>{{end}}
</g>
</svg>
`))

var circuitTmpl = template.Must(template.New("circuit").Funcs(funcs).Parse(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 150 150" preserveAspectRatio="xMidYMid slice">
<defs><linearGradient id="circuit-gradient" x1="0%" y1="0%" x2="100%" y2="100%"><stop offset="0%" stop-color="#3d4b61" stop-opacity="0.4"/><stop offset="50%" stop-color="#3d4b61" stop-opacity="0.2"/><stop offset="100%" stop-color="#3d4b61" stop-opacity="0.4"/></linearGradient></defs>
{{range .}}<circle cx="{{num .Start.X}}" cy="{{num .Start.Y}}" r="0.75" fill="#3d4b61" opacity="0.3"/>
{{end}}{{range .}}<g><path d="{{.Path}}" stroke="#0A1612" stroke-width="0.4" fill="none" opacity="0.2"/><path d="{{.Path}}" stroke="url(#circuit-gradient)" stroke-width="0.6" fill="none" pathLength="1" stroke-dasharray="1" stroke-dashoffset="1"><animate attributeName="stroke-dashoffset" values="1;0" dur="{{num .Duration}}s" begin="{{num .Delay}}s" repeatCount="indefinite"/></path></g>
{{end}}</svg>
`))

var particlesTmpl = template.Must(template.New("particles").Funcs(funcs).Parse(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 {{num .W}} {{num .H}}" preserveAspectRatio="xMidYMid slice">
{{range .P}}<circle cx="{{num .X}}" cy="{{num .Y}}" r="{{num .Radius}}" fill="#ffffff" opacity="{{num .Opacity}}"><animate attributeName="cy" values="{{num .Y}};{{num (sub .Y .Drift)}};{{num .Y}}" dur="{{num .Duration}}s" begin="{{num .Delay}}s" repeatCount="indefinite"/></circle>
{{end}}</svg>
`))

// WriteBlobs renders count blobs for seed as a standalone SVG document.
func WriteBlobs(w io.Writer, seed uint64, count int, spec BlobSpec) error {
	if err := blobsTmpl.Execute(w, Blobs(NewRand(seed), count, spec)); err != nil {
		return fmt.Errorf("rendering blobs: %w", err)
	}
	return nil
}

// WriteCircuit renders count circuit traces for seed.
func WriteCircuit(w io.Writer, seed uint64, count int) error {
	if err := circuitTmpl.Execute(w, Circuit(NewRand(seed), count)); err != nil {
		return fmt.Errorf("rendering circuit: %w", err)
	}
	return nil
}

// WriteParticles renders an n-particle field for seed.
func WriteParticles(w io.Writer, seed uint64, n int) error {
	data := struct {
		W, H float64
		P    []Particle
	}{ParticleWidth, ParticleHeight, Particles(NewRand(seed), n, ParticleWidth, ParticleHeight)}
	if err := particlesTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering particles: %w", err)
	}
	return nil
}
