package render

import "github.com/okian/arena/pkg/logger"

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for placeholder diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}
