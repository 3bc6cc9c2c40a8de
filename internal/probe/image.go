package probe

import (
	"context"
	"log/slog"

	"github.com/nao1215/shoecheck/internal/fetch"
)

// Header requests resource headers. *fetch.Client satisfies it.
type Header interface {
	Head(ctx context.Context, resourceURL string) (*fetch.Response, error)
}

// ImageProber checks that listing images can be reached.
type ImageProber struct {
	client Header
	logger *slog.Logger
}

// NewImageProber creates an ImageProber. A nil logger means slog.Default.
func NewImageProber(client Header, logger *slog.Logger) *ImageProber {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageProber{client: client, logger: logger}
}

// Exists reports whether a HEAD request to imageURL got any response.
// The status code is not inspected: a 404 still means the server answered.
// An empty URL is false without any request being made.
func (p *ImageProber) Exists(ctx context.Context, imageURL string) bool {
	if imageURL == "" {
		return false
	}

	resp, err := p.client.Head(ctx, imageURL)
	if err != nil {
		p.logger.Debug("image unreachable", "url", imageURL, "error", err)
		return false
	}

	p.logger.Debug("image answered", "url", imageURL, "status", resp.StatusCode)
	return true
}
