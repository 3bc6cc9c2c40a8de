package probe

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/nao1215/shoecheck/internal/fetch"
	"github.com/nao1215/shoecheck/internal/model"
)

// emailField is the form field the reminder endpoint reads.
const emailField = "email"

// FormPoster submits url-encoded forms. *fetch.Client satisfies it.
type FormPoster interface {
	PostForm(ctx context.Context, endpoint string, form url.Values) (*fetch.Response, error)
}

// SignupProber posts a reminder signup and classifies the answer.
type SignupProber struct {
	client   FormPoster
	endpoint string
	email    string
	logger   *slog.Logger
}

// NewSignupProber creates a SignupProber posting email to endpoint.
// A nil logger means slog.Default.
func NewSignupProber(client FormPoster, endpoint, email string, logger *slog.Logger) *SignupProber {
	if logger == nil {
		logger = slog.Default()
	}
	return &SignupProber{
		client:   client,
		endpoint: endpoint,
		email:    email,
		logger:   logger,
	}
}

// Probe sends exactly one POST with body email=<address>.
// Only status 200 counts as success. When no response arrives the outcome
// carries the transport error and a zero status code.
func (p *SignupProber) Probe(ctx context.Context) *model.SignupOutcome {
	form := url.Values{}
	form.Set(emailField, p.email)

	resp, err := p.client.PostForm(ctx, p.endpoint, form)
	if err != nil {
		p.logger.Warn("reminder signup got no response", "url", p.endpoint, "error", err)
		return model.NoResponse(p.endpoint, err)
	}

	outcome := model.NewSignupOutcome(p.endpoint, resp.StatusCode, resp.StatusText)
	p.logger.Debug("reminder signup answered",
		"url", p.endpoint,
		"email", p.email,
		"status", resp.StatusCode,
		"success", outcome.Success,
	)
	return outcome
}
