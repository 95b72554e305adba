package ports

import (
	"context"

	"github.com/bnema/credit-entry-cli/internal/domain"
)

// SubmitResponse describes what the transport could observe of the reply.
// Opaque responses carry no status or body.
type SubmitResponse struct {
	Opaque     bool
	StatusCode int
	Body       []byte
}

type Submitter interface {
	Submit(ctx context.Context, fields []domain.FormField) (SubmitResponse, error)
}
