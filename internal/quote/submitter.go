package quote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/smileroute/smileroute-backend/pkg/enums"
	pkgerrors "github.com/smileroute/smileroute-backend/pkg/errors"
)

// QuoteStore is the persistence collaborator that turns a finalized
// snapshot into a durable quote.
type QuoteStore interface {
	CreateQuote(ctx context.Context, snapshot Snapshot) (uuid.UUID, error)
}

// Submitter wraps the persistence collaborator with a hard timeout and
// failure classification. It never hangs a submission: every call resolves
// to a quote id or a classified reason.
type Submitter struct {
	store   QuoteStore
	timeout time.Duration
}

// NewSubmitter builds a submitter around the quote store.
func NewSubmitter(store QuoteStore, timeout time.Duration) (*Submitter, error) {
	if store == nil {
		return nil, fmt.Errorf("quote store is required")
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive")
	}
	return &Submitter{store: store, timeout: timeout}, nil
}

// Submit sends the full snapshot to the store. On failure the returned
// reason classifies the error as network, validation, or unknown.
func (s *Submitter) Submit(ctx context.Context, snapshot Snapshot) (uuid.UUID, enums.FailureReason, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	quoteID, err := s.store.CreateQuote(ctx, snapshot)
	if err != nil {
		return uuid.Nil, ClassifyFailure(err), err
	}
	return quoteID, "", nil
}

// ClassifyFailure maps a submission error onto the failure taxonomy.
func ClassifyFailure(err error) enums.FailureReason {
	if err == nil {
		return enums.FailureReasonUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return enums.FailureReasonNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return enums.FailureReasonNetwork
	}

	if typed := pkgerrors.As(err); typed != nil {
		switch typed.Code() {
		case pkgerrors.CodeValidation:
			return enums.FailureReasonValidation
		case pkgerrors.CodeDependency:
			return enums.FailureReasonNetwork
		}
	}
	return enums.FailureReasonUnknown
}
