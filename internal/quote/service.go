package quote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/smileroute/smileroute-backend/pkg/errors"
	"github.com/smileroute/smileroute-backend/pkg/logger"
	"github.com/smileroute/smileroute-backend/pkg/metrics"
)

// sessionStore abstracts session persistence for the service.
type sessionStore interface {
	Save(ctx context.Context, session *Session) error
	Load(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service owns quote sessions. Actions against one session are applied in
// order under a per-session lock; different sessions never contend. The
// lock is not held across the submission network call, so a user edit can
// land while a submission is in flight and supersede it.
type Service struct {
	sessions  sessionStore
	submitter *Submitter
	metrics   *metrics.QuoteMetrics
	logg      *logger.Logger

	locks sync.Map // session id -> *sync.Mutex
}

// NewService wires the quote session service. Metrics may be nil.
func NewService(sessions sessionStore, submitter *Submitter, quoteMetrics *metrics.QuoteMetrics, logg *logger.Logger) (*Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if submitter == nil {
		return nil, fmt.Errorf("submitter is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{
		sessions:  sessions,
		submitter: submitter,
		metrics:   quoteMetrics,
		logg:      logg,
	}, nil
}

// Create starts a fresh empty session.
func (s *Service) Create(ctx context.Context) (*Session, error) {
	session := NewSession()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithSessionID(ctx, session.ID.String()), "quote session created")
	return session, nil
}

// Get loads a session by id. Submitted sessions remain readable.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.sessions.Load(ctx, id)
}

// Delete discards a session.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()
	return s.sessions.Delete(ctx, id)
}

// UpdatePatient replaces the session's patient details.
func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, patient PatientDetails) (*Session, error) {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.loadEditable(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Patient = patient
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// AddTreatment adds a treatment line or increments its quantity.
func (s *Service) AddTreatment(ctx context.Context, id uuid.UUID, treatment LineItem) (*Session, error) {
	return s.apply(ctx, id, AddLineItem{Treatment: treatment})
}

// RemoveTreatment deletes a treatment line entirely.
func (s *Service) RemoveTreatment(ctx context.Context, id uuid.UUID, treatmentID uuid.UUID) (*Session, error) {
	return s.apply(ctx, id, RemoveLineItem{TreatmentID: treatmentID})
}

// SetQuantity updates a line's quantity; below 1 removes the line.
func (s *Service) SetQuantity(ctx context.Context, id uuid.UUID, treatmentID uuid.UUID, quantity int64) (*Session, error) {
	return s.apply(ctx, id, SetQuantity{TreatmentID: treatmentID, Quantity: quantity})
}

// ApplyPromotion replaces the active promotion on the session.
func (s *Service) ApplyPromotion(ctx context.Context, id uuid.UUID, action ApplyPromotion) (*Session, error) {
	session, err := s.apply(ctx, id, action)
	if err != nil {
		return nil, err
	}
	s.metrics.IncPromotionApplied(action.Promotion.Source.String())
	return session, nil
}

// RemovePromotion clears the active promotion.
func (s *Service) RemovePromotion(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.apply(ctx, id, RemovePromotion{})
}

// Submit finalizes the session and sends its snapshot to persistence. The
// lock is released while the store call runs; when the result lands it is
// applied only if the session was not edited in the meantime. Submission
// with no selected treatments fails locally without contacting the store.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*Session, error) {
	ctx = s.logg.WithSessionID(ctx, id.String())

	mu := s.lockFor(id)
	mu.Lock()
	session, err := s.loadEditable(ctx, id)
	if err != nil {
		mu.Unlock()
		return nil, err
	}
	if len(session.State.LineItems) == 0 {
		mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no treatments selected")
	}

	generation := session.State.Generation
	session.State = Reduce(session.State, SubmitRequest{})
	snapshot := session.Snapshot()
	if err := s.sessions.Save(ctx, session); err != nil {
		mu.Unlock()
		return nil, err
	}
	mu.Unlock()

	start := time.Now()
	quoteID, reason, submitErr := s.submitter.Submit(ctx, snapshot)
	s.metrics.ObserveSubmissionDuration(time.Since(start))

	mu.Lock()
	defer mu.Unlock()

	session, err = s.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	var result Action
	if submitErr != nil {
		s.logg.Error(s.logg.WithField(ctx, "reason", reason.String()), "quote submission failed", submitErr)
		result = SubmitFailure{Generation: generation, Reason: reason}
	} else {
		ctx = s.logg.WithQuoteID(ctx, quoteID.String())
		result = SubmitSuccess{Generation: generation, QuoteID: quoteID}
	}

	superseded := session.State.Generation != generation
	session.State = Reduce(session.State, result)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	switch {
	case superseded:
		s.metrics.IncSubmission("superseded")
		s.logg.Warn(ctx, "stale submission result dropped")
	case submitErr != nil:
		s.metrics.IncSubmission(reason.String())
	default:
		s.metrics.IncSubmission("success")
		s.logg.Info(ctx, "quote submitted")
	}
	return session, nil
}

func (s *Service) apply(ctx context.Context, id uuid.UUID, action Action) (*Session, error) {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.loadEditable(ctx, id)
	if err != nil {
		return nil, err
	}
	session.State = Reduce(session.State, action)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// loadEditable fetches a session and rejects mutation of a submitted one.
func (s *Service) loadEditable(ctx context.Context, id uuid.UUID) (*Session, error) {
	session, err := s.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.State.IsSubmitted() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "quote already submitted")
	}
	return session, nil
}

func (s *Service) lockFor(id uuid.UUID) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
