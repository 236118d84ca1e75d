package quotesessions

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/smileroute/smileroute-backend/api/responses"
	"github.com/smileroute/smileroute-backend/api/validators"
	promosvc "github.com/smileroute/smileroute-backend/internal/promotions"
	"github.com/smileroute/smileroute-backend/internal/quote"
	treatmentsvc "github.com/smileroute/smileroute-backend/internal/treatments"
	"github.com/smileroute/smileroute-backend/pkg/enums"
	pkgerrors "github.com/smileroute/smileroute-backend/pkg/errors"
	"github.com/smileroute/smileroute-backend/pkg/logger"
)

// resolver is the promotion lookup surface the handlers need.
type resolver interface {
	ResolveByCode(ctx context.Context, code string) (*promosvc.Promotion, error)
	ResolveByToken(ctx context.Context, token string) (*promosvc.Promotion, error)
	ResolveByPromotionID(ctx context.Context, id uuid.UUID, source enums.PromotionSource) (*promosvc.Promotion, error)
}

// Controller bundles the quote session endpoints.
type Controller struct {
	sessions   *quote.Service
	treatments treatmentsvc.Service
	promotions resolver
	logg       *logger.Logger
}

// NewController wires the quote session HTTP surface.
func NewController(sessions *quote.Service, treatments treatmentsvc.Service, promotions resolver, logg *logger.Logger) *Controller {
	return &Controller{
		sessions:   sessions,
		treatments: treatments,
		promotions: promotions,
		logg:       logg,
	}
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	session, err := c.sessions.Create(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, toSessionView(session))
}

func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := c.sessionID(w, r)
	if !ok {
		return
	}
	session, err := c.sessions.Get(r.Context(), sessionID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, toSessionView(session))
}

func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := c.sessionID(w, r)
	if !ok {
		return
	}
	if err := c.sessions.Delete(r.Context(), sessionID); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, map[string]string{"status": "deleted"})
}

func (c *Controller) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := c.sessionID(w, r)
	if !ok {
		return
	}

	var payload updatePatientRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	session, err := c.sessions.UpdatePatient(r.Context(), sessionID, quote.PatientDetails{
		Name:    payload.Name,
		Email:   payload.Email,
		Country: payload.Country,
		Notes:   payload.Notes,
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, toSessionView(session))
}

// AddItem resolves the treatment against the catalog and adds it to the
// quote. Adding an already-selected treatment increments its quantity.
func (c *Controller) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := c.sessionID(w, r)
	if !ok {
		return
	}

	var payload addItemRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	treatmentID, err := uuid.Parse(payload.TreatmentID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid treatment id"))
		return
	}

	treatment, err := c.treatments.GetTreatment(r.Context(), treatmentID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	session, err := c.sessions.AddTreatment(r.Context(), sessionID, quote.LineItem{
		TreatmentID: treatment.ID,
		Name:        treatment.Name,
		UnitPrice:   treatment.UnitPrice,
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, toSessionView(session))
}

func (c *Controller) SetQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := c.sessionID(w, r)
	if !ok {
		return
	}
	treatmentID, err := uuid.Parse(chi.URLParam(r, "treatmentID"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid treatment id"))
		return
	}

	var payload setQuantityRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	session, err := c.sessions.SetQuantity(r.Context(), sessionID, treatmentID, payload.Quantity)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, toSessionView(session))
}

func (c *Controller) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := c.sessionID(w, r)
	if !ok {
		return
	}
	treatmentID, err := uuid.Parse(chi.URLParam(r, "treatmentID"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid treatment id"))
		return
	}

	session, err := c.sessions.RemoveTreatment(r.Context(), sessionID, treatmentID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, toSessionView(session))
}

// ApplyPromotion resolves the requested promotion and applies it to the
// session. The new promotion always replaces the previous one.
func (c *Controller) ApplyPromotion(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := c.sessionID(w, r)
	if !ok {
		return
	}

	var payload applyPromotionRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	if payload.selectorCount() != 1 {
		responses.WriteError(r.Context(), c.logg, w, pkgerrors.New(pkgerrors.CodeValidation, "exactly one of code, token, or promotion_id required"))
		return
	}

	promo, err := c.resolvePromotion(r.Context(), payload)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	session, err := c.sessions.ApplyPromotion(r.Context(), sessionID, quote.ApplyPromotion{Promotion: *promo})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, toSessionView(session))
}

func (c *Controller) RemovePromotion(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := c.sessionID(w, r)
	if !ok {
		return
	}
	session, err := c.sessions.RemovePromotion(r.Context(), sessionID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, toSessionView(session))
}

// Submit runs the submission adapter. The response always reflects the
// final state: submitted with a quote id, failed with a classified reason,
// or idle when a concurrent edit superseded the attempt.
func (c *Controller) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := c.sessionID(w, r)
	if !ok {
		return
	}
	session, err := c.sessions.Submit(r.Context(), sessionID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, toSessionView(session))
}

func (c *Controller) resolvePromotion(ctx context.Context, payload applyPromotionRequest) (*promosvc.Promotion, error) {
	switch {
	case payload.Code != "":
		return c.promotions.ResolveByCode(ctx, payload.Code)
	case payload.Token != "":
		return c.promotions.ResolveByToken(ctx, payload.Token)
	default:
		id, err := uuid.Parse(payload.PromotionID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid promotion id")
		}
		source, err := enums.ParsePromotionSource(payload.Kind)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid promotion kind")
		}
		return c.promotions.ResolveByPromotionID(ctx, id, source)
	}
}

func (c *Controller) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid session id"))
		return uuid.Nil, false
	}
	return id, true
}
