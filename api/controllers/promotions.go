package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/smileroute/smileroute-backend/api/responses"
	promosvc "github.com/smileroute/smileroute-backend/internal/promotions"
	"github.com/smileroute/smileroute-backend/pkg/enums"
	pkgerrors "github.com/smileroute/smileroute-backend/pkg/errors"
	"github.com/smileroute/smileroute-backend/pkg/logger"
)

type promotionResponse struct {
	Code         string `json:"code"`
	Kind         string `json:"kind"`
	Value        string `json:"value"`
	Source       string `json:"source"`
	SpecialPrice bool   `json:"special_price"`
}

func toPromotionResponse(p *promosvc.Promotion) promotionResponse {
	return promotionResponse{
		Code:         p.Code,
		Kind:         p.Kind.String(),
		Value:        p.Value.StringFixed(2),
		Source:       p.Source.String(),
		SpecialPrice: p.SpecialPrice,
	}
}

// LookupPromotion resolves a promotion by code (`?code=X`) or by catalog id
// (`?id=Y&kind=special_offer|treatment_package`). Unknown promotions are a
// 404, never a zero-value default.
func LookupPromotion(svc *promosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promotion service unavailable"))
			return
		}

		query := r.URL.Query()
		if code := query.Get("code"); code != "" {
			promo, err := svc.ResolveByCode(r.Context(), code)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, toPromotionResponse(promo))
			return
		}

		rawID := query.Get("id")
		if rawID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "code or id query parameter required"))
			return
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid promotion id"))
			return
		}
		source, err := enums.ParsePromotionSource(query.Get("kind"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid promotion kind"))
			return
		}

		promo, err := svc.ResolveByPromotionID(r.Context(), id, source)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toPromotionResponse(promo))
	}
}
