package quotesessions

type updatePatientRequest struct {
	Name    string   `json:"name" validate:"required,max=200"`
	Email   string   `json:"email" validate:"required,email"`
	Country string   `json:"country,omitempty" validate:"omitempty,max=100"`
	Notes   []string `json:"notes,omitempty" validate:"omitempty,dive,max=2000"`
}

type addItemRequest struct {
	TreatmentID string `json:"treatment_id" validate:"required,uuid"`
}

// Quantities below 1 remove the line item, so zero is a legal value here.
type setQuantityRequest struct {
	Quantity int64 `json:"quantity" validate:"gte=0,lte=1000"`
}

// applyPromotionRequest carries exactly one of code, token, or
// promotion_id (+kind).
type applyPromotionRequest struct {
	Code        string `json:"code,omitempty"`
	Token       string `json:"token,omitempty"`
	PromotionID string `json:"promotion_id,omitempty" validate:"omitempty,uuid"`
	Kind        string `json:"kind,omitempty"`
}

func (r applyPromotionRequest) selectorCount() int {
	count := 0
	if r.Code != "" {
		count++
	}
	if r.Token != "" {
		count++
	}
	if r.PromotionID != "" {
		count++
	}
	return count
}
