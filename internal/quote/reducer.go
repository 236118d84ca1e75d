package quote

import "github.com/smileroute/smileroute-backend/pkg/enums"

// Reduce applies a single action to the state and returns the next state.
// It is pure: the input is never mutated, derived totals are recomputed on
// every transition, and a submitted quote ignores all further actions.
//
// Content mutations while a submission is in flight supersede it: they
// bump the generation and drop the status back to idle, so the in-flight
// result no longer matches and is discarded when it lands.
func Reduce(state State, action Action) State {
	if state.IsSubmitted() {
		return state
	}

	switch a := action.(type) {
	case AddLineItem:
		next := mutated(state)
		if i := next.findLine(a.Treatment.TreatmentID); i >= 0 {
			next.LineItems[i].Quantity++
		} else {
			item := a.Treatment
			item.Quantity = 1
			next.LineItems = append(next.LineItems, item)
		}
		return next.recomputed()

	case RemoveLineItem:
		next := mutated(state)
		next.LineItems = removeLine(next.LineItems, next.findLine(a.TreatmentID))
		return next.recomputed()

	case SetQuantity:
		next := mutated(state)
		i := next.findLine(a.TreatmentID)
		if i < 0 {
			return next.recomputed()
		}
		if a.Quantity < 1 {
			next.LineItems = removeLine(next.LineItems, i)
		} else {
			next.LineItems[i].Quantity = a.Quantity
		}
		return next.recomputed()

	case ApplyPromotion:
		next := mutated(state)
		promo := a.Promotion
		next.Promotion = &promo
		return next.recomputed()

	case RemovePromotion:
		next := mutated(state)
		next.Promotion = nil
		return next.recomputed()

	case SubmitRequest:
		next := state.clone()
		next.Status = enums.SubmissionStatusSubmitting
		next.FailureReason = nil
		return next

	case SubmitSuccess:
		if !inFlightMatch(state, a.Generation) {
			return state
		}
		next := state.clone()
		id := a.QuoteID
		next.Status = enums.SubmissionStatusSubmitted
		next.QuoteID = &id
		next.FailureReason = nil
		return next

	case SubmitFailure:
		if !inFlightMatch(state, a.Generation) {
			return state
		}
		next := state.clone()
		reason := a.Reason
		next.Status = enums.SubmissionStatusFailed
		next.FailureReason = &reason
		return next

	default:
		return state
	}
}

// mutated prepares a copy for a content change: the generation advances and
// any submitting/failed status falls back to idle so the quote is editable
// and resubmittable.
func mutated(state State) State {
	next := state.clone()
	next.Generation++
	next.Status = enums.SubmissionStatusIdle
	next.FailureReason = nil
	next.QuoteID = nil
	return next
}

// inFlightMatch reports whether a submission result still applies to the
// current state.
func inFlightMatch(state State, generation int64) bool {
	return state.Status == enums.SubmissionStatusSubmitting && state.Generation == generation
}

func removeLine(items []LineItem, i int) []LineItem {
	if i < 0 || i >= len(items) {
		return items
	}
	return append(items[:i], items[i+1:]...)
}
