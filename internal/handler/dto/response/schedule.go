package response

import "jaac-backend/internal/domain/booking"

type WidgetResponse struct {
	booking.Widget
	// PopupURL opens the scheduler outside the page with the same prefill.
	PopupURL string `json:"popupUrl"`
}

func FromWidget(w *booking.Widget) WidgetResponse {
	return WidgetResponse{Widget: *w, PopupURL: w.PrefilledURL()}
}
