package stripe

const genericDecline = "Your card was declined. Please try another payment method or contact your bank."

var declineMessages = map[string]string{
	"insufficient_funds":      "Your card has insufficient funds. Please use another card.",
	"expired_card":            "Your card has expired. Please check the expiration date or use another card.",
	"incorrect_cvc":           "The security code (CVC) is incorrect. Please check it and try again.",
	"invalid_cvc":             "The security code (CVC) is invalid. Please check it and try again.",
	"incorrect_number":        "The card number is incorrect. Please check it and try again.",
	"invalid_expiry_month":    "The expiration month is invalid.",
	"invalid_expiry_year":     "The expiration year is invalid.",
	"processing_error":        "An error occurred while processing your card. Please try again in a moment.",
	"lost_card":               genericDecline,
	"stolen_card":             genericDecline,
	"fraudulent":              genericDecline,
	"do_not_honor":            "Your bank declined the payment. Please contact your bank or use another card.",
	"card_velocity_exceeded":  "Your card has exceeded its limit. Please contact your bank or use another card.",
	"authentication_required": "Your bank requires authentication. Please try again and complete the verification.",
	"card_not_supported":      "This card does not support this type of purchase. Please use another card.",
	"currency_not_supported":  "Your card does not support payments in CAD. Please use another card.",
	"generic_decline":         genericDecline,
	"card_declined":           genericDecline,
}

// DeclineMessage translates the decline code of a failed payment attempt into
// text for the customer.
func DeclineMessage(code string) string {
	if msg, ok := declineMessages[code]; ok {
		return msg
	}
	return genericDecline
}
