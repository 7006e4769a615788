package notify

import (
	"fmt"

	"github.com/urbanrail/metrofare/transit"
)

// ConfirmationMessage builds the subject and body of the purchase
// confirmation sent after a ticket is created.
func ConfirmationMessage(t *transit.Ticket) (subject, body string) {
	subject = fmt.Sprintf("Ticket Purchased Successfully - %s", t.ID)
	body = fmt.Sprintf(
		"Success! Your ticket has been booked.\n\n"+
			"Ticket ID: %s\n"+
			"From: %s\n"+
			"To: %s\n"+
			"Price: $%s\n\n"+
			"Route Info: %s\n\n"+
			"Thank you for using our Metro service!",
		t.ID, t.Source, t.Destination, t.Price.StringFixed(2), t.RouteInfo,
	)

	return subject, body
}

// OTPMessage builds the subject and body of the purchase-verification
// message. OTP generation and expiry live outside this module; only
// the wording is owned here.
func OTPMessage(otp string) (subject, body string) {
	subject = "Verify your Metro Ticket Purchase"
	body = fmt.Sprintf("Your OTP for ticket verification is: %s. It expires in 5 minutes.", otp)

	return subject, body
}
