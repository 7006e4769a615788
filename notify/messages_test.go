package notify_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/urbanrail/metrofare/notify"
	"github.com/urbanrail/metrofare/transit"
)

// TestConfirmationMessage pins the wording the confirmation email has
// always used, including the two-decimal price rendering.
func TestConfirmationMessage(t *testing.T) {
	ticket := &transit.Ticket{
		ID:          uuid.MustParse("5f3a2e58-9c1d-4a7b-8e16-0d2f4b6c8a90"),
		UserID:      "amira",
		Source:      "Angrignon",
		Destination: "Berri-UQAM",
		Price:       decimal.RequireFromString("8.00"),
		RouteInfo:   "🟢 Start at Angrignon on the Green\n🏁 Arrive at Berri-UQAM",
		Status:      transit.StatusActive,
	}

	subject, body := notify.ConfirmationMessage(ticket)

	wantSubject := "Ticket Purchased Successfully - 5f3a2e58-9c1d-4a7b-8e16-0d2f4b6c8a90"
	if subject != wantSubject {
		t.Errorf("subject = %q; want %q", subject, wantSubject)
	}

	for _, fragment := range []string{
		"Success! Your ticket has been booked.",
		"Ticket ID: 5f3a2e58-9c1d-4a7b-8e16-0d2f4b6c8a90",
		"From: Angrignon",
		"To: Berri-UQAM",
		"Price: $8.00",
		"Route Info: 🟢 Start at Angrignon on the Green",
		"Thank you for using our Metro service!",
	} {
		if !strings.Contains(body, fragment) {
			t.Errorf("body missing %q:\n%s", fragment, body)
		}
	}
}

// TestOTPMessage includes the code and the expiry window.
func TestOTPMessage(t *testing.T) {
	subject, body := notify.OTPMessage("482913")

	if subject != "Verify your Metro Ticket Purchase" {
		t.Errorf("subject = %q", subject)
	}
	if want := "Your OTP for ticket verification is: 482913. It expires in 5 minutes."; body != want {
		t.Errorf("body = %q; want %q", body, want)
	}
}
