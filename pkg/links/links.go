// Package links generates outbound deep links for payment and support
// channels: UPI payment URIs, WhatsApp chat URLs and mailto links.
package links

import (
	"fmt"
	"net/url"
	"strings"
)

// UPIConfig holds the merchant identity embedded in payment URIs
type UPIConfig struct {
	PayeeAddress string // VPA, e.g. "merchant@upi"
	PayeeName    string
}

// UPIPayment builds a upi://pay URI for the given amount and order reference.
// Amount is formatted with two decimals; currency is fixed to INR.
func UPIPayment(cfg UPIConfig, amount float64, reference string) string {
	params := url.Values{}
	params.Set("pa", cfg.PayeeAddress)
	params.Set("pn", cfg.PayeeName)
	params.Set("am", fmt.Sprintf("%.2f", amount))
	params.Set("cu", "INR")
	params.Set("tn", reference)
	return "upi://pay?" + params.Encode()
}

// WhatsApp builds a wa.me URL opening a chat with the given phone number
// (digits only, country code included) pre-filled with text.
func WhatsApp(phone, text string) string {
	phone = strings.TrimPrefix(phone, "+")
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(text))
}

// Mailto builds a mailto link with subject and body
func Mailto(address, subject, body string) string {
	params := url.Values{}
	params.Set("subject", subject)
	params.Set("body", body)
	return fmt.Sprintf("mailto:%s?%s", address, params.Encode())
}

// OrderInquiry renders the WhatsApp message text for an order
func OrderInquiry(reference string, total float64) string {
	return fmt.Sprintf("Hi, I placed order %s (total ₹%.2f) and would like an update.", reference, total)
}
