// Package notify delivers best-effort email notifications for accepted
// leads via the Resend API. Delivery is strictly fire-and-forget: the
// submission pipeline has already committed the lead by the time a
// notification is attempted, so failures here are logged and dropped,
// never surfaced to the visitor.
//
// Construction degrades gracefully: without an API key (or recipients)
// NewEmailNotifier returns a disabled notifier whose LeadAccepted is a
// no-op, so local development needs no Resend account.
package notify

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/resendlabs/resend-go"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-leads-backend/internal/domain"
)

// sendTimeout bounds one delivery attempt so a slow email API can never
// hold up pipeline shutdown.
const sendTimeout = 10 * time.Second

// EmailNotifier sends a sales-team email for every accepted lead.
type EmailNotifier struct {
	client *resend.Client
	from   string
	to     []string
}

// NewEmailNotifier constructs the notifier. An empty apiKey or recipient
// list yields a disabled notifier that silently ignores leads.
func NewEmailNotifier(apiKey, from string, to []string) *EmailNotifier {
	n := &EmailNotifier{from: from, to: to}
	if apiKey == "" || len(to) == 0 {
		log.Info().Msg("lead notifications disabled, no Resend API key or recipients configured")
		return n
	}
	n.client = resend.NewClient(apiKey)
	return n
}

// Enabled reports whether the notifier will actually send email.
func (n *EmailNotifier) Enabled() bool { return n.client != nil }

// LeadAccepted emails the configured recipients about a new lead.
// Errors are logged and absorbed.
func (n *EmailNotifier) LeadAccepted(ctx context.Context, lead *domain.Lead) {
	if n.client == nil || lead == nil {
		return
	}
	// Detach from the request context: the lead is already committed and
	// the delivery attempt should not die with the HTTP request.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
	defer cancel()

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      n.to,
		Subject: fmt.Sprintf("New enquiry from %s", lead.Name),
		Html:    leadHTML(lead),
	}

	done := make(chan error, 1)
	go func() {
		_, err := n.client.Emails.Send(params)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Warn().Err(err).Str("lead_id", lead.ID).Msg("lead notification failed")
			return
		}
		log.Info().Str("lead_id", lead.ID).Msg("lead notification sent")
	case <-ctx.Done():
		log.Warn().Str("lead_id", lead.ID).Msg("lead notification timed out")
	}
}

// leadHTML renders the notification body.
func leadHTML(lead *domain.Lead) string {
	var b strings.Builder
	b.WriteString("<h2>New enquiry</h2><table>")
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "<tr><td><strong>%s</strong></td><td>%s</td></tr>",
			html.EscapeString(label), html.EscapeString(value))
	}
	row("Name", lead.Name)
	row("Mobile", lead.Mobile)
	row("Email", lead.Email)
	row("Message", lead.Message)
	row("Source", lead.Source)
	if lead.Tracking != nil {
		row("Location", strings.TrimPrefix(fmt.Sprintf("%s, %s, %s", lead.Tracking.City, lead.Tracking.Region, lead.Tracking.Country), ", "))
		row("ISP", lead.Tracking.ISP)
	}
	if lead.Device != nil {
		row("Device", fmt.Sprintf("%s (%s %s)", lead.Device.Class, lead.Device.Browser, lead.Device.BrowserVersion))
	}
	row("Submitted", lead.CreatedAt.Format(time.RFC1123))
	b.WriteString("</table>")
	return b.String()
}
