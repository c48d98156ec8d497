package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bellezza-backend/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gopkg.in/gomail.v2"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Reminder is one rendered reminder for an appointment.
type Reminder struct {
	Appointment *models.Appointment
	Subject     string
	Body        string
}

// Notifier delivers reminders over one channel.
type Notifier interface {
	Channel() string
	// Recipient returns the address for a, or "" when a cannot be reached.
	Recipient(a *models.Appointment) string
	Send(ctx context.Context, to string, r Reminder) error
}

// RenderReminder builds the reminder text for an appointment. Client,
// Employee and Service must be preloaded.
func RenderReminder(a *models.Appointment, loc *time.Location) Reminder {
	start := a.StartsAt(loc)
	date := start.Format("02.01.2006")
	clock := start.Format("15:04")

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s!\n\n", a.Client.Name)
	b.WriteString("Bellezza beauty salon reminds you of your appointment:\n")
	fmt.Fprintf(&b, "• Service: %s\n", a.Service.Name)
	fmt.Fprintf(&b, "• Master: %s\n", a.Employee.Name)
	fmt.Fprintf(&b, "• Date and time: %s at %s\n\n", date, clock)
	b.WriteString("We look forward to seeing you at Bolshaya Yakimanka 26, Moscow.\n")
	b.WriteString("Phone: +7 917 814 98 41\n\n")
	b.WriteString("Kind regards,\nBellezza team")

	return Reminder{
		Appointment: a,
		Subject:     fmt.Sprintf("Bellezza Salon: appointment reminder for %s at %s", date, clock),
		Body:        b.String(),
	}
}

// EmailNotifier sends reminders over SMTP.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailNotifier(host string, port int, username, password, from string) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (n *EmailNotifier) Channel() string { return ChannelEmail }

func (n *EmailNotifier) Recipient(a *models.Appointment) string {
	if a.Client == nil {
		return ""
	}
	return a.Client.Email
}

func (n *EmailNotifier) Send(ctx context.Context, to string, r Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", r.Subject)
	m.SetBody("text/plain", r.Body)
	return n.dialer.DialAndSend(m)
}

// SMSNotifier sends a short reminder text through Twilio.
type SMSNotifier struct {
	client *twilio.RestClient
	from   string
}

func NewSMSNotifier(accountSID, authToken, from string) *SMSNotifier {
	return &SMSNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

func (n *SMSNotifier) Channel() string { return ChannelSMS }

func (n *SMSNotifier) Recipient(a *models.Appointment) string {
	if a.Client == nil || !strings.HasPrefix(a.Client.Phone, "+") {
		return ""
	}
	return a.Client.Phone
}

func (n *SMSNotifier) Send(ctx context.Context, to string, r Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.from)
	params.SetBody(r.Subject)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid == nil {
		return fmt.Errorf("twilio: message to %s accepted without SID", to)
	}
	return nil
}
