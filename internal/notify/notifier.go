// Package notify sends the two post-payment emails: a receipt to the
// customer and a fulfillment alert to the production operator. Each is
// attempted exactly once per invocation, independently of the other.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/models"
)

// Sender is satisfied by *sendgrid.Client.
type Sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type Config struct {
	FromAddress        string
	FromName           string
	ReplyTo            string
	OperatorEmail      string
	CustomerTemplateID string
	OperatorTemplateID string
}

type Notifier struct {
	sender Sender
	cfg    Config
}

func New(sender Sender, cfg Config) *Notifier {
	return &Notifier{sender: sender, cfg: cfg}
}

// Result records both attempts. A nil error means the message was
// accepted by the email API.
type Result struct {
	CustomerErr error
	OperatorErr error
}

// Record converts the result into the persisted notification state.
func (r Result) Record(now time.Time) models.Notifications {
	n := models.Notifications{}
	if r.CustomerErr == nil {
		t := now
		n.CustomerSentAt = &t
	} else {
		n.CustomerError = r.CustomerErr.Error()
	}
	if r.OperatorErr == nil {
		t := now
		n.OperatorSentAt = &t
	} else {
		n.OperatorError = r.OperatorErr.Error()
	}
	return n
}

// NotifyOrderPaid sends the customer receipt and the operator alert.
// Runs synchronously; the caller (the payment webhook) must not ack the
// event before this returns. One failing does not stop the other.
func (n *Notifier) NotifyOrderPaid(ctx context.Context, order *models.Order) Result {
	return Result{
		CustomerErr: n.send(ctx, n.customerMessage(order)),
		OperatorErr: n.send(ctx, n.operatorMessage(order)),
	}
}

func (n *Notifier) send(ctx context.Context, msg *mail.SGMailV3) error {
	resp, err := n.sender.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("email rejected with status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// templated reports whether the richer template path is usable: it
// needs both a template id and a verified sender identity.
func (n *Notifier) templated(templateID string) bool {
	return templateID != "" && n.cfg.FromAddress != ""
}

func (n *Notifier) from() *mail.Email {
	addr := n.cfg.FromAddress
	if addr == "" {
		addr = n.cfg.OperatorEmail
	}
	return mail.NewEmail(n.cfg.FromName, addr)
}

func (n *Notifier) customerMessage(order *models.Order) *mail.SGMailV3 {
	to := mail.NewEmail(order.Customer.Name, order.Customer.Email)

	var m *mail.SGMailV3
	if n.templated(n.cfg.CustomerTemplateID) {
		m = mail.NewV3Mail()
		m.SetFrom(n.from())
		m.SetTemplateID(n.cfg.CustomerTemplateID)
		p := mail.NewPersonalization()
		p.AddTos(to)
		for k, v := range receiptData(order) {
			p.SetDynamicTemplateData(k, v)
		}
		m.AddPersonalizations(p)
	} else {
		// Template misconfigured or sender unverified: fall back to a
		// self-contained message built from the same order data.
		subject := fmt.Sprintf("Order %s confirmed - your listing video is in production", order.OrderID)
		m = mail.NewSingleEmail(n.from(), subject, to, customerText(order), customerHTML(order))
	}

	if n.cfg.ReplyTo != "" {
		m.SetReplyTo(mail.NewEmail("", n.cfg.ReplyTo))
	}
	return m
}

func (n *Notifier) operatorMessage(order *models.Order) *mail.SGMailV3 {
	to := mail.NewEmail("Production", n.cfg.OperatorEmail)

	var m *mail.SGMailV3
	if n.templated(n.cfg.OperatorTemplateID) {
		m = mail.NewV3Mail()
		m.SetFrom(n.from())
		m.SetTemplateID(n.cfg.OperatorTemplateID)
		p := mail.NewPersonalization()
		p.AddTos(to)
		for k, v := range receiptData(order) {
			p.SetDynamicTemplateData(k, v)
		}
		p.SetDynamicTemplateData("detail", operatorText(order))
		m.AddPersonalizations(p)
	} else {
		subject := fmt.Sprintf("New paid order %s (%d photos)", order.OrderID, order.PhotoCount)
		m = mail.NewSingleEmail(n.from(), subject, to, operatorText(order), operatorHTML(order))
	}

	if order.Customer.Email != "" {
		m.SetReplyTo(mail.NewEmail(order.Customer.Name, order.Customer.Email))
	}
	return m
}

// receiptData is the flat personalization map shared by both templates.
func receiptData(order *models.Order) map[string]interface{} {
	return map[string]interface{}{
		"order_id":      order.OrderID,
		"customer_name": order.Customer.Name,
		"package":       order.Pricing.Package,
		"photo_count":   order.PhotoCount,
		"total":         formatAmount(order.Pricing.Total),
	}
}

func formatAmount(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
