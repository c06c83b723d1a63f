package notify

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/inventario-ventas/pkg/config"
)

var _ inventory.Notifier = (*MailNotifier)(nil)

// sender abstrae gomail.Dialer para poder probar sin SMTP.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailNotifier envía el resumen de bajo stock por SMTP.
type MailNotifier struct {
	from   string
	to     []string
	dialer sender
}

// NewMailNotifier construye el notificador a partir de la configuración SMTP.
func NewMailNotifier(smtp config.SMTPConfig, alerts config.AlertsConfig) (*MailNotifier, error) {
	if len(alerts.To) == 0 {
		return nil, errors.New("notify: ALERT_TO vacío")
	}
	from := alerts.From
	if from == "" {
		from = smtp.User
	}
	d := gomail.NewDialer(smtp.Host, smtp.Port, smtp.User, smtp.Password)
	return &MailNotifier{from: from, to: alerts.To, dialer: d}, nil
}

func (n *MailNotifier) NotifyLowStock(_ context.Context, items []dto.ReplenishmentSuggestion) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to...)
	m.SetHeader("Subject", lowStockSubject(len(items)))
	m.SetBody("text/plain", lowStockBody(items))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send low stock mail: %w", err)
	}
	return nil
}
