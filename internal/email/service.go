package email

import (
	"fmt"
	"net/smtp"
)

// Service sends transactional mail over plain SMTP. Auth-less relay is
// enough for the local mailhog setup and for most internal relays.
type Service struct {
	host string
	port string
	from string
}

func NewService(host, port, from string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
	}
}

// SendOrderConfirmation sends the order confirmation email to the buyer.
func (s *Service) SendOrderConfirmation(to, orderID string, total float64, items []OrderItem) error {
	subject := fmt.Sprintf("Order confirmed - %s", shortID(orderID))
	body := BuildOrderConfirmationBody(orderID, total, items)
	return s.send(to, subject, body)
}

// SendStatusUpdate tells the buyer the order moved to a new status.
func (s *Service) SendStatusUpdate(to, orderID, status string) error {
	subject := fmt.Sprintf("Order %s is now %s", shortID(orderID), status)
	body := BuildStatusUpdateBody(orderID, status)
	return s.send(to, subject, body)
}

// SendCancellation confirms a cancellation to the buyer.
func (s *Service) SendCancellation(to, orderID string, total float64) error {
	subject := fmt.Sprintf("Order cancelled - %s", shortID(orderID))
	body := BuildCancellationBody(orderID, total)
	return s.send(to, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}

func shortID(orderID string) string {
	if len(orderID) > 8 {
		return orderID[:8]
	}
	return orderID
}
