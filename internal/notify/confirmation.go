package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/comelu/waitlist-api/pkg/logging"
)

const (
	confirmationSubject = "Estás en la lista de espera de Comelu"

	// Greeting used when the submitted name trims to nothing.
	fallbackGreetingName = "colega"
)

const confirmationText = `Hola %s:

Gracias por unirte a la lista de espera de Comelu, la plataforma de
gestión para laboratorios dentales. Abriremos los primeros cupos piloto
en Chile y te avisaremos a este correo apenas tengamos el tuyo.

Mientras tanto, si tienes preguntas puedes responder directamente a
este mensaje.

El equipo de Comelu`

const confirmationHTML = `<p>Hola %s:</p>
<p>Gracias por unirte a la lista de espera de <strong>Comelu</strong>,
la plataforma de gestión para laboratorios dentales. Abriremos los
primeros cupos piloto en Chile y te avisaremos a este correo apenas
tengamos el tuyo.</p>
<p>Mientras tanto, si tienes preguntas puedes responder directamente a
este mensaje.</p>
<p>El equipo de Comelu</p>`

// GreetingName derives the personalization token for the confirmation
// email: the first whitespace-delimited token of the trimmed name, or a
// fixed fallback when the name trims to empty.
func GreetingName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return fallbackGreetingName
	}
	return fields[0]
}

// ConfirmationMessage renders the waitlist confirmation for one lead.
func ConfirmationMessage(email, name string) EmailMessage {
	greeting := GreetingName(name)
	return EmailMessage{
		To:      email,
		ToName:  strings.TrimSpace(name),
		Subject: confirmationSubject,
		Body:    fmt.Sprintf(confirmationText, greeting),
		HTML:    fmt.Sprintf(confirmationHTML, greeting),
	}
}

// Service sends waitlist confirmation emails. It is strictly
// best-effort: every failure path logs and returns, nothing propagates
// to the submission response.
type Service struct {
	sender EmailSender
	logger *logging.Logger
}

// NewService creates a confirmation service. A nil sender means email
// is enabled but misconfigured; sends are skipped with an error log.
func NewService(sender EmailSender, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{sender: sender, logger: logger}
}

// SendConfirmation renders and sends the confirmation for one lead.
func (s *Service) SendConfirmation(ctx context.Context, email, name string) {
	if s == nil {
		return
	}
	msg := ConfirmationMessage(email, name)
	if s.sender == nil {
		s.logger.Error("confirmation email skipped: sender not configured", "to", email)
		return
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		s.logger.Error("confirmation email failed", "error", err, "to", email)
	}
}
