package leads

import "time"

// Fixed tags stamped on every stored lead.
const (
	Market = "Chile"
	Source = "landing_comelu"
)

// Field bounds, matching the landing form.
const (
	maxNombreLen         = 120
	maxEmailLen          = 254
	maxTelefonoPaisLen   = 10
	maxTelefonoNumeroLen = 24
	maxRolLen            = 40
	maxTamanoLen         = 20
	maxDolorLen          = 120
	maxInteresLen        = 120
	minIntereses         = 1
	maxIntereses         = 3
)

// Option sets shown by the landing form. The validator deliberately
// does not cross-check against them (only trimming and length bounds
// are enforced), so new client-side options don't need a backend
// deploy. Declared here for a future strict mode.
var (
	Roles     = []string{"Laboratorista", "Supervisor", "Dueño"}
	LabSizes  = []string{"1–3", "4–10", "10+"}
	MainPains = []string{
		"Información incompleta",
		"Archivos perdidos",
		"Estados confusos",
		"Pagos sin trazabilidad",
	}
	Intereses = []string{
		"Órdenes + estados por etapa",
		"Archivos adjuntos por caso",
		"Pagos/saldos + comprobantes (transferencia)",
		"Notificaciones a clientes",
		"Reportes básicos (atrasos, carga de trabajo)",
		"Acceso para clientes (link de seguimiento)",
	}
)

// LeadSubmission is one validated waitlist submission. It is built
// fresh per request by ParseSubmission, never mutated afterwards, and
// not retained in process memory once the response is written.
type LeadSubmission struct {
	Nombre         string   `json:"nombre"`
	Email          string   `json:"email"`
	TelefonoPais   string   `json:"telefonoPais"`
	TelefonoNumero string   `json:"telefonoNumero"`
	Rol            string   `json:"rol"`
	Tamano         string   `json:"tamano"`
	Dolor          string   `json:"dolor"`
	Intereses      []string `json:"intereses"`
	Checklist      bool     `json:"checklist"`

	// Honeypot fields. Invisible on the real form; any non-empty value
	// marks the submission as bot traffic. Normalized but never a
	// validation failure.
	Website string `json:"website,omitempty"`
	HP      string `json:"hp,omitempty"`
}

// IsBot reports whether a honeypot field was filled in.
func (s *LeadSubmission) IsBot() bool {
	return s.Website != "" || s.HP != ""
}

// StoredLead is the persisted record: the validated submission plus the
// fixed market/source tags. Append-only; there is no update or delete
// path.
type StoredLead struct {
	ID             string    `json:"id"`
	Nombre         string    `json:"nombre"`
	Email          string    `json:"email"`
	TelefonoPais   string    `json:"telefono_pais"`
	TelefonoNumero string    `json:"telefono_numero"`
	Rol            string    `json:"rol"`
	Tamano         string    `json:"tamano"`
	Dolor          string    `json:"dolor"`
	Intereses      []string  `json:"intereses"`
	Checklist      bool      `json:"checklist"`
	Market         string    `json:"market"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"created_at"`
}
