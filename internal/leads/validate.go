package leads

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// local@domain.tld, nothing fancier. Deliverability is the email
// provider's problem; this only rejects obvious non-addresses.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// asTrimmedString coerces an arbitrary JSON value to a trimmed string.
// Anything that is not a string becomes "".
func asTrimmedString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// ParseSubmission converts a decoded JSON value into a validated
// LeadSubmission. Rules run in a fixed order and the first violation
// wins; only the top-level shape check rejects on type, every other
// deviation is coerced (missing or non-string fields become "",
// non-bool checklist becomes false, non-array intereses becomes
// empty). Honeypot fields are normalized but never rejected.
func ParseSubmission(input any) (*LeadSubmission, error) {
	candidate, ok := input.(map[string]any)
	if !ok || candidate == nil {
		return nil, ErrInvalidPayload
	}

	sub := &LeadSubmission{
		Nombre:         asTrimmedString(candidate["nombre"]),
		Email:          strings.ToLower(asTrimmedString(candidate["email"])),
		TelefonoPais:   asTrimmedString(candidate["telefonoPais"]),
		TelefonoNumero: asTrimmedString(candidate["telefonoNumero"]),
		Rol:            asTrimmedString(candidate["rol"]),
		Tamano:         asTrimmedString(candidate["tamano"]),
		Dolor:          asTrimmedString(candidate["dolor"]),
		Intereses:      []string{},
		Website:        asTrimmedString(candidate["website"]),
		HP:             asTrimmedString(candidate["hp"]),
	}

	if items, ok := candidate["intereses"].([]any); ok {
		for _, item := range items {
			if s := asTrimmedString(item); s != "" {
				sub.Intereses = append(sub.Intereses, s)
			}
		}
	}

	if b, ok := candidate["checklist"].(bool); ok {
		sub.Checklist = b
	}

	if sub.Nombre == "" {
		return nil, ErrNombreRequired
	}
	if utf8.RuneCountInString(sub.Nombre) > maxNombreLen {
		return nil, ErrNombreTooLong
	}

	if sub.Email == "" {
		return nil, ErrEmailRequired
	}
	if !emailPattern.MatchString(sub.Email) {
		return nil, ErrEmailFormat
	}
	if utf8.RuneCountInString(sub.Email) > maxEmailLen {
		return nil, ErrEmailTooLong
	}

	if sub.TelefonoPais == "" {
		return nil, ErrTelefonoPaisRequired
	}
	if utf8.RuneCountInString(sub.TelefonoPais) > maxTelefonoPaisLen {
		return nil, ErrTelefonoPaisTooLong
	}

	if sub.TelefonoNumero == "" {
		return nil, ErrTelefonoNumeroRequired
	}
	if utf8.RuneCountInString(sub.TelefonoNumero) > maxTelefonoNumeroLen {
		return nil, ErrTelefonoNumeroTooLong
	}

	if sub.Rol == "" {
		return nil, ErrRolRequired
	}
	if utf8.RuneCountInString(sub.Rol) > maxRolLen {
		return nil, ErrRolTooLong
	}

	if sub.Tamano == "" {
		return nil, ErrTamanoRequired
	}
	if utf8.RuneCountInString(sub.Tamano) > maxTamanoLen {
		return nil, ErrTamanoTooLong
	}

	if sub.Dolor == "" {
		return nil, ErrDolorRequired
	}
	if utf8.RuneCountInString(sub.Dolor) > maxDolorLen {
		return nil, ErrDolorTooLong
	}

	if len(sub.Intereses) < minIntereses || len(sub.Intereses) > maxIntereses {
		return nil, ErrInteresesCount
	}
	for _, interes := range sub.Intereses {
		if utf8.RuneCountInString(interes) > maxInteresLen {
			return nil, ErrInteresTooLarge
		}
	}

	return sub, nil
}
