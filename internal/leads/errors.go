package leads

import "errors"

// Validation errors. The messages are user-facing (the landing form
// shows them verbatim), so they stay in Spanish.
var (
	ErrInvalidPayload = errors.New("Payload inválido.")

	ErrNombreRequired = errors.New("El nombre es obligatorio.")
	ErrNombreTooLong  = errors.New("El nombre excede el máximo permitido.")

	ErrEmailRequired = errors.New("El email es obligatorio.")
	ErrEmailFormat   = errors.New("Formato de email inválido.")
	ErrEmailTooLong  = errors.New("El email excede el máximo permitido.")

	ErrTelefonoPaisRequired = errors.New("telefonoPais es obligatorio.")
	ErrTelefonoPaisTooLong  = errors.New("telefonoPais excede el máximo permitido.")

	ErrTelefonoNumeroRequired = errors.New("telefonoNumero es obligatorio.")
	ErrTelefonoNumeroTooLong  = errors.New("telefonoNumero excede el máximo permitido.")

	ErrRolRequired = errors.New("rol es obligatorio.")
	ErrRolTooLong  = errors.New("rol excede el máximo permitido.")

	ErrTamanoRequired = errors.New("tamano es obligatorio.")
	ErrTamanoTooLong  = errors.New("tamano excede el máximo permitido.")

	ErrDolorRequired = errors.New("dolor es obligatorio.")
	ErrDolorTooLong  = errors.New("dolor excede el máximo permitido.")

	ErrInteresesCount  = errors.New("intereses debe tener entre 1 y 3 opciones.")
	ErrInteresTooLarge = errors.New("Cada interés debe tener un largo válido.")
)
