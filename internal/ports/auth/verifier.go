package auth

import "context"

// AuthVerifier valida un bearer token y devuelve las claims del usuario.
// El middleware lo usa; la emisión de tokens vive fuera de este servicio.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
