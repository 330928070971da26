// Package ratelimit implementa contadores de ventana fija para limitar intentos de login.
// MemoryStore sirve para una sola instancia; RedisStore comparte el contador entre réplicas.
package ratelimit

import (
	"context"
	"time"
)

// Store cuenta hits por clave dentro de una ventana fija.
type Store interface {
	// Hit suma un intento a key y devuelve el total de la ventana actual y cuándo se reinicia.
	Hit(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}
