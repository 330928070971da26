package inventory

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// ProductCodePrefix prefijo de los códigos de producto generados.
const ProductCodePrefix = "PRD"

// CodeGenerator genera códigos de producto "PRD" + milisegundos Unix + sufijo aleatorio de 3 dígitos.
// El componente de milisegundos es estrictamente creciente dentro del proceso, de modo que dos
// llamadas nunca producen el mismo código aunque ocurran en el mismo milisegundo.
type CodeGenerator struct {
	mu     sync.Mutex
	last   int64
	now    func() time.Time
	suffix func() int
}

// NewCodeGenerator construye el generador con reloj real y sufijo aleatorio.
func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{
		now:    time.Now,
		suffix: func() int { return rand.IntN(1000) },
	}
}

// Next devuelve un nuevo código único.
func (g *CodeGenerator) Next() string {
	g.mu.Lock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	g.mu.Unlock()
	return fmt.Sprintf("%s%d%03d", ProductCodePrefix, ms, g.suffix())
}
