package inventory

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeGenerator_Formato(t *testing.T) {
	g := &CodeGenerator{
		now:    func() time.Time { return time.UnixMilli(1700000000123) },
		suffix: func() int { return 7 },
	}
	assert.Equal(t, "PRD1700000000123007", g.Next())
}

// Con un reloj congelado y sufijo constante los códigos siguen siendo únicos.
func TestCodeGenerator_RelojCongelado_SinColisiones(t *testing.T) {
	frozen := time.UnixMilli(1700000000000)
	g := &CodeGenerator{
		now:    func() time.Time { return frozen },
		suffix: func() int { return 0 },
	}

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		code := g.Next()
		_, dup := seen[code]
		require.False(t, dup, "código repetido: %s", code)
		seen[code] = struct{}{}
	}
}

func TestCodeGenerator_Concurrente_SinColisiones(t *testing.T) {
	g := NewCodeGenerator()
	const workers, perWorker = 8, 250

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				code := g.Next()
				mu.Lock()
				seen[code] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
	for code := range seen {
		assert.True(t, strings.HasPrefix(code, ProductCodePrefix))
		break
	}
}
