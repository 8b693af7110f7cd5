package editor

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/inventario-documentos/internal/domain"
)

// MemoryStore guarda las sesiones en memoria del proceso con expiración por inactividad.
// Guarda instantáneas, no punteros: quien lee nunca comparte estado con el almacén.
type MemoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]memoryEntry
	now   func() time.Time
}

type memoryEntry struct {
	rec     sessionRecord
	expires time.Time
}

var _ SessionStore = (*MemoryStore)(nil)

// NewMemoryStore crea el almacén. ttl <= 0 desactiva la expiración.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:   ttl,
		items: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

func (m *MemoryStore) expiry() time.Time {
	if m.ttl <= 0 {
		return time.Time{}
	}
	return m.now().Add(m.ttl)
}

func (m *MemoryStore) live(id string) (memoryEntry, bool) {
	e, ok := m.items[id]
	if !ok {
		return memoryEntry{}, false
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.items, id)
		return memoryEntry{}, false
	}
	return e, true
}

// Create registra una sesión nueva.
func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.live(s.ID); ok {
		return domain.ErrConflict
	}
	m.items[s.ID] = memoryEntry{rec: s.record(), expires: m.expiry()}
	return nil
}

// Get devuelve una copia de la sesión.
func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.live(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return e.rec.session(), nil
}

// Update aplica fn bajo el candado del almacén y renueva la expiración.
func (m *MemoryStore) Update(_ context.Context, id string, fn func(*Session) error) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.live(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	s := e.rec.session()
	if err := fn(s); err != nil {
		return nil, err
	}
	s.UpdatedAt = m.now()
	rec := s.record()
	m.items[id] = memoryEntry{rec: rec, expires: m.expiry()}
	return rec.session(), nil
}

// Delete elimina la sesión.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.live(id); !ok {
		return domain.ErrSessionNotFound
	}
	delete(m.items, id)
	return nil
}

// Sweep elimina las sesiones vencidas y devuelve cuántas quitó.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ttl <= 0 {
		return 0
	}
	now := m.now()
	removed := 0
	for id, e := range m.items {
		if !now.Before(e.expires) {
			delete(m.items, id)
			removed++
		}
	}
	return removed
}

// Len cantidad de sesiones almacenadas (incluidas las vencidas aún no barridas).
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// RunJanitor barre las sesiones vencidas cada interval hasta que ctx se cancele.
func (m *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration, onSweep func(removed int)) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
