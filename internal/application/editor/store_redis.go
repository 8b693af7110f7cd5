package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-documentos/internal/domain"
)

const (
	defaultRedisPrefix = "inventario:editor:session:"
	maxUpdateRetries   = 5
)

// RedisStore guarda las sesiones como JSON en Redis con TTL renovado en cada escritura.
// Update usa WATCH/MULTI: si otra escritura toca la clave en medio, se reintenta.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	now    func() time.Time
}

var _ SessionStore = (*RedisStore)(nil)

// NewRedisStore crea el almacén. prefix vacío usa el prefijo por defecto.
func NewRedisStore(client *redis.Client, ttl time.Duration, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, ttl: ttl, prefix: prefix, now: time.Now}
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

func (r *RedisStore) expiration() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	return r.ttl
}

// Create registra una sesión nueva; un id ya usado devuelve domain.ErrConflict.
func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s.record())
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	ok, err := r.client.SetNX(ctx, r.key(s.ID), data, r.expiration()).Result()
	if err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	if !ok {
		return domain.ErrConflict
	}
	return nil
}

// Get lee la sesión.
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	return decodeSession(data)
}

// Update lee, aplica fn y escribe dentro de una transacción optimista.
func (r *RedisStore) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	key := r.key(id)
	var result *Session

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return domain.ErrSessionNotFound
			}
			return err
		}
		s, err := decodeSession(data)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		s.UpdatedAt = r.now()
		out, err := json.Marshal(s.record())
		if err != nil {
			return fmt.Errorf("serializar sesión: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, r.expiration())
			return nil
		})
		if err != nil {
			return err
		}
		result, err = decodeSession(out)
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("%w: la sesión cambió durante la actualización", domain.ErrConflict)
}

// Delete elimina la sesión.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		return fmt.Errorf("eliminar sesión: %w", err)
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func decodeSession(data []byte) (*Session, error) {
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decodificar sesión: %w", err)
	}
	return rec.session(), nil
}
