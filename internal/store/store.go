// Package store is the durable key-value gateway: opaque blobs keyed by
// string. Collections snapshot themselves through SaveJSON and reconstitute
// through LoadJSON; a missing key is reported distinctly from a corrupt one so
// call sites can decide whether to default or escalate.
package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/victornm/partyquiz/internal/errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = stderrors.New("store: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Config struct {
	// Driver selects the backend: "sqlite" (default), "redis" or "memory".
	Driver string

	SQLite struct {
		Path string
	}

	Redis struct {
		Addrs  []string
		Pass   string
		Prefix string
	}
}

func Open(ctx context.Context, c Config) (Store, error) {
	switch c.Driver {
	case "", "sqlite":
		return OpenSQLite(ctx, c.SQLite.Path)
	case "redis":
		return OpenRedis(ctx, c.Redis.Addrs, c.Redis.Pass, c.Redis.Prefix)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, errors.New(errors.CodeInvalidArgument,
			errors.WithMessagef("unknown store driver %q", c.Driver))
	}
}

// LoadJSON decodes the blob at key into v. The second return is false when the
// key is absent. An undecodable blob yields a CodeDataLoss error and leaves v
// untouched; the caller chooses whether to log and fall back to a default.
func LoadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	b, err := s.Get(ctx, key)
	if stderrors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %q: %w", key, err)
	}

	if err := json.Unmarshal(b, v); err != nil {
		return false, errors.New(errors.CodeDataLoss,
			errors.WithMessagef("decode %q", key),
			errors.WithCause(err))
	}

	return true, nil
}

// SaveJSON encodes v and writes it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}

	if err := s.Set(ctx, key, b); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}

	return nil
}
