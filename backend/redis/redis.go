package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	be "github.com/threadworks/modelcache/backend"
)

var ErrNilClient = errors.New("redis backend: nil client")

// Redis adapts a go-redis client to the modelcache backend contract.
type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ be.Backend = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this backend exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

func (b *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := b.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return v, true, nil
}

func (b *Redis) Store(ctx context.Context, key string, value []byte, opts be.StoreOptions) error {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 0 // non-positive TTLs mean "no expiry"
	}
	return b.rdb.Set(ctx, key, value, ttl).Err()
}

// Close releases the underlying redis client only when this backend owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (b *Redis) Close(context.Context) error {
	if b.closeClient {
		if err := b.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
