package rdx

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/MilanMareels/ap-gaming-hub/globals"
)

var Conn *redis.Client

func init() {
	_ = godotenv.Load()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
}

// GetCached returns a cached payload, or ok=false on miss or any Redis
// trouble. Callers always fall back to the store.
func GetCached(key string) ([]byte, bool) {
	val, err := Conn.Get(globals.Ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// SetCached stores a payload with a TTL; errors are ignored, the cache
// is an optimization only.
func SetCached(key string, data []byte, ttl time.Duration) {
	_ = Conn.Set(globals.Ctx, key, data, ttl).Err()
}

// Invalidate drops cache keys after a mutation.
func Invalidate(keys ...string) {
	_ = Conn.Del(globals.Ctx, keys...).Err()
}
