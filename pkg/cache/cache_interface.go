package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache là contract chung cho RedisCache và MemoryCache.
// Values luôn đi qua JSON nên dest của Get phải là pointer.
type Cache interface {
	// Get trả found=false khi miss; dest chỉ bị ghi khi hit
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set với ttl <= 0 nghĩa là không hết hạn
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
}

// Namespaces của key
const (
	NamespaceBook           = "book"
	NamespaceRevokedSession = "session:revoked"
)

// Key ghép namespace và các phần còn lại bằng ":", ví dụ Key("book", 7) = "book:7"
func Key(namespace string, parts ...interface{}) string {
	var b strings.Builder
	b.WriteString(namespace)
	for _, p := range parts {
		b.WriteByte(':')
		fmt.Fprint(&b, p)
	}
	return b.String()
}
