package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"resumio/internal/store"
)

// Channel 返回某个用户的通知频道名。WebSocket 端按同名频道订阅。
func Channel(userID uint) string {
	return fmt.Sprintf("user_notify:%d", userID)
}

// RedisNotifier 通过 Redis Pub/Sub 投递用户通知。
// 通知是纯旁路：投递失败只记日志，不影响调用方流程。
type RedisNotifier struct {
	client redis.UniversalClient
	logger *slog.Logger
}

// NewRedisNotifier 构造 RedisNotifier。
func NewRedisNotifier(client redis.UniversalClient, logger *slog.Logger) *RedisNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisNotifier{client: client, logger: logger}
}

var _ store.Notifier = (*RedisNotifier)(nil)

// Notify 实现 store.Notifier。
func (n *RedisNotifier) Notify(ctx context.Context, userID uint, notice store.Notice) {
	data, err := json.Marshal(notice)
	if err != nil {
		n.logger.Error("marshal notice failed", slog.Any("error", err))
		return
	}
	if err := n.client.Publish(ctx, Channel(userID), data).Err(); err != nil {
		n.logger.Error("publish notice failed",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("event", notice.Event),
			slog.Any("error", err),
		)
	}
}
