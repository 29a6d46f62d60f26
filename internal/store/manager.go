package store

import (
	"log/slog"
	"sync"
)

// Manager 为每个已认证用户维护一个 Store 实例。
// 同一用户的所有请求共用同一个 Store，变更因此天然串行。
type Manager struct {
	persistence Persistence
	notifier    Notifier
	logger      *slog.Logger
	maxResumes  int

	mu     sync.Mutex
	stores map[uint]*Store
}

// NewManager 构造 Manager。maxResumes 不大于 0 时使用免费套餐默认额度。
func NewManager(persistence Persistence, notifier Notifier, logger *slog.Logger, maxResumes int) *Manager {
	return &Manager{
		persistence: persistence,
		notifier:    notifier,
		logger:      logger,
		maxResumes:  maxResumes,
		stores:      map[uint]*Store{},
	}
}

// For 返回该用户的 Store，必要时创建。Profile 只在首次创建时生效。
func (m *Manager) For(user Profile) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[user.ID]; ok {
		return s
	}
	s := NewStore(user, m.persistence, m.notifier, m.logger, m.maxResumes)
	m.stores[user.ID] = s
	return s
}

// Release 丢弃该用户的 Store（例如退出登录时），一并清空当前选中。
func (m *Manager) Release(userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, userID)
}
