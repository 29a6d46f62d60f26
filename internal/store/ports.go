package store

import (
	"context"

	"resumio/internal/document"
)

// Profile 是认证协作方提供的当前用户信息。
type Profile struct {
	ID       uint
	Email    string
	FullName string
}

// Authenticated 报告 Profile 是否对应一个已登录用户。
func (p Profile) Authenticated() bool {
	return p.ID != 0
}

// Persistence 以用户为键保存整份文档集合。
// Load 在底层数据损坏时返回 ErrPersistenceCorrupt，调用方按"集合不存在"处理。
type Persistence interface {
	Load(ctx context.Context, userID uint) ([]document.Resume, error)
	Save(ctx context.Context, userID uint, docs []document.Resume) error
}

// Notifier 接收面向用户的成功/失败通知，纯旁路，核心不消费返回值。
type Notifier interface {
	Notify(ctx context.Context, userID uint, n Notice)
}

// Notice 是一条通知消息。
type Notice struct {
	Event    string `json:"event"`
	Status   string `json:"status"` // completed | error
	ResumeID string `json:"resume_id,omitempty"`
	Code     int    `json:"error_code"`
	Message  string `json:"message,omitempty"`
}

// NopNotifier 丢弃所有通知。
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, uint, Notice) {}
