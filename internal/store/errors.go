package store

import "errors"

var (
	// ErrUnauthenticated 创建文档要求已登录用户。
	ErrUnauthenticated = errors.New("user must be authenticated")
	// ErrQuotaExceeded 免费额度已满，请求被拒绝且状态不变。
	ErrQuotaExceeded = errors.New("free plan limit reached")
	// ErrTemplateNotFound 模板 ID 无法在目录中解析。
	ErrTemplateNotFound = errors.New("template not found")
	// ErrColorNotFound 配色 ID 不属于所选模板。
	ErrColorNotFound = errors.New("color scheme not found")
	// ErrNotFound 文档查找失败，可恢复，不中断流程。
	ErrNotFound = errors.New("resume not found")
	// ErrPersistenceCorrupt 持久化数据损坏；Store 会按空集合重建。
	ErrPersistenceCorrupt = errors.New("persisted collection is corrupt")
)
