package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User 表示系统中的账号信息。Email 与 FullName 用于为新简历预填个人信息。
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;size:255"`
	FullName     string `gorm:"size:255"`
	PasswordHash string `gorm:"size:255"`
}

// ResumeCollection 按用户保存整份简历集合的序列化数据。
// 集合作为单个 JSONB 块整体读写：会话开始时读入，每次变更后整体写回。
type ResumeCollection struct {
	gorm.Model
	UserID uint           `gorm:"uniqueIndex"`
	Data   datatypes.JSON `gorm:"type:jsonb"`
}
