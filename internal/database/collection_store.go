package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resumio/internal/document"
	"resumio/internal/store"
)

// CollectionStore 用 ResumeCollection 表实现 Store 的持久化端口。
type CollectionStore struct {
	db *gorm.DB
}

// NewCollectionStore 构造 CollectionStore。
func NewCollectionStore(db *gorm.DB) *CollectionStore {
	return &CollectionStore{db: db}
}

var _ store.Persistence = (*CollectionStore)(nil)

// Load 读入该用户的整份集合。没有记录时返回 nil 集合；
// 数据无法解码时返回 ErrPersistenceCorrupt，由 Store 按空集合重建。
func (s *CollectionStore) Load(ctx context.Context, userID uint) ([]document.Resume, error) {
	var row ResumeCollection
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("query collection: %w", err)
	}

	if len(row.Data) == 0 {
		return nil, nil
	}

	var docs []document.Resume
	if err := json.Unmarshal(row.Data, &docs); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrPersistenceCorrupt, err)
	}
	return docs, nil
}

// Save 将整份集合写回，按 user_id 做 upsert。
func (s *CollectionStore) Save(ctx context.Context, userID uint, docs []document.Resume) error {
	if docs == nil {
		docs = []document.Resume{}
	}
	blob, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}

	row := ResumeCollection{
		UserID: userID,
		Data:   datatypes.JSON(blob),
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert collection: %w", err)
	}
	return nil
}
