package database

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumio/internal/document"
	"resumio/internal/store"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&ResumeCollection{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCollectionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	cs := NewCollectionStore(newTestDB(t))

	docs := []document.Resume{
		{
			ID:         "resume-1-aaaa",
			UserID:     "5",
			Name:       "First",
			TemplateID: "modern",
			Colors:     &document.Colors{Primary: "#2563eb", Secondary: "#93c5fd"},
			Education:  []document.Education{},
			Experience: []document.Experience{},
			Skills:     []document.Skill{{ID: "skill-1", Name: "Go", Level: 5}},
		},
		{
			ID:         "resume-2-bbbb",
			UserID:     "5",
			Name:       "Second",
			TemplateID: "classic",
			Education:  []document.Education{},
			Experience: []document.Experience{},
			Skills:     []document.Skill{},
		},
	}

	if err := cs.Save(ctx, 5, docs); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := cs.Load(ctx, 5)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(docs, loaded) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded, docs)
	}

	// 覆盖写入同一用户。
	if err := cs.Save(ctx, 5, docs[:1]); err != nil {
		t.Fatalf("second save: %v", err)
	}
	loaded, err = cs.Load(ctx, 5)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "resume-1-aaaa" {
		t.Fatalf("upsert did not replace collection: %+v", loaded)
	}
}

func TestCollectionStoreLoadMissingUser(t *testing.T) {
	cs := NewCollectionStore(newTestDB(t))
	docs, err := cs.Load(context.Background(), 99)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if docs != nil {
		t.Fatalf("expected absent collection, got %+v", docs)
	}
}

func TestCollectionStoreCorruptBlob(t *testing.T) {
	db := newTestDB(t)
	row := ResumeCollection{UserID: 5, Data: datatypes.JSON([]byte("{broken"))}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}

	cs := NewCollectionStore(db)
	if _, err := cs.Load(context.Background(), 5); !errors.Is(err, store.ErrPersistenceCorrupt) {
		t.Fatalf("err = %v, want ErrPersistenceCorrupt", err)
	}
}
