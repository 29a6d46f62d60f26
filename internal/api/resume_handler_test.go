package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumio/internal/database"
	"resumio/internal/document"
	"resumio/internal/storage"
	"resumio/internal/store"
)

type fakeObjectStorage struct {
	objects map[string][]byte
	deleted []string
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: map[string][]byte{}}
}

func (f *fakeObjectStorage) ObjectExists(_ context.Context, objectKey string) (bool, error) {
	_, ok := f.objects[objectKey]
	return ok, nil
}

func (f *fakeObjectStorage) GeneratePresignedURL(_ context.Context, objectKey string, _ time.Duration, _ map[string]string) (string, error) {
	return "https://example.invalid/" + objectKey, nil
}

func (f *fakeObjectStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	delete(f.objects, objectKey)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.User{}, &database.ResumeCollection{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeObjectStorage, uint) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	user := database.User{
		Email:        "jane@example.com",
		FullName:     "Jane Doe",
		PasswordHash: "x",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	logger := slog.New(slog.DiscardHandler)
	stores := store.NewManager(database.NewCollectionStore(db), store.NopNotifier{}, logger, 0)
	objects := newFakeObjectStorage()
	handler := NewResumeHandler(db, stores, nil, objects)

	router := gin.New()
	group := router.Group("/v1/resumes")
	group.Use(func(c *gin.Context) {
		c.Set("userID", user.ID)
		c.Next()
	})
	group.POST("", handler.CreateResume)
	group.GET("", handler.ListResumes)
	group.GET("/current", handler.GetCurrentResume)
	group.GET("/:id", handler.GetResume)
	group.PUT("/:id", handler.UpdateResume)
	group.DELETE("/:id", handler.DeleteResume)
	group.GET("/:id/download-link", handler.GetDownloadLink)

	return router, objects, user.ID
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createResume(t *testing.T, router *gin.Engine) document.Resume {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/v1/resumes", gin.H{"templateId": "modern"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var doc document.Resume
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode created resume: %v", err)
	}
	return doc
}

func TestCreateResumeSeedsDocument(t *testing.T) {
	router, _, _ := newTestRouter(t)
	doc := createResume(t, router)

	if doc.ID == "" {
		t.Fatal("created resume has empty id")
	}
	if doc.Name != "Untitled Resume" {
		t.Errorf("Name = %q, want %q", doc.Name, "Untitled Resume")
	}
	if doc.PersonalInfo.FullName != "Jane Doe" {
		t.Errorf("FullName = %q, want seeded from profile", doc.PersonalInfo.FullName)
	}
	if doc.Colors == nil || doc.Colors.Primary == "" {
		t.Error("expected color snapshot on created resume")
	}
}

func TestCreateResumeUnknownTemplate(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/resumes", gin.H{"templateId": "no-such-template"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestCreateResumeQuota(t *testing.T) {
	router, _, _ := newTestRouter(t)

	for i := 0; i < store.FreePlanMaxResumes; i++ {
		createResume(t, router)
	}

	w := doJSON(t, router, http.MethodPost, "/v1/resumes", gin.H{"templateId": "modern"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 after quota", w.Code)
	}

	list := doJSON(t, router, http.MethodGet, "/v1/resumes", nil)
	var items []resumeListItem
	if err := json.Unmarshal(list.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) != store.FreePlanMaxResumes {
		t.Fatalf("len(items) = %d, want %d", len(items), store.FreePlanMaxResumes)
	}
}

func TestGetResumeMarksCurrent(t *testing.T) {
	router, _, _ := newTestRouter(t)
	first := createResume(t, router)
	second := createResume(t, router)

	w := doJSON(t, router, http.MethodGet, "/v1/resumes/"+first.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	current := doJSON(t, router, http.MethodGet, "/v1/resumes/current", nil)
	if current.Code != http.StatusOK {
		t.Fatalf("current status = %d", current.Code)
	}
	var doc document.Resume
	if err := json.Unmarshal(current.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode current: %v", err)
	}
	if doc.ID != first.ID {
		t.Errorf("current id = %q, want %q (not %q)", doc.ID, first.ID, second.ID)
	}
}

func TestGetResumeNotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/v1/resumes/resume-0-none", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestUpdateResumeAppliesPatch(t *testing.T) {
	router, _, _ := newTestRouter(t)
	doc := createResume(t, router)

	w := doJSON(t, router, http.MethodPut, "/v1/resumes/"+doc.ID, gin.H{
		"name": "Backend Engineer",
		"personalInfo": gin.H{
			"fullName": "Jane A. Doe",
			"email":    "jane@example.com",
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", w.Code, w.Body.String())
	}

	var updated document.Resume
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.Name != "Backend Engineer" {
		t.Errorf("Name = %q", updated.Name)
	}
	if updated.PersonalInfo.FullName != "Jane A. Doe" {
		t.Errorf("FullName = %q", updated.PersonalInfo.FullName)
	}
	if updated.TemplateID != doc.TemplateID {
		t.Errorf("TemplateID changed to %q", updated.TemplateID)
	}
}

func TestUpdateResumeBadColor(t *testing.T) {
	router, _, _ := newTestRouter(t)
	doc := createResume(t, router)

	w := doJSON(t, router, http.MethodPut, "/v1/resumes/"+doc.ID, gin.H{"colorId": "no-such-color"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestDeleteResumeClearsCurrent(t *testing.T) {
	router, _, _ := newTestRouter(t)
	doc := createResume(t, router)

	// 选中后删除，当前选中应被清空。
	if w := doJSON(t, router, http.MethodGet, "/v1/resumes/"+doc.ID, nil); w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodDelete, "/v1/resumes/"+doc.ID, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}

	current := doJSON(t, router, http.MethodGet, "/v1/resumes/current", nil)
	if current.Code != http.StatusNoContent {
		t.Fatalf("current status = %d, want 204 after delete", current.Code)
	}
}

func TestDeleteResumeMissingIsNoop(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodDelete, "/v1/resumes/resume-0-none", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
}

func TestDeleteResumeRemovesArtifacts(t *testing.T) {
	router, objects, userID := newTestRouter(t)
	doc := createResume(t, router)

	pdfKey := storage.PDFObjectKey(userID, doc.ID)
	previewKey := storage.PreviewObjectKey(userID, doc.ID)
	objects.objects[pdfKey] = []byte("pdf")
	objects.objects[previewKey] = []byte("jpg")

	if w := doJSON(t, router, http.MethodDelete, "/v1/resumes/"+doc.ID, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}

	if _, ok := objects.objects[pdfKey]; ok {
		t.Error("pdf artifact still present after delete")
	}
	if _, ok := objects.objects[previewKey]; ok {
		t.Error("preview artifact still present after delete")
	}
}

func TestGetDownloadLink(t *testing.T) {
	router, objects, userID := newTestRouter(t)
	doc := createResume(t, router)

	// 产物尚未生成时返回 409。
	w := doJSON(t, router, http.MethodGet, "/v1/resumes/"+doc.ID+"/download-link", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 before export", w.Code)
	}

	objects.objects[storage.PDFObjectKey(userID, doc.ID)] = []byte("pdf")

	w = doJSON(t, router, http.MethodGet, "/v1/resumes/"+doc.ID+"/download-link", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 after export, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode link response: %v", err)
	}
	if resp.URL == "" {
		t.Error("empty download url")
	}
}

func TestUpdateResumeAssignsEntryIDs(t *testing.T) {
	router, _, _ := newTestRouter(t)
	doc := createResume(t, router)

	w := doJSON(t, router, http.MethodPut, "/v1/resumes/"+doc.ID, gin.H{
		"education": []gin.H{
			{"institution": "State University"},
			{"institution": "Technical College"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", w.Code, w.Body.String())
	}

	var updated document.Resume
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if len(updated.Education) != 2 {
		t.Fatalf("len(Education) = %d, want 2", len(updated.Education))
	}
	if updated.Education[0].ID == "" || updated.Education[1].ID == "" {
		t.Errorf("entry ids not assigned: %q, %q", updated.Education[0].ID, updated.Education[1].ID)
	}
	if updated.Education[0].ID == updated.Education[1].ID {
		t.Errorf("entry ids collide: %q", updated.Education[0].ID)
	}
}
