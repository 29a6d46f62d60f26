package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"resumio/internal/api/middleware"
	"resumio/internal/database"
	"resumio/internal/document"
	"resumio/internal/render"
	"resumio/internal/storage"
	"resumio/internal/store"
	"resumio/internal/tasks"
)

const downloadLinkTTL = 5 * time.Minute

// objectStorage 是简历导出产物在对象存储上用到的最小操作面。
type objectStorage interface {
	ObjectExists(ctx context.Context, objectKey string) (bool, error)
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration, params map[string]string) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

// ResumeHandler 负责处理简历集合相关的 API 请求。
type ResumeHandler struct {
	db          *gorm.DB
	stores      *store.Manager
	asynqClient *asynq.Client
	storage     objectStorage
}

// NewResumeHandler 构造 ResumeHandler。
func NewResumeHandler(db *gorm.DB, stores *store.Manager, asynqClient *asynq.Client, storageClient objectStorage) *ResumeHandler {
	return &ResumeHandler{
		db:          db,
		stores:      stores,
		asynqClient: asynqClient,
		storage:     storageClient,
	}
}

// storeForRequest 取出当前用户的 Store。Profile 来自数据库里的账号信息，
// 新建文档的姓名种子依赖它。
func (h *ResumeHandler) storeForRequest(c *gin.Context) (*store.Store, uint, bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return nil, 0, false
	}

	var user database.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			AbortUnauthorized(c)
		} else {
			Internal(c, "failed to load account")
		}
		return nil, 0, false
	}

	profile := store.Profile{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	}
	return h.stores.For(profile), userID, true
}

type createResumeRequest struct {
	TemplateID string `json:"templateId" binding:"required"`
	ColorID    string `json:"colorId"`
}

type resumeListItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TemplateID string `json:"templateId"`
	ColorID    string `json:"colorId"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// CreateResume 按模板与配色创建一份空白简历，超过限额则提示升级。
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	var req createResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	s, _, ok := h.storeForRequest(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	id, err := s.Create(ctx, req.TemplateID, req.ColorID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrQuotaExceeded):
			Forbidden(c, "resume limit reached, upgrade to create more")
		case errors.Is(err, store.ErrTemplateNotFound):
			NotFound(c, "template not found")
		case errors.Is(err, store.ErrColorNotFound):
			BadRequest(c, "color not available for this template")
		default:
			Internal(c, "failed to create resume")
		}
		return
	}

	doc, err := s.Get(ctx, id)
	if err != nil {
		Internal(c, "failed to load created resume")
		return
	}
	s.SetCurrent(&doc)

	c.JSON(http.StatusCreated, doc)
}

// ListResumes 列出用户全部简历的摘要，顺序即创建顺序。
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	s, _, ok := h.storeForRequest(c)
	if !ok {
		return
	}

	docs, err := s.Resumes(c.Request.Context())
	if err != nil {
		Internal(c, "failed to list resumes")
		return
	}

	items := make([]resumeListItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, resumeListItem{
			ID:         d.ID,
			Name:       d.Name,
			TemplateID: d.TemplateID,
			ColorID:    d.ColorID,
			CreatedAt:  d.CreatedAt,
			UpdatedAt:  d.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, items)
}

// GetResume 返回指定 ID 的简历并标记为当前正在编辑。
func (h *ResumeHandler) GetResume(c *gin.Context) {
	s, _, ok := h.storeForRequest(c)
	if !ok {
		return
	}

	doc, err := s.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "resume not found")
		} else {
			Internal(c, "failed to query resume")
		}
		return
	}

	s.SetCurrent(&doc)
	c.JSON(http.StatusOK, doc)
}

// GetCurrentResume 返回当前选中的简历，无选中时返回 204。
func (h *ResumeHandler) GetCurrentResume(c *gin.Context) {
	s, _, ok := h.storeForRequest(c)
	if !ok {
		return
	}

	doc := s.Current()
	if doc == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// UpdateResume 将补丁合并到指定简历上。
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	var patch document.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		BadRequest(c, err.Error())
		return
	}

	s, _, ok := h.storeForRequest(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	if err := s.Update(ctx, id, patch); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			NotFound(c, "resume not found")
		case errors.Is(err, store.ErrTemplateNotFound):
			BadRequest(c, "unknown template")
		case errors.Is(err, store.ErrColorNotFound):
			BadRequest(c, "color not available for this template")
		default:
			Internal(c, "failed to update resume")
		}
		return
	}

	doc, err := s.Get(ctx, id)
	if err != nil {
		Internal(c, "failed to reload resume")
		return
	}
	c.JSON(http.StatusOK, doc)
}

// DeleteResume 删除指定简历并清理已生成的导出产物。目标缺失也视为成功。
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	s, userID, ok := h.storeForRequest(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	if err := s.Delete(ctx, id); err != nil {
		Internal(c, "failed to delete resume")
		return
	}

	// 产物清理失败只记日志，不影响删除结果。
	log := middleware.LoggerFromContext(c)
	for _, key := range []string{storage.PDFObjectKey(userID, id), storage.PreviewObjectKey(userID, id)} {
		if err := h.storage.DeleteObject(ctx, key); err != nil {
			log.Warn("delete export artifact failed", slog.String("object_key", key), slog.Any("error", err))
		}
	}

	c.Status(http.StatusNoContent)
}

// DownloadResume 将 PDF 导出任务入队并立即返回 202。
func (h *ResumeHandler) DownloadResume(c *gin.Context) {
	s, userID, ok := h.storeForRequest(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if _, err := s.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "resume not found")
		} else {
			Internal(c, "failed to query resume")
		}
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewPDFExportTask(userID, id, correlationID)
	if err != nil {
		Internal(c, "failed to create task")
		return
	}

	info, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(5))
	if err != nil {
		Internal(c, "failed to enqueue pdf export")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "PDF export request accepted",
		"task_id": info.ID,
	})
}

// GetDownloadLink 生成简历 PDF 的预签名下载链接。
func (h *ResumeHandler) GetDownloadLink(c *gin.Context) {
	s, userID, ok := h.storeForRequest(c)
	if !ok {
		return
	}

	id := c.Param("id")
	doc, err := s.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "resume not found")
		} else {
			Internal(c, "failed to query resume")
		}
		return
	}

	ctx := c.Request.Context()
	objectKey := storage.PDFObjectKey(userID, id)
	exists, err := h.storage.ObjectExists(ctx, objectKey)
	if err != nil {
		Internal(c, "failed to check pdf")
		return
	}
	if !exists {
		Conflict(c, "pdf not ready")
		return
	}

	fileName := render.FileName(doc) + ".pdf"
	signedURL, err := h.storage.GeneratePresignedURL(ctx, objectKey, downloadLinkTTL, map[string]string{
		"response-content-disposition": fmt.Sprintf("attachment; filename=%q", fileName),
	})
	if err != nil {
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL, "file_name": fileName})
}

// GetPreviewLink 生成简历预览图的预签名链接。
func (h *ResumeHandler) GetPreviewLink(c *gin.Context) {
	s, userID, ok := h.storeForRequest(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if _, err := s.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "resume not found")
		} else {
			Internal(c, "failed to query resume")
		}
		return
	}

	ctx := c.Request.Context()
	objectKey := storage.PreviewObjectKey(userID, id)
	exists, err := h.storage.ObjectExists(ctx, objectKey)
	if err != nil {
		Internal(c, "failed to check preview")
		return
	}
	if !exists {
		Conflict(c, "preview not ready")
		return
	}

	signedURL, err := h.storage.GeneratePresignedURL(ctx, objectKey, downloadLinkTTL, nil)
	if err != nil {
		Internal(c, "failed to generate preview link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL})
}

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case uint64:
		return uint(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}
