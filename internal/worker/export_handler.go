package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"resumio/internal/document"
	"resumio/internal/errcode"
	"resumio/internal/notify"
	"resumio/internal/pdf"
	"resumio/internal/render"
	"resumio/internal/storage"
	"resumio/internal/store"
	"resumio/internal/tasks"
)

const downloadLinkTTL = 5 * time.Minute

// ExportTaskHandler 消费简历导出任务：构建渲染模型、栅格化为 PDF、
// 上传产物并通知用户。
type ExportTaskHandler struct {
	persistence store.Persistence
	storage     *storage.Client
	redisClient redis.UniversalClient
	logger      *slog.Logger
	pdfOptions  pdf.Options
}

// NewExportTaskHandler 创建任务处理器。
func NewExportTaskHandler(
	persistence store.Persistence,
	storageClient *storage.Client,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
) *ExportTaskHandler {
	return &ExportTaskHandler{
		persistence: persistence,
		storage:     storageClient,
		redisClient: redisClient,
		logger:      logger,
		pdfOptions:  pdf.DefaultOptions(),
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *ExportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.PDFExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.String("resume_id", payload.ResumeID),
		slog.Uint64("user_id", uint64(payload.UserID)),
	)
	log.Info("starting resume export task")

	// 导出失败只在最后一次重试时上报，中间失败交给 asynq 重试。
	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}
		h.publish(ctx, payload.UserID, ExportNotifyMessage{
			Status:        "error",
			ResumeID:      payload.ResumeID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.ExportFailed,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		})
	}()

	doc, ok, err := h.findDocument(ctx, payload.UserID, payload.ResumeID)
	if err != nil {
		log.Error("load collection failed", slog.Any("error", err))
		return err
	}
	if !ok {
		log.Warn("resume not found, skipping task")
		h.publish(ctx, payload.UserID, ExportNotifyMessage{
			Status:        "error",
			ResumeID:      payload.ResumeID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.NotFound,
			ErrorMessage:  "resume not found",
		})
		return nil
	}

	view := render.BuildView(doc)
	htmlContent, err := render.HTML(view)
	if err != nil {
		log.Error("render html failed", slog.Any("error", err))
		return err
	}

	result, err := pdf.Generate(htmlContent, h.pdfOptions)
	if err != nil {
		log.Error("rasterize pdf failed", slog.Any("error", err))
		return err
	}

	pdfKey := storage.PDFObjectKey(payload.UserID, doc.ID)
	if _, err := h.storage.UploadFile(ctx, pdfKey, bytes.NewReader(result.PDF), int64(len(result.PDF)), "application/pdf"); err != nil {
		log.Error("upload pdf failed", slog.Any("error", err))
		return err
	}

	if len(result.Preview) > 0 {
		previewKey := storage.PreviewObjectKey(payload.UserID, doc.ID)
		if _, err := h.storage.UploadFile(ctx, previewKey, bytes.NewReader(result.Preview), int64(len(result.Preview)), "image/jpeg"); err != nil {
			log.Warn("upload preview failed", slog.Any("error", err))
		}
	}

	fileName := view.FileName + ".pdf"
	downloadURL, err := h.storage.GeneratePresignedURL(ctx, pdfKey, downloadLinkTTL, map[string]string{
		"response-content-disposition": fmt.Sprintf("attachment; filename=%q", fileName),
	})
	if err != nil {
		log.Error("generate download link failed", slog.Any("error", err))
		return err
	}

	h.publish(ctx, payload.UserID, ExportNotifyMessage{
		Status:        "completed",
		ResumeID:      doc.ID,
		FileName:      fileName,
		DownloadURL:   downloadURL,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
	})

	log.Info("resume export task completed")
	return nil
}

func (h *ExportTaskHandler) findDocument(ctx context.Context, userID uint, resumeID string) (document.Resume, bool, error) {
	docs, err := h.persistence.Load(ctx, userID)
	if err != nil {
		return document.Resume{}, false, fmt.Errorf("load collection: %w", err)
	}
	for _, d := range docs {
		if d.ID == resumeID {
			return d, true, nil
		}
	}
	return document.Resume{}, false, nil
}

func (h *ExportTaskHandler) publish(ctx context.Context, userID uint, msg ExportNotifyMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal export notification failed", slog.Any("error", err))
		return
	}
	if err := h.redisClient.Publish(ctx, notify.Channel(userID), data).Err(); err != nil {
		h.logger.Error("publish export notification failed", slog.Any("error", err))
	}
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
