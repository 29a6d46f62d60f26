package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypePDFExport = "pdf:export"
)

// PDFExportPayload 描述导出一份简历所需的最小信息。
type PDFExportPayload struct {
	UserID        uint   `json:"user_id"`
	ResumeID      string `json:"resume_id"`
	CorrelationID string `json:"correlation_id"`
}

// NewPDFExportTask 构造一个新的简历导出任务。
func NewPDFExportTask(userID uint, resumeID, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(PDFExportPayload{
		UserID:        userID,
		ResumeID:      resumeID,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePDFExport, payload), nil
}
