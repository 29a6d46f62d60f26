package worker

// ExportNotifyMessage 是导出完成/失败时推送给前端的消息体。
// 字段名与前端解析保持一致。
type ExportNotifyMessage struct {
	Status        string `json:"status"`
	ResumeID      string `json:"resume_id"`
	FileName      string `json:"file_name,omitempty"`
	DownloadURL   string `json:"download_url,omitempty"`
	CorrelationID string `json:"correlation_id"`
	ErrorCode     int    `json:"error_code"`
	ErrorMessage  string `json:"error_message,omitempty"`
}
