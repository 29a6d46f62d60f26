package render

import "time"

// 输入日期的存储格式。前端既存完整日期（教育/经历），也存年月（证书）。
var dateLayouts = []string{"2006-01-02", "2006-01", time.RFC3339}

// FormatDate 将存储的日期渲染为 "Jan 2006"。
// 解析失败时原样返回，渲染路径不因脏数据中断。
func FormatDate(value string) string {
	if value == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("Jan 2006")
		}
	}
	return value
}

// FormatDateRange 渲染起止区间，空结束日期表示至今，渲染为 "Present"。
func FormatDateRange(start, end string) string {
	from := FormatDate(start)
	to := "Present"
	if end != "" {
		to = FormatDate(end)
	}
	if from == "" {
		return to
	}
	return from + " - " + to
}
