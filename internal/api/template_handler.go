package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumio/internal/catalog"
)

// TemplateHandler 暴露静态模板目录。
type TemplateHandler struct{}

func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

type templateListItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPro       bool   `json:"is_pro"`
	ColorCount  int    `json:"color_count"`
}

// GET /v1/templates
// 列表：返回目录中的全部模板摘要。
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates := catalog.List()
	items := make([]templateListItem, 0, len(templates))
	for _, t := range templates {
		items = append(items, templateListItem{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			IsPro:       t.IsPro,
			ColorCount:  len(t.Colors),
		})
	}
	c.JSON(http.StatusOK, items)
}

// GET /v1/templates/:id
// 详情：返回模板完整定义，含可选配色与样式。
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	t, ok := catalog.Find(c.Param("id"))
	if !ok {
		NotFound(c, "template not found")
		return
	}
	c.JSON(http.StatusOK, t)
}
