package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Options 控制导出产物的页面参数。
type Options struct {
	PaperWidthIn  float64
	PaperHeightIn float64
	MarginIn      float64
	Landscape     bool
	// Scale 是预览截图使用的设备缩放系数。
	Scale float64
	// PreviewQuality 是预览 JPEG 的质量（1-100）。
	PreviewQuality int
}

// DefaultOptions 返回 A4 纵向、统一页边距、2x 预览缩放的默认配置。
func DefaultOptions() Options {
	return Options{
		PaperWidthIn:  8.27,
		PaperHeightIn: 11.69,
		MarginIn:      0.4,
		Landscape:     false,
		Scale:         2,
		PreviewQuality: 80,
	}
}

// Result 携带一次导出的全部产物。
type Result struct {
	PDF     []byte
	Preview []byte // JPEG 预览截图，失败时为空
}

// Generate 在无头浏览器中渲染 HTML 并导出 PDF 与预览截图。
// 每次调用启动独立的浏览器实例，并发导出之间不共享任何可变的渲染状态。
func Generate(htmlContent string, opts Options) (Result, error) {
	launch := launcher.New().
		Headless(true).
		NoSandbox(true)

	if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return Result{}, fmt.Errorf("launch chromium: %w", err)
	}
	defer launch.Cleanup()

	browser := rod.New().ControlURL(browserURL)
	if err := browser.Connect(); err != nil {
		return Result{}, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := browser.Timeout(60 * time.Second).Page(proto.TargetCreateTarget{})
	if err != nil {
		return Result{}, fmt.Errorf("create page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	page = page.Timeout(60 * time.Second)
	if err := page.SetDocumentContent(htmlContent); err != nil {
		return Result{}, fmt.Errorf("set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return Result{}, fmt.Errorf("wait load: %w", err)
	}

	if err := (proto.EmulationSetEmulatedMedia{Media: "print"}).Call(page); err != nil {
		return Result{}, fmt.Errorf("set emulated media to print: %w", err)
	}

	pdfBytes, err := exportPDF(page, opts)
	if err != nil {
		return Result{}, err
	}

	result := Result{PDF: pdfBytes}
	// 预览失败不影响 PDF 产物。
	if preview, err := capturePreview(page, opts); err == nil {
		result.Preview = preview
	}
	return result, nil
}

func exportPDF(page *rod.Page, opts Options) ([]byte, error) {
	params := &proto.PagePrintToPDF{
		PrintBackground:   true,
		Landscape:         opts.Landscape,
		PaperWidth:        float64Ptr(opts.PaperWidthIn),
		PaperHeight:       float64Ptr(opts.PaperHeightIn),
		MarginTop:         float64Ptr(opts.MarginIn),
		MarginBottom:      float64Ptr(opts.MarginIn),
		MarginLeft:        float64Ptr(opts.MarginIn),
		MarginRight:       float64Ptr(opts.MarginIn),
		PreferCSSPageSize: true,
	}
	reader, err := page.PDF(params)
	if err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read pdf bytes: %w", err)
	}
	return data, nil
}

func capturePreview(page *rod.Page, opts Options) ([]byte, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	override := &proto.EmulationSetDeviceMetricsOverride{
		Width:             794,
		Height:            1122,
		DeviceScaleFactor: scale,
	}
	if err := override.Call(page); err != nil {
		return nil, fmt.Errorf("override device metrics: %w", err)
	}

	quality := opts.PreviewQuality
	if quality <= 0 || quality > 100 {
		quality = 80
	}

	if element, err := page.Timeout(5 * time.Second).Element("#resume-root"); err == nil {
		if data, shotErr := element.Screenshot(proto.PageCaptureScreenshotFormatJpeg, quality); shotErr == nil {
			return data, nil
		}
	}

	req := &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: intPtr(quality),
	}
	data, err := page.Screenshot(true, req)
	if err != nil {
		return nil, fmt.Errorf("page screenshot: %w", err)
	}
	return data, nil
}

func float64Ptr(value float64) *float64 {
	return &value
}

func intPtr(value int) *int {
	return &value
}
