package app

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tslabel/app/fileloader"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	clipboard "golang.design/x/clipboard"
)

// Maximum clipboard size in bytes (10MB) - helps avoid X11 BadLength errors on Linux
const maxClipboardSize = 10 * 1024 * 1024

// safeClipboardWrite attempts to write data to clipboard with panic recovery.
// Returns an error if the write fails or data is too large.
func safeClipboardWrite(format clipboard.Format, data []byte) (err error) {
	if len(data) > maxClipboardSize {
		return fmt.Errorf("data too large for clipboard (%d bytes, max %d bytes)", len(data), maxClipboardSize)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clipboard write failed: %v", r)
		}
	}()
	clipboard.Write(format, data)
	return nil
}

func (a *App) clipboardReady() error {
	// Lazy init clipboard
	a.clipOnce.Do(func() {
		if err := clipboard.Init(); err == nil {
			a.clipOK = true
		} else {
			a.Log("error", fmt.Sprintf("Clipboard init failed: %v", err))
		}
	})
	if !a.clipOK {
		return fmt.Errorf("clipboard not available")
	}
	return nil
}

// CopyCurrentRow copies the original CSV row of the current sample as text.
// Returns false when there is no sample.
func (a *App) CopyCurrentRow() (bool, error) {
	a.mu.Lock()
	cur := a.session.Current()
	var row []string
	if cur != nil {
		row = append(row, cur.OriginalRow...)
	}
	a.mu.Unlock()
	if cur == nil {
		return false, nil
	}

	var buf bytes.Buffer
	if err := fileloader.WriteCSVRecords(&buf, [][]string{row}); err != nil {
		return false, err
	}
	if err := a.clipboardReady(); err != nil {
		return false, err
	}
	if err := safeClipboardWrite(clipboard.FmtText, bytes.TrimRight(buf.Bytes(), "\n")); err != nil {
		a.Log("error", fmt.Sprintf("Clipboard write failed: %v", err))
		return false, fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	a.Log("info", "Copied current row to clipboard")
	return true, nil
}

// decodePNGDataURL extracts the image bytes of a "data:image/png;base64,..." URL.
func decodePNGDataURL(dataURL string) ([]byte, error) {
	if strings.TrimSpace(dataURL) == "" {
		return nil, fmt.Errorf("empty data URL")
	}
	comma := strings.Index(dataURL, ",")
	if comma < 0 {
		return nil, fmt.Errorf("invalid data URL: no comma separator")
	}
	imgBytes, err := base64.StdEncoding.DecodeString(strings.TrimSpace(dataURL[comma+1:]))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image base64: %w", err)
	}
	return imgBytes, nil
}

// CopyPNGFromDataURL puts a chart screenshot on the system clipboard.
func (a *App) CopyPNGFromDataURL(dataURL string) (bool, error) {
	imgBytes, err := decodePNGDataURL(dataURL)
	if err != nil {
		return false, err
	}
	if err := a.clipboardReady(); err != nil {
		return false, err
	}
	if err := safeClipboardWrite(clipboard.FmtImage, imgBytes); err != nil {
		a.Log("error", fmt.Sprintf("Clipboard write failed: %v", err))
		return false, fmt.Errorf("failed to copy image to clipboard: %w", err)
	}
	a.Log("info", "Chart screenshot copied to clipboard (image)")
	return true, nil
}

// SavePNGFromDataURL opens a Save File dialog and saves a chart screenshot.
// The defaultName (without path) is used to prefill the filename.
func (a *App) SavePNGFromDataURL(dataURL string, defaultName string) (bool, error) {
	if a.ctx == nil {
		return false, fmt.Errorf("app context not initialised")
	}
	imgBytes, err := decodePNGDataURL(dataURL)
	if err != nil {
		return false, err
	}
	path, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Save Chart Screenshot",
		DefaultFilename: strings.TrimSpace(defaultName),
		Filters:         []runtime.FileFilter{{DisplayName: "PNG Image", Pattern: "*.png"}},
	})
	if err != nil {
		return false, err
	}
	if path == "" {
		// user cancelled
		return false, nil
	}
	if !strings.HasSuffix(strings.ToLower(path), ".png") {
		path = path + ".png"
	}
	if err := os.WriteFile(path, imgBytes, 0o644); err != nil {
		return false, err
	}
	a.Log("info", fmt.Sprintf("Saved chart screenshot to %s", filepath.Base(path)))
	return true, nil
}
