package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zieg12345/clientsearchinfo/config"
	"github.com/zieg12345/clientsearchinfo/middleware"
	"github.com/zieg12345/clientsearchinfo/pkg/checksum"
	"github.com/zieg12345/clientsearchinfo/pkg/logger"
	"github.com/zieg12345/clientsearchinfo/service"
)

// MasterlistHandler serves the upload / preview / export side of the
// tool: everything that manages the session's table as a whole.
type MasterlistHandler struct {
	maxUploadBytes int64
}

func NewMasterlistHandler(cfg *config.UploadConfig) *MasterlistHandler {
	return &MasterlistHandler{
		maxUploadBytes: cfg.MaxSizeMB * 1024 * 1024,
	}
}

// Upload replaces the session's master list with an uploaded workbook.
func (h *MasterlistHandler) Upload(c *gin.Context) {
	sess := middleware.GetSession(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only XLSX files are allowed"})
		return
	}
	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("File exceeds the %d MB upload limit", h.maxUploadBytes/(1024*1024)),
		})
		return
	}

	var reader io.Reader = file
	if h.maxUploadBytes > 0 {
		reader = io.LimitReader(file, h.maxUploadBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	digest := checksum.Sum(data)

	table, err := service.ParseWorkbook(bytes.NewReader(data))
	if err != nil {
		// Structural load failure: the current table stays as it was.
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error loading XLSX: " + err.Error()})
		return
	}

	if status := sess.LoadTable(table); status == service.LoadEmptyInput {
		logger.Warn(c.Request.Context(), "empty workbook uploaded",
			"filename", header.Filename,
			"checksum", digest,
		)
		c.JSON(http.StatusOK, gin.H{
			"status":  "empty_input",
			"warning": "Uploaded XLSX is empty!",
		})
		return
	}

	logger.Info(c.Request.Context(), "master list replaced",
		"filename", header.Filename,
		"rows", table.RowCount(),
		"columns", len(table.Columns),
		"checksum", digest,
	)

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"message":  "Data uploaded successfully!",
		"rows":     table.RowCount(),
		"columns":  len(table.Columns),
		"checksum": digest,
	})
}

// Preview returns the current table as display strings for the grid
// that is always rendered under the upload and search views.
func (h *MasterlistHandler) Preview(c *gin.Context) {
	table := middleware.GetSession(c).Table()

	rows := make([][]string, 0, table.RowCount())
	for _, row := range table.Rows {
		rendered := make([]string, len(table.Columns))
		for i := range table.Columns {
			if i < len(row) {
				rendered[i] = row[i].Display()
			}
		}
		rows = append(rows, rendered)
	}

	c.JSON(http.StatusOK, gin.H{
		"columns":   table.Columns,
		"rows":      rows,
		"row_count": table.RowCount(),
	})
}

// Names returns the selector values for the name dropdown.
func (h *MasterlistHandler) Names(c *gin.Context) {
	names := middleware.GetSession(c).Names()
	if names == nil {
		names = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"names": names})
}

// Export streams the current table back as an xlsx download with a
// fixed file name, preserving column order and every row.
func (h *MasterlistHandler) Export(c *gin.Context) {
	table := middleware.GetSession(c).Table()

	data, err := service.WriteWorkbook(table)
	if err != nil {
		logger.Error(c.Request.Context(), "export failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export data"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.ExportFileName))
	c.Data(http.StatusOK, service.SpreadsheetContentType, data)
}

// ResetSession drops the session back to the empty schema-only table.
// Uploading an empty workbook deliberately does not clear anything, so
// this is the explicit way to start over.
func (h *MasterlistHandler) ResetSession(c *gin.Context) {
	middleware.GetSession(c).Reset()

	logger.Info(c.Request.Context(), "session reset")
	c.JSON(http.StatusOK, gin.H{"message": "Session reset"})
}
