package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zieg12345/clientsearchinfo/middleware"
	"github.com/zieg12345/clientsearchinfo/service"
)

// ClientHandler serves the record-detail side: one lookup plus a full
// extraction pass per request.
type ClientHandler struct {
	specs []service.FieldSpec
}

func NewClientHandler() *ClientHandler {
	return &ClientHandler{specs: service.ClientFieldSpecs()}
}

// Search runs one render cycle: find the first record whose Name
// contains the query, resolve every display field through extraction,
// and return the drained diagnostics alongside. Misses and an empty
// master list are warnings, not errors; the fields still come back
// with their defaults.
func (h *ClientHandler) Search(c *gin.Context) {
	sess := middleware.GetSession(c)
	query := c.Query("name")

	hadData := !sess.Table().IsEmpty()
	result := sess.Search(query, h.specs)

	status := "found"
	message := fmt.Sprintf("Found match for '%s'", query)
	switch {
	case !hadData:
		status = "no_data"
		message = "No data available. Please upload an XLSX file first."
	case !result.Found:
		status = "no_match"
		message = "No match found for the selected name."
	}

	diagnostics := result.Diagnostics
	if diagnostics == nil {
		diagnostics = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"query":       result.Query,
		"status":      status,
		"message":     message,
		"found":       result.Found,
		"row_index":   result.RowIndex,
		"fields":      result.Fields,
		"diagnostics": diagnostics,
	})
}
