package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/urbfiscalizacao/denuncias-api/models"
)

func TestDownloadServiceOrder(t *testing.T) {
	db := setupTestDB(t)
	complaint := seedComplaint(t, db, nil)
	db.Create(&models.Recurrence{ComplaintID: complaint.ID, Source: "Ouvidoria", Description: "De novo"})

	router := setupTestRouter()
	router.GET("/complaints/:id/document", DownloadServiceOrder)

	t.Run("Returns a PDF attachment", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/complaints/%d/document", complaint.ID), nil))
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

		expected := "OS_" + strings.ReplaceAll(complaint.ExternalID, "/", "_") + ".pdf"
		assert.Contains(t, w.Header().Get("Content-Disposition"), expected)
	})

	t.Run("Edited download carries the EDITADA suffix", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/complaints/%d/document?edited=true", complaint.ID), nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "_EDITADA.pdf")
	})

	t.Run("Unknown complaint", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/complaints/9999/document", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestExportComplaintsCSV(t *testing.T) {
	db := setupTestDB(t)
	seedComplaint(t, db, func(c *models.Complaint) { c.Description = "Lixo acumulado" })
	seedComplaint(t, db, func(c *models.Complaint) {
		c.Status = models.StatusCompleted
		c.Description = "Queimada"
	})

	router := setupTestRouter()
	router.GET("/complaints/export/csv", ExportComplaintsCSV)

	t.Run("Exports all rows", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/complaints/export/csv", nil))
		require.Equal(t, http.StatusOK, w.Code)

		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		assert.Len(t, lines, 3, "Header plus one row per complaint")
		assert.True(t, strings.HasPrefix(lines[0], "id,external_id,created_at"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "denuncias.csv")
	})

	t.Run("Export honours the listing filters", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/complaints/export/csv?status=Concluída", nil))
		require.Equal(t, http.StatusOK, w.Code)

		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		assert.Len(t, lines, 2)
		assert.Contains(t, lines[1], "Queimada")
	})
}

func TestExportComplaintsXLSX(t *testing.T) {
	db := setupTestDB(t)
	seedComplaint(t, db, func(c *models.Complaint) { c.Description = "Lixo acumulado" })

	router := setupTestRouter()
	router.GET("/complaints/export/xlsx", ExportComplaintsXLSX)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/complaints/export/xlsx", nil))
	require.Equal(t, http.StatusOK, w.Code)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Denúncias")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, "external_id", rows[0][1])
	assert.Contains(t, rows[1], "Lixo acumulado")
}
