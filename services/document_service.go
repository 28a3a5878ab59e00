package services

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/urbfiscalizacao/denuncias-api/models"
)

const (
	documentTitle    = "URB Fiscalização - Ordem de Serviço"
	emptyDescription = "Sem descrição."
	encodingWarning  = "Erro na codificação do texto. Verifique caracteres especiais."

	timestampLayout = "2006-01-02 15:04:05"
)

// RenderServiceOrder renders a complaint and its recurrences as a single
// paginated PDF: page 1 holds the complaint itself, followed by one page per
// recurrence in ascending chronological order.
//
// The function is pure. It never reads the clock (the document creation date
// is taken from the record), so identical input yields byte-identical output.
func RenderServiceOrder(complaint models.Complaint, recurrences []models.Recurrence) ([]byte, error) {
	recs := make([]models.Recurrence, len(recurrences))
	copy(recs, recurrences)
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CreatedAt.Before(recs[j].CreatedAt)
	})

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetCreationDate(complaint.CreatedAt)
	pdf.SetModificationDate(complaint.CreatedAt)
	pdf.SetCatalogSort(true)
	pdf.SetCompression(false)

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 15)
		pdf.CellFormat(0, 10, tr(documentTitle), "", 1, "C", false, 0, "")
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Página %d", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetAutoPageBreak(true, 20)

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Ordem de Serviço Nº %s", complaint.ExternalID)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	nightAction := "NÃO"
	if complaint.NightAction {
		nightAction = "SIM"
	}

	pdf.SetFont("Arial", "", 11)
	meta := fmt.Sprintf(`
Data/Hora Registro: %s
Origem: %s
Tipo: %s
Ação Noturna: %s
Endereço: %s, %s
Bairro/Zona: %s / %s
Latitude/Longitude: %s / %s
Quem recebeu: %s
Status Atual: %s
`,
		complaint.CreatedAt.Format(timestampLayout),
		complaint.Origin,
		complaint.Category,
		nightAction,
		complaint.Street, complaint.HouseNumber,
		complaint.Neighborhood, complaint.Zone,
		complaint.Latitude, complaint.Longitude,
		complaint.ReceivedBy,
		complaint.Status,
	)
	pdf.MultiCell(0, 6, tr(meta), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 6, tr("DESCRIÇÃO DA ORDEM DE SERVIÇO:"), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.MultiCell(0, 5, tr(documentText(complaint.Description)), "1", "L", true)
	pdf.Ln(6)

	// Blank box kept for handwritten notes after printing.
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 6, tr("OBSERVAÇÕES DE CAMPO / AÇÕES REALIZADAS:"), "", 1, "L", false, 0, "")
	pdf.MultiCell(0, 6, strings.Repeat(" ", 100)+strings.Repeat("\n", 5), "1", "L", false)
	pdf.Ln(1)

	for i, rec := range recs {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Reincidência #%d - %s", i+1, complaint.ExternalID)), "", 1, "L", false, 0, "")
		pdf.Ln(5)

		pdf.SetFont("Arial", "", 11)
		recMeta := fmt.Sprintf("\nData da Reincidência: %s\nFonte da Informação: %s\n",
			rec.CreatedAt.Format(timestampLayout), rec.Source)
		pdf.MultiCell(0, 6, tr(recMeta), "", "L", false)
		pdf.Ln(4)

		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 6, tr("DESCRIÇÃO DA REINCIDÊNCIA:"), "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(255, 250, 240)
		pdf.MultiCell(0, 5, tr(documentText(rec.Description)), "1", "L", true)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render service order: %w", err)
	}
	return buf.Bytes(), nil
}

// ServiceOrderFileName builds the download name for a rendered document,
// replacing the path-unsafe "/" in the external id. Documents produced after
// an edit carry the _EDITADA suffix.
func ServiceOrderFileName(externalID string, edited bool) string {
	name := "OS_" + strings.ReplaceAll(externalID, "/", "_")
	if edited {
		name += "_EDITADA"
	}
	return name + ".pdf"
}

// documentText returns the text to print for a description block: the fixed
// placeholder when empty, and the fixed warning when the text cannot be
// represented in the document's Windows-1252 character set.
func documentText(s string) string {
	if s == "" {
		return emptyDescription
	}
	if _, err := charmap.Windows1252.NewEncoder().String(s); err != nil {
		return encodingWarning
	}
	return s
}
