package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jrabinat-art/agenda/internal/models"
	"github.com/jrabinat-art/agenda/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler serves spreadsheet downloads of the address book and roster.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

// ExportClientsCSV downloads the address book as CSV.
func (h *ExportHandler) ExportClientsCSV(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var clients []models.Client
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("id DESC").
		Find(&clients).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load clients")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"clients_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Name", "Email", "Phone"})
	for _, cl := range clients {
		writer.Write([]string{cl.Name, cl.Email, cl.Phone})
	}
}

// ExportClientsXLSX downloads the address book as an XLSX workbook.
func (h *ExportHandler) ExportClientsXLSX(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var clients []models.Client
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("id DESC").
		Find(&clients).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load clients")
		return
	}

	f := excelize.NewFile()
	sheetName := "Clients"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Name", "Email", "Phone"}
	for i, hd := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, hd)
	}

	for idx, cl := range clients {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), cl.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), cl.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), cl.Phone)
	}

	f.SetColWidth(sheetName, "A", "A", 24)
	f.SetColWidth(sheetName, "B", "B", 28)
	f.SetColWidth(sheetName, "C", "C", 16)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"clients_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}

// ExportRosterXLSX downloads the roster with stats as an XLSX workbook.
func (h *ExportHandler) ExportRosterXLSX(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var players []models.Player
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("number ASC, id ASC").
		Find(&players).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load roster")
		return
	}

	f := excelize.NewFile()
	sheetName := "Roster"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Number", "Name", "Position", "Goals", "Assists", "Matches", "Active"}
	for i, hd := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, hd)
	}

	for idx, p := range players {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), p.Number)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), p.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), p.Position)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), p.Goals)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), p.Assists)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), p.Matches)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), strconv.FormatBool(p.Active))
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 24)
	f.SetColWidth(sheetName, "C", "C", 14)
	f.SetColWidth(sheetName, "D", "G", 10)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"roster_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
