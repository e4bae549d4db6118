package admin

import (
	"fmt"
	"net/http"
	"time"

	"portal/database"
	"portal/models"
	"portal/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportAttemptsExcel exports the full attempt log as an XLSX workbook
// @Summary Export attempts
// @Description Download the full quiz attempt log as an Excel workbook
// @Tags Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200
// @Failure 401,403,500 {object} map[string]string
// @Router /admin/attempts/export [get]
// @Security Bearer
func ExportAttemptsExcel(c *gin.Context) {
	var attempts []models.Attempt
	if err := database.DB.Preload("User").Order("submitted_at DESC").Find(&attempts).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedExport)
		return
	}

	f := excelize.NewFile()
	sheet := "Attempts"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Username", "Discord ID", "Score", "Total", "Passed", "Origin", "Submitted At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, attempt := range attempts {
		username := ""
		discordID := ""
		if attempt.User != nil {
			username = attempt.User.Username
			discordID = attempt.User.DiscordID
		}
		values := []interface{}{
			username,
			discordID,
			attempt.Score,
			attempt.Total,
			attempt.Passed,
			attempt.Origin,
			attempt.SubmittedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	filename := fmt.Sprintf("attempts-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedExport)
	}
}
