package hakedis

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildWeeklyXLSX: haftalık özeti banka gönderim formatında Excel dosyasına yazar.
func BuildWeeklyXLSX(summary *WeeklySummary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Haftalık Hakediş"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Araç No", "Plaka", "Hat", "IBAN", "Vergi No",
		"Haftalık Hakediş", "Kredi Kartı", "Genel Toplam",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, v := range summary.Vehicles {
		values := []interface{}{
			v.VehicleNumber, v.PlateNumber, v.RouteName, v.IBAN, v.TaxID,
			v.Haftalik.TotalAmount, v.KrediKarti.TotalAmount, v.GrandTotal,
		}
		for col, val := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, err
			}
		}
	}

	// Toplam satırı
	totalRow := len(summary.Vehicles) + 2
	totals := map[string]interface{}{
		fmt.Sprintf("A%d", totalRow): "TOPLAM",
		fmt.Sprintf("F%d", totalRow): summary.Summary.TotalHaftalik,
		fmt.Sprintf("G%d", totalRow): summary.Summary.TotalKrediKarti,
		fmt.Sprintf("H%d", totalRow): summary.Summary.GrandTotal,
	}
	for cell, val := range totals {
		if err := f.SetCellValue(sheet, cell, val); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}
