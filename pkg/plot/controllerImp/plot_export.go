package controllerImp

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"odisea/pkg/plot/types"
)

var exportHeader = []string{
	"ID", "Nombre", "Variedad", "Portainjerto", "Conducción", "Manejo",
	"Sector", "Finca", "Área (ha)", "Año implantación", "Activa",
}

// Export renders the filtered aggregation as an XLSX sheet. Same filters as
// the data endpoint, one row per plot.
func (h *PlotCtrl) Export(c echo.Context) error {
	out, err := h.repo.ListWithData(parseFilters(c))
	if err != nil {
		return fail(c, err)
	}

	x := excelize.NewFile()
	defer x.Close()
	const sheet = "Parcelas"
	x.SetSheetName("Sheet1", sheet)

	for i, col := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := x.SetCellValue(sheet, cell, col); err != nil {
			return fail(c, err)
		}
	}
	for i, p := range out.Plots {
		row := exportRow(p)
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := x.SetCellValue(sheet, cell, v); err != nil {
				return fail(c, err)
			}
		}
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="parcelas.xlsx"`)
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	if err := x.Write(c.Response()); err != nil {
		return err
	}
	return nil
}

func exportRow(p types.PlotOptimized) []any {
	row := make([]any, len(exportHeader))
	row[0] = p.PlotID
	row[1] = p.PlotName
	if p.Variety != nil {
		row[2] = p.Variety.Name
	}
	if p.Rootstock != nil {
		row[3] = p.Rootstock.Name
	}
	if p.Conduction != nil {
		row[4] = p.Conduction.Value
	}
	if p.Management != nil {
		row[5] = p.Management.Value
	}
	if p.Sector != nil {
		row[6] = p.Sector.Value
		if p.Sector.Finca != nil {
			row[7] = p.Sector.Finca.Value
		}
	}
	if p.PlotArea != nil {
		row[8] = *p.PlotArea
	}
	if p.PlotImplantYear != nil {
		row[9] = *p.PlotImplantYear
	}
	row[10] = fmt.Sprintf("%t", p.Active)
	return row
}
