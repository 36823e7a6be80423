package orders

import (
	"fmt"
	"log"
	"net/http"

	"fleur/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/xuri/excelize/v2"
)

// ExportOrders streams the caller's order history as an .xlsx workbook,
// one row per line item.
func (h *Handlers) ExportOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	list, err := h.recorder.ListFor(r.Context(), userID)
	if err != nil {
		log.Println("ExportOrders error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Order", "Placed", "Status", "Item", "Kind", "Qty", "Unit Price", "Line Total", "Order Total", "Discount"}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, hd)
	}

	row := 2
	for _, order := range list {
		for _, item := range order.Items {
			values := []any{
				order.OrderID,
				order.CreatedAt.Format("2006-01-02 15:04"),
				order.Status,
				item.Name,
				item.Kind,
				item.Quantity,
				item.UnitPrice,
				item.UnitPrice * float64(item.Quantity),
				order.Total,
				order.Discount,
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=orders-%s.xlsx", userID))
	if err := f.Write(w); err != nil {
		log.Println("ExportOrders write error:", err)
	}
}
