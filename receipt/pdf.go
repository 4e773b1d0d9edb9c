package receipt

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/benguluru-bhavan/ordering-app/config"
	"github.com/benguluru-bhavan/ordering-app/models"
	"github.com/benguluru-bhavan/ordering-app/utils"
)

// RenderPDF writes the print-formatted receipt to path, tuned for an 80mm
// thermal page. The order must have its items loaded.
func RenderPDF(order *models.Order, path string) error {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 80, Ht: 297},
	})
	pdf.SetMargins(5, 8, 5)
	pdf.SetAutoPageBreak(true, 8)
	pdf.AddPage()

	// Header
	pdf.SetFont("Courier", "B", 13)
	pdf.CellFormat(0, 6, config.VendorName, "", 1, "C", false, 0, "")
	pdf.SetFont("Courier", "", 8)
	pdf.CellFormat(0, 4, config.VendorTagline, "", 1, "C", false, 0, "")
	dashedLine(pdf)
	pdf.SetFont("Courier", "B", 10)
	pdf.CellFormat(0, 5, "NEW ORDER", "", 1, "C", false, 0, "")
	pdf.SetFont("Courier", "", 8)
	pdf.CellFormat(0, 4, fmt.Sprintf("Order #%s", order.ShortID()), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 4, order.CreatedAt.Format("02/01/2006 15:04:05"), "", 1, "C", false, 0, "")
	dashedLine(pdf)

	// Customer
	pdf.SetFont("Courier", "B", 8)
	pdf.CellFormat(0, 4, "CUSTOMER DETAILS:", "", 1, "L", false, 0, "")
	pdf.SetFont("Courier", "", 8)
	pdf.CellFormat(0, 4, "Name: "+order.CustomerName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, "Phone: "+order.CustomerPhone, "", 1, "L", false, 0, "")
	pdf.MultiCell(0, 4, "Address: "+order.FullAddress(), "", "L", false)
	if order.Latitude != nil && order.Longitude != nil {
		pdf.SetFont("Courier", "", 6)
		pdf.CellFormat(0, 3, fmt.Sprintf("Location: %v, %v", *order.Latitude, *order.Longitude),
			"", 1, "L", false, 0, "")
		pdf.SetFont("Courier", "", 8)
	}
	dashedLine(pdf)

	// Items
	pdf.SetFont("Courier", "B", 8)
	pdf.CellFormat(0, 4, "ORDER ITEMS:", "", 1, "L", false, 0, "")
	pdf.SetFont("Courier", "", 8)
	for _, item := range order.OrderItems {
		lineTotal := item.Price * float64(item.Quantity)
		pdf.CellFormat(42, 4, clip(ItemLabel(item), 26), "", 0, "L", false, 0, "")
		pdf.CellFormat(8, 4, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(20, 4, utils.FormatAmount(lineTotal), "", 1, "R", false, 0, "")
	}
	dashedLine(pdf)

	// Total and status
	pdf.SetFont("Courier", "B", 11)
	pdf.CellFormat(0, 6, "TOTAL: "+utils.FormatINR(order.TotalAmount), "", 1, "R", false, 0, "")
	pdf.SetFont("Courier", "", 7)
	pdf.Ln(2)
	pdf.CellFormat(0, 3, "Thank you for your order!", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 3, "Status: "+strings.ToUpper(order.Status), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 3, "Visit us again!", "", 1, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

func dashedLine(pdf *fpdf.Fpdf) {
	pdf.Ln(1)
	pdf.SetFont("Courier", "", 8)
	pdf.CellFormat(0, 3, strings.Repeat("-", 34), "", 1, "C", false, 0, "")
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}
