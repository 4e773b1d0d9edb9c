package receipt

import (
	"fmt"
	"strings"

	"github.com/benguluru-bhavan/ordering-app/config"
	"github.com/benguluru-bhavan/ordering-app/models"
	"github.com/benguluru-bhavan/ordering-app/utils"
)

const divider = "==========================================="
const rule = "-------------------------------------------"

// FileName encodes the order short identifier and creation timestamp:
// Order_<shortId>_<yyyyMMdd_HHmmss>.txt
func FileName(order *models.Order) string {
	return fmt.Sprintf("Order_%s_%s.txt",
		order.ShortID(),
		order.CreatedAt.Format("20060102_150405"))
}

// ItemLabel is the item name with the optional portion suffix.
func ItemLabel(item models.OrderItem) string {
	if item.PortionName != nil && *item.PortionName != "" {
		return fmt.Sprintf("%s (%s)", item.ItemName, *item.PortionName)
	}
	return item.ItemName
}

// Build renders the plain-text receipt for a new order. The order must have
// its items loaded.
func Build(order *models.Order) string {
	var b strings.Builder

	b.WriteString(divider + "\n")
	b.WriteString(center(config.VendorName) + "\n")
	b.WriteString(center(config.VendorTagline) + "\n")
	b.WriteString(divider + "\n")
	b.WriteString(center("NEW ORDER RECEIVED") + "\n")
	b.WriteString(divider + "\n\n")

	fmt.Fprintf(&b, "Order #%s\n", order.ShortID())
	fmt.Fprintf(&b, "Date/Time: %s\n\n", order.CreatedAt.Format("02/01/2006 15:04:05"))

	b.WriteString(rule + "\n")
	b.WriteString("CUSTOMER DETAILS\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Name: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n\n", order.CustomerPhone)
	b.WriteString("Delivery Address:\n")
	b.WriteString(order.FullAddress() + "\n")
	if order.Latitude != nil && order.Longitude != nil {
		fmt.Fprintf(&b, "\nLocation: %v, %v\n", *order.Latitude, *order.Longitude)
		fmt.Fprintf(&b, "Google Maps: https://www.google.com/maps?q=%v,%v\n",
			*order.Latitude, *order.Longitude)
	}
	b.WriteString("\n")

	b.WriteString(rule + "\n")
	b.WriteString("ORDER ITEMS\n")
	b.WriteString(rule + "\n")
	for _, item := range order.OrderItems {
		lineTotal := item.Price * float64(item.Quantity)
		fmt.Fprintf(&b, "%s\n", ItemLabel(item))
		fmt.Fprintf(&b, "  x%d @ %s = %s\n",
			item.Quantity,
			utils.FormatINR(item.Price),
			utils.FormatINR(lineTotal))
	}
	b.WriteString("\n")

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "TOTAL AMOUNT: %s\n", utils.FormatINR(order.TotalAmount))
	fmt.Fprintf(&b, "STATUS: %s\n", strings.ToUpper(order.Status))
	b.WriteString(divider + "\n")

	return b.String()
}

func center(s string) string {
	width := len(divider)
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
