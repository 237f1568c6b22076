package export

import (
	"strings"
	"time"

	"github.com/leekchan/accounting"

	"laptop-storefront/internal/models"
	"laptop-storefront/internal/warranty"
)

const dateLayout = "2006-01-02"

var rupees = accounting.Accounting{Symbol: "₹", Precision: 0, Thousand: ","}

// FormatRupees formatea un precio entero, ej. ₹72,000
func FormatRupees(amount int64) string {
	return rupees.FormatMoney(amount)
}

func CustomersTable(customers []models.Customer, now time.Time) Table {
	t := Table{
		Name: "Customers",
		Header: []string{
			"Name", "Email", "Phone", "Address", "Product", "Purchase Date",
			"Warranty Days", "Warranty End", "Warranty Status", "Days Remaining",
			"Status", "Last Reminder", "Review Requested", "Notes",
		},
	}
	for _, c := range customers {
		t.Rows = append(t.Rows, []interface{}{
			c.Name,
			c.Email,
			c.Phone,
			c.Address,
			c.ProductName,
			c.PurchaseDate.Format(dateLayout),
			c.WarrantyPeriodDays,
			c.WarrantyEndDate.Format(dateLayout),
			string(warranty.Status(now, c.WarrantyEndDate)),
			warranty.DaysRemaining(now, c.WarrantyEndDate),
			string(c.Status),
			optionalDate(c.LastReminderDate),
			optionalDate(c.ReviewRequestDate),
			c.Notes,
		})
	}
	return t
}

func ProductsTable(products []models.Product) Table {
	t := Table{
		Name: "Products",
		Header: []string{
			"Title", "Slug", "Brand", "Model", "Category", "Condition", "Price", "Price (INR)",
			"Stock", "Tags", "New Arrival", "Deal", "Limited Stock", "Top Highlight",
			"Bottom Highlight", "Published", "Created",
		},
	}
	for _, p := range products {
		t.Rows = append(t.Rows, []interface{}{
			p.Title,
			p.Slug,
			p.Brand,
			p.Model,
			string(p.Category),
			string(p.Condition),
			p.Price,
			FormatRupees(p.Price),
			p.StockCount,
			strings.Join(p.Tags, ", "),
			yesNo(p.IsNewArrival),
			yesNo(p.IsDeal),
			yesNo(p.IsLimitedStock),
			yesNo(p.IsTopHighlight),
			yesNo(p.IsBottomHighlight),
			yesNo(p.Published),
			p.CreatedAt.Format(dateLayout),
		})
	}
	return t
}

func ReviewsTable(reviews []models.StoreReview) Table {
	t := Table{
		Name: "Reviews",
		Header: []string{
			"Customer", "Email", "Rating", "Title", "Comment", "Product", "Status",
			"Featured", "Admin Reply", "Created",
		},
	}
	for _, r := range reviews {
		t.Rows = append(t.Rows, []interface{}{
			r.CustomerName,
			r.CustomerEmail,
			r.Rating,
			r.Title,
			r.Comment,
			r.ProductName,
			string(r.Status),
			yesNo(r.Featured),
			r.AdminReply,
			r.CreatedAt.Format(dateLayout),
		})
	}
	return t
}

func optionalDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
