package models

import "time"

// DefaultWarrantyDays se usa si ni el request ni la configuración definen la garantía
const DefaultWarrantyDays = 15

// WarrantyStatus se calcula al leer a partir de WarrantyEndDate, nunca se persiste
type WarrantyStatus string

const (
	WarrantyActive       WarrantyStatus = "Active"
	WarrantyExpiringSoon WarrantyStatus = "Expiring Soon"
	WarrantyExpired      WarrantyStatus = "Expired"
)

// CustomerStatus es el estado de seguimiento que maneja el admin
type CustomerStatus string

const (
	CustomerActive          CustomerStatus = "Active"
	CustomerWarrantyExpired CustomerStatus = "Warranty Expired"
	CustomerReviewRequested CustomerStatus = "Review Requested"
	CustomerCompleted       CustomerStatus = "Completed"
)

var CustomerStatuses = []CustomerStatus{CustomerActive, CustomerWarrantyExpired, CustomerReviewRequested, CustomerCompleted}

// Valid indica si el estado es conocido
func (s CustomerStatus) Valid() bool {
	for _, known := range CustomerStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Customer es un registro de compra y garantía.
// ProductName es una copia del nombre al momento de la compra.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`

	ProductID   string `json:"productId,omitempty"`
	ProductName string `json:"productName"`

	PurchaseDate       time.Time      `json:"purchaseDate"`
	WarrantyPeriodDays int            `json:"warrantyPeriodDays"`
	WarrantyEndDate    time.Time      `json:"warrantyEndDate"`
	WarrantyStatus     WarrantyStatus `json:"warrantyStatus"`

	Status CustomerStatus `json:"status"`
	Notes  string         `json:"notes,omitempty"`

	LastReminderDate  *time.Time `json:"lastReminderDate,omitempty"`
	ReviewRequestDate *time.Time `json:"reviewRequestDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CustomerInput struct {
	Name               string         `json:"name" binding:"required,max=120"`
	Email              string         `json:"email" binding:"omitempty,email"`
	Phone              string         `json:"phone" binding:"max=20"`
	Address            string         `json:"address" binding:"max=300"`
	ProductID          string         `json:"productId"`
	ProductName        string         `json:"productName" binding:"required"`
	PurchaseDate       time.Time      `json:"purchaseDate" binding:"required"`
	WarrantyPeriodDays int            `json:"warrantyPeriodDays" binding:"min=0,max=3650"`
	WarrantyEndDate    *time.Time     `json:"warrantyEndDate"`
	Status             CustomerStatus `json:"status"`
	Notes              string         `json:"notes" binding:"max=1000"`
}

// CustomerStats agrupa clientes por estado y por estado de garantía
type CustomerStats struct {
	Total           int                    `json:"total"`
	ByStatus        map[CustomerStatus]int `json:"byStatus"`
	WarrantyActive  int                    `json:"warrantyActive"`
	ExpiringSoon    int                    `json:"expiringSoon"`
	WarrantyExpired int                    `json:"warrantyExpired"`
	RemindersSent   int                    `json:"remindersSent"`
	ReviewRequested int                    `json:"reviewRequested"`
}
