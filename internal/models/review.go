package models

import "time"

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "Pending"
	ReviewApproved ReviewStatus = "Approved"
	ReviewRejected ReviewStatus = "Rejected"
)

// Valid indica si el estado es conocido
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	}
	return false
}

// CanTransitionTo valida la transición de estado.
// Solo se puede salir de Pending; repetir el estado actual no hace nada.
func (s ReviewStatus) CanTransitionTo(next ReviewStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	return s == ReviewPending && (next == ReviewApproved || next == ReviewRejected)
}

// StoreReview es una reseña de la tienda en cola de moderación
type StoreReview struct {
	ID            string       `json:"id"`
	CustomerName  string       `json:"customerName"`
	CustomerEmail string       `json:"customerEmail,omitempty"`
	Rating        int          `json:"rating"`
	Title         string       `json:"title,omitempty"`
	Comment       string       `json:"comment"`
	ProductID     string       `json:"productId,omitempty"`
	ProductName   string       `json:"productName,omitempty"`
	Status        ReviewStatus `json:"status"`
	Featured      bool         `json:"featured"`

	AdminReply     string     `json:"adminReply,omitempty"`
	AdminReplyDate *time.Time `json:"adminReplyDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicReview es lo que ve la tienda: sin email ni datos de moderación
type PublicReview struct {
	ID             string     `json:"id"`
	CustomerName   string     `json:"customerName"`
	Rating         int        `json:"rating"`
	Title          string     `json:"title,omitempty"`
	Comment        string     `json:"comment"`
	ProductName    string     `json:"productName,omitempty"`
	Featured       bool       `json:"featured"`
	AdminReply     string     `json:"adminReply,omitempty"`
	AdminReplyDate *time.Time `json:"adminReplyDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func (r *StoreReview) Public() PublicReview {
	return PublicReview{
		ID:             r.ID,
		CustomerName:   r.CustomerName,
		Rating:         r.Rating,
		Title:          r.Title,
		Comment:        r.Comment,
		ProductName:    r.ProductName,
		Featured:       r.Featured,
		AdminReply:     r.AdminReply,
		AdminReplyDate: r.AdminReplyDate,
		CreatedAt:      r.CreatedAt,
	}
}

// ReviewInput viene del formulario público o de una carga manual del admin
type ReviewInput struct {
	CustomerName  string `json:"customerName" binding:"required,max=80"`
	CustomerEmail string `json:"customerEmail" binding:"omitempty,email"`
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
	Title         string `json:"title" binding:"max=120"`
	Comment       string `json:"comment" binding:"required,max=2000"`
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName" binding:"max=200"`
}

type ReviewStats struct {
	Total         int                  `json:"total"`
	ByStatus      map[ReviewStatus]int `json:"byStatus"`
	Featured      int                  `json:"featured"`
	AverageRating float64              `json:"averageRating"`
	Distribution  map[int]int          `json:"distribution"`
}
