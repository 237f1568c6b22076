package models

import "time"

// SettingsID es el ID del documento único de configuración
const SettingsID = "site"

type Branding struct {
	StoreName    string `json:"storeName" bson:"storeName"`
	Tagline      string `json:"tagline" bson:"tagline"`
	LogoURL      string `json:"logoUrl" bson:"logoUrl"`
	FaviconURL   string `json:"faviconUrl" bson:"faviconUrl"`
	PrimaryColor string `json:"primaryColor" bson:"primaryColor"`
}

type Contact struct {
	Email    string `json:"email" bson:"email"`
	Phone    string `json:"phone" bson:"phone"`
	WhatsApp string `json:"whatsapp" bson:"whatsapp"`
	Address  string `json:"address" bson:"address"`
	MapURL   string `json:"mapUrl" bson:"mapUrl"`
}

type Business struct {
	Hours              string `json:"hours" bson:"hours"`
	WarrantyPeriodDays int    `json:"warrantyPeriodDays" bson:"warrantyPeriodDays"`
	Currency           string `json:"currency" bson:"currency"`
	EnableReviews      bool   `json:"enableReviews" bson:"enableReviews"`
	EnableWhatsApp     bool   `json:"enableWhatsApp" bson:"enableWhatsApp"`
	ShowStockCount     bool   `json:"showStockCount" bson:"showStockCount"`
}

type Pages struct {
	About   string `json:"about" bson:"about"`
	Terms   string `json:"terms" bson:"terms"`
	Privacy string `json:"privacy" bson:"privacy"`
}

type SEO struct {
	MetaTitle       string   `json:"metaTitle" bson:"metaTitle"`
	MetaDescription string   `json:"metaDescription" bson:"metaDescription"`
	Keywords        []string `json:"keywords" bson:"keywords"`
	OGImage         string   `json:"ogImage" bson:"ogImage"`
}

type Integrations struct {
	GoogleAnalyticsID  string `json:"googleAnalyticsId" bson:"googleAnalyticsId"`
	GoogleTagManagerID string `json:"googleTagManagerId" bson:"googleTagManagerId"`
	FacebookPixelID    string `json:"facebookPixelId" bson:"facebookPixelId"`
}

// Notifications son solo preferencias, no hay envío de mensajes
type Notifications struct {
	NewReviewAlert      bool `json:"newReviewAlert" bson:"newReviewAlert"`
	LowStockAlert       bool `json:"lowStockAlert" bson:"lowStockAlert"`
	WarrantyExpiryAlert bool `json:"warrantyExpiryAlert" bson:"warrantyExpiryAlert"`
	DailySummary        bool `json:"dailySummary" bson:"dailySummary"`
}

type Maintenance struct {
	Enabled    bool     `json:"enabled" bson:"enabled"`
	Message    string   `json:"message" bson:"message"`
	AllowedIPs []string `json:"allowedIps" bson:"allowedIps"`
}

// Homepage define el límite de productos por sección (máximo MaxPerSection)
type Homepage struct {
	NewArrivalsLimit      int `json:"newArrivalsLimit" bson:"newArrivalsLimit"`
	DealsLimit            int `json:"dealsLimit" bson:"dealsLimit"`
	LimitedStockLimit     int `json:"limitedStockLimit" bson:"limitedStockLimit"`
	TopHighlightsLimit    int `json:"topHighlightsLimit" bson:"topHighlightsLimit"`
	BottomHighlightsLimit int `json:"bottomHighlightsLimit" bson:"bottomHighlightsLimit"`
}

// SiteSettings es el documento settings/site
type SiteSettings struct {
	Branding      Branding      `json:"branding" bson:"branding"`
	Contact       Contact       `json:"contact" bson:"contact"`
	Business      Business      `json:"business" bson:"business"`
	Pages         Pages         `json:"pages" bson:"pages"`
	SEO           SEO           `json:"seo" bson:"seo"`
	Integrations  Integrations  `json:"integrations" bson:"integrations"`
	Notifications Notifications `json:"notifications" bson:"notifications"`
	Maintenance   Maintenance   `json:"maintenance" bson:"maintenance"`
	Homepage      Homepage      `json:"homepage" bson:"homepage"`
	UpdatedAt     time.Time     `json:"updatedAt" bson:"-"`
}

// PublicMaintenance omite las IPs permitidas
type PublicMaintenance struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message"`
}

// PublicSettings es la vista de la tienda; notificaciones y allow-list quedan fuera
type PublicSettings struct {
	Branding     Branding          `json:"branding"`
	Contact      Contact           `json:"contact"`
	Business     Business          `json:"business"`
	Pages        Pages             `json:"pages"`
	SEO          SEO               `json:"seo"`
	Integrations Integrations      `json:"integrations"`
	Maintenance  PublicMaintenance `json:"maintenance"`
	Homepage     Homepage          `json:"homepage"`
}

func (s *SiteSettings) Public() PublicSettings {
	return PublicSettings{
		Branding:     s.Branding,
		Contact:      s.Contact,
		Business:     s.Business,
		Pages:        s.Pages,
		SEO:          s.SEO,
		Integrations: s.Integrations,
		Maintenance:  PublicMaintenance{Enabled: s.Maintenance.Enabled, Message: s.Maintenance.Message},
		Homepage:     s.Homepage,
	}
}

// SettingsUpdate trae las secciones a actualizar; las nil no se tocan
type SettingsUpdate struct {
	Branding      *Branding      `json:"branding,omitempty"`
	Contact       *Contact       `json:"contact,omitempty"`
	Business      *Business      `json:"business,omitempty"`
	Pages         *Pages         `json:"pages,omitempty"`
	SEO           *SEO           `json:"seo,omitempty"`
	Integrations  *Integrations  `json:"integrations,omitempty"`
	Notifications *Notifications `json:"notifications,omitempty"`
	Maintenance   *Maintenance   `json:"maintenance,omitempty"`
	Homepage      *Homepage      `json:"homepage,omitempty"`
}

func (u *SettingsUpdate) Empty() bool {
	return u.Branding == nil && u.Contact == nil && u.Business == nil && u.Pages == nil &&
		u.SEO == nil && u.Integrations == nil && u.Notifications == nil && u.Maintenance == nil &&
		u.Homepage == nil
}

// DefaultSettings retorna la configuración inicial si settings/site no existe
func DefaultSettings() SiteSettings {
	return SiteSettings{
		Branding: Branding{
			StoreName: "Laptop Store",
			Tagline:   "Quality laptops, honest prices",
		},
		Business: Business{
			Hours:              "Mon-Sat 10:00-20:00",
			WarrantyPeriodDays: DefaultWarrantyDays,
			Currency:           "INR",
			EnableReviews:      true,
		},
		SEO: SEO{
			MetaTitle: "Laptop Store",
		},
		Maintenance: Maintenance{
			Message: "We are updating the store. Please check back soon.",
		},
		Homepage: Homepage{
			NewArrivalsLimit:      MaxPerSection,
			DealsLimit:            MaxPerSection,
			LimitedStockLimit:     MaxPerSection,
			TopHighlightsLimit:    MaxPerSection,
			BottomHighlightsLimit: MaxPerSection,
		},
	}
}
