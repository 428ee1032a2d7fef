package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// CREATE / UPDATE PRODUCT (ADMIN)
// =====================================================
type CreateProductRequest struct {
	CategoryID  uuid.UUID       `json:"category_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	SalePercent int             `json:"sale_percent"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Quantity    int             `json:"quantity"`
	Description *string         `json:"description,omitempty"`
	Origin      *string         `json:"origin,omitempty"`
}

func (req CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.CategoryID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.SalePercent, validation.Min(0), validation.Max(100)),
		validation.Field(&req.Quantity, validation.Min(0)),
	)
}

type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	SalePercent *int             `json:"sale_percent,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	Description *string          `json:"description,omitempty"`
	Origin      *string          `json:"origin,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

func (req UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&req.SalePercent, validation.Min(0), validation.Max(100)),
	)
}

// =====================================================
// PRODUCT RESPONSE
// =====================================================
type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	CategoryID     uuid.UUID       `json:"category_id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	SalePercent    int             `json:"sale_percent"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	ImageURL       *string         `json:"image_url,omitempty"`
	Quantity       int             `json:"quantity"`
	Description    *string         `json:"description,omitempty"`
	Origin         *string         `json:"origin,omitempty"`
	IsActive       bool            `json:"is_active"`
}

func BuildProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		CategoryID:     p.CategoryID,
		Name:           p.Name,
		Price:          p.Price,
		SalePercent:    p.SalePercent,
		EffectivePrice: p.EffectivePrice(),
		ImageURL:       p.ImageURL,
		Quantity:       p.Quantity,
		Description:    p.Description,
		Origin:         p.Origin,
		IsActive:       p.IsActive,
	}
}
