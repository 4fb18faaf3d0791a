package domain

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateListingRequest is the payload of POST /api/listings.
// Price is a pointer so that a missing price is told apart from a free book.
type CreateListingRequest struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	ISBN        *string  `json:"isbn"`
	Price       *float64 `json:"price"`
	Condition   string   `json:"condition"`
	Cover       *string  `json:"cover"`
	Description *string  `json:"description"`
	SellerEmail string   `json:"seller_email"`
}

func (r CreateListingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.Author, validation.Required.Error("author is required")),
		validation.Field(&r.Price,
			validation.NotNil.Error("price is required"),
			validation.Min(0.0).Error("price must be greater than or equal to 0"),
		),
		validation.Field(&r.Condition, validation.Required.Error("condition is required")),
		validation.Field(&r.SellerEmail,
			validation.Required.Error("seller_email is required"),
			is.EmailFormat.Error("invalid email format"),
		),
	)
}

// Document builds the listing to persist. Status is always active on creation.
func (r CreateListingRequest) Document() *ListingDocument {
	var price float64
	if r.Price != nil {
		price = *r.Price
	}
	return &ListingDocument{
		Title:       r.Title,
		Author:      r.Author,
		ISBN:        r.ISBN,
		Price:       price,
		Condition:   r.Condition,
		Cover:       r.Cover,
		Description: r.Description,
		SellerEmail: r.SellerEmail,
		Status:      ListingStatusActive,
	}
}
