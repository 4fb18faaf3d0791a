package domain

// ToPublicUser renames the internal identifier to its hex text form and drops
// the password hash. A nil document maps to nil.
func ToPublicUser(doc *UserDocument) *PublicUser {
	if doc == nil {
		return nil
	}
	return &PublicUser{
		ID:    doc.ID.Hex(),
		Name:  doc.Name,
		Email: doc.Email,
	}
}

// ToPublicListing renames the internal identifier to its hex text form; every
// other field passes through unchanged. A nil document maps to nil.
func ToPublicListing(doc *ListingDocument) *PublicListing {
	if doc == nil {
		return nil
	}
	return &PublicListing{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Author:      doc.Author,
		ISBN:        doc.ISBN,
		Price:       doc.Price,
		Condition:   doc.Condition,
		Cover:       doc.Cover,
		Description: doc.Description,
		SellerEmail: doc.SellerEmail,
		Status:      doc.Status,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

// ToPublicListings maps a slice of documents, always returning a non-nil slice.
func ToPublicListings(docs []ListingDocument) []PublicListing {
	out := make([]PublicListing, 0, len(docs))
	for i := range docs {
		out = append(out, *ToPublicListing(&docs[i]))
	}
	return out
}
