package handlers

import (
	"strings"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	if p.Price <= 0 {
		errs = append(errs, ValidationError{Field: "Price", Description: "Price must be greater than zero"})
	}
	for _, size := range p.Stock.Sizes {
		if size < 0 {
			errs = append(errs, ValidationError{Field: "Stock", Description: "Stock sizes cannot be negative"})
			break
		}
	}
	if p.Stock.Count != nil && *p.Stock.Count < 0 {
		errs = append(errs, ValidationError{Field: "Stock", Description: "Stock cannot be negative"})
	}
	return errs
}

func validateBanner(b BannerRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(b.Title) == "" {
		errs = append(errs, ValidationError{Field: "Title", Description: "Title is required"})
	}
	if strings.TrimSpace(b.ImageURL) == "" {
		errs = append(errs, ValidationError{Field: "ImageURL", Description: "Image URL is required"})
	}
	if b.Position < 0 {
		errs = append(errs, ValidationError{Field: "Position", Description: "Position cannot be negative"})
	}
	return errs
}
