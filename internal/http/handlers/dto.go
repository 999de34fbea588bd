package handlers

import (
	"github.com/rogerio-castellano/commerce-admin/internal/models"
	"github.com/rogerio-castellano/commerce-admin/internal/report"
)

type ProductRequest struct {
	Id       string       `json:"id,omitempty"`
	Name     string       `json:"name"`
	Price    float64      `json:"price"`
	Stock    models.Stock `json:"stock"`
	Category string       `json:"category,omitempty"`
	ImageURL string       `json:"image_url,omitempty"`
}

type ProductResponse struct {
	Id         string       `json:"id"`
	Name       string       `json:"name"`
	Price      float64      `json:"price"`
	Stock      models.Stock `json:"stock"`
	TotalStock int          `json:"total_stock"`
	LowStock   bool         `json:"low_stock,omitempty"`
	OutOfStock bool         `json:"out_of_stock,omitempty"`
	Category   string       `json:"category,omitempty"`
	ImageURL   string       `json:"image_url,omitempty"`
}

func newProductResponse(p models.Product) ProductResponse {
	total := p.Stock.Total()
	return ProductResponse{
		Id:         p.ID,
		Name:       p.Name,
		Price:      float64(p.Price),
		Stock:      p.Stock,
		TotalStock: total,
		LowStock:   total > 0 && total <= models.LowStockThreshold,
		OutOfStock: total == 0,
		Category:   p.Category,
		ImageURL:   p.ImageURL,
	}
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type OrderResponse struct {
	Id            string             `json:"id"`
	UserId        string             `json:"user_id"`
	Total         float64            `json:"total"`
	Status        string             `json:"status"`
	CustomerName  string             `json:"customer_name,omitempty"`
	CustomerEmail string             `json:"customer_email,omitempty"`
	Items         []models.OrderItem `json:"items"`
	CreatedAt     string             `json:"created_at"`
}

func newOrderResponse(o models.Order) OrderResponse {
	return OrderResponse{
		Id:            o.ID,
		UserId:        o.UserID,
		Total:         report.OrderTotal(o),
		Status:        o.Status,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Items:         o.Items,
		CreatedAt:     o.CreatedAt.Format(timeLayout),
	}
}

type OrdersSearchResult struct {
	Data []OrderResponse `json:"data"`
	Meta Meta            `json:"meta,omitempty"`
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

type BannerRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	Link     string `json:"link,omitempty"`
	Active   bool   `json:"active"`
	Position int    `json:"position"`
}

type BannerResponse struct {
	Id       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	Link     string `json:"link,omitempty"`
	Active   bool   `json:"active"`
	Position int    `json:"position"`
}

func newBannerResponse(b models.Banner) BannerResponse {
	return BannerResponse{
		Id:       b.ID,
		Title:    b.Title,
		ImageURL: b.ImageURL,
		Link:     b.Link,
		Active:   b.Active,
		Position: b.Position,
	}
}

type CustomerResponse struct {
	Id        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	CreatedAt string `json:"created_at"`
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type RegisterAsAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
