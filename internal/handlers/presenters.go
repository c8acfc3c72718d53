package handlers

import (
	"time"

	"marketplace/internal/models"
	"marketplace/internal/services"
)

// Response bodies render money as JSON numbers.

type userView struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	FullName  string      `json:"full_name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	Phone     string      `json:"phone,omitempty"`
	Building  string      `json:"building,omitempty"`
	Floor     string      `json:"floor,omitempty"`
	Apartment string      `json:"apartment,omitempty"`
}

func presentUser(u *models.User) userView {
	return userView{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		Phone:     u.Phone,
		Building:  u.Building,
		Floor:     u.Floor,
		Apartment: u.Apartment,
	}
}

type storeView struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	MinOrderAmount  float64  `json:"min_order_amount"`
	DeliveryFee     float64  `json:"delivery_fee"`
	ProfileImageURL string   `json:"profile_image_url"`
	IsActive        bool     `json:"is_active"`
	AvgRating       *float64 `json:"avg_rating,omitempty"`
	ReviewsCount    *int64   `json:"reviews_count,omitempty"`
}

func presentStore(s *models.Store) storeView {
	return storeView{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Category:        s.Category,
		MinOrderAmount:  s.MinOrderAmount.InexactFloat64(),
		DeliveryFee:     s.DeliveryFee.InexactFloat64(),
		ProfileImageURL: s.ProfileImageURL,
		IsActive:        s.IsActive,
	}
}

func presentRatedStore(rs services.RatedStore) storeView {
	v := presentStore(&rs.Store)
	avg := rs.Rating.Average.InexactFloat64()
	count := rs.Rating.Count
	v.AvgRating = &avg
	v.ReviewsCount = &count
	return v
}

type productView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock"`
	IsActive    bool    `json:"is_active"`
}

func presentProducts(products []models.Product) []productView {
	views := make([]productView, 0, len(products))
	for i := range products {
		views = append(views, presentProduct(&products[i]))
	}
	return views
}

func presentProduct(p *models.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		IsActive:    p.IsActive,
	}
}

type orderLineView struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

type orderView struct {
	ID             string                `json:"id"`
	StoreID        string                `json:"store_id"`
	StoreName      string                `json:"store_name"`
	CustomerID     string                `json:"customer_id"`
	CustomerName   string                `json:"customer_name"`
	Status         models.OrderStatus    `json:"status"`
	TotalAmount    float64               `json:"total_amount"`
	DeliveryMethod models.DeliveryMethod `json:"delivery_method"`
	Notes          string                `json:"notes"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Items          []orderLineView       `json:"items"`
}

func presentOrders(orders []models.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for i := range orders {
		views = append(views, presentOrder(&orders[i]))
	}
	return views
}

func presentOrder(o *models.Order) orderView {
	items := make([]orderLineView, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, orderLineView{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice.InexactFloat64(),
			Quantity:    l.Quantity,
			Subtotal:    l.Subtotal.InexactFloat64(),
		})
	}
	return orderView{
		ID:             o.ID,
		StoreID:        o.StoreID,
		StoreName:      o.Store.Name,
		CustomerID:     o.CustomerID,
		CustomerName:   o.Customer.FullName,
		Status:         o.Status,
		TotalAmount:    o.TotalAmount.InexactFloat64(),
		DeliveryMethod: o.DeliveryMethod,
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		Items:          items,
	}
}

type reviewView struct {
	ID           string    `json:"id"`
	StoreID      string    `json:"store_id"`
	StoreName    string    `json:"store_name,omitempty"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func presentReviews(reviews []models.Review) []reviewView {
	views := make([]reviewView, 0, len(reviews))
	for i := range reviews {
		views = append(views, presentReview(&reviews[i]))
	}
	return views
}

func presentReview(r *models.Review) reviewView {
	return reviewView{
		ID:           r.ID,
		StoreID:      r.StoreID,
		StoreName:    r.Store.Name,
		CustomerID:   r.CustomerID,
		CustomerName: r.Customer.FullName,
		Rating:       r.Rating,
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
