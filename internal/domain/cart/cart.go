package cart

import (
	"errors"
	"time"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("item not in cart")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Item is one product line inside a buyer's cart. Price and name are
// snapshots taken from the catalog when the line was added.
type Item struct {
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// Cart is the single per-buyer document. It is always read, mutated in
// memory, and written back whole; last write wins.
type Cart struct {
	UserID    string    `json:"user_id"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func New(userID string) *Cart {
	now := time.Now()
	return &Cart{UserID: userID, Items: []Item{}, CreatedAt: now, UpdatedAt: now}
}

// AddItem merges the quantity into an existing line for the same product,
// or appends a new line. No two lines ever share a product id.
func (c *Cart) AddItem(productID string, quantity int, price float64, name, image string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.Items[i].Price = price
			c.Items[i].Name = name
			if image != "" {
				c.Items[i].Image = image
			}
			c.UpdatedAt = time.Now()
			return
		}
	}
	c.Items = append(c.Items, Item{
		ProductID: productID,
		Quantity:  quantity,
		Price:     price,
		Name:      name,
		Image:     image,
		AddedAt:   time.Now(),
	})
	c.UpdatedAt = time.Now()
}

// UpdateQuantity sets the quantity for a line; anything below 1 removes it.
func (c *Cart) UpdateQuantity(productID string, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if quantity < 1 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = quantity
			}
			c.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

func (c *Cart) RemoveItem(productID string) bool {
	return c.UpdateQuantity(productID, 0)
}

// Total returns the sum of price x quantity over all lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
