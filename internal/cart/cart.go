// Package cart implements the client-local shopping cart: a list of line
// items with derived totals, persisted synchronously through a Store after
// every mutation. It never talks to the server; checkout hands its items to
// the orders endpoint. Single-owner semantics, no cross-process coordination.
package cart

import "github.com/localmart/api/internal/domain"

// Item is one cart line.
type Item struct {
	ProductID  string  `json:"id"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	ImageURL   string  `json:"imageUrl,omitempty"`
	SellerID   string  `json:"sellerId,omitempty"`
	SellerName string  `json:"sellerName,omitempty"`
	Quantity   int     `json:"quantity"`
}

// Store persists the cart between sessions.
type Store interface {
	Load() ([]Item, error)
	Save(items []Item) error
	Clear() error
}

// Cart holds the line items. All mutations save through the store before
// returning; a save failure surfaces to the caller and the in-memory state
// keeps the mutation.
type Cart struct {
	store Store
	items []Item
}

// Open loads the persisted cart, or starts empty when nothing is stored.
func Open(store Store) (*Cart, error) {
	items, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Cart{store: store, items: items}, nil
}

// Add appends the product, or bumps the quantity when it is already present.
func (c *Cart) Add(p domain.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.items {
		if c.items[i].ProductID == p.ProductID {
			c.items[i].Quantity += quantity
			return c.store.Save(c.items)
		}
	}
	c.items = append(c.items, Item{
		ProductID:  p.ProductID,
		Title:      p.Title,
		Price:      p.Price,
		ImageURL:   p.ImageURL,
		SellerID:   p.SellerID,
		SellerName: p.SellerName,
		Quantity:   quantity,
	})
	return c.store.Save(c.items)
}

// Remove drops the product from the cart. Removing an absent product is a no-op.
func (c *Cart) Remove(productID string) error {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.items = kept
	return c.store.Save(c.items)
}

// SetQuantity updates a line's quantity; zero or negative removes the line.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		return c.Remove(productID)
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return c.store.Save(c.items)
		}
	}
	return nil
}

// Total is the sum of price x quantity over all lines.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Count is the total number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// OrderItems converts the cart lines for a POST /api/orders payload.
func (c *Cart) OrderItems() []domain.OrderItem {
	out := make([]domain.OrderItem, len(c.items))
	for i, item := range c.items {
		out[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}
	return out
}

// Clear empties the cart and removes the persisted copy.
func (c *Cart) Clear() error {
	c.items = nil
	return c.store.Clear()
}
