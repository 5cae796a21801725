package catalog

import "strings"

type Order struct {
	OrderNumber    string `json:"OrderNumber" yaml:"OrderNumber"`
	Email          string `json:"Email" yaml:"Email"`
	CustomerName   string `json:"CustomerName" yaml:"CustomerName"`
	Status         string `json:"Status" yaml:"Status"`
	TrackingNumber string `json:"TrackingNumber" yaml:"TrackingNumber"`
}

// HasTracking reports whether the carrier assigned a tracking number yet.
func (o Order) HasTracking() bool {
	return strings.TrimSpace(o.TrackingNumber) != ""
}

type Product struct {
	SKU         string   `json:"SKU" yaml:"SKU"`
	ProductName string   `json:"ProductName" yaml:"ProductName"`
	Inventory   int      `json:"Inventory" yaml:"Inventory"`
	Tags        []string `json:"Tags" yaml:"Tags"`
}

func (p Product) InStock() bool {
	return p.Inventory > 0
}

// Store is an immutable snapshot of orders and products. It is safe for
// concurrent readers.
type Store struct {
	orders   []Order
	products []Product
}

func New(orders []Order, products []Product) *Store {
	return &Store{
		orders:   append([]Order(nil), orders...),
		products: append([]Product(nil), products...),
	}
}

func (s *Store) Orders() []Order {
	if s == nil {
		return nil
	}
	return append([]Order(nil), s.orders...)
}

func (s *Store) Products() []Product {
	if s == nil {
		return nil
	}
	return append([]Product(nil), s.products...)
}

// NormalizeOrderNumber prepends the '#' prefix when it is missing.
func NormalizeOrderNumber(orderNumber string) string {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber != "" && !strings.HasPrefix(orderNumber, "#") {
		return "#" + orderNumber
	}
	return orderNumber
}

// FindOrder returns the first order matching both email and order number,
// compared case-insensitively.
func (s *Store) FindOrder(email, orderNumber string) (Order, bool) {
	if s == nil {
		return Order{}, false
	}
	email = strings.TrimSpace(email)
	orderNumber = NormalizeOrderNumber(orderNumber)
	for _, o := range s.orders {
		if strings.EqualFold(o.Email, email) && strings.EqualFold(o.OrderNumber, orderNumber) {
			return o, true
		}
	}
	return Order{}, false
}

// FindProduct resolves a free-text query. An exact SKU match always wins,
// then the first product whose name contains the query, then the first
// product with a tag containing it.
func (s *Store) FindProduct(query string) (Product, bool) {
	if s == nil {
		return Product{}, false
	}
	q := strings.ToLower(strings.TrimSpace(query))

	for _, p := range s.products {
		if strings.ToLower(p.SKU) == q {
			return p, true
		}
	}
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.ProductName), q) {
			return p, true
		}
	}
	for _, p := range s.products {
		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				return p, true
			}
		}
	}
	return Product{}, false
}
