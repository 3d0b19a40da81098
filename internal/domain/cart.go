package domain

import "encoding/json"

// DefaultNamespace is the local slot used by anonymous carts when no visitor scope is given.
const DefaultNamespace = "demo-cart"

// Mode selects the backing store of a cart. An empty UserID means anonymous.
type Mode struct {
	UserID    string
	Namespace string
}

func Anonymous() Mode {
	return Mode{Namespace: DefaultNamespace}
}

// AnonymousIn scopes an anonymous cart to its own local slot, e.g. one per visitor.
func AnonymousIn(namespace string) Mode {
	if namespace == "" {
		return Anonymous()
	}
	return Mode{Namespace: namespace}
}

func Authenticated(userID string) Mode {
	return Mode{UserID: userID}
}

func (m Mode) IsAnonymous() bool {
	return m.UserID == ""
}

// Key identifies the cart scope, e.g. for event keys and metrics.
func (m Mode) Key() string {
	if m.IsAnonymous() {
		if m.Namespace == "" {
			return DefaultNamespace
		}
		return m.Namespace
	}
	return "user:" + m.UserID
}

func (m Mode) String() string {
	if m.IsAnonymous() {
		return "anonymous(" + m.Key() + ")"
	}
	return "authenticated(" + m.UserID + ")"
}

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock"`
}

// Row is a stored line item. Product is only set when the store joins the catalog.
type Row struct {
	ID        string   `json:"id"`
	ProductID string   `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"-"`
}

// LineItem is a row joined with the catalog at read time.
type LineItem struct {
	ID             string  `json:"id"`
	ProductID      string  `json:"product_id"`
	Quantity       int     `json:"quantity"`
	Name           string  `json:"name"`
	UnitPrice      float64 `json:"unit_price"`
	ImageURL       string  `json:"image_url"`
	StockAvailable int     `json:"stock_available"`
}

func NewLineItem(row Row, p Product) LineItem {
	return LineItem{
		ID:             row.ID,
		ProductID:      row.ProductID,
		Quantity:       row.Quantity,
		Name:           p.Name,
		UnitPrice:      p.Price,
		ImageURL:       p.ImageURL,
		StockAvailable: p.Stock,
	}
}

func (i LineItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Snapshot is an immutable view of a cart. Totals are derived from the items
// when the snapshot is built and cannot be set independently.
type Snapshot struct {
	mode       Mode
	items      []LineItem
	totalItems int
	totalPrice float64
}

func NewSnapshot(mode Mode, items []LineItem) Snapshot {
	s := Snapshot{mode: mode, items: make([]LineItem, len(items))}
	copy(s.items, items)
	for _, it := range s.items {
		s.totalItems += it.Quantity
		s.totalPrice += it.Subtotal()
	}
	return s
}

func EmptySnapshot(mode Mode) Snapshot {
	return NewSnapshot(mode, nil)
}

func (s Snapshot) Mode() Mode { return s.mode }

// Items returns a copy of the line items in fetch order.
func (s Snapshot) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s Snapshot) Len() int { return len(s.items) }

func (s Snapshot) TotalItems() int { return s.totalItems }

func (s Snapshot) TotalPrice() float64 { return s.totalPrice }

func (s Snapshot) IsEmpty() bool { return len(s.items) == 0 }

// FindByProduct returns the line item for productID, if present.
func (s Snapshot) FindByProduct(productID string) (LineItem, bool) {
	for _, it := range s.items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return LineItem{}, false
}

func (s Snapshot) FindByID(itemID string) (LineItem, bool) {
	for _, it := range s.items {
		if it.ID == itemID {
			return it, true
		}
	}
	return LineItem{}, false
}

type snapshotJSON struct {
	Items      []LineItem `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
	Mode       string     `json:"mode"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	items := s.items
	if items == nil {
		items = []LineItem{}
	}
	mode := "authenticated"
	if s.mode.IsAnonymous() {
		mode = "anonymous"
	}
	return json.Marshal(snapshotJSON{
		Items:      items,
		TotalItems: s.totalItems,
		TotalPrice: s.totalPrice,
		Mode:       mode,
	})
}
