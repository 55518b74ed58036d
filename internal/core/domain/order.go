package domain

import "time"

// Order is a header plus a drug-id → quantity mapping persisted as child
// rows. DeliveredAt stays nil until fulfillment unless a caller supplies
// an explicit ETA; the service defaults it before placement.
type Order struct {
	ID          int64           `json:"id"`
	OrderedBy   int64           `json:"ordered_by"`
	Delivered   bool            `json:"delivered"`
	OrderedAt   time.Time       `json:"ordered_at"`
	DeliveredAt *time.Time      `json:"delivered_at,omitempty"`
	Drugs       map[int64]int64 `json:"drugs"`
}

// FieldValues enumerates every declared field for the completeness phase
// of validation. Nil pointers and nil maps surface as untyped nil so the
// validator can treat them as absent.
func (o *Order) FieldValues() []any {
	fields := []any{o.ID, o.OrderedBy, o.Delivered, o.OrderedAt}
	if o.DeliveredAt != nil {
		fields = append(fields, *o.DeliveredAt)
	} else {
		fields = append(fields, nil)
	}
	if o.Drugs != nil {
		fields = append(fields, o.Drugs)
	} else {
		fields = append(fields, nil)
	}
	return fields
}

// AddDrug records quantity units of a drug on the order. Adding the same
// drug id twice accumulates the quantity instead of overwriting it.
func (o *Order) AddDrug(drugID, quantity int64) {
	if o.Drugs == nil {
		o.Drugs = make(map[int64]int64)
	}
	o.Drugs[drugID] += quantity
}

// RemoveDrug drops a drug from the order entirely.
func (o *Order) RemoveDrug(drugID int64) {
	delete(o.Drugs, drugID)
}

// OrderBuilder assembles an Order with sensible defaults.
type OrderBuilder struct {
	o Order
}

func NewOrderBuilder() *OrderBuilder {
	orderedAt := time.Now().UTC().Add(-10 * time.Millisecond)
	deliveredAt := time.Now().UTC().Add(10 * time.Millisecond)
	return &OrderBuilder{o: Order{
		Delivered:   true,
		OrderedAt:   orderedAt,
		DeliveredAt: &deliveredAt,
		Drugs:       make(map[int64]int64),
	}}
}

func (b *OrderBuilder) From(other *Order) *OrderBuilder {
	b.o = *other
	b.o.Drugs = make(map[int64]int64, len(other.Drugs))
	for id, qty := range other.Drugs {
		b.o.Drugs[id] = qty
	}
	return b
}

func (b *OrderBuilder) ID(id int64) *OrderBuilder {
	b.o.ID = id
	return b
}

func (b *OrderBuilder) OrderedBy(userID int64) *OrderBuilder {
	b.o.OrderedBy = userID
	return b
}

func (b *OrderBuilder) Delivered(delivered bool) *OrderBuilder {
	b.o.Delivered = delivered
	return b
}

func (b *OrderBuilder) OrderedAt(t time.Time) *OrderBuilder {
	b.o.OrderedAt = t
	return b
}

func (b *OrderBuilder) DeliveredAt(t *time.Time) *OrderBuilder {
	b.o.DeliveredAt = t
	return b
}

func (b *OrderBuilder) Drugs(drugs map[int64]int64) *OrderBuilder {
	b.o.Drugs = make(map[int64]int64, len(drugs))
	for id, qty := range drugs {
		b.o.Drugs[id] = qty
	}
	return b
}

func (b *OrderBuilder) Build() *Order {
	o := b.o
	if o.Drugs == nil {
		o.Drugs = make(map[int64]int64)
	}
	return &o
}
