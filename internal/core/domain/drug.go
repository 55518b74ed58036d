package domain

// Drug is a catalog entry. A drug is "available" when InStock is
// greater than zero.
type Drug struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	InStock     int64  `json:"in_stock"`
}

// FieldValues enumerates every declared field for the completeness phase
// of validation.
func (d *Drug) FieldValues() []any {
	return []any{d.ID, d.Name, d.Description, d.InStock}
}

// DrugBuilder assembles a Drug with sensible defaults.
type DrugBuilder struct {
	d Drug
}

func NewDrugBuilder() *DrugBuilder {
	return &DrugBuilder{d: Drug{
		Name:        "drug-name",
		Description: "description",
		InStock:     26,
	}}
}

func (b *DrugBuilder) From(other *Drug) *DrugBuilder {
	b.d = *other
	return b
}

func (b *DrugBuilder) ID(id int64) *DrugBuilder {
	b.d.ID = id
	return b
}

func (b *DrugBuilder) Name(name string) *DrugBuilder {
	b.d.Name = name
	return b
}

func (b *DrugBuilder) Description(description string) *DrugBuilder {
	b.d.Description = description
	return b
}

func (b *DrugBuilder) InStock(inStock int64) *DrugBuilder {
	b.d.InStock = inStock
	return b
}

func (b *DrugBuilder) Build() *Drug {
	d := b.d
	return &d
}
