package domain

import (
	"testing"
	"time"
)

func TestOrder_AddDrug_Accumulates(t *testing.T) {
	order := NewOrderBuilder().Build()

	order.AddDrug(1, 1)
	order.AddDrug(2, 3)
	order.AddDrug(1, 2)

	if got := order.Drugs[1]; got != 3 {
		t.Fatalf("expected drug 1 quantity 3, got %d", got)
	}
	if got := order.Drugs[2]; got != 3 {
		t.Fatalf("expected drug 2 quantity 3, got %d", got)
	}
}

func TestOrder_AddDrug_NilMap(t *testing.T) {
	var order Order
	order.AddDrug(7, 4)

	if got := order.Drugs[7]; got != 4 {
		t.Fatalf("expected quantity 4, got %d", got)
	}
}

func TestOrder_RemoveDrug(t *testing.T) {
	order := NewOrderBuilder().Drugs(map[int64]int64{1: 1, 2: 2}).Build()
	order.RemoveDrug(1)

	if _, ok := order.Drugs[1]; ok {
		t.Fatalf("drug 1 should have been removed")
	}
	if order.Drugs[2] != 2 {
		t.Fatalf("drug 2 should be untouched")
	}
}

func TestOrderBuilder_From_CopiesDrugs(t *testing.T) {
	original := NewOrderBuilder().Drugs(map[int64]int64{1: 1}).Build()
	clone := NewOrderBuilder().From(original).Build()
	clone.AddDrug(1, 5)

	if original.Drugs[1] != 1 {
		t.Fatalf("mutating the clone leaked into the original: %d", original.Drugs[1])
	}
}

func TestOrder_FieldValues_NilNormalised(t *testing.T) {
	order := Order{OrderedAt: time.Now()}

	var sawNil bool
	for _, v := range order.FieldValues() {
		if v == nil {
			sawNil = true
		}
	}
	if !sawNil {
		t.Fatalf("expected nil DeliveredAt and Drugs to surface as untyped nil")
	}
}
