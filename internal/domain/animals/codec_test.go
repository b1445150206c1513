package animals_test

import (
	"encoding/json"
	"testing"

	"farm-records/internal/domain/animals"
)

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want animals.Status
	}{
		{"string buy", "buy", animals.StatusBuy},
		{"string buy mayúsculas", "BUY", animals.StatusBuy},
		{"string buy mixto", "Buy", animals.StatusBuy},
		{"string sale", "sale", animals.StatusSale},
		{"string arbitrario", "whatever", animals.StatusSale},
		{"número 0", float64(0), animals.StatusBuy},
		{"número 2", float64(2), animals.StatusBuy},
		{"número 3", float64(3), animals.StatusSale},
		{"número 7", float64(7), animals.StatusSale},
		{"entero 1", 1, animals.StatusBuy},
		{"nil", nil, animals.StatusSale},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := animals.ClassifyStatus(tc.in); got != tc.want {
				t.Fatalf("ClassifyStatus(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDecode_WireShape(t *testing.T) {
	body := []byte(`{
		"animalID": 7,
		"name": "Dairy Cow",
		"animalPrice": 1200,
		"animalcount": 5,
		"description": "holstein",
		"buyorsale": "buy",
		"dateOfbuyorsale": "2024-03-01",
		"animalCares": ["vaccine", "vet check"]
	}`)

	a, err := animals.Decode(body)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if a.ID != 7 {
		t.Fatalf("ID = %d, want 7", a.ID)
	}
	if a.Name != "Dairy Cow" || a.Price != 1200 || a.Count != 5 {
		t.Fatalf("unexpected fields: %+v", a)
	}
	if a.Status != animals.StatusBuy {
		t.Fatalf("Status = %q, want buy", a.Status)
	}
	if a.Date == nil || a.Date.Format("2006-01-02") != "2024-03-01" {
		t.Fatalf("Date = %v, want 2024-03-01", a.Date)
	}
	if len(a.Cares) != 2 {
		t.Fatalf("Cares = %v", a.Cares)
	}
}

func TestDecode_IDFallbacks(t *testing.T) {
	// Solo "id": se usa como fallback.
	a, err := animals.Decode([]byte(`{"id": 3, "name": "Goat", "buyorsale": "sale"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if a.ID != 3 {
		t.Fatalf("ID = %d, want 3", a.ID)
	}

	// animalID gana sobre id cuando vienen los dos.
	a, err = animals.Decode([]byte(`{"id": 3, "animalID": 9, "name": "Goat", "buyorsale": "sale"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if a.ID != 9 {
		t.Fatalf("ID = %d, want 9 (animalID prevalece)", a.ID)
	}
}

func TestDecode_NumericBuyOrSale(t *testing.T) {
	a, err := animals.Decode([]byte(`{"animalID": 1, "name": "Hen", "buyorsale": 2}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if a.Status != animals.StatusBuy {
		t.Fatalf("Status = %q, want buy (<3)", a.Status)
	}

	a, err = animals.Decode([]byte(`{"animalID": 2, "name": "Hen", "buyorsale": 5}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if a.Status != animals.StatusSale {
		t.Fatalf("Status = %q, want sale (>=3)", a.Status)
	}

	// Campo ausente: sale.
	a, err = animals.Decode([]byte(`{"animalID": 3, "name": "Hen"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if a.Status != animals.StatusSale {
		t.Fatalf("Status = %q, want sale (ausente)", a.Status)
	}
}

func TestEncodePayload_RoundTrip(t *testing.T) {
	orig := animals.Animal{
		ID:          4,
		Name:        "Sheep",
		Price:       350.5,
		Count:       12,
		Description: "merino",
		Status:      animals.StatusBuy,
	}

	raw, err := json.Marshal(animals.EncodePayload(orig, true))
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	// El payload siempre lleva el enum string, nunca un número.
	var wire map[string]any
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("unmarshal wire: %v", err)
	}
	if wire["buyorsale"] != "buy" {
		t.Fatalf("buyorsale = %v, want string buy", wire["buyorsale"])
	}
	if wire["animalPrice"] != 350.5 {
		t.Fatalf("animalPrice = %v", wire["animalPrice"])
	}

	back, err := animals.Decode(raw)
	if err != nil {
		t.Fatalf("Decode round-trip: %v", err)
	}
	if back.ID != orig.ID || back.Name != orig.Name || back.Price != orig.Price ||
		back.Count != orig.Count || back.Status != orig.Status {
		t.Fatalf("round-trip mismatch: %+v vs %+v", back, orig)
	}
}

func TestDecodeList(t *testing.T) {
	list, err := animals.DecodeList([]byte(`[
		{"animalID": 1, "name": "A", "buyorsale": "buy"},
		{"animalID": 2, "name": "B", "buyorsale": 4}
	]`))
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].Status != animals.StatusBuy || list[1].Status != animals.StatusSale {
		t.Fatalf("statuses: %q %q", list[0].Status, list[1].Status)
	}
}
