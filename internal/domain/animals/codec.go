package animals

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// El backend cambió de contrato entre revisiones: buyorsale llegó como
// string ("buy"/"sale") y también como código numérico (<3 = buy, >=3 = sale,
// valores canónicos 0 y 3). El decode tolera ambos; el encode emite SIEMPRE
// el enum string, que es el contrato canónico elegido para este cliente.
// Toda conversión vive acá; las vistas no conocen el wire.

// wireAnimal es el DTO tal como lo intercambia el backend.
// Tolera id o animalID según la revisión.
type wireAnimal struct {
	ID        *int            `json:"id,omitempty"`
	AnimalID  *int            `json:"animalID,omitempty"`
	Name      string          `json:"name"`
	Price     float64         `json:"animalPrice"`
	Count     int             `json:"animalcount"`
	Desc      string          `json:"description,omitempty"`
	BuyOrSale json.RawMessage `json:"buyorsale,omitempty"`
	Date      string          `json:"dateOfbuyorsale,omitempty"`
	Cares     []string        `json:"animalCares,omitempty"`
}

// ClassifyStatus normaliza cualquier representación observada de buyorsale:
// - string: buy sii es "buy" (case-insensitive)
// - número: buy sii es < 3
// - ausente/otro: sale (fallback definido, nunca panic)
func ClassifyStatus(v any) Status {
	switch t := v.(type) {
	case string:
		if strings.EqualFold(strings.TrimSpace(t), "buy") {
			return StatusBuy
		}
		return StatusSale
	case float64:
		if t < 3 {
			return StatusBuy
		}
		return StatusSale
	case int:
		if t < 3 {
			return StatusBuy
		}
		return StatusSale
	default:
		return StatusSale
	}
}

func classifyRaw(raw json.RawMessage) Status {
	if len(raw) == 0 || string(raw) == "null" {
		return StatusSale
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ClassifyStatus(s)
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return ClassifyStatus(n)
	}
	return StatusSale
}

func fromWire(w wireAnimal) Animal {
	a := Animal{
		Name:        w.Name,
		Price:       w.Price,
		Count:       w.Count,
		Description: w.Desc,
		Status:      classifyRaw(w.BuyOrSale),
		Cares:       w.Cares,
	}

	// id vs animalID según revisión del backend
	switch {
	case w.AnimalID != nil:
		a.ID = *w.AnimalID
	case w.ID != nil:
		a.ID = *w.ID
	}

	if strings.TrimSpace(w.Date) != "" {
		if t, err := time.Parse(time.RFC3339, w.Date); err == nil {
			a.Date = &t
		} else if t, err := time.Parse("2006-01-02", w.Date); err == nil {
			a.Date = &t
		}
	}

	return a
}

// Decode parsea un animal del wire a la forma canónica.
func Decode(b []byte) (Animal, error) {
	var w wireAnimal
	if err := json.Unmarshal(b, &w); err != nil {
		return Animal{}, fmt.Errorf("animals: decode: %w", err)
	}
	return fromWire(w), nil
}

// DecodeList parsea una colección de animales del wire.
func DecodeList(b []byte) ([]Animal, error) {
	var ws []wireAnimal
	if err := json.Unmarshal(b, &ws); err != nil {
		return nil, fmt.Errorf("animals: decode list: %w", err)
	}
	out := make([]Animal, 0, len(ws))
	for _, w := range ws {
		out = append(out, fromWire(w))
	}
	return out, nil
}

// EncodePayload arma el payload de envío para Add/Edit.
// withID: true para EditAnimal (el backend espera el registro completo con id).
func EncodePayload(a Animal, withID bool) any {
	w := wireAnimal{
		Name:      a.Name,
		Price:     a.Price,
		Count:     a.Count,
		Desc:      a.Description,
		BuyOrSale: json.RawMessage(fmt.Sprintf("%q", a.Status)),
		Cares:     a.Cares,
	}
	if withID {
		id := a.ID
		w.AnimalID = &id
	}
	if a.Date != nil {
		w.Date = a.Date.UTC().Format(time.RFC3339)
	}
	return w
}
