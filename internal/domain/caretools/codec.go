package caretools

import (
	"encoding/json"
	"fmt"
)

// El wire de care tools es estable entre revisiones salvo el nombre del id.

type wireTool struct {
	ID    *int    `json:"id,omitempty"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Count int     `json:"count"`
	Desc  string  `json:"description,omitempty"`
}

func fromWire(w wireTool) Tool {
	t := Tool{
		Name:        w.Name,
		Price:       w.Price,
		Count:       w.Count,
		Description: w.Desc,
	}
	if w.ID != nil {
		t.ID = *w.ID
	}
	return t
}

// Decode parsea un tool del wire a la forma canónica.
func Decode(b []byte) (Tool, error) {
	var w wireTool
	if err := json.Unmarshal(b, &w); err != nil {
		return Tool{}, fmt.Errorf("caretools: decode: %w", err)
	}
	return fromWire(w), nil
}

// DecodeList parsea una colección de tools del wire.
func DecodeList(b []byte) ([]Tool, error) {
	var ws []wireTool
	if err := json.Unmarshal(b, &ws); err != nil {
		return nil, fmt.Errorf("caretools: decode list: %w", err)
	}
	out := make([]Tool, 0, len(ws))
	for _, w := range ws {
		out = append(out, fromWire(w))
	}
	return out, nil
}

// EncodePayload arma el payload de envío para Add/Edit.
// withID: true para EditTool (el backend espera el registro completo con id).
func EncodePayload(t Tool, withID bool) any {
	w := wireTool{
		Name:  t.Name,
		Price: t.Price,
		Count: t.Count,
		Desc:  t.Description,
	}
	if withID {
		id := t.ID
		w.ID = &id
	}
	return w
}
