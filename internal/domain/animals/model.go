package animals

import "time"

// Status clasifica un registro de animal como compra o venta.
// @Enum buy, sale
type Status string

const (
	StatusBuy  Status = "buy"
	StatusSale Status = "sale"
)

// Animal es la forma canónica en memoria. Las vistas consumen solo esto;
// las variantes del wire (id vs animalID, buyorsale string vs numérico)
// viven en codec.go.
type Animal struct {
	ID          int
	Name        string
	Price       float64
	Count       int
	Description string
	Status      Status
	Date        *time.Time // fecha de la compra/venta, opcional
	Cares       []string   // notas de cuidado, opcional
}

// IsBuying reporta si el registro es una compra.
func (a Animal) IsBuying() bool {
	return a.Status == StatusBuy
}

// TotalValue es precio × cantidad.
func (a Animal) TotalValue() float64 {
	return a.Price * float64(a.Count)
}
