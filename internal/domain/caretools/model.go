package caretools

// Tool es un item de equipamiento de mantenimiento del inventario.
type Tool struct {
	ID          int
	Name        string
	Price       float64
	Count       int
	Description string
}

// TotalValue es precio × cantidad.
func (t Tool) TotalValue() float64 {
	return t.Price * float64(t.Count)
}
