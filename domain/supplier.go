package domain

// UnknownSupplier is shown when a medicine references a supplier that no longer exists.
const UnknownSupplier = "Unknown supplier"

type Supplier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// SupplierName resolves a soft supplier reference against the current list.
func SupplierName(suppliers []Supplier, id string) string {
	for _, s := range suppliers {
		if s.ID == id {
			return s.Name
		}
	}
	return UnknownSupplier
}
