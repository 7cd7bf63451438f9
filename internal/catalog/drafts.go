package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"khanmedical/m/domain"
)

// ID prefixes for new records.
const (
	MedicinePrefix = "MED-"
	SupplierPrefix = "SUP-"
	CustomerPrefix = "CUS-"
)

// NewID returns a fresh identifier with the given prefix.
func NewID(prefix string) string {
	return prefix + uuid.NewString()
}

// MedicineDraft is the editable form of a Medicine.
type MedicineDraft struct {
	Name        string          `json:"name" validate:"required"`
	GenericName string          `json:"genericName"`
	Category    string          `json:"category" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	CostPrice   decimal.Decimal `json:"costPrice" validate:"gte=0"`
	Stock       int             `json:"stock" validate:"gte=0"`
	ExpiryDate  string          `json:"expiryDate" validate:"required,datetime=2006-01-02"`
	SupplierID  string          `json:"supplierId"`
}

func (d MedicineDraft) normalized() MedicineDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.GenericName = strings.TrimSpace(d.GenericName)
	d.Category = strings.TrimSpace(d.Category)
	d.ExpiryDate = strings.TrimSpace(d.ExpiryDate)
	d.SupplierID = strings.TrimSpace(d.SupplierID)
	return d
}

func (d MedicineDraft) entity(id string) domain.Medicine {
	return domain.Medicine{
		ID:          id,
		Name:        d.Name,
		GenericName: d.GenericName,
		Category:    d.Category,
		Price:       d.Price,
		CostPrice:   d.CostPrice,
		Stock:       d.Stock,
		ExpiryDate:  d.ExpiryDate,
		SupplierID:  d.SupplierID,
	}
}

// MedicineDraftFrom prefills a draft for editing.
func MedicineDraftFrom(m domain.Medicine) MedicineDraft {
	return MedicineDraft{
		Name:        m.Name,
		GenericName: m.GenericName,
		Category:    m.Category,
		Price:       m.Price,
		CostPrice:   m.CostPrice,
		Stock:       m.Stock,
		ExpiryDate:  m.ExpiryDate,
		SupplierID:  m.SupplierID,
	}
}

// SupplierDraft is the editable form of a Supplier.
type SupplierDraft struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

func (d SupplierDraft) normalized() SupplierDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Email = strings.TrimSpace(d.Email)
	d.Address = strings.TrimSpace(d.Address)
	return d
}

func (d SupplierDraft) entity(id string) domain.Supplier {
	return domain.Supplier{ID: id, Name: d.Name, Phone: d.Phone, Email: d.Email, Address: d.Address}
}

// CustomerDraft is the editable form of a Customer.
type CustomerDraft struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address"`
}

func (d CustomerDraft) normalized() CustomerDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Address = strings.TrimSpace(d.Address)
	return d
}

func (d CustomerDraft) entity(id string) domain.Customer {
	return domain.Customer{ID: id, Name: d.Name, Phone: d.Phone, Address: d.Address}
}
