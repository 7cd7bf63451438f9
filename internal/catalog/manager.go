package catalog

import (
	"slices"
	"strings"

	"khanmedical/m/domain"
)

// DefaultPickerLimit caps the billing screen's medicine suggestions.
const DefaultPickerLimit = 8

// Manager applies add, edit and delete operations to entity lists. Every
// operation returns a replacement list; the input is never modified.
type Manager struct {
	validator *Validator
	newID     func(prefix string) string
}

// NewManager builds a Manager. A nil idFunc uses NewID.
func NewManager(v *Validator, idFunc func(prefix string) string) *Manager {
	if v == nil {
		v = NewValidator()
	}
	if idFunc == nil {
		idFunc = NewID
	}
	return &Manager{validator: v, newID: idFunc}
}

// AddMedicine validates the draft and puts the new medicine first.
func (m *Manager) AddMedicine(list []domain.Medicine, draft MedicineDraft) ([]domain.Medicine, domain.Medicine, error) {
	draft = draft.normalized()
	if err := m.validator.Struct(draft); err != nil {
		return list, domain.Medicine{}, err
	}
	med := draft.entity(m.newID(MedicinePrefix))
	out := make([]domain.Medicine, 0, len(list)+1)
	out = append(out, med)
	out = append(out, list...)
	return out, med, nil
}

// UpdateMedicine replaces every field of the medicine except its id.
func (m *Manager) UpdateMedicine(list []domain.Medicine, id string, draft MedicineDraft) ([]domain.Medicine, domain.Medicine, error) {
	draft = draft.normalized()
	if err := m.validator.Struct(draft); err != nil {
		return list, domain.Medicine{}, err
	}
	med := draft.entity(id)
	out, err := replace(list, med, func(x domain.Medicine) bool { return x.ID == id })
	if err != nil {
		return list, domain.Medicine{}, err
	}
	return out, med, nil
}

// DeleteMedicine removes a medicine. Bills keep their item snapshots.
func (m *Manager) DeleteMedicine(list []domain.Medicine, id string) ([]domain.Medicine, error) {
	return remove(list, func(x domain.Medicine) bool { return x.ID == id })
}

// AddSupplier validates the draft and appends the new supplier.
func (m *Manager) AddSupplier(list []domain.Supplier, draft SupplierDraft) ([]domain.Supplier, domain.Supplier, error) {
	draft = draft.normalized()
	if err := m.validator.Struct(draft); err != nil {
		return list, domain.Supplier{}, err
	}
	sup := draft.entity(m.newID(SupplierPrefix))
	return append(slices.Clone(list), sup), sup, nil
}

func (m *Manager) UpdateSupplier(list []domain.Supplier, id string, draft SupplierDraft) ([]domain.Supplier, domain.Supplier, error) {
	draft = draft.normalized()
	if err := m.validator.Struct(draft); err != nil {
		return list, domain.Supplier{}, err
	}
	sup := draft.entity(id)
	out, err := replace(list, sup, func(x domain.Supplier) bool { return x.ID == id })
	if err != nil {
		return list, domain.Supplier{}, err
	}
	return out, sup, nil
}

// DeleteSupplier removes a supplier. Medicines that reference it keep the
// dangling id.
func (m *Manager) DeleteSupplier(list []domain.Supplier, id string) ([]domain.Supplier, error) {
	return remove(list, func(x domain.Supplier) bool { return x.ID == id })
}

func (m *Manager) AddCustomer(list []domain.Customer, draft CustomerDraft) ([]domain.Customer, domain.Customer, error) {
	draft = draft.normalized()
	if err := m.validator.Struct(draft); err != nil {
		return list, domain.Customer{}, err
	}
	c := draft.entity(m.newID(CustomerPrefix))
	return append(slices.Clone(list), c), c, nil
}

func (m *Manager) UpdateCustomer(list []domain.Customer, id string, draft CustomerDraft) ([]domain.Customer, domain.Customer, error) {
	draft = draft.normalized()
	if err := m.validator.Struct(draft); err != nil {
		return list, domain.Customer{}, err
	}
	c := draft.entity(id)
	out, err := replace(list, c, func(x domain.Customer) bool { return x.ID == id })
	if err != nil {
		return list, domain.Customer{}, err
	}
	return out, c, nil
}

func (m *Manager) DeleteCustomer(list []domain.Customer, id string) ([]domain.Customer, error) {
	return remove(list, func(x domain.Customer) bool { return x.ID == id })
}

// SearchMedicines matches the term against name and generic name,
// ignoring case. An empty term matches everything.
func SearchMedicines(list []domain.Medicine, term string) []domain.Medicine {
	out := []domain.Medicine{}
	for _, med := range list {
		if matches(med, term) {
			out = append(out, med)
		}
	}
	return out
}

// SellableMedicines lists in-stock matches for the billing picker.
func SellableMedicines(list []domain.Medicine, term string, limit int) []domain.Medicine {
	if limit <= 0 {
		limit = DefaultPickerLimit
	}
	out := []domain.Medicine{}
	for _, med := range list {
		if med.Stock > 0 && matches(med, term) {
			out = append(out, med)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func matches(med domain.Medicine, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(med.Name), term) ||
		strings.Contains(strings.ToLower(med.GenericName), term)
}

func replace[T any](list []T, item T, match func(T) bool) ([]T, error) {
	i := slices.IndexFunc(list, match)
	if i < 0 {
		return list, ErrNotFound
	}
	out := slices.Clone(list)
	out[i] = item
	return out, nil
}

func remove[T any](list []T, match func(T) bool) ([]T, error) {
	if !slices.ContainsFunc(list, match) {
		return list, ErrNotFound
	}
	out := make([]T, 0, len(list)-1)
	for _, x := range list {
		if !match(x) {
			out = append(out, x)
		}
	}
	return out, nil
}
