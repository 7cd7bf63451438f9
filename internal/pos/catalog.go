package pos

import (
	"context"
	"strings"

	"khanmedical/m/domain"
	"khanmedical/m/internal/catalog"
)

// Medicines lists medicines matching term, newest first.
func (s *Store) Medicines(term string) []domain.Medicine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.SearchMedicines(s.state.Medicines, term)
}

// Sellable lists in-stock medicines for the billing picker.
func (s *Store) Sellable(term string, limit int) []domain.Medicine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.SellableMedicines(s.state.Medicines, term, limit)
}

func (s *Store) Medicine(id string) (domain.Medicine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	med, ok := domain.FindMedicine(s.state.Medicines, id)
	if !ok {
		return domain.Medicine{}, catalog.ErrNotFound
	}
	return med, nil
}

func (s *Store) AddMedicine(ctx context.Context, draft catalog.MedicineDraft) (domain.Medicine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, med, err := s.manager.AddMedicine(s.state.Medicines, draft)
	if err != nil {
		return domain.Medicine{}, err
	}
	s.state.Medicines = list
	s.persist(ctx)
	return med, nil
}

// ImportMedicines adds every draft whose name is not already in the
// catalog, in one replacement. Invalid drafts are skipped and reported
// through skip.
func (s *Store) ImportMedicines(ctx context.Context, drafts []catalog.MedicineDraft, skip func(catalog.MedicineDraft, error)) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]bool, len(s.state.Medicines))
	for _, med := range s.state.Medicines {
		seen[strings.ToLower(med.Name)] = true
	}
	list := s.state.Medicines
	added := 0
	for _, draft := range drafts {
		key := strings.ToLower(strings.TrimSpace(draft.Name))
		if seen[key] {
			continue
		}
		next, _, err := s.manager.AddMedicine(list, draft)
		if err != nil {
			if skip != nil {
				skip(draft, err)
			}
			continue
		}
		seen[key] = true
		list = next
		added++
	}
	if added > 0 {
		s.state.Medicines = list
		s.persist(ctx)
	}
	return added
}

func (s *Store) UpdateMedicine(ctx context.Context, id string, draft catalog.MedicineDraft) (domain.Medicine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, med, err := s.manager.UpdateMedicine(s.state.Medicines, id, draft)
	if err != nil {
		return domain.Medicine{}, err
	}
	s.state.Medicines = list
	s.persist(ctx)
	return med, nil
}

func (s *Store) DeleteMedicine(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.manager.DeleteMedicine(s.state.Medicines, id)
	if err != nil {
		return err
	}
	s.state.Medicines = list
	s.persist(ctx)
	return nil
}

func (s *Store) Suppliers() []domain.Supplier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Supplier{}, s.state.Suppliers...)
}

// SupplierName resolves a supplier id with the unknown-supplier fallback.
func (s *Store) SupplierName(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SupplierName(s.state.Suppliers, id)
}

func (s *Store) AddSupplier(ctx context.Context, draft catalog.SupplierDraft) (domain.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, sup, err := s.manager.AddSupplier(s.state.Suppliers, draft)
	if err != nil {
		return domain.Supplier{}, err
	}
	s.state.Suppliers = list
	s.persist(ctx)
	return sup, nil
}

func (s *Store) UpdateSupplier(ctx context.Context, id string, draft catalog.SupplierDraft) (domain.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, sup, err := s.manager.UpdateSupplier(s.state.Suppliers, id, draft)
	if err != nil {
		return domain.Supplier{}, err
	}
	s.state.Suppliers = list
	s.persist(ctx)
	return sup, nil
}

func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.manager.DeleteSupplier(s.state.Suppliers, id)
	if err != nil {
		return err
	}
	s.state.Suppliers = list
	s.persist(ctx)
	return nil
}

func (s *Store) Customers() []domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Customer{}, s.state.Customers...)
}

func (s *Store) AddCustomer(ctx context.Context, draft catalog.CustomerDraft) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, c, err := s.manager.AddCustomer(s.state.Customers, draft)
	if err != nil {
		return domain.Customer{}, err
	}
	s.state.Customers = list
	s.persist(ctx)
	return c, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, id string, draft catalog.CustomerDraft) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, c, err := s.manager.UpdateCustomer(s.state.Customers, id, draft)
	if err != nil {
		return domain.Customer{}, err
	}
	s.state.Customers = list
	s.persist(ctx)
	return c, nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.manager.DeleteCustomer(s.state.Customers, id)
	if err != nil {
		return err
	}
	s.state.Customers = list
	s.persist(ctx)
	return nil
}
