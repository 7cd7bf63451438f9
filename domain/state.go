package domain

import "slices"

// State is the aggregate persisted as a single document.
type State struct {
	Medicines []Medicine `json:"medicines"`
	Suppliers []Supplier `json:"suppliers"`
	Customers []Customer `json:"customers"`
	Bills     []Bill     `json:"bills"`
	User      *Session   `json:"user"`
}

// NewState returns the empty default state.
func NewState() State {
	return State{
		Medicines: []Medicine{},
		Suppliers: []Supplier{},
		Customers: []Customer{},
		Bills:     []Bill{},
	}
}

// Normalize replaces nil collections with empty ones.
func (s *State) Normalize() {
	if s.Medicines == nil {
		s.Medicines = []Medicine{}
	}
	if s.Suppliers == nil {
		s.Suppliers = []Supplier{}
	}
	if s.Customers == nil {
		s.Customers = []Customer{}
	}
	if s.Bills == nil {
		s.Bills = []Bill{}
	}
}

// Clone deep-copies the state so callers never share slices with the owner.
func (s State) Clone() State {
	out := State{
		Medicines: slices.Clone(s.Medicines),
		Suppliers: slices.Clone(s.Suppliers),
		Customers: slices.Clone(s.Customers),
		Bills:     make([]Bill, len(s.Bills)),
	}
	for i, b := range s.Bills {
		b.Items = slices.Clone(b.Items)
		out.Bills[i] = b
	}
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	out.Normalize()
	return out
}
