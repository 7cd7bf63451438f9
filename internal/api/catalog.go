package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"khanmedical/m/domain"
	"khanmedical/m/internal/catalog"
)

// medicineView is a medicine with its supplier reference resolved.
type medicineView struct {
	domain.Medicine
	SupplierName string `json:"supplier_name"`
}

func (h *Handler) medicineViews(list []domain.Medicine) []medicineView {
	suppliers := h.store.Suppliers()
	out := make([]medicineView, len(list))
	for i, m := range list {
		out[i] = medicineView{Medicine: m, SupplierName: domain.SupplierName(suppliers, m.SupplierID)}
	}
	return out
}

func (h *Handler) listMedicines(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if sellable, _ := strconv.ParseBool(r.URL.Query().Get("sellable")); sellable {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		respondJSON(w, http.StatusOK, h.medicineViews(h.store.Sellable(query, limit)))
		return
	}
	respondJSON(w, http.StatusOK, h.medicineViews(h.store.Medicines(query)))
}

func (h *Handler) getMedicine(w http.ResponseWriter, r *http.Request) {
	med, err := h.store.Medicine(chi.URLParam(r, "id"))
	if err != nil {
		h.respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.medicineViews([]domain.Medicine{med})[0])
}

func (h *Handler) createMedicine(w http.ResponseWriter, r *http.Request) {
	var req catalog.MedicineDraft
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	med, err := h.store.AddMedicine(r.Context(), req)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, med)
}

func (h *Handler) updateMedicine(w http.ResponseWriter, r *http.Request) {
	var req catalog.MedicineDraft
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	med, err := h.store.UpdateMedicine(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, med)
}

func (h *Handler) deleteMedicine(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteMedicine(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Suppliers())
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var req catalog.SupplierDraft
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sup, err := h.store.AddSupplier(r.Context(), req)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sup)
}

func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	var req catalog.SupplierDraft
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sup, err := h.store.UpdateSupplier(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sup)
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteSupplier(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Customers())
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req catalog.CustomerDraft
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.store.AddCustomer(r.Context(), req)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var req catalog.CustomerDraft
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.store.UpdateCustomer(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
