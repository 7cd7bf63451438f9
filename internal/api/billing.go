package api

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"khanmedical/m/domain"
	"khanmedical/m/internal/receipt"
)

type addCartItemRequest struct {
	MedicineID string `json:"medicine_id"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type checkoutRequest struct {
	CashReceived decimal.Decimal `json:"cash_received"`
	CustomerName string          `json:"customer_name"`
}

type checkoutResponse struct {
	Bill    domain.Bill     `json:"bill"`
	Receipt receipt.Receipt `json:"receipt"`
}

// getCart reports the cart against the optional ?cash= amount.
func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	cash := decimal.Zero
	if raw := strings.TrimSpace(r.URL.Query().Get("cash")); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || parsed.IsNegative() {
			respondError(w, http.StatusBadRequest, "cash must be a non-negative amount")
			return
		}
		cash = parsed
	}
	respondJSON(w, http.StatusOK, h.store.Cart(cash))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.ClearCart())
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.MedicineID) == "" {
		respondError(w, http.StatusBadRequest, "medicine_id is required")
		return
	}
	cart, err := h.store.AddToCart(req.MedicineID)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	cart, err := h.store.SetCartQuantity(chi.URLParam(r, "id"), req.Quantity)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.RemoveFromCart(chi.URLParam(r, "id")))
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	bill, err := h.store.Checkout(r.Context(), req.CashReceived, req.CustomerName)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, checkoutResponse{Bill: bill, Receipt: receipt.Build(h.shop(), bill)})
}

func (h *Handler) listBills(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Bills(r.URL.Query().Get("query")))
}

func (h *Handler) getBill(w http.ResponseWriter, r *http.Request) {
	bill, err := h.store.Bill(chi.URLParam(r, "billNo"))
	if err != nil {
		h.respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bill)
}

func (h *Handler) billReceipt(w http.ResponseWriter, r *http.Request) {
	bill, err := h.store.Bill(chi.URLParam(r, "billNo"))
	if err != nil {
		h.respondErr(w, err)
		return
	}
	var buf bytes.Buffer
	if err := receipt.Render(&buf, receipt.Build(h.shop(), bill)); err != nil {
		h.respondErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
