package api

import (
	"bytes"
	"fmt"
	"net/http"

	"khanmedical/m/internal/reports"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, reports.Dashboard(h.store.Snapshot()))
}

func (h *Handler) stockReport(w http.ResponseWriter, r *http.Request) {
	state := h.store.Snapshot()
	respondJSON(w, http.StatusOK, reports.Stock(state.Medicines, state.Suppliers, h.now()))
}

func (h *Handler) salesReport(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, reports.Sales(h.store.Snapshot().Bills))
}

func (h *Handler) salesWorkbook(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := reports.WriteSalesWorkbook(&buf, h.store.Snapshot().Bills); err != nil {
		h.respondErr(w, err)
		return
	}
	h.sendWorkbook(w, "sales", buf.Bytes())
}

func (h *Handler) stockWorkbook(w http.ResponseWriter, r *http.Request) {
	state := h.store.Snapshot()
	var buf bytes.Buffer
	if err := reports.WriteStockWorkbook(&buf, state.Medicines, state.Suppliers, h.now()); err != nil {
		h.respondErr(w, err)
		return
	}
	h.sendWorkbook(w, "stock", buf.Bytes())
}

func (h *Handler) sendWorkbook(w http.ResponseWriter, name string, data []byte) {
	fileName := fmt.Sprintf("%s_%s.xlsx", name, h.now().Format("20060102_150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
