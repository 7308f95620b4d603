package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/streetcare/pointpay/internal/domain/entity"
	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/api/dto"
)

// exportPageSize bounds each index read while streaming the CSV export
const exportPageSize = 500

// ReportHandler produces aggregate reports and CSV exports over the ledgers
type ReportHandler struct {
	transactions persistence.TransactionRepository
	allocations  persistence.AllocationRepository
	logger       coreport.Logger
}

// NewReportHandler creates a new report handler instance
func NewReportHandler(
	transactions persistence.TransactionRepository,
	allocations persistence.AllocationRepository,
	logger coreport.Logger,
) *ReportHandler {
	return &ReportHandler{
		transactions: transactions,
		allocations:  allocations,
		logger:       logger,
	}
}

// Summary handles GET /reports/summary — totals over an optional date range
func (h *ReportHandler) Summary(c *gin.Context) {
	within, err := parseTimeRange(c)
	if err != nil {
		badRequest(c, "Invalid from/to format")
		return
	}

	report := dto.SummaryReportResponse{From: within.From, To: within.To}

	for page := 1; ; page++ {
		items, total, err := h.transactions.ListAll(c.Request.Context(), page, exportPageSize, within)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		for _, t := range items {
			if t.Status == entity.TxnCompleted {
				report.TransactionCount++
				report.TransactionVolume += t.Amount
			}
		}
		if int64(page*exportPageSize) >= total {
			break
		}
	}

	for page := 1; ; page++ {
		items, total, err := h.allocations.ListAll(c.Request.Context(), page, exportPageSize, within)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		for _, a := range items {
			report.AllocationCount++
			report.AllocationVolume += a.Amount
		}
		if int64(page*exportPageSize) >= total {
			break
		}
	}

	c.JSON(http.StatusOK, report)
}

// ExportTransactions handles GET /reports/transactions.csv — a newest-first
// CSV dump of the ledger over an optional date range
func (h *ReportHandler) ExportTransactions(c *gin.Context) {
	within, err := parseTimeRange(c)
	if err != nil {
		badRequest(c, "Invalid from/to format")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)

	w := csv.NewWriter(c.Writer)
	header := []string{
		"id", "created_at", "beneficiary_id", "store_id",
		"product_name", "amount", "balance_before", "balance_after", "status",
	}
	if err := w.Write(header); err != nil {
		return
	}

	for page := 1; ; page++ {
		items, total, err := h.transactions.ListAll(c.Request.Context(), page, exportPageSize, within)
		if err != nil {
			h.logger.Error("CSV export aborted", map[string]any{
				"page":  page,
				"error": err.Error(),
			})
			return
		}
		for _, t := range items {
			record := []string{
				t.ID.String(),
				t.CreatedAt.Format("2006-01-02 15:04:05"),
				t.BeneficiaryID.String(),
				t.StoreID.String(),
				t.ProductName,
				strconv.FormatInt(t.Amount, 10),
				strconv.FormatInt(t.BalanceBefore, 10),
				strconv.FormatInt(t.BalanceAfter, 10),
				string(t.Status),
			}
			if err := w.Write(record); err != nil {
				return
			}
		}
		if int64(page*exportPageSize) >= total {
			break
		}
	}
	w.Flush()
}
