package dto

import "time"

// SummaryReportResponse aggregates platform activity over a date range
type SummaryReportResponse struct {
	From              time.Time `json:"from,omitempty"`
	To                time.Time `json:"to,omitempty"`
	TransactionCount  int64     `json:"transactionCount"`
	TransactionVolume int64     `json:"transactionVolume"`
	AllocationCount   int64     `json:"allocationCount"`
	AllocationVolume  int64     `json:"allocationVolume"`
}
