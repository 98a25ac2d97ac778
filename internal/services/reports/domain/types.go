// Package domain defines the user report types and the report store port
package domain

// ReportInput is a user's flag on an article
type ReportInput struct {
	ArticleURL    string  `json:"articleUrl" validate:"required"`
	Reason        string  `json:"reason" validate:"required"`
	Comment       *string `json:"comment"`
	UserReference *string `json:"userReference"`
	// Timestamp is unix seconds; now when omitted
	Timestamp *int64 `json:"timestamp"`
}

// Report is a stored ReportInput
type Report struct {
	ID            string  `json:"id"`
	ArticleURL    string  `json:"articleUrl"`
	Reason        string  `json:"reason"`
	Comment       *string `json:"comment"`
	UserReference *string `json:"userReference"`
	Timestamp     int64   `json:"timestamp"`
}

// Submitted acknowledges a report
type Submitted struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// List is the reports for one article
type List struct {
	Reports []Report `json:"reports"`
}

// Stats counts every stored report
type Stats struct {
	TotalReports int64            `json:"totalReports"`
	ReasonCounts map[string]int64 `json:"reasonCounts"`
	Timestamp    int64            `json:"timestamp"`
}

// Counts is what a store reports for Stats before it is stamped
type Counts struct {
	Total    int64
	ByReason map[string]int64
}
