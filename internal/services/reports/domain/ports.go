package domain

import "context"

// StorePort persists reports
type StorePort interface {
	Save(ctx context.Context, r Report) error
	// ByURL returns the reports for url oldest first; none is not an error
	ByURL(ctx context.Context, url string) ([]Report, error)
	Counts(ctx context.Context) (Counts, error)
}

// ServicePort is the reports surface used by transport
type ServicePort interface {
	Submit(ctx context.Context, in ReportInput) (Submitted, error)
	ForURL(ctx context.Context, url string) (List, error)
	Stats(ctx context.Context) (Stats, error)
}
