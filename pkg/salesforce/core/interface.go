package sfcore

import "context"

// CoreClient defines the interface for Salesforce record API operations
type CoreClient interface {
	// Authenticate performs the token exchange and stores the session
	Authenticate(ctx context.Context) (*Session, error)

	// Query runs a SOQL SELECT and returns the matching rows
	Query(ctx context.Context, objectType ObjectType, fields []string, limit int) ([]Record, error)

	// Create inserts a record and returns its new ID
	Create(ctx context.Context, objectType ObjectType, fields map[string]string) (string, error)

	// Update patches a record by ID
	Update(ctx context.Context, objectType ObjectType, id string, fields map[string]string) error

	// Delete removes a record by ID
	Delete(ctx context.Context, objectType ObjectType, id string) error
}
