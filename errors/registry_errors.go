// api/errors/registry_errors.go
package errors

import "errors"

var (
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrCustomerConflict     = errors.New("customer already exists")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrDatabaseOperation    = errors.New("database operation failed")
	ErrInvalidCustomerData  = errors.New("invalid customer data")
	ErrInvalidDocumentData  = errors.New("invalid document data")
	ErrInternalServer       = errors.New("internal server error")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidPagination    = errors.New("invalid pagination parameters")
)
