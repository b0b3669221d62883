// test/mock/dao.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/medregistry/api/model"
)

// MockCustomerDAO is a mock implementation of dao.ICustomerDAO
type MockCustomerDAO struct {
	mock.Mock
}

func (m *MockCustomerDAO) CreateCustomer(ctx context.Context, customer model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerDAO) UpdateCustomer(ctx context.Context, customer model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerDAO) DeleteCustomer(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func (m *MockCustomerDAO) GetCustomer(ctx context.Context, customerID string) (*model.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerDAO) ListCustomers(ctx context.Context, limit, offset int) ([]model.Customer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Customer), args.Error(1)
}

func (m *MockCustomerDAO) CountCustomers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockDocumentDAO is a mock implementation of dao.IDocumentDAO
type MockDocumentDAO struct {
	mock.Mock
}

func (m *MockDocumentDAO) CreateDocument(ctx context.Context, document model.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockDocumentDAO) UpdateDocument(ctx context.Context, document model.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockDocumentDAO) DeleteDocument(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

func (m *MockDocumentDAO) GetDocument(ctx context.Context, documentID string) (*model.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentDAO) ListCustomerDocuments(ctx context.Context, customerID, docType string) ([]model.Document, error) {
	args := m.Called(ctx, customerID, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentDAO) CountDocuments(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockSubscriptionDAO is a mock implementation of dao.ISubscriptionDAO
type MockSubscriptionDAO struct {
	mock.Mock
}

func (m *MockSubscriptionDAO) CreateSubscription(ctx context.Context, subscription model.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *MockSubscriptionDAO) UpdateSubscription(ctx context.Context, subscription model.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *MockSubscriptionDAO) GetSubscription(ctx context.Context, subscriptionID string) (*model.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *MockSubscriptionDAO) ListCustomerSubscriptions(ctx context.Context, customerID string) ([]model.Subscription, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subscription), args.Error(1)
}

func (m *MockSubscriptionDAO) CountActiveSubscriptions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
