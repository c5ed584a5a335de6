package testutil

import (
	"context"
	"sync"

	"github.com/Behyna/paylink-reconciler/pkg/storefront"
	"github.com/Behyna/paylink-reconciler/pkg/tagset"
)

// FakeStorefront is an in-memory storefront.Client that records calls.
type FakeStorefront struct {
	mu     sync.Mutex
	orders map[string]storefront.Order

	GetErr        error
	UpdateErr     error
	MarkAsPaidErr error

	GetCalls        int
	UpdateCalls     int
	MarkAsPaidCalls int
}

func NewFakeStorefront() *FakeStorefront {
	return &FakeStorefront{orders: make(map[string]storefront.Order)}
}

// AddOrder seeds an order with comma-joined tags.
func (f *FakeStorefront) AddOrder(orderID, tags, note, financialStatus string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.orders[orderID] = storefront.Order{
		ID:              orderID,
		Tags:            tagset.Parse(tags),
		Note:            note,
		FinancialStatus: financialStatus,
	}
}

func (f *FakeStorefront) Order(orderID string) storefront.Order {
	f.mu.Lock()
	defer f.mu.Unlock()

	order := f.orders[orderID]
	order.Tags = order.Tags.Clone()
	return order
}

func (f *FakeStorefront) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.GetCalls + f.UpdateCalls + f.MarkAsPaidCalls
}

func (f *FakeStorefront) GetOrder(_ context.Context, orderID string) (storefront.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.GetCalls++
	if f.GetErr != nil {
		return storefront.Order{}, f.GetErr
	}

	order, ok := f.orders[orderID]
	if !ok {
		return storefront.Order{}, storefront.ErrOrderNotFound
	}

	order.Tags = order.Tags.Clone()
	return order, nil
}

func (f *FakeStorefront) UpdateOrder(_ context.Context, orderID string, update storefront.OrderUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.UpdateCalls++
	if f.UpdateErr != nil {
		return f.UpdateErr
	}

	order, ok := f.orders[orderID]
	if !ok {
		return storefront.ErrOrderNotFound
	}

	if update.Tags != nil {
		order.Tags = tagset.Parse(*update.Tags)
	}
	if update.Note != nil {
		order.Note = *update.Note
	}
	f.orders[orderID] = order

	return nil
}

func (f *FakeStorefront) MarkAsPaid(_ context.Context, orderID string) (storefront.MarkAsPaidResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.MarkAsPaidCalls++
	if f.MarkAsPaidErr != nil {
		return storefront.MarkAsPaidResult{}, f.MarkAsPaidErr
	}

	order, ok := f.orders[orderID]
	if !ok {
		return storefront.MarkAsPaidResult{}, storefront.ErrOrderNotFound
	}

	order.FinancialStatus = storefront.FinancialStatusPaid
	f.orders[orderID] = order

	return storefront.MarkAsPaidResult{
		OrderGID:               storefront.OrderGID(orderID),
		DisplayFinancialStatus: "PAID",
	}, nil
}
