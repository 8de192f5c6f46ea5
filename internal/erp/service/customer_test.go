package service

import (
	"context"
	"testing"

	"github.com/xingubit/isperp/internal/erp/store"
	"github.com/stretchr/testify/require"
)

func validCustomer() CustomerRequest {
	return CustomerRequest{
		Name:    "João Souza",
		CPF:     "529.982.247-25",
		Email:   "joao@example.com",
		Phone:   "+55 11 99999-0000",
		City:    "São Paulo",
		State:   "sp",
		ZipCode: "01310-100",
	}
}

func TestCreateCustomerCleansCPF(t *testing.T) {
	ctx := context.Background()
	svc := &CustomerService{Store: newTestStore(t)}

	c, err := svc.CreateCustomer(ctx, validCustomer())
	require.NoError(t, err)
	require.Equal(t, "52998224725", c.CPF)
	require.Equal(t, "SP", c.State)
	require.True(t, c.Active)

	// Lookup accepts the formatted form too.
	found, err := svc.GetCustomerByCPF(ctx, "529.982.247-25")
	require.NoError(t, err)
	require.Equal(t, c.ID, found.ID)
}

func TestCreateCustomerRejectsBadCPF(t *testing.T) {
	ctx := context.Background()
	svc := &CustomerService{Store: newTestStore(t)}

	tests := []struct {
		name string
		cpf  string
	}{
		{"empty", ""},
		{"too short", "5299822472"},
		{"bad check digit", "529.982.247-24"},
		{"repeated digits", "111.111.111-11"},
		{"letters", "abc.def.ghi-jk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCustomer()
			req.CPF = tt.cpf
			_, err := svc.CreateCustomer(ctx, req)
			require.ErrorIs(t, err, ErrInvalidCPF)
		})
	}
}

func TestCreateCustomerDuplicateCPF(t *testing.T) {
	ctx := context.Background()
	svc := &CustomerService{Store: newTestStore(t)}

	_, err := svc.CreateCustomer(ctx, validCustomer())
	require.NoError(t, err)

	dup := validCustomer()
	dup.Name = "Outro Nome"
	dup.Email = "outro@example.com"
	_, err = svc.CreateCustomer(ctx, dup)
	require.ErrorIs(t, err, ErrDuplicateCPF)
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := &CustomerService{Store: newTestStore(t)}

	_, err := svc.CreateCustomer(ctx, validCustomer())
	require.NoError(t, err)

	dup := validCustomer()
	dup.CPF = "935.411.347-80"
	_, err = svc.CreateCustomer(ctx, dup)
	require.ErrorIs(t, err, ErrDuplicateCustomer)
}

func TestSearchCustomers(t *testing.T) {
	ctx := context.Background()
	svc := &CustomerService{Store: newTestStore(t)}

	_, err := svc.CreateCustomer(ctx, validCustomer())
	require.NoError(t, err)

	second := CustomerRequest{Name: "Ana Lima", CPF: "935.411.347-80"}
	_, err = svc.CreateCustomer(ctx, second)
	require.NoError(t, err)

	t.Run("by name fragment", func(t *testing.T) {
		got, err := svc.SearchCustomers(ctx, "souza")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "João Souza", got[0].Name)
	})

	t.Run("by cpf fragment", func(t *testing.T) {
		got, err := svc.SearchCustomers(ctx, "93541")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "Ana Lima", got[0].Name)
	})

	t.Run("empty query lists all", func(t *testing.T) {
		got, err := svc.SearchCustomers(ctx, "  ")
		require.NoError(t, err)
		require.Len(t, got, 2)
	})
}

func TestSetCustomerActive(t *testing.T) {
	ctx := context.Background()
	svc := &CustomerService{Store: newTestStore(t)}

	c, err := svc.CreateCustomer(ctx, validCustomer())
	require.NoError(t, err)

	deactivated, err := svc.SetCustomerActive(ctx, c.ID, false)
	require.NoError(t, err)
	require.False(t, deactivated.Active)

	active, err := svc.ListActiveCustomers(ctx)
	require.NoError(t, err)
	require.Empty(t, active)

	all, err := svc.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestUpdateCustomer(t *testing.T) {
	ctx := context.Background()
	svc := &CustomerService{Store: newTestStore(t)}

	c, err := svc.CreateCustomer(ctx, validCustomer())
	require.NoError(t, err)

	req := validCustomer()
	req.Name = "João S. Souza"
	req.Phone = "+55 11 88888-0000"
	updated, err := svc.UpdateCustomer(ctx, c.ID, req)
	require.NoError(t, err)
	require.Equal(t, "João S. Souza", updated.Name)
	require.Equal(t, c.CPF, updated.CPF)
}

func TestUpdateCustomerToTakenCPF(t *testing.T) {
	ctx := context.Background()
	svc := &CustomerService{Store: newTestStore(t)}

	_, err := svc.CreateCustomer(ctx, validCustomer())
	require.NoError(t, err)

	other := validCustomer()
	other.Name = "Ana Lima"
	other.CPF = "935.411.347-80"
	other.Email = "ana@example.com"
	c, err := svc.CreateCustomer(ctx, other)
	require.NoError(t, err)

	// Steal the first customer's CPF; the conflict must be classified from
	// inside the update transaction.
	other.CPF = "529.982.247-25"
	_, err = svc.UpdateCustomer(ctx, c.ID, other)
	require.ErrorIs(t, err, ErrDuplicateCPF)

	// Keeping your own CPF is not a conflict.
	other.CPF = "935.411.347-80"
	other.Name = "Ana L. Lima"
	updated, err := svc.UpdateCustomer(ctx, c.ID, other)
	require.NoError(t, err)
	require.Equal(t, "Ana L. Lima", updated.Name)
}

func TestDeleteCustomer(t *testing.T) {
	ctx := context.Background()
	svc := &CustomerService{Store: newTestStore(t)}

	c, err := svc.CreateCustomer(ctx, validCustomer())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCustomer(ctx, c.ID))

	_, err = svc.GetCustomer(ctx, c.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
