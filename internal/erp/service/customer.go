package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xingubit/isperp/internal/erp/domain"
	"github.com/xingubit/isperp/internal/erp/store"
	"github.com/xingubit/isperp/pkg/cpf"
	"github.com/xingubit/isperp/pkg/idx"
	"github.com/xingubit/isperp/pkg/slogx"
)

var (
	ErrCustomerData      = errors.New("invalid customer data")
	ErrInvalidCPF        = errors.New("invalid CPF")
	ErrDuplicateCPF      = errors.New("CPF already registered")
	ErrDuplicateCustomer = errors.New("customer email already registered")
)

// CustomerService validates and persists customer records. CPFs are stored
// cleaned (digits only) and must pass the checksum; formatting is a
// presentation concern.
type CustomerService struct {
	Store store.Store
}

type CustomerRequest struct {
	Name    string
	CPF     string
	Email   string
	Phone   string
	Address string
	City    string
	State   string
	ZipCode string
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req CustomerRequest) (domain.Customer, error) {
	l := slogx.FromContext(ctx)

	c, err := buildCustomer(req)
	if err != nil {
		return domain.Customer{}, err
	}
	c.ID = idx.New().String()
	c.Active = true
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.Store.Customers().CreateCustomer(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Customer{}, classifyConflict(ctx, s.Store, c)
		}
		return domain.Customer{}, err
	}

	l.Info("customer created", slog.String("customer_id", c.ID))
	return c, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id string) (domain.Customer, error) {
	return s.Store.Customers().GetCustomerByID(ctx, id)
}

// GetCustomerByCPF accepts formatted or bare CPFs.
func (s *CustomerService) GetCustomerByCPF(ctx context.Context, document string) (domain.Customer, error) {
	cleaned := cpf.Clean(document)
	if !cpf.IsValid(cleaned) {
		return domain.Customer{}, ErrInvalidCPF
	}
	return s.Store.Customers().GetCustomerByCPF(ctx, cleaned)
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.Store.Customers().ListCustomers(ctx)
}

func (s *CustomerService) ListActiveCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.Store.Customers().ListActiveCustomers(ctx)
}

// SearchCustomers matches the query against names, or against CPF digits
// when the query contains any.
func (s *CustomerService) SearchCustomers(ctx context.Context, query string) ([]domain.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.Store.Customers().ListCustomers(ctx)
	}
	if digits := cpf.Clean(query); digits != "" {
		return s.Store.Customers().SearchCustomersByCPF(ctx, digits)
	}
	return s.Store.Customers().SearchCustomersByName(ctx, query)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, req CustomerRequest) (domain.Customer, error) {
	updated, err := buildCustomer(req)
	if err != nil {
		return domain.Customer{}, err
	}

	var out domain.Customer
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Customers().GetCustomerByID(ctx, id)
		if err != nil {
			return err
		}

		c.Name = updated.Name
		c.CPF = updated.CPF
		c.Email = updated.Email
		c.Phone = updated.Phone
		c.Address = updated.Address
		c.City = updated.City
		c.State = updated.State
		c.ZipCode = updated.ZipCode
		c.UpdatedAt = time.Now().UTC()

		if err := tx.Customers().UpdateCustomer(ctx, c); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return classifyConflict(ctx, tx, c)
			}
			return err
		}
		out = c
		return nil
	})
	return out, err
}

// SetCustomerActive toggles soft activation instead of deleting history.
func (s *CustomerService) SetCustomerActive(ctx context.Context, id string, active bool) (domain.Customer, error) {
	var out domain.Customer
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Customers().GetCustomerByID(ctx, id)
		if err != nil {
			return err
		}
		c.Active = active
		c.UpdatedAt = time.Now().UTC()
		if err := tx.Customers().UpdateCustomer(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	return out, err
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	return s.Store.Customers().DeleteCustomer(ctx, id)
}

func buildCustomer(req CustomerRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, fmt.Errorf("%w: name is required", ErrCustomerData)
	}

	cleaned := cpf.Clean(req.CPF)
	if !cpf.IsValid(cleaned) {
		return domain.Customer{}, ErrInvalidCPF
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" && !strings.Contains(email, "@") {
		return domain.Customer{}, fmt.Errorf("%w: a valid email is required", ErrCustomerData)
	}

	return domain.Customer{
		Name:    name,
		CPF:     cleaned,
		Email:   email,
		Phone:   strings.TrimSpace(req.Phone),
		Address: req.Address,
		City:    req.City,
		State:   strings.ToUpper(strings.TrimSpace(req.State)),
		ZipCode: strings.TrimSpace(req.ZipCode),
	}, nil
}

// classifyConflict reports which unique index actually fired, so the API
// can say whether the CPF or the email was taken. Callers inside a
// transaction must pass the transaction, not the root store, or the lookup
// contends with their own write lock.
func classifyConflict(ctx context.Context, st store.Store, c domain.Customer) error {
	if existing, err := st.Customers().GetCustomerByCPF(ctx, c.CPF); err == nil && existing.ID != c.ID {
		return ErrDuplicateCPF
	}
	if c.Email != "" {
		if existing, err := st.Customers().GetCustomerByEmail(ctx, c.Email); err == nil && existing.ID != c.ID {
			return ErrDuplicateCustomer
		}
	}
	return ErrDuplicateCPF
}
