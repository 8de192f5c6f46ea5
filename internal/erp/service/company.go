package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xingubit/isperp/internal/erp/domain"
	"github.com/xingubit/isperp/internal/erp/store"
	"github.com/xingubit/isperp/pkg/idx"
)

var (
	ErrCompanyData = errors.New("invalid company data")

	// ErrTenantProtected stops deletion of the company created during setup.
	// It represents the deployment's own organization.
	ErrTenantProtected = errors.New("tenant company cannot be deleted")
)

type CompanyService struct {
	Store store.Store
}

type CompanyRequest struct {
	Name     string
	Document string
	Address  string
	Phone    string
	Email    string
	Website  string
}

func (s *CompanyService) CreateCompany(ctx context.Context, req CompanyRequest) (domain.Company, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return domain.Company{}, fmt.Errorf("%w: name is required", ErrCompanyData)
	}

	now := time.Now().UTC()
	c := domain.Company{
		ID:        idx.New().String(),
		Name:      req.Name,
		Document:  strings.TrimSpace(req.Document),
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Website:   req.Website,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Companies().CreateCompany(ctx, c); err != nil {
		return domain.Company{}, err
	}
	return c, nil
}

func (s *CompanyService) GetCompany(ctx context.Context, id string) (domain.Company, error) {
	return s.Store.Companies().GetCompanyByID(ctx, id)
}

// GetTenantCompany returns the deployment's own organization.
func (s *CompanyService) GetTenantCompany(ctx context.Context) (domain.Company, error) {
	return s.Store.Companies().GetTenantCompany(ctx)
}

func (s *CompanyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	return s.Store.Companies().ListCompanies(ctx)
}

func (s *CompanyService) UpdateCompany(ctx context.Context, id string, req CompanyRequest) (domain.Company, error) {
	var out domain.Company
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Companies().GetCompanyByID(ctx, id)
		if err != nil {
			return err
		}
		if name := strings.TrimSpace(req.Name); name != "" {
			c.Name = name
		}
		c.Document = strings.TrimSpace(req.Document)
		c.Address = req.Address
		c.Phone = req.Phone
		c.Email = strings.ToLower(strings.TrimSpace(req.Email))
		c.Website = req.Website
		c.UpdatedAt = time.Now().UTC()

		if err := tx.Companies().UpdateCompany(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	return out, err
}

func (s *CompanyService) DeleteCompany(ctx context.Context, id string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Companies().GetCompanyByID(ctx, id)
		if err != nil {
			return err
		}
		if c.Tenant {
			return ErrTenantProtected
		}
		return tx.Companies().DeleteCompany(ctx, id)
	})
}
