package sqlite

import (
	"context"

	"github.com/xingubit/isperp/internal/erp/domain"
	"github.com/xingubit/isperp/internal/erp/store"
)

type companiesRepo struct {
	db dbtx
}

const companyColumns = `id, name, document, address, phone, email, website, tenant, created_at, updated_at`

func (r *companiesRepo) scanCompany(row interface{ Scan(...any) error }) (domain.Company, error) {
	var c domain.Company
	err := row.Scan(&c.ID, &c.Name, &c.Document, &c.Address, &c.Phone, &c.Email,
		&c.Website, &c.Tenant, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Company{}, err
	}
	return c, nil
}

func (r *companiesRepo) GetCompanyByID(ctx context.Context, id string) (domain.Company, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = ?`, id)
	c, err := r.scanCompany(row)
	if err != nil {
		return domain.Company{}, mapNotFound(err)
	}
	return c, nil
}

func (r *companiesRepo) GetTenantCompany(ctx context.Context) (domain.Company, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE tenant = 1`)
	c, err := r.scanCompany(row)
	if err != nil {
		return domain.Company{}, mapNotFound(err)
	}
	return c, nil
}

func (r *companiesRepo) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Company
	for rows.Next() {
		c, err := r.scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *companiesRepo) CreateCompany(ctx context.Context, c domain.Company) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO companies (`+companyColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Document, c.Address, c.Phone, c.Email, c.Website,
		c.Tenant, c.CreatedAt, c.UpdatedAt)
	return mapConflict(err)
}

func (r *companiesRepo) UpdateCompany(ctx context.Context, c domain.Company) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE companies
		    SET name = ?, document = ?, address = ?, phone = ?, email = ?, website = ?, updated_at = ?
		  WHERE id = ?`,
		c.Name, c.Document, c.Address, c.Phone, c.Email, c.Website, c.UpdatedAt, c.ID)
	if err != nil {
		return mapConflict(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *companiesRepo) DeleteCompany(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *companiesRepo) CountCompanies(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`).Scan(&count)
	return count, err
}
