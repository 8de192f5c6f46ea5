package sqlite

import (
	"context"

	"github.com/xingubit/isperp/internal/erp/domain"
	"github.com/xingubit/isperp/internal/erp/store"
)

type customersRepo struct {
	db dbtx
}

const customerColumns = `id, name, cpf, email, phone, address, city, state, zip_code, active, created_at, updated_at`

func (r *customersRepo) scanCustomer(row interface{ Scan(...any) error }) (domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.Name, &c.CPF, &c.Email, &c.Phone, &c.Address,
		&c.City, &c.State, &c.ZipCode, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

func (r *customersRepo) queryCustomers(ctx context.Context, query string, args ...any) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Customer
	for rows.Next() {
		c, err := r.scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *customersRepo) GetCustomerByID(ctx context.Context, id string) (domain.Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	c, err := r.scanCustomer(row)
	if err != nil {
		return domain.Customer{}, mapNotFound(err)
	}
	return c, nil
}

func (r *customersRepo) GetCustomerByCPF(ctx context.Context, cpf string) (domain.Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE cpf = ?`, cpf)
	c, err := r.scanCustomer(row)
	if err != nil {
		return domain.Customer{}, mapNotFound(err)
	}
	return c, nil
}

func (r *customersRepo) GetCustomerByEmail(ctx context.Context, email string) (domain.Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE email = ? AND email <> ''`, email)
	c, err := r.scanCustomer(row)
	if err != nil {
		return domain.Customer{}, mapNotFound(err)
	}
	return c, nil
}

func (r *customersRepo) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return r.queryCustomers(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY name, id`)
}

func (r *customersRepo) ListActiveCustomers(ctx context.Context) ([]domain.Customer, error) {
	return r.queryCustomers(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE active = 1 ORDER BY name, id`)
}

func (r *customersRepo) SearchCustomersByName(ctx context.Context, name string) ([]domain.Customer, error) {
	return r.queryCustomers(ctx,
		`SELECT `+customerColumns+` FROM customers
		  WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
		  ORDER BY name, id`, name)
}

func (r *customersRepo) SearchCustomersByCPF(ctx context.Context, cpf string) ([]domain.Customer, error) {
	return r.queryCustomers(ctx,
		`SELECT `+customerColumns+` FROM customers
		  WHERE cpf LIKE '%' || ? || '%'
		  ORDER BY name, id`, cpf)
}

func (r *customersRepo) CreateCustomer(ctx context.Context, c domain.Customer) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (`+customerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.CPF, c.Email, c.Phone, c.Address, c.City, c.State,
		c.ZipCode, c.Active, c.CreatedAt, c.UpdatedAt)
	return mapConflict(err)
}

func (r *customersRepo) UpdateCustomer(ctx context.Context, c domain.Customer) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE customers
		    SET name = ?, cpf = ?, email = ?, phone = ?, address = ?, city = ?,
		        state = ?, zip_code = ?, active = ?, updated_at = ?
		  WHERE id = ?`,
		c.Name, c.CPF, c.Email, c.Phone, c.Address, c.City, c.State,
		c.ZipCode, c.Active, c.UpdatedAt, c.ID)
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

func (r *customersRepo) DeleteCustomer(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
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
