package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-marketplace/internal/domain"
)

// PackageRepository manages vendor packages.
type PackageRepository interface {
	Create(ctx context.Context, pkg *domain.VendorPackage) error
	Update(ctx context.Context, pkg *domain.VendorPackage) error
	Delete(ctx context.Context, vendorID, id string) error
	GetByID(ctx context.Context, id string) (*domain.VendorPackage, error)
	ListByVendor(ctx context.Context, vendorID string) ([]domain.VendorPackage, error)
}

type packageRepository struct {
	pool *pgxpool.Pool
}

// NewPackageRepository builds repository.
func NewPackageRepository(pool *pgxpool.Pool) PackageRepository {
	return &packageRepository{pool: pool}
}

const packageColumns = `id, vendor_id, name, description, price, features, created_at, updated_at`

func (r *packageRepository) Create(ctx context.Context, pkg *domain.VendorPackage) error {
	const query = `
        INSERT INTO vendor_packages (vendor_id, name, description, price, features)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	if pkg.Features == nil {
		pkg.Features = []string{}
	}
	return r.pool.QueryRow(ctx, query,
		pkg.VendorID,
		pkg.Name,
		pkg.Description,
		pkg.Price,
		pkg.Features,
	).Scan(&pkg.ID, &pkg.CreatedAt, &pkg.UpdatedAt)
}

func (r *packageRepository) Update(ctx context.Context, pkg *domain.VendorPackage) error {
	const query = `
        UPDATE vendor_packages SET name=$1, description=$2, price=$3, features=$4, updated_at=NOW()
        WHERE id=$5 AND vendor_id=$6
        RETURNING updated_at`
	if pkg.Features == nil {
		pkg.Features = []string{}
	}
	return r.pool.QueryRow(ctx, query,
		pkg.Name,
		pkg.Description,
		pkg.Price,
		pkg.Features,
		pkg.ID,
		pkg.VendorID,
	).Scan(&pkg.UpdatedAt)
}

func (r *packageRepository) Delete(ctx context.Context, vendorID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM vendor_packages WHERE id=$1 AND vendor_id=$2`, id, vendorID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *packageRepository) GetByID(ctx context.Context, id string) (*domain.VendorPackage, error) {
	return scanPackage(r.pool.QueryRow(ctx, `SELECT `+packageColumns+` FROM vendor_packages WHERE id=$1`, id))
}

func (r *packageRepository) ListByVendor(ctx context.Context, vendorID string) ([]domain.VendorPackage, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+packageColumns+` FROM vendor_packages WHERE vendor_id=$1 ORDER BY price ASC`, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.VendorPackage
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *pkg)
	}
	return result, rows.Err()
}

func scanPackage(row pgx.Row) (*domain.VendorPackage, error) {
	var pkg domain.VendorPackage
	if err := row.Scan(
		&pkg.ID,
		&pkg.VendorID,
		&pkg.Name,
		&pkg.Description,
		&pkg.Price,
		&pkg.Features,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &pkg, nil
}
