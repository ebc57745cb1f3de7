package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-marketplace/internal/domain"
)

// VendorFilter captures listing parameters.
type VendorFilter struct {
	Status       *domain.VendorStatus
	Category     *string
	Location     *string
	SearchTerm   *string
	FeaturedOnly bool
	MinReviews   int
	// OrderByRating sorts by rating and review count instead of recency.
	OrderByRating bool
	Limit         int
	Offset        int
}

// VendorRepository encapsulates vendor persistence.
type VendorRepository interface {
	Create(ctx context.Context, vendor *domain.Vendor) error
	Update(ctx context.Context, vendor *domain.Vendor) error
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Vendor, error)
	List(ctx context.Context, filter VendorFilter) ([]domain.Vendor, error)
	ListForEventType(ctx context.Context, eventType string, limit int) ([]domain.Vendor, error)
	SetStatus(ctx context.Context, id string, status domain.VendorStatus, reason string) (*domain.Vendor, error)
	RefreshRating(ctx context.Context, id string) (*domain.Vendor, error)
}

type vendorRepository struct {
	pool *pgxpool.Pool
}

// NewVendorRepository instantiates repository.
func NewVendorRepository(pool *pgxpool.Pool) VendorRepository {
	return &vendorRepository{pool: pool}
}

const vendorColumns = `id, user_id, business_name, category, description, location, phone, email, image_url,
               price_from, status, rejection_reason, featured, rating, review_count, created_at, updated_at`

func (r *vendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	const query = `
        INSERT INTO vendors (user_id, business_name, category, description, location, phone, email, image_url, price_from, status, featured)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		vendor.UserID,
		vendor.BusinessName,
		vendor.Category,
		vendor.Description,
		vendor.Location,
		vendor.Phone,
		vendor.Email,
		vendor.ImageURL,
		vendor.PriceFrom,
		vendor.Status,
		vendor.Featured,
	).Scan(&vendor.ID, &vendor.CreatedAt, &vendor.UpdatedAt)
}

func (r *vendorRepository) Update(ctx context.Context, vendor *domain.Vendor) error {
	const query = `
        UPDATE vendors SET business_name=$1, category=$2, description=$3, location=$4, phone=$5, email=$6,
            image_url=$7, price_from=$8, featured=$9, updated_at=NOW()
        WHERE id=$10
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		vendor.BusinessName,
		vendor.Category,
		vendor.Description,
		vendor.Location,
		vendor.Phone,
		vendor.Email,
		vendor.ImageURL,
		vendor.PriceFrom,
		vendor.Featured,
		vendor.ID,
	).Scan(&vendor.UpdatedAt)
}

func (r *vendorRepository) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	return scanVendor(r.pool.QueryRow(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id=$1`, id))
}

func (r *vendorRepository) GetByUserID(ctx context.Context, userID string) (*domain.Vendor, error) {
	return scanVendor(r.pool.QueryRow(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE user_id=$1`, userID))
}

func (r *vendorRepository) List(ctx context.Context, filter VendorFilter) ([]domain.Vendor, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Category != nil && strings.TrimSpace(*filter.Category) != "" {
		args = append(args, strings.ToLower(strings.TrimSpace(*filter.Category)))
		clauses = append(clauses, fmt.Sprintf("LOWER(category)=$%d", len(args)))
	}
	if filter.Location != nil && strings.TrimSpace(*filter.Location) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Location))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(location) LIKE $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.SearchTerm))+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(business_name) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}
	if filter.FeaturedOnly {
		clauses = append(clauses, "featured=TRUE")
	}
	if filter.MinReviews > 0 {
		args = append(args, filter.MinReviews)
		clauses = append(clauses, fmt.Sprintf("review_count >= $%d", len(args)))
	}

	order := "created_at DESC"
	if filter.OrderByRating {
		order = "rating DESC, review_count DESC, created_at DESC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM vendors WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		vendorColumns, strings.Join(clauses, " AND "), order, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVendors(rows)
}

func (r *vendorRepository) ListForEventType(ctx context.Context, eventType string, limit int) ([]domain.Vendor, error) {
	if limit <= 0 {
		limit = 6
	}
	query := `SELECT ` + vendorColumns + ` FROM vendors
        WHERE status='approved'
        ORDER BY (LOWER(category) = LOWER($1)) DESC, rating DESC, review_count DESC
        LIMIT $2`
	rows, err := r.pool.Query(ctx, query, eventType, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVendors(rows)
}

func (r *vendorRepository) SetStatus(ctx context.Context, id string, status domain.VendorStatus, reason string) (*domain.Vendor, error) {
	query := `UPDATE vendors SET status=$1, rejection_reason=$2, updated_at=NOW() WHERE id=$3 RETURNING ` + vendorColumns
	return scanVendor(r.pool.QueryRow(ctx, query, status, reason, id))
}

func (r *vendorRepository) RefreshRating(ctx context.Context, id string) (*domain.Vendor, error) {
	query := `
        UPDATE vendors v SET
            rating = COALESCE(agg.avg_rating, 0),
            review_count = COALESCE(agg.cnt, 0),
            updated_at = NOW()
        FROM (SELECT AVG(rating)::float8 AS avg_rating, COUNT(*)::int AS cnt FROM reviews WHERE vendor_id=$1) agg
        WHERE v.id=$1
        RETURNING ` + prefixed("v.", vendorColumns)
	return scanVendor(r.pool.QueryRow(ctx, query, id))
}

func prefixed(prefix, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = prefix + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}

func scanVendor(row pgx.Row) (*domain.Vendor, error) {
	var v domain.Vendor
	if err := row.Scan(
		&v.ID,
		&v.UserID,
		&v.BusinessName,
		&v.Category,
		&v.Description,
		&v.Location,
		&v.Phone,
		&v.Email,
		&v.ImageURL,
		&v.PriceFrom,
		&v.Status,
		&v.RejectionReason,
		&v.Featured,
		&v.Rating,
		&v.ReviewCount,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

func scanVendors(rows pgx.Rows) ([]domain.Vendor, error) {
	var result []domain.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *v)
	}
	return result, rows.Err()
}
