package catalog

import (
	"context"
	"database/sql"

	"supermarket-comparator/internal/common/errors"
	"supermarket-comparator/internal/common/logger"
	"supermarket-comparator/internal/common/metrics"
)

// PostgresRepository loads the catalog from the stores/products tables.
type PostgresRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresRepository(db *sql.DB, log logger.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-postgres"}),
	}
}

func (r *PostgresRepository) Load(ctx context.Context) (*Catalog, error) {
	stores, index, err := r.loadStores(ctx)
	if err != nil {
		metrics.CatalogLoads.WithLabelValues("postgres", "error").Inc()
		return nil, err
	}

	if err := r.loadProducts(ctx, stores, index); err != nil {
		metrics.CatalogLoads.WithLabelValues("postgres", "error").Inc()
		return nil, err
	}

	metrics.CatalogLoads.WithLabelValues("postgres", "success").Inc()
	r.logger.Info("catalog loaded", map[string]interface{}{
		"stores": len(stores),
	})

	return &Catalog{Stores: stores}, nil
}

// loadStores returns stores in id order plus a store-id index into the slice.
// The order is what every downstream tie-break keys on.
func (r *PostgresRepository) loadStores(ctx context.Context) ([]Store, map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, lat, lng, address, phone, hours
		FROM stores
		ORDER BY id`)
	if err != nil {
		return nil, nil, errors.NewQueryExecutionFailedError(err)
	}
	defer rows.Close()

	var stores []Store
	index := map[string]int{}

	for rows.Next() {
		var st Store
		var address, phone, hours sql.NullString
		if err := rows.Scan(&st.ID, &st.Name, &st.Location.Lat, &st.Location.Lng,
			&address, &phone, &hours); err != nil {
			return nil, nil, errors.NewQueryExecutionFailedError(err)
		}
		st.Address = address.String
		st.Phone = phone.String
		st.Hours = hours.String

		index[st.ID] = len(stores)
		stores = append(stores, st)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, errors.NewQueryExecutionFailedError(err)
	}

	return stores, index, nil
}

func (r *PostgresRepository) loadProducts(ctx context.Context, stores []Store, index map[string]int) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT store_id, id, name, brand, price, available, category, barcode
		FROM products
		ORDER BY store_id, id`)
	if err != nil {
		return errors.NewQueryExecutionFailedError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var storeID string
		var p Product
		var brand, barcode sql.NullString
		if err := rows.Scan(&storeID, &p.ID, &p.Name, &brand, &p.Price,
			&p.Available, &p.Category, &barcode); err != nil {
			return errors.NewQueryExecutionFailedError(err)
		}
		p.Brand = brand.String
		p.Barcode = barcode.String

		pos, ok := index[storeID]
		if !ok {
			r.logger.Warn("product references unknown store", map[string]interface{}{
				"storeId":   storeID,
				"productId": p.ID,
			})
			continue
		}
		stores[pos].Products = append(stores[pos].Products, p)
	}

	return rows.Err()
}
