package repository

import (
	"context"
	"fmt"

	"dealspot/client/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OfferRepository mirrors canonical offers into Postgres so the catalog
// survives offline. Writes are best-effort; callers only log failures.
type OfferRepository interface {
	SaveOffers(ctx context.Context, offers []domain.Offer) error
}

type offerRepository struct {
	db *pgxpool.Pool
}

func NewOfferRepository(db *pgxpool.Pool) OfferRepository {
	return &offerRepository{
		db: db,
	}
}

func (r *offerRepository) SaveOffers(ctx context.Context, offers []domain.Offer) error {
	query := `
	INSERT INTO offers (id, category_id, data)
	VALUES ($1, $2, $3)
	ON CONFLICT (id)
	DO UPDATE SET category_id = $2, data = $3`
	for _, offer := range offers {
		if _, err := r.db.Exec(ctx, query, offer.ID, offer.CategoryID, offer); err != nil {
			return fmt.Errorf("failed to save offer %s: %w", offer.ID, err)
		}
	}

	return nil
}
