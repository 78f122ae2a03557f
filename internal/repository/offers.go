package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/job-board/backend/internal/domain"
)

func (r *Repository) CreateOffer(offer *domain.Offer) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO offers (title, location, study, style, description, contact_name, contact_email, company_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	args := []any{offer.Title, offer.Location, offer.Study, offer.Style, offer.Description, offer.ContactName, offer.ContactEmail, offer.CompanyID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&offer.ID, &offer.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetOffersByCompany(companyID int64) ([]*domain.Offer, error) {
	query := `
		SELECT id, title, location, study, style, description, contact_name, contact_email, created_at
		FROM offers WHERE company_id = $1
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]*domain.Offer, 0)
	for rows.Next() {
		offer := &domain.Offer{
			CompanyID: companyID,
		}
		dst := []any{&offer.ID, &offer.Title, &offer.Location, &offer.Study, &offer.Style, &offer.Description, &offer.ContactName, &offer.ContactEmail, &offer.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return offers, nil
}

func (r *Repository) GetOfferByID(id int64) (*domain.Offer, error) {
	query := `
		SELECT title, location, study, style, description, contact_name, contact_email, company_id, created_at
		FROM offers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	offer := &domain.Offer{
		ID: id,
	}

	dst := []any{&offer.Title, &offer.Location, &offer.Study, &offer.Style, &offer.Description, &offer.ContactName, &offer.ContactEmail, &offer.CompanyID, &offer.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return offer, nil
}

// UpdateOffer 覆盖写入全部可编辑字段，归属企业不参与更新
func (r *Repository) UpdateOffer(offer *domain.Offer) error {
	query := `
		UPDATE offers
		SET
			title = $1,
			location = $2,
			study = $3,
			style = $4,
			description = $5,
			contact_name = $6,
			contact_email = $7
		WHERE id = $8
		RETURNING company_id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{offer.Title, offer.Location, offer.Study, offer.Style, offer.Description, offer.ContactName, offer.ContactEmail, offer.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&offer.CompanyID, &offer.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteOffer(id int64) error {
	query := `
		DELETE FROM offers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
