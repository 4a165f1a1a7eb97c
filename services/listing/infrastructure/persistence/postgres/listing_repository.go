package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/hellohellohell0/mcmarket/pkg/database"
	"github.com/hellohellohell0/mcmarket/pkg/events"
	listingdomain "github.com/hellohellohell0/mcmarket/services/listing/domain"
	domainevents "github.com/hellohellohell0/mcmarket/services/listing/domain/events"
	"github.com/hellohellohell0/mcmarket/services/listing/domain/models"
	"github.com/hellohellohell0/mcmarket/services/listing/domain/repositories"
)

// accountTypeSeparator is how the tag set is flattened into a single column.
const accountTypeSeparator = ","

const listingColumns = `id, username, description, price_current_offer, price_bin,
	currency_code, account_types, name_changes, ogu_profile_url, contact_discord,
	contact_telegram, ticket_number, owner_verified, identity_verified, status, created_at`

// ListingRepository implements repositories.ListingRepository against PostgreSQL.
type ListingRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewListingRepository returns a ListingRepository backed by the given pool and
// event bus. The bus publishes ListingSubmittedEvents inside the insert
// transaction (outbox pattern); pass nil to disable publishing.
func NewListingRepository(db *database.Database, bus *events.EventBus) *ListingRepository {
	return &ListingRepository{db: db, bus: bus}
}

// Create persists a listing and its capes atomically and publishes a
// ListingSubmittedEvent within the same transaction.
func (r *ListingRepository) Create(ctx context.Context, l *models.Listing) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO listings (`+listingColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			l.ID, l.Username.String(), l.Description,
			nullFloat(l.PriceCurrentOffer), nullFloat(l.PriceBin),
			l.Currency.String(), strings.Join(l.AccountTypes, accountTypeSeparator),
			l.NameChanges, l.OGUProfileURL, l.ContactDiscord, l.ContactTelegram,
			l.TicketNumber, l.OwnerVerified, l.IdentityVerified,
			l.Status.String(), l.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert listing: %w", err)
		}

		if err := insertCapes(ctx, tx, l.ID, l.Capes); err != nil {
			return err
		}

		if r.bus != nil {
			if err := r.publishSubmitted(tx, l); err != nil {
				return fmt.Errorf("publish listing submitted: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a listing with its capes. Returns ErrListingNotFound when
// the id does not resolve.
func (r *ListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)

	l, err := scanListing(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, listingdomain.ErrListingNotFound
		}
		return nil, fmt.Errorf("query listing: %w", err)
	}

	capes, err := r.capesFor(ctx, []uuid.UUID{l.ID})
	if err != nil {
		return nil, err
	}
	l.Capes = capes[l.ID]
	return l, nil
}

// Find retrieves listings matching the pushdown filter, newest first, capes
// attached. The WHERE clause is assembled predicate by predicate; anything the
// filter leaves unset is unbounded.
func (r *ListingRepository) Find(ctx context.Context, f repositories.StoreFilter) ([]*models.Listing, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != nil {
		where = append(where, "status = "+arg(f.Status.String()))
	}
	if f.MaxNameChanges != nil {
		where = append(where, "name_changes <= "+arg(*f.MaxNameChanges))
	}
	if len(f.CapeNames) > 0 {
		placeholders := make([]string, len(f.CapeNames))
		for i, name := range f.CapeNames {
			placeholders[i] = arg(name)
		}
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM capes c WHERE c.listing_id = listings.id AND c.name IN (%s))",
			strings.Join(placeholders, ", ")))
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		// Either price column may satisfy the bounds; the canonical in-memory
		// predicate re-checks this, so the clause only needs to not exclude
		// true matches.
		where = append(where, "("+priceClause("price_current_offer", f.MinPrice, f.MaxPrice, arg)+
			" OR "+priceClause("price_bin", f.MinPrice, f.MaxPrice, arg)+")")
	}

	query := `SELECT ` + listingColumns + ` FROM listings`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var (
		listings []*models.Listing
		ids      []uuid.UUID
	)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
		ids = append(ids, l.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}

	capes, err := r.capesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, l := range listings {
		l.Capes = capes[l.ID]
	}
	return listings, nil
}

// UpdateStatus persists a moderation status change.
func (r *ListingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error {
	res, err := r.db.DB().ExecContext(ctx,
		`UPDATE listings SET status = $1 WHERE id = $2`, status.String(), id)
	if err != nil {
		return fmt.Errorf("update listing status: %w", err)
	}
	return requireRow(res)
}

// Update persists field edits; when replaceCapes is set the cape rows are
// deleted and recreated from l.Capes in the same transaction.
func (r *ListingRepository) Update(ctx context.Context, l *models.Listing, replaceCapes bool) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE listings SET
				username = $1, description = $2, currency_code = $3,
				account_types = $4, name_changes = $5, ticket_number = $6,
				owner_verified = $7, identity_verified = $8
			WHERE id = $9`,
			l.Username.String(), l.Description, l.Currency.String(),
			strings.Join(l.AccountTypes, accountTypeSeparator), l.NameChanges,
			l.TicketNumber, l.OwnerVerified, l.IdentityVerified, l.ID,
		)
		if err != nil {
			return fmt.Errorf("update listing: %w", err)
		}
		if err := requireRow(res); err != nil {
			return err
		}

		if replaceCapes {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM capes WHERE listing_id = $1`, l.ID); err != nil {
				return fmt.Errorf("delete capes: %w", err)
			}
			if err := insertCapes(ctx, tx, l.ID, l.Capes); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdatePrice overwrites both price columns.
func (r *ListingRepository) UpdatePrice(ctx context.Context, id uuid.UUID, currentOffer, bin *float64) error {
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE listings SET price_current_offer = $1, price_bin = $2 WHERE id = $3`,
		nullFloat(currentOffer), nullFloat(bin), id)
	if err != nil {
		return fmt.Errorf("update listing price: %w", err)
	}
	return requireRow(res)
}

// Delete removes a listing; the capes FK cascades.
func (r *ListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	return requireRow(res)
}

// DeleteRecentPending removes up to count of the newest PENDING listings and
// returns the deleted ids.
func (r *ListingRepository) DeleteRecentPending(ctx context.Context, count int) ([]uuid.UUID, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		DELETE FROM listings
		WHERE id IN (
			SELECT id FROM listings WHERE status = $1
			ORDER BY created_at DESC LIMIT $2
		)
		RETURNING id`,
		models.StatusPending.String(), count)
	if err != nil {
		return nil, fmt.Errorf("delete recent pending: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan deleted id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deleted ids: %w", err)
	}
	return ids, nil
}

// capesFor loads cape rows for the given listing ids, grouped by owner.
func (r *ListingRepository) capesFor(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]models.Cape, error) {
	out := make(map[uuid.UUID][]models.Cape, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	rows, err := r.db.DB().QueryContext(ctx, fmt.Sprintf(
		`SELECT id, listing_id, name FROM capes WHERE listing_id IN (%s) ORDER BY name`,
		strings.Join(placeholders, ", ")), args...)
	if err != nil {
		return nil, fmt.Errorf("query capes: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	for rows.Next() {
		var c models.Cape
		if err := rows.Scan(&c.ID, &c.ListingID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan cape: %w", err)
		}
		out[c.ListingID] = append(out[c.ListingID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate capes: %w", err)
	}
	return out, nil
}

func insertCapes(ctx context.Context, tx *sql.Tx, listingID uuid.UUID, capes []models.Cape) error {
	for _, c := range capes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO capes (id, listing_id, name) VALUES ($1, $2, $3)`,
			c.ID, listingID, c.Name); err != nil {
			return fmt.Errorf("insert cape %s: %w", c.Name, err)
		}
	}
	return nil
}

func (r *ListingRepository) publishSubmitted(tx *sql.Tx, l *models.Listing) error {
	event := domainevents.ListingSubmittedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ListingID:  l.ID,
		Username:   l.Username.String(),
		OccurredAt: l.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicListingSubmitted, msg)
}

// priceClause builds "(col IS NOT NULL AND col >= $n AND col <= $m)" with
// whichever bounds are present.
func priceClause(col string, min, max *float64, arg func(any) string) string {
	parts := []string{col + " IS NOT NULL"}
	if min != nil {
		parts = append(parts, col+" >= "+arg(*min))
	}
	if max != nil {
		parts = append(parts, col+" <= "+arg(*max))
	}
	return "(" + strings.Join(parts, " AND ") + ")"
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (*models.Listing, error) {
	var (
		l         models.Listing
		username  string
		offer     sql.NullFloat64
		bin       sql.NullFloat64
		currency  string
		types     string
		status    string
		createdAt time.Time
	)
	if err := row.Scan(
		&l.ID, &username, &l.Description, &offer, &bin, &currency, &types,
		&l.NameChanges, &l.OGUProfileURL, &l.ContactDiscord, &l.ContactTelegram,
		&l.TicketNumber, &l.OwnerVerified, &l.IdentityVerified, &status, &createdAt,
	); err != nil {
		return nil, err
	}

	l.Username = models.Username(username)
	if offer.Valid {
		l.PriceCurrentOffer = &offer.Float64
	}
	if bin.Valid {
		l.PriceBin = &bin.Float64
	}
	l.Currency = models.CurrencyCode(currency)
	if types != "" {
		l.AccountTypes = strings.Split(types, accountTypeSeparator)
	}
	st, err := models.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	l.Status = st
	l.CreatedAt = createdAt
	return &l, nil
}

// requireRow converts a zero-rows-affected result into ErrListingNotFound so
// update and delete paths surface missing rows the same way lookups do.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return listingdomain.ErrListingNotFound
	}
	return nil
}
