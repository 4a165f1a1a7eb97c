package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/hellohellohell0/mcmarket/pkg/cache"
	"github.com/hellohellohell0/mcmarket/pkg/logger"
	domain "github.com/hellohellohell0/mcmarket/services/listing/domain"
	domainevents "github.com/hellohellohell0/mcmarket/services/listing/domain/events"
	"github.com/hellohellohell0/mcmarket/services/listing/domain/models"
	"github.com/hellohellohell0/mcmarket/services/listing/domain/repositories"
	domainsvcs "github.com/hellohellohell0/mcmarket/services/listing/domain/services"
)

// AdminGate is the binary authorization check every moderation and
// catalog-management operation consults. Implementations must fail closed.
type AdminGate interface {
	IsAdmin(ctx context.Context) bool
}

// EventPublisher publishes listing lifecycle events. *events.EventBus
// satisfies it; tests pass nil or a recorder.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// FieldEdit carries a moderator's partial field edit. Nil pointers leave the
// stored value untouched; Capes non-nil replaces the cape set wholesale.
type FieldEdit struct {
	Username         *string
	Description      *string
	Currency         *string
	AccountTypes     []string
	Capes            []string
	NameChanges      *int
	TicketNumber     *string
	OwnerVerified    *bool
	IdentityVerified *bool
}

// ListingService orchestrates submission, catalog search, and moderation of
// listings. All mutation flows through the repository; the Redis read model
// is invalidated or warmed around it.
type ListingService struct {
	repo  repositories.ListingRepository
	cache *pkgcache.ListingCache
	gate  AdminGate
	bus   EventPublisher
	log   logger.Logger
}

// NewListingService wires a ListingService. cache and bus may be nil (tests,
// worker-less deployments); gate must not be.
func NewListingService(
	repo repositories.ListingRepository,
	cache *pkgcache.ListingCache,
	gate AdminGate,
	bus EventPublisher,
	log logger.Logger,
) *ListingService {
	return &ListingService{repo: repo, cache: cache, gate: gate, bus: bus, log: log}
}

// Submit validates a public submission and persists it in PENDING status.
// The repository publishes ListingSubmittedEvent inside the insert transaction.
func (s *ListingService) Submit(ctx context.Context, raw domainsvcs.RawSubmission) (*models.Listing, error) {
	l, err := domainsvcs.ValidateSubmission(raw, domainsvcs.SubmissionOptions{})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("save listing: %w", err)
	}
	return l, nil
}

// CreateApproved is the moderator-authored intake: the same validation with
// BIN and ticket optional, created directly in APPROVED status.
func (s *ListingService) CreateApproved(ctx context.Context, raw domainsvcs.RawSubmission) (*models.Listing, error) {
	if !s.gate.IsAdmin(ctx) {
		return nil, domain.ErrNotAuthorized
	}
	l, err := domainsvcs.ValidateSubmission(raw, domainsvcs.SubmissionOptions{AdminAuthored: true})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("save listing: %w", err)
	}
	return l, nil
}

// Search is the public catalog query: fetch a superset from the store scoped
// to APPROVED (with whatever extra predicates the store pushes down), apply
// the canonical filter to every candidate, then sort. The full matching set
// is returned; there is no pagination contract.
func (s *ListingService) Search(ctx context.Context, criteria domainsvcs.Criteria, sortKey domainsvcs.SortKey) ([]*models.Listing, error) {
	approved := models.StatusApproved
	filter := repositories.StoreFilter{
		Status:    &approved,
		CapeNames: criteria.Capes,
		MinPrice:  criteria.MinPrice,
		MaxPrice:  criteria.MaxPrice,
	}
	if criteria.MaxNameChanges != nil && *criteria.MaxNameChanges < models.NameChangesSentinel {
		filter.MaxNameChanges = criteria.MaxNameChanges
	}

	candidates, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}

	// The store may have returned a superset; the canonical predicate is the
	// single place the filter semantics live.
	matched := make([]*models.Listing, 0, len(candidates))
	for _, l := range candidates {
		if l.Status != models.StatusApproved {
			continue
		}
		if domainsvcs.MatchesCriteria(l, criteria) {
			matched = append(matched, l)
		}
	}

	domainsvcs.SortListings(matched, sortKey)
	return matched, nil
}

// GetByID retrieves a single listing using a read-through cache pattern:
// Redis first, then the store, warming the cache asynchronously on a miss.
func (s *ListingService) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil {
			return cached, nil
		} else if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "listing cache read failed", "listing_id", id, "error", err)
		}
	}

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}

	if s.cache != nil {
		go func() {
			if err := s.cache.Set(context.Background(), l); err != nil {
				s.log.Warn("listing cache warm failed", "listing_id", l.ID, "error", err)
			}
		}()
	}
	return l, nil
}

// ListByStatus is the moderation dashboard query. A nil status returns
// everything, newest first.
func (s *ListingService) ListByStatus(ctx context.Context, status *models.Status) ([]*models.Listing, error) {
	if !s.gate.IsAdmin(ctx) {
		return nil, domain.ErrNotAuthorized
	}
	ls, err := s.repo.Find(ctx, repositories.StoreFilter{Status: status})
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	return ls, nil
}

// Approve transitions a listing to APPROVED (from PENDING or REJECTED).
func (s *ListingService) Approve(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	return s.transition(ctx, id, models.StatusApproved, domainevents.TopicListingApproved)
}

// Reject transitions a listing to REJECTED (from PENDING or APPROVED; the
// latter is the "un-list" action).
func (s *ListingService) Reject(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	return s.transition(ctx, id, models.StatusRejected, domainevents.TopicListingRejected)
}

// transition runs the moderation state machine behind the authorization gate.
// The listing is read, transitioned in memory, and written back; a same-state
// request short-circuits as a no-op success without touching the store.
func (s *ListingService) transition(ctx context.Context, id uuid.UUID, to models.Status, topic string) (*models.Listing, error) {
	if !s.gate.IsAdmin(ctx) {
		return nil, domain.ErrNotAuthorized
	}

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}

	if l.Status == to {
		return l, nil
	}
	if err := domainsvcs.Transition(l, to); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, l.Status); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	s.invalidate(ctx, id)
	s.publishStatusChanged(ctx, topic, l)
	return l, nil
}

// Delete removes a listing and, by cascade, its capes.
func (s *ListingService) Delete(ctx context.Context, id uuid.UUID) error {
	if !s.gate.IsAdmin(ctx) {
		return domain.ErrNotAuthorized
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get listing: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	s.invalidate(ctx, id)
	s.publishDeleted(ctx, id)
	return nil
}

// PurgeRecentPending bulk-deletes up to count of the newest PENDING
// submissions and returns the deleted IDs (spam cleanup).
func (s *ListingService) PurgeRecentPending(ctx context.Context, count int) ([]uuid.UUID, error) {
	if !s.gate.IsAdmin(ctx) {
		return nil, domain.ErrNotAuthorized
	}
	if count <= 0 {
		return nil, nil
	}
	ids, err := s.repo.DeleteRecentPending(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("purge pending: %w", err)
	}
	for _, id := range ids {
		s.invalidate(ctx, id)
		s.publishDeleted(ctx, id)
	}
	return ids, nil
}

// EditFields applies a moderator's partial edit. A non-nil Capes slice
// replaces the cape set wholesale; everything else overwrites only when set.
func (s *ListingService) EditFields(ctx context.Context, id uuid.UUID, edit FieldEdit) (*models.Listing, error) {
	if !s.gate.IsAdmin(ctx) {
		return nil, domain.ErrNotAuthorized
	}

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}

	if err := applyEdit(l, edit); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, l, edit.Capes != nil); err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}
	s.invalidate(ctx, id)
	return l, nil
}

// EditPrice overwrites both prices. A zero current offer normalizes to "no
// offer", matching submission semantics; nil clears either price.
func (s *ListingService) EditPrice(ctx context.Context, id uuid.UUID, currentOffer, bin *float64) (*models.Listing, error) {
	if !s.gate.IsAdmin(ctx) {
		return nil, domain.ErrNotAuthorized
	}

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}

	if currentOffer != nil {
		if *currentOffer < 0 {
			return nil, domain.NewValidationError("price_current_offer", "current offer must not be negative")
		}
		if *currentOffer == 0 {
			currentOffer = nil
		}
	}
	if bin != nil && *bin < 0 {
		return nil, domain.NewValidationError("price_bin", "BIN price must not be negative")
	}

	l.PriceCurrentOffer = currentOffer
	l.PriceBin = bin
	if err := s.repo.UpdatePrice(ctx, id, currentOffer, bin); err != nil {
		return nil, fmt.Errorf("update price: %w", err)
	}
	s.invalidate(ctx, id)
	return l, nil
}

func applyEdit(l *models.Listing, edit FieldEdit) error {
	if edit.Username != nil {
		name, err := models.NewUsername(*edit.Username)
		if err != nil {
			return domain.NewValidationError("username", err.Error())
		}
		l.Username = name
	}
	if edit.Description != nil {
		l.Description = *edit.Description
	}
	if edit.Currency != nil {
		code, err := models.ParseCurrencyCode(*edit.Currency)
		if err != nil {
			return domain.NewValidationError("currency", err.Error())
		}
		l.Currency = code
	}
	if edit.AccountTypes != nil {
		// Moderator edits may relax the non-empty submission rule, but not
		// the vocabulary.
		for _, t := range edit.AccountTypes {
			if !models.IsValidAccountType(t) {
				return domain.NewValidationError("account_types", "unknown account type "+t)
			}
		}
		l.AccountTypes = edit.AccountTypes
	}
	if edit.Capes != nil {
		for _, c := range edit.Capes {
			if !models.IsValidCapeName(c) {
				return domain.NewValidationError("capes", "unknown cape "+c)
			}
		}
		l.SetCapes(edit.Capes)
	}
	if edit.NameChanges != nil {
		n := *edit.NameChanges
		if n < 0 {
			return domain.NewValidationError("name_changes", "name change count must not be negative")
		}
		if n > models.NameChangesSentinel {
			n = models.NameChangesSentinel
		}
		l.NameChanges = n
	}
	if edit.TicketNumber != nil {
		l.TicketNumber = *edit.TicketNumber
	}
	if edit.OwnerVerified != nil {
		l.OwnerVerified = *edit.OwnerVerified
	}
	if edit.IdentityVerified != nil {
		l.IdentityVerified = *edit.IdentityVerified
	}
	return nil
}

func (s *ListingService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.WarnContext(ctx, "listing cache invalidation failed", "listing_id", id, "error", err)
	}
}

func (s *ListingService) publishStatusChanged(ctx context.Context, topic string, l *models.Listing) {
	if s.bus == nil {
		return
	}
	evt := domainevents.ListingStatusChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ListingID:  l.ID,
		Status:     l.Status.String(),
		OccurredAt: time.Now().UTC(),
	}
	s.publish(ctx, topic, evt)
}

func (s *ListingService) publishDeleted(ctx context.Context, id uuid.UUID) {
	if s.bus == nil {
		return
	}
	evt := domainevents.ListingDeletedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ListingID:  id,
		OccurredAt: time.Now().UTC(),
	}
	s.publish(ctx, domainevents.TopicListingDeleted, evt)
}

// publish is best-effort: moderation already committed, so a publish failure
// is logged, not surfaced to the caller.
func (s *ListingService) publish(ctx context.Context, topic string, evt any) {
	payload, err := json.Marshal(evt)
	if err != nil {
		s.log.ErrorContext(ctx, "marshal listing event", "topic", topic, "error", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.bus.Publish(ctx, topic, msg); err != nil {
		s.log.ErrorContext(ctx, "publish listing event", "topic", topic, "error", err)
	}
}
