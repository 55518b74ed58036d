package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/dosmed/drug-ordering-system/internal/core/domain"
	"github.com/dosmed/drug-ordering-system/internal/core/ports"
	"github.com/dosmed/drug-ordering-system/pkg/password"
)

// DefaultDeliveryETA is applied to an order's DeliveredAt when the
// caller supplies none.
const DefaultDeliveryETA = 24 * time.Hour

// OrderingService orchestrates the repositories, the session registry
// and password hashing. It never bypasses the validator on writes: every
// mutation goes through a repository, which validates first.
type OrderingService struct {
	users    ports.UserRepository
	drugs    ports.DrugRepository
	orders   ports.OrderRepository
	sessions ports.SessionRegistry
	log      zerolog.Logger
}

func NewOrderingService(
	users ports.UserRepository,
	drugs ports.DrugRepository,
	orders ports.OrderRepository,
	sessions ports.SessionRegistry,
	log zerolog.Logger,
) *OrderingService {
	return &OrderingService{
		users:    users,
		drugs:    drugs,
		orders:   orders,
		sessions: sessions,
		log:      log.With().Str("component", "ordering_service").Logger(),
	}
}

// Login verifies the submitted password against the stored salted hash
// and, only then, tries to register a session. Unknown usernames and
// wrong passwords are deliberately indistinguishable.
func (s *OrderingService) Login(ctx context.Context, username, pwd, handle string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		s.log.Info().Str("username", username).Msg("login rejected: no matching user")
		return nil, domain.ErrInvalidCredentials
	}

	if !password.Verify(pwd, user.Salt, user.PasswordHash) {
		s.log.Info().Str("username", username).Msg("login rejected: credential mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.sessions.TryLogin(ctx, username, handle); err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Msg("user logged in")
	return user, nil
}

// Logout drops the user's session; a missing session is only a warning.
func (s *OrderingService) Logout(ctx context.Context, username string) {
	s.sessions.Logout(ctx, username)
}

// ProvisionUser creates an account from a plaintext password: it
// generates a fresh salt, derives the hash and delegates to the
// repository.
func (s *OrderingService) ProvisionUser(ctx context.Context, user *domain.User, plaintext string) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrNilEntity
	}

	user.Salt = password.NewSalt(password.SaltLength)
	user.PasswordHash = password.Hash(plaintext, user.Salt)
	if user.NextPasswordChange.IsZero() {
		user.NextPasswordChange = time.Now().UTC().Add(password.RotationInterval)
	}

	return s.users.Add(ctx, user)
}

// ImportUser creates an account whose hash and salt were computed by the
// caller; the entity is passed through unchanged.
func (s *OrderingService) ImportUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	return s.users.Add(ctx, user)
}

// ChangePassword fails closed: any miss along the way yields false.
func (s *OrderingService) ChangePassword(ctx context.Context, userID int64, oldPwd, newPwd string) bool {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.log.Info().Int64("user_id", userID).Msg("password change rejected: no such user")
		return false
	}

	if !password.Verify(oldPwd, user.Salt, user.PasswordHash) {
		s.log.Info().Int64("user_id", userID).Msg("password change rejected: old password mismatch")
		return false
	}

	user.PasswordHash = password.Hash(newPwd, user.Salt)
	user.NextPasswordChange = time.Now().UTC().Add(password.RotationInterval)

	if _, err := s.users.Update(ctx, user); err != nil {
		s.log.Error().Err(err).Int64("user_id", userID).Msg("password change rejected: update failed")
		return false
	}

	s.log.Info().Int64("user_id", userID).Msg("password changed")
	return true
}

// UpdateUser persists a modified user record.
func (s *OrderingService) UpdateUser(ctx context.Context, user *domain.User) bool {
	if _, err := s.users.Update(ctx, user); err != nil {
		s.log.Warn().Err(err).Msg("user update rejected")
		return false
	}
	return true
}

// AvailableDrugs projects the in-stock catalog for order building.
func (s *OrderingService) AvailableDrugs(ctx context.Context) []ports.DrugProjection {
	drugs, err := s.drugs.GetAvailable(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("listing available drugs failed")
		return []ports.DrugProjection{}
	}

	projections := make([]ports.DrugProjection, 0, len(drugs))
	for _, d := range drugs {
		projections = append(projections, ports.DrugProjection{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			InStock:     d.InStock,
		})
	}
	return projections
}

// AddDrug registers a new catalog entry.
func (s *OrderingService) AddDrug(ctx context.Context, drug *domain.Drug) (*domain.Drug, error) {
	return s.drugs.Add(ctx, drug)
}

// UpdateDrug persists a modified catalog entry.
func (s *OrderingService) UpdateDrug(ctx context.Context, drug *domain.Drug) bool {
	if _, err := s.drugs.Update(ctx, drug); err != nil {
		s.log.Warn().Err(err).Msg("drug update rejected")
		return false
	}
	return true
}

// RemoveDrug deletes a catalog entry.
func (s *OrderingService) RemoveDrug(ctx context.Context, drugID int64) bool {
	if _, err := s.drugs.Remove(ctx, drugID); err != nil {
		s.log.Warn().Err(err).Int64("drug_id", drugID).Msg("drug removal rejected")
		return false
	}
	return true
}

// PlaceOrder defaults the delivery ETA when unset and delegates to the
// transactional placement path. True iff no duplicate collision and no
// failure occurred.
func (s *OrderingService) PlaceOrder(ctx context.Context, order *domain.Order) bool {
	if order == nil {
		s.log.Error().Msg("nil order received")
		return false
	}

	if order.DeliveredAt == nil {
		eta := time.Now().UTC().Add(DefaultDeliveryETA)
		order.DeliveredAt = &eta
	}

	existing, err := s.orders.PlaceOrder(ctx, order)
	if err != nil {
		s.log.Error().Err(err).Msg("order placement failed")
		return false
	}
	if existing != nil {
		s.log.Warn().Int64("order_id", order.ID).Msg("order not placed: id already stored")
		return false
	}

	s.log.Info().Int64("order_id", order.ID).Int("lines", len(order.Drugs)).Msg("order placed")
	return true
}

// Orders projects all orders, resolving the ordering user's id to a
// display name and falling back to the numeric id when the user record
// is missing.
func (s *OrderingService) Orders(ctx context.Context) []ports.OrderProjection {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("listing orders failed")
		return []ports.OrderProjection{}
	}

	projections := make([]ports.OrderProjection, 0, len(orders))
	for _, o := range orders {
		name := strconv.FormatInt(o.OrderedBy, 10)
		if user, err := s.users.GetByID(ctx, o.OrderedBy); err == nil {
			name = user.FullName()
		}
		projections = append(projections, ports.OrderProjection{
			ID:          o.ID,
			OrderedBy:   name,
			Delivered:   o.Delivered,
			OrderedAt:   o.OrderedAt,
			DeliveredAt: o.DeliveredAt,
		})
	}
	return projections
}

// CompleteOrder marks an order delivered. Unknown ids are a no-op.
func (s *OrderingService) CompleteOrder(ctx context.Context, orderID int64) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Error().Err(err).Int64("order_id", orderID).Msg("order completion failed")
		}
		return
	}

	order.Delivered = true
	if _, err := s.orders.Update(ctx, order); err != nil {
		s.log.Error().Err(err).Int64("order_id", orderID).Msg("order completion failed")
		return
	}
	s.log.Info().Int64("order_id", orderID).Msg("order completed")
}

// CancelOrder removes an order and its line items. Unknown ids are a no-op.
func (s *OrderingService) CancelOrder(ctx context.Context, orderID int64) {
	if _, err := s.orders.Remove(ctx, orderID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Error().Err(err).Int64("order_id", orderID).Msg("order cancellation failed")
		}
		return
	}
	s.log.Info().Int64("order_id", orderID).Msg("order cancelled")
}
