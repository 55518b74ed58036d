package handler

import (
	"context"

	"github.com/dosmed/drug-ordering-system/internal/core/domain"
	"github.com/dosmed/drug-ordering-system/internal/core/ports"
)

// stubService lets each test wire only the methods it exercises; an
// unexpected call panics with a nil function, which is the point.
type stubService struct {
	loginFn          func(ctx context.Context, username, pwd, handle string) (*domain.User, error)
	logoutFn         func(ctx context.Context, username string)
	provisionFn      func(ctx context.Context, user *domain.User, plaintext string) (*domain.User, error)
	importFn         func(ctx context.Context, user *domain.User) (*domain.User, error)
	changePasswordFn func(ctx context.Context, userID int64, oldPwd, newPwd string) bool
	updateUserFn     func(ctx context.Context, user *domain.User) bool
	availableFn      func(ctx context.Context) []ports.DrugProjection
	addDrugFn        func(ctx context.Context, drug *domain.Drug) (*domain.Drug, error)
	updateDrugFn     func(ctx context.Context, drug *domain.Drug) bool
	removeDrugFn     func(ctx context.Context, drugID int64) bool
	placeOrderFn     func(ctx context.Context, order *domain.Order) bool
	ordersFn         func(ctx context.Context) []ports.OrderProjection
	completeOrderFn  func(ctx context.Context, orderID int64)
	cancelOrderFn    func(ctx context.Context, orderID int64)
}

func (s *stubService) Login(ctx context.Context, username, pwd, handle string) (*domain.User, error) {
	return s.loginFn(ctx, username, pwd, handle)
}

func (s *stubService) Logout(ctx context.Context, username string) {
	s.logoutFn(ctx, username)
}

func (s *stubService) ProvisionUser(ctx context.Context, user *domain.User, plaintext string) (*domain.User, error) {
	return s.provisionFn(ctx, user, plaintext)
}

func (s *stubService) ImportUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	return s.importFn(ctx, user)
}

func (s *stubService) ChangePassword(ctx context.Context, userID int64, oldPwd, newPwd string) bool {
	return s.changePasswordFn(ctx, userID, oldPwd, newPwd)
}

func (s *stubService) UpdateUser(ctx context.Context, user *domain.User) bool {
	return s.updateUserFn(ctx, user)
}

func (s *stubService) AvailableDrugs(ctx context.Context) []ports.DrugProjection {
	return s.availableFn(ctx)
}

func (s *stubService) AddDrug(ctx context.Context, drug *domain.Drug) (*domain.Drug, error) {
	return s.addDrugFn(ctx, drug)
}

func (s *stubService) UpdateDrug(ctx context.Context, drug *domain.Drug) bool {
	return s.updateDrugFn(ctx, drug)
}

func (s *stubService) RemoveDrug(ctx context.Context, drugID int64) bool {
	return s.removeDrugFn(ctx, drugID)
}

func (s *stubService) PlaceOrder(ctx context.Context, order *domain.Order) bool {
	return s.placeOrderFn(ctx, order)
}

func (s *stubService) Orders(ctx context.Context) []ports.OrderProjection {
	return s.ordersFn(ctx)
}

func (s *stubService) CompleteOrder(ctx context.Context, orderID int64) {
	s.completeOrderFn(ctx, orderID)
}

func (s *stubService) CancelOrder(ctx context.Context, orderID int64) {
	s.cancelOrderFn(ctx, orderID)
}
