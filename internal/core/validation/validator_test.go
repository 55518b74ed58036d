package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dosmed/drug-ordering-system/internal/core/domain"
	"github.com/dosmed/drug-ordering-system/pkg/password"
)

func validUser() *domain.User {
	return domain.NewUserBuilder().
		PasswordHash(strings.Repeat("a", password.HashLength)).
		Salt(strings.Repeat("b", password.SaltLength)).
		Build()
}

func TestValidate_ValidEntities(t *testing.T) {
	if err := ForUser().Validate(validUser()); err != nil {
		t.Fatalf("valid user rejected: %v", err)
	}
	if err := ForDrug().Validate(domain.NewDrugBuilder().Build()); err != nil {
		t.Fatalf("valid drug rejected: %v", err)
	}
	if err := ForOrder().Validate(domain.NewOrderBuilder().Build()); err != nil {
		t.Fatalf("valid order rejected: %v", err)
	}
}

func TestValidate_AbsentFieldShortCircuits(t *testing.T) {
	// Nil Drugs map and nil DeliveredAt are both absent fields; the
	// rule phase must never run, even though OrderedBy is negative.
	order := &domain.Order{OrderedBy: -1, OrderedAt: time.Now()}

	err := ForOrder().Validate(order)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if err.Error() != NullPropertiesMessage {
		t.Fatalf("expected fixed null-property message, got %q", err.Error())
	}
}

func TestValidate_ErrorType(t *testing.T) {
	err := ForDrug().Validate(&domain.Drug{ID: -1, Name: "", InStock: 5})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.Error, got %T", err)
	}
}

func TestValidate_RuleFragmentsJoined(t *testing.T) {
	err := ForDrug().Validate(&domain.Drug{ID: -1, Name: "", InStock: -3})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	lines := strings.Split(err.Error(), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 violations, got %d: %q", len(lines), err.Error())
	}
	if strings.HasSuffix(err.Error(), "\n") {
		t.Fatalf("trailing separator must be trimmed: %q", err.Error())
	}
	if lines[0] != "drug id can not be negative" {
		t.Fatalf("rules must run in declaration order, got %q first", lines[0])
	}
}

func TestValidate_UserRules(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*domain.User)
		fragment string
	}{
		{"negative id", func(u *domain.User) { u.ID = -1 }, "user id can not be negative"},
		{"empty username", func(u *domain.User) { u.Username = "" }, "username property can not be empty"},
		{"empty first name", func(u *domain.User) { u.FirstName = "" }, "first name property can not be empty"},
		{"empty last name", func(u *domain.User) { u.LastName = "" }, "last name property can not be empty"},
		{"short hash", func(u *domain.User) { u.PasswordHash = "abc" }, "password hash property must be 64 characters long"},
		{"short salt", func(u *domain.User) { u.Salt = "abc" }, "salt property must be 64 characters long"},
		{"bad email", func(u *domain.User) { u.Email = "not-an-email" }, "email is invalid"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := validUser()
			tc.mutate(u)
			err := ForUser().Validate(u)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.fragment) {
				t.Fatalf("expected fragment %q in %q", tc.fragment, err.Error())
			}
		})
	}
}

func TestValidate_OrderPlacedInFuture(t *testing.T) {
	order := domain.NewOrderBuilder().OrderedAt(time.Now().Add(time.Hour)).Build()

	err := ForOrder().Validate(order)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "order can not be placed after the current time") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestValidate_EmailShapes(t *testing.T) {
	valid := []string{"alice@dos.com", "first.last@sub.example.org", "x_y-z@host.co"}
	invalid := []string{"", "plain", "@host.com", "user@", "user@host", "user@host.toolongtld"}

	for _, email := range valid {
		u := validUser()
		u.Email = email
		if err := ForUser().Validate(u); err != nil {
			t.Fatalf("valid email %q rejected: %v", email, err)
		}
	}
	for _, email := range invalid {
		u := validUser()
		u.Email = email
		if err := ForUser().Validate(u); err == nil {
			t.Fatalf("invalid email %q accepted", email)
		}
	}
}
