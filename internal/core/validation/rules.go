package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dosmed/drug-ordering-system/internal/core/domain"
	"github.com/dosmed/drug-ordering-system/pkg/password"
)

// orderedAtEpsilon is the tolerance when checking that an order was not
// placed in the future.
const orderedAtEpsilon = 10 * time.Millisecond

var emailPattern = regexp.MustCompile(
	"^[\\w!#$%&'*+/=?`{|}~^-]+(?:\\.[\\w!#$%&'*+/=?`{|}~^-]+)*@(?:[a-zA-Z0-9-]+\\.)+[a-zA-Z]{2,6}$")

// ForUser returns the validator applied before any user write.
func ForUser() Validator[*domain.User] {
	return New(userRules)
}

// ForDrug returns the validator applied before any drug write.
func ForDrug() Validator[*domain.Drug] {
	return New(drugRules)
}

// ForOrder returns the validator applied before any order write.
func ForOrder() Validator[*domain.Order] {
	return New(orderRules)
}

func userRules(u *domain.User) []string {
	var violations []string
	if u.ID < 0 {
		violations = append(violations, "user id can not be negative")
	}
	if len(u.Username) == 0 {
		violations = append(violations, "username property can not be empty")
	}
	if len(u.FirstName) == 0 {
		violations = append(violations, "first name property can not be empty")
	}
	if len(u.LastName) == 0 {
		violations = append(violations, "last name property can not be empty")
	}
	if len(u.PasswordHash) != password.HashLength {
		violations = append(violations, fmt.Sprintf("password hash property must be %d characters long", password.HashLength))
	}
	if len(u.Salt) != password.SaltLength {
		violations = append(violations, fmt.Sprintf("salt property must be %d characters long", password.SaltLength))
	}
	if !emailPattern.MatchString(u.Email) {
		violations = append(violations, "email is invalid")
	}
	return violations
}

func drugRules(d *domain.Drug) []string {
	var violations []string
	if d.ID < 0 {
		violations = append(violations, "drug id can not be negative")
	}
	if len(d.Name) == 0 {
		violations = append(violations, "drug name property can not be empty")
	}
	if d.InStock < 0 {
		violations = append(violations, "drug in stock property can not be negative")
	}
	return violations
}

func orderRules(o *domain.Order) []string {
	var violations []string
	if o.ID < 0 {
		violations = append(violations, "order id can not be negative")
	}
	if o.OrderedBy < 0 {
		violations = append(violations, "order ordered by property can not be negative")
	}
	if o.OrderedAt.After(time.Now().Add(orderedAtEpsilon)) {
		violations = append(violations, "order can not be placed after the current time")
	}
	return violations
}
