package reservation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCustomerName = errors.New("customer name cannot be empty")
	ErrInvalidEmail      = errors.New("invalid customer email")
	ErrEmptyPhone        = errors.New("customer phone cannot be empty")
	ErrNegativePrice     = errors.New("price cannot be negative")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Customer is the contact captured on a hold. There are no customer
// accounts; every reservation carries its own contact details.
type Customer struct {
	name  string
	email string
	phone string
}

func NewCustomer(name, email, phone string) (Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)

	if name == "" {
		return Customer{}, ErrEmptyCustomerName
	}
	if !emailPattern.MatchString(email) {
		return Customer{}, ErrInvalidEmail
	}
	if phone == "" {
		return Customer{}, ErrEmptyPhone
	}

	return Customer{name: name, email: email, phone: phone}, nil
}

func ReconstructCustomer(name, email, phone string) Customer {
	return Customer{name: name, email: email, phone: phone}
}

func (c Customer) Name() string  { return c.name }
func (c Customer) Email() string { return c.email }
func (c Customer) Phone() string { return c.phone }

// Money is a non-negative amount with two decimal places.
type Money struct {
	amount decimal.Decimal
}

func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativePrice
	}
	return Money{amount: amount.Round(2)}, nil
}

func MustMoney(amount decimal.Decimal) Money {
	m, err := NewMoney(amount)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2)
}
