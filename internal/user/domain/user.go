package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrUserTypeInUse      = errors.New("user type is assigned to users")
)

// MinPasswordLength is the shortest accepted staff password
const MinPasswordLength = 6

// User is a staff account. Its user type decides which pages it can open.
type User struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"not null"`
	Mobile    string          `json:"mobile"`
	Email     string          `json:"email" gorm:"index"`
	Username  string          `json:"username" gorm:"uniqueIndex;not null"`
	Password  string          `json:"-" gorm:"not null"`
	Address   string          `json:"address"`
	UserType  string          `json:"user_type" gorm:"type:varchar(64);not null;index"`
	UserPay   decimal.Decimal `json:"user_pay" gorm:"type:decimal(12,2);not null;default:0"`
	IsActive  bool            `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// UserType is a named set of pages
type UserType struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"user_type" gorm:"type:varchar(64);uniqueIndex;not null"`
	Pages     PageList  `json:"pages" gorm:"type:text;not null"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (UserType) TableName() string {
	return "user_types"
}

// PageList is stored as a JSON array
type PageList []string

// Value implements driver.Valuer
func (p PageList) Value() (driver.Value, error) {
	if p == nil {
		p = PageList{}
	}
	b, err := json.Marshal([]string(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (p *PageList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = PageList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("pages: unsupported column type %T", src)
	}
	var pages []string
	if err := json.Unmarshal(raw, &pages); err != nil {
		return fmt.Errorf("pages: %w", err)
	}
	*p = pages
	return nil
}

// Grants reports whether page is in the list
func (p PageList) Grants(page string) bool {
	for _, granted := range p {
		if granted == page {
			return true
		}
	}
	return false
}

// ListFilter narrows user listings
type ListFilter struct {
	Search   string
	UserType string
	Limit    int
	Offset   int
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]User, error)
	// Update writes the profile fields; the password and active flag have
	// their own setters.
	Update(ctx context.Context, user *User) error
	SetPassword(ctx context.Context, id uint, hash string) error
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	CountByType(ctx context.Context, userType string) (int64, error)
}

// UserTypeRepository defines the contract for user type data access
type UserTypeRepository interface {
	Create(ctx context.Context, userType *UserType) error
	FindByID(ctx context.Context, id uint) (*UserType, error)
	FindByName(ctx context.Context, name string) (*UserType, error)
	List(ctx context.Context) ([]UserType, error)
	Update(ctx context.Context, userType *UserType) error
	Delete(ctx context.Context, id uint) error
}
