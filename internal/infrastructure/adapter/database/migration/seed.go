package migration

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/amirhossein-jamali/finquery/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/finquery/internal/domain/port/core"
	"github.com/amirhossein-jamali/finquery/internal/infrastructure/adapter/model"
)

const (
	referencePrefix   = "TXN-"
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceLength   = 8
	demoPassword      = "password"
)

type demoUser struct {
	name    string
	email   string
	country string
	phone   string
	balance string
}

type demoTransaction struct {
	txType         string
	amount         string
	currency       string
	status         string
	description    string
	recipientName  string
	recipientEmail string
}

var demoUsers = []demoUser{
	{"John Doe", "john@example.com", "US", "+1234567890", "1500.75"},
	{"Jane Smith", "jane@example.com", "CA", "+1987654321", "2250.00"},
	{"Bob Johnson", "bob@example.com", "GB", "+44123456789", "875.50"},
}

var demoLedger = []demoTransaction{
	{"FUND_WALLET", "1000.00", "USD", "SUCCESSFUL", "Initial wallet funding", "", ""},
	{"SEND_MONEY", "250.50", "USD", "SUCCESSFUL", "Money transfer to family", "Alice Johnson", "alice@example.com"},
	{"SEND_MONEY", "100.00", "EUR", "PENDING", "Payment for services", "Service Provider", "provider@example.com"},
	{"WITHDRAW", "75.25", "USD", "FAILED", "ATM withdrawal", "", ""},
}

// DemoSeeder provisions the demo users and their ledger into an empty database
type DemoSeeder struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	hash         func(password string) (string, error)
	ledger       []demoTransaction
}

// NewDemoSeeder creates a new demo seeder
func NewDemoSeeder(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *DemoSeeder {
	return &DemoSeeder{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		hash:         hashPassword,
		ledger:       demoLedger,
	}
}

// Seed inserts the demo data unless the users table already has rows
func (s *DemoSeeder) Seed(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		s.logger.Info("Users already present, skipping demo seed", map[string]any{"users": count})
		return nil
	}

	users, err := s.BuildDemoUsers()
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&users).Error
	})
	if err != nil {
		s.logger.Error("Failed to seed demo data", map[string]any{"error": err.Error()})
		return err
	}

	s.logger.Info("Demo data seeded", map[string]any{
		"users":        len(users),
		"transactions": len(users) * len(s.ledger),
	})
	return nil
}

// BuildDemoUsers returns the demo users with their transactions attached
func (s *DemoSeeder) BuildDemoUsers() ([]model.User, error) {
	passwordHash, err := s.hash(demoPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	now := s.timeProvider.Now()
	users := make([]model.User, 0, len(demoUsers))

	for _, du := range demoUsers {
		balance, err := entity.ParseAmount(du.balance)
		if err != nil {
			return nil, fmt.Errorf("demo user %s: %w", du.email, err)
		}
		user := model.User{
			ID:        uuid.New(),
			Name:      du.name,
			Email:     du.email,
			Country:   du.country,
			Phone:     du.phone,
			Balance:   balance,
			Password:  passwordHash,
			CreatedAt: now,
			UpdatedAt: now,
		}

		for _, dt := range s.ledger {
			amount, err := entity.ParseAmount(dt.amount)
			if err != nil {
				return nil, fmt.Errorf("demo transaction %q: %w", dt.description, err)
			}
			reference, err := NewReference()
			if err != nil {
				return nil, err
			}
			description := dt.description
			user.Transactions = append(user.Transactions, model.Transaction{
				ID:             uuid.New(),
				UserID:         user.ID,
				Type:           dt.txType,
				Amount:         amount,
				Currency:       dt.currency,
				Status:         dt.status,
				Reference:      reference,
				Description:    &description,
				RecipientName:  optional(dt.recipientName),
				RecipientEmail: optional(dt.recipientEmail),
				CreatedAt:      now,
				UpdatedAt:      now,
			})
		}

		users = append(users, user)
	}

	return users, nil
}

// NewReference returns a TXN- prefixed reference with eight random uppercase alphanumerics
func NewReference() (string, error) {
	buf := make([]byte, referenceLength)
	limit := big.NewInt(int64(len(referenceAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate reference: %w", err)
		}
		buf[i] = referenceAlphabet[n.Int64()]
	}
	return referencePrefix + string(buf), nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
