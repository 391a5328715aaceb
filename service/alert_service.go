package service

import (
	"fmt"
	"math/rand"
	"time"

	"go-bank-simulator/logger"
	"go-bank-simulator/mail"
	"go-bank-simulator/model"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// OTPChallenge is the state of one issued withdrawal confirmation code. The
// plaintext code exists only in the delivered email; the challenge keeps a
// bcrypt hash for verification. Codes are single-use per challenge and carry
// no expiry or attempt limit.
type OTPChallenge struct {
	AccountID int64
	IssuedAt  time.Time
	codeHash  []byte
}

// Verify reports whether the supplied response matches the issued code.
func (c *OTPChallenge) Verify(code string) bool {
	return bcrypt.CompareHashAndPassword(c.codeHash, []byte(code)) == nil
}

// AlertService delivers OTP codes and low-balance warnings to an account
// holder's registered email address. Delivery failures are logged and
// swallowed; they never abort the operation that triggered them.
type AlertService struct {
	mailer mail.Mailer
}

func NewAlertService(mailer mail.Mailer) *AlertService {
	return &AlertService{mailer: mailer}
}

// IssueOTP generates a random 6-digit code, emails it to the account holder
// and returns the challenge used to verify the response later. A failed
// delivery is logged but still yields a usable challenge, preserving the
// legacy behavior.
func (s *AlertService) IssueOTP(account *model.Account) (*OTPChallenge, error) {
	code := fmt.Sprintf("%06d", rand.Intn(1000000))

	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash OTP code: %w", err)
	}

	subject := "OTP for Withdrawal - Banking Simulator"
	body := fmt.Sprintf("Dear %s,\n\n"+
		"Your OTP for withdrawal is: %s\n"+
		"Do not share this OTP with anyone.\n\n"+
		"Banking Simulator Team", account.OwnerName, code)

	if err := s.mailer.Send(account.Email, subject, body); err != nil {
		logger.Log.WithError(err).WithField("account_id", account.ID).
			Error("Failed to deliver OTP email")
	}

	return &OTPChallenge{
		AccountID: account.ID,
		IssuedAt:  time.Now(),
		codeHash:  codeHash,
	}, nil
}

// SendLowBalanceAlert notifies the account holder that the balance dropped
// below the alert threshold. Fire and forget.
func (s *AlertService) SendLowBalanceAlert(account *model.Account) {
	logger.Log.WithFields(logrus.Fields{
		"account_id": account.ID,
		"balance":    account.Balance.String(),
	}).Warn("Low balance detected, sending alert")

	subject := "Low Balance Alert - Banking Simulator"
	body := fmt.Sprintf("Dear %s,\n\n"+
		"Your account (ID: %d) has a low balance of %s.\n"+
		"Please deposit funds soon to avoid service interruptions.\n\n"+
		"Thank you,\nBanking Simulator Team",
		account.OwnerName, account.ID, account.Balance.StringFixed(2))

	if err := s.mailer.Send(account.Email, subject, body); err != nil {
		logger.Log.WithError(err).WithField("account_id", account.ID).
			Error("Failed to deliver low balance alert")
	}
}
