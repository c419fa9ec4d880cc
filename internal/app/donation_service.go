package app

import (
	"context"
	"fmt"
	"regexp"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"memematch-service/internal/domain"
)

var (
	donateCommandRe = regexp.MustCompile(`(?i)donate\s+(\d+\.?\d*)\s+ETH\s+to\s+developer`)
	addressRe       = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

	// Donation bounds, inclusive. The floor keeps spam dust out, the
	// ceiling catches fat-fingered amounts.
	minDonation = decimal.RequireFromString("0.0001")
	maxDonation = decimal.NewFromInt(100)
)

// DonationService validates donation commands, converts amounts to wei, and
// persists the donation row.
type DonationService struct {
	store     ResultStore
	toAddress string
	log       zerolog.Logger
}

func NewDonationService(store ResultStore, developerAddress string, log zerolog.Logger) *DonationService {
	return &DonationService{
		store:     store,
		toAddress: developerAddress,
		log:       log.With().Str("component", "donations").Logger(),
	}
}

// DonationRequest is one donation attempt from a signed-in wallet.
type DonationRequest struct {
	Command       string
	SignerAddress string
	DonateToDev   bool
	TxHash        string
}

// ParseCommand extracts the amount from a "donate <amount> ETH to developer"
// command.
func ParseCommand(command string) (string, error) {
	m := donateCommandRe.FindStringSubmatch(command)
	if m == nil {
		return "", domain.ErrInvalidCommand
	}
	return m[1], nil
}

// ValidAddress reports whether addr looks like a hex wallet address.
func ValidAddress(addr string) bool {
	return addressRe.MatchString(addr)
}

// Quote validates a decimal amount string against the donation bounds and
// converts it to wei (10^18 smallest units) with exact decimal arithmetic.
func (s *DonationService) Quote(amount string) (domain.DonationQuote, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.DonationQuote{}, domain.ErrInvalidAmount
	}
	if d.LessThan(minDonation) {
		return domain.DonationQuote{}, domain.ErrAmountTooSmall
	}
	if d.GreaterThan(maxDonation) {
		return domain.DonationQuote{}, domain.ErrAmountTooLarge
	}
	return domain.DonationQuote{
		ToAddress: s.toAddress,
		AmountWei: d.Shift(18).Truncate(0).String(),
		Currency:  "ETH",
	}, nil
}

// Donate runs the full flow: parse the command, validate addresses and
// amount, persist the donation, and return the destination quote. Every
// validation failure is surfaced once, never retried.
func (s *DonationService) Donate(ctx context.Context, req DonationRequest) (domain.DonationQuote, error) {
	amount, err := ParseCommand(req.Command)
	if err != nil {
		return domain.DonationQuote{}, err
	}
	if !ValidAddress(req.SignerAddress) || !ValidAddress(s.toAddress) {
		return domain.DonationQuote{}, domain.ErrInvalidAddress
	}

	quote, err := s.Quote(amount)
	if err != nil {
		return domain.DonationQuote{}, err
	}

	devDonation := "0"
	if req.DonateToDev {
		devDonation = amount
	}
	donation := domain.Donation{
		UserAddress: req.SignerAddress,
		Amount:      amount,
		Currency:    "ETH",
		ToAddress:   s.toAddress,
		DevDonation: devDonation,
		TxHash:      req.TxHash,
	}
	if err := s.store.InsertDonation(ctx, donation); err != nil {
		return domain.DonationQuote{}, fmt.Errorf("save donation: %w", err)
	}

	s.log.Info().Str("amount", amount).Str("to", s.toAddress).Msg("donation recorded")
	return quote, nil
}
