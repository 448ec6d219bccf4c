package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/chainscore/walletauth/core"
	"github.com/chainscore/walletauth/internal/eth"
	"github.com/chainscore/walletauth/ports"
)

// AuthService orchestrates the challenge-response protocol. It holds no
// mutable state of its own; the nonce store is the only shared state in the
// protocol.
type AuthService struct {
	store     ports.NonceStore
	tokenizer ports.Tokenizer
	eventPub  ports.EventPublisher
	logger    *zap.Logger

	nonceTTL time.Duration
}

// NewAuthService creates a new authentication service. eventPub may be nil
// when no event transport is wired.
func NewAuthService(
	store ports.NonceStore,
	tokenizer ports.Tokenizer,
	eventPub ports.EventPublisher,
	logger *zap.Logger,
	nonceTTL time.Duration,
) *AuthService {
	return &AuthService{
		store:     store,
		tokenizer: tokenizer,
		eventPub:  eventPub,
		logger:    logger,
		nonceTTL:  nonceTTL,
	}
}

// GenerateNonce issues a fresh challenge for the address. Any prior pending
// challenge for the same address becomes unusable immediately.
func (s *AuthService) GenerateNonce(ctx context.Context, address string) (*core.Challenge, error) {
	canonical, err := core.ValidateAddress(address)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	value, expiresAt, err := s.store.Store(ctx, canonical, s.nonceTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to store nonce: %w", err)
	}

	s.logger.Debug("challenge issued",
		zap.String("address", canonical),
		zap.Time("expires_at", expiresAt))

	return &core.Challenge{
		Address:   canonical,
		Nonce:     value,
		Message:   core.BuildMessage(canonical, value, now),
		ExpiresAt: expiresAt,
	}, nil
}

// VerifySignature completes the challenge. The check order is fixed and
// load-bearing: message parse, embedded-address match, nonce consumption,
// then signature recovery. Consuming before recovery means a forged
// signature burns the nonce, so one challenge cannot be ground against
// repeatedly; checking the address match first means a submission for the
// wrong wallet leaves the real owner's pending challenge intact.
func (s *AuthService) VerifySignature(ctx context.Context, address, message, signature string) (*core.Session, error) {
	canonical, err := core.ValidateAddress(address)
	if err != nil {
		return nil, err
	}

	nonce, ok := core.ExtractNonce(message)
	if !ok {
		s.logger.Info("verification rejected", zap.String("address", canonical), zap.String("reason", "missing nonce line"))
		return nil, core.ErrMalformedMessage
	}
	embedded, ok := core.ExtractAddress(message)
	if !ok {
		s.logger.Info("verification rejected", zap.String("address", canonical), zap.String("reason", "missing wallet line"))
		return nil, core.ErrMalformedMessage
	}

	embeddedCanonical, err := core.ValidateAddress(embedded)
	if err != nil || embeddedCanonical != canonical {
		s.logger.Info("verification rejected", zap.String("address", canonical), zap.String("reason", "address mismatch"))
		return nil, core.ErrAddressMismatch
	}

	consumed, err := s.store.VerifyAndConsume(ctx, canonical, nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to consume nonce: %w", err)
	}
	if !consumed {
		s.logger.Info("verification rejected", zap.String("address", canonical), zap.String("reason", "invalid or expired nonce"))
		return nil, core.ErrInvalidNonce
	}

	// The signature is checked over the original message text, untouched by
	// the extraction above.
	if !eth.RecoverAndCompare(message, signature, common.HexToAddress(canonical)) {
		s.logger.Info("verification rejected", zap.String("address", canonical), zap.String("reason", "signature recovery mismatch"))
		return nil, core.ErrInvalidSignature
	}

	token, expiresAt, err := s.tokenizer.Issue(canonical)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("wallet authenticated", zap.String("address", canonical))
	s.publishLogin(ctx, canonical)

	return &core.Session{
		Address:   canonical,
		Token:     token,
		IssuedAt:  time.Now(),
		ExpiresAt: expiresAt,
	}, nil
}

// VerifyToken resolves the wallet address behind a session token. Stateless
// and side-effect free; safe on every authenticated request.
func (s *AuthService) VerifyToken(token string) (string, error) {
	return s.tokenizer.Verify(token)
}

// RevokeNonce invalidates an outstanding, never-consumed challenge, e.g.
// when the user cancels the wallet's sign prompt.
func (s *AuthService) RevokeNonce(ctx context.Context, address string) (bool, error) {
	canonical, err := core.ValidateAddress(address)
	if err != nil {
		return false, err
	}

	deleted, err := s.store.Delete(ctx, canonical)
	if err != nil {
		return false, fmt.Errorf("failed to delete nonce: %w", err)
	}
	if deleted {
		s.logger.Debug("challenge revoked", zap.String("address", canonical))
		s.publishNonceRevoked(ctx, canonical)
	}
	return deleted, nil
}

func (s *AuthService) publishLogin(ctx context.Context, address string) {
	if s.eventPub == nil {
		return
	}
	if err := s.eventPub.PublishLogin(ctx, address); err != nil {
		s.logger.Warn("failed to publish login event", zap.String("address", address), zap.Error(err))
	}
}

func (s *AuthService) publishNonceRevoked(ctx context.Context, address string) {
	if s.eventPub == nil {
		return
	}
	if err := s.eventPub.PublishNonceRevoked(ctx, address); err != nil {
		s.logger.Warn("failed to publish revocation event", zap.String("address", address), zap.Error(err))
	}
}
