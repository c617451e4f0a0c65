package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/entrysync/internal/auth"
	"github.com/dmitrijs2005/entrysync/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/entrysync/internal/common"
	"github.com/dmitrijs2005/entrysync/internal/dbx"
	"github.com/dmitrijs2005/entrysync/internal/logging"
)

const (
	keyToken     = "auth.token"
	keyPrincipal = "auth.principal"
)

// TokenHolder receives the access token for outgoing calls.
type TokenHolder interface {
	SetAccessToken(token string)
}

// SyncSession is the part of the sync orchestrator the session drives.
type SyncSession interface {
	SignIn(ctx context.Context, principal string) error
	SignOut(ctx context.Context) error
}

// SessionService manages the signed-in principal: it keeps the access token
// locally so the device stays signed in across restarts.
type SessionService interface {
	SignIn(ctx context.Context, token string) (string, error)
	Restore(ctx context.Context) (string, error)
	SignOut(ctx context.Context) error
	// SessionEnded forgets the stored token of principal once its sync
	// session ended. The sync engine ends a session on its own when the
	// server rejects the token.
	SessionEnded(ctx context.Context, principal string)
}

type sessionService struct {
	db     dbx.TxBeginner
	meta   func(db dbx.DBTX) metadata.Repository
	conn   dbx.DBTX
	tokens TokenHolder
	sync   SyncSession
	logger logging.Logger
	now    func() time.Time
}

// DB is a database handle that can also start transactions. *sql.DB
// satisfies it.
type DB interface {
	dbx.DBTX
	dbx.TxBeginner
}

func NewSessionService(db DB, tokens TokenHolder, sync SyncSession, logger logging.Logger) SessionService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &sessionService{
		db:     db,
		conn:   db,
		meta:   func(db dbx.DBTX) metadata.Repository { return metadata.NewSQLiteRepository(db) },
		tokens: tokens,
		sync:   sync,
		logger: logger.With("module", "session"),
		now:    time.Now,
	}
}

// SignIn accepts a token issued by the server and starts syncing for its
// principal.
func (s *sessionService) SignIn(ctx context.Context, token string) (string, error) {
	principal, exp, err := auth.PrincipalFromToken(token)
	if err != nil {
		return "", err
	}
	if !exp.IsZero() && !exp.After(s.now()) {
		return "", common.ErrTokenExpired
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.meta(tx)
		if err := repo.Set(ctx, keyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, keyPrincipal, []byte(principal))
	})
	if err != nil {
		return "", fmt.Errorf("saving session: %w", err)
	}

	return principal, s.start(ctx, token, principal)
}

// Restore resumes the stored session, if any. It returns the principal, or
// an empty string when there is nothing to resume.
func (s *sessionService) Restore(ctx context.Context) (string, error) {
	tok, err := s.meta(s.conn).Get(ctx, keyToken)
	if err != nil {
		return "", err
	}
	if tok == nil {
		return "", nil
	}

	principal, exp, err := auth.PrincipalFromToken(string(tok))
	if err == nil && !exp.IsZero() && !exp.After(s.now()) {
		err = common.ErrTokenExpired
	}
	if err != nil {
		s.logger.Info(ctx, "stored session discarded", "error", err)
		return "", s.forget(ctx)
	}

	return principal, s.start(ctx, string(tok), principal)
}

func (s *sessionService) start(ctx context.Context, token, principal string) error {
	s.tokens.SetAccessToken(token)
	if err := s.sync.SignIn(ctx, principal); err != nil {
		return fmt.Errorf("starting sync: %w", err)
	}
	s.logger.Info(ctx, "session started", "principal", principal)
	return nil
}

func (s *sessionService) SignOut(ctx context.Context) error {
	err := s.sync.SignOut(ctx)
	if ferr := s.forget(ctx); ferr != nil {
		err = errors.Join(err, ferr)
	}
	return err
}

func (s *sessionService) forget(ctx context.Context) error {
	s.tokens.SetAccessToken("")
	return s.meta(s.conn).DeletePrefix(ctx, "auth.")
}

// forgetIfCurrent forgets the session only if it still belongs to principal;
// a sign-in of another principal may have replaced it meanwhile.
func (s *sessionService) forgetIfCurrent(ctx context.Context, principal string) error {
	stored, err := s.meta(s.conn).Get(ctx, keyPrincipal)
	if err != nil {
		return err
	}
	if string(stored) != principal {
		return nil
	}
	return s.forget(ctx)
}

func (s *sessionService) SessionEnded(ctx context.Context, principal string) {
	if err := s.forgetIfCurrent(ctx, principal); err != nil {
		s.logger.Error(ctx, "forget session", "principal", principal, "error", err)
	}
}
