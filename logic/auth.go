package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jsreddy3/persona-backend/models"
)

// WorldIDProof is the credential bundle produced by the World App client.
type WorldIDProof struct {
	NullifierHash     string `json:"nullifier_hash" binding:"required"`
	MerkleRoot        string `json:"merkle_root" binding:"required"`
	Proof             string `json:"proof" binding:"required"`
	VerificationLevel string `json:"verification_level" binding:"required"`
}

// Credentials carries whichever credential kind the request presented.
// Resolution precedence is fixed: session token first, proof bundle second.
type Credentials struct {
	SessionToken string
	Proof        *WorldIDProof
	Language     string
}

// AuthLogic resolves request credentials to a user and issues session tokens
type AuthLogic struct {
	userDAO    UserStore
	sessionDAO SessionStore
	verifier   ProofVerifier
	secret     []byte
	sessionTTL time.Duration // 0 means sessions never expire
}

func NewAuthLogic(
	userDAO UserStore,
	sessionDAO SessionStore,
	verifier ProofVerifier,
	secret string,
	sessionTTL time.Duration,
) *AuthLogic {
	return &AuthLogic{
		userDAO:    userDAO,
		sessionDAO: sessionDAO,
		verifier:   verifier,
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
	}
}

// Resolve turns request credentials into a user. A present-but-invalid
// session token fails outright rather than falling through to the proof
// path; the client is expected to retry with proof credentials.
func (l *AuthLogic) Resolve(ctx context.Context, creds Credentials) (*models.User, error) {
	if creds.SessionToken != "" {
		return l.resolveSession(creds.SessionToken)
	}
	if creds.Proof != nil {
		user, _, _, err := l.VerifyAndLogin(ctx, *creds.Proof, creds.Language)
		return user, err
	}
	return nil, ErrUnauthenticated
}

// VerifyAndLogin verifies a World ID proof, upserts the user keyed by the
// nullifier hash and mints a fresh session token. Repeated verification of
// the same identity reuses the existing user row.
func (l *AuthLogic) VerifyAndLogin(ctx context.Context, proof WorldIDProof, language string) (*models.User, string, *time.Time, error) {
	ok, err := l.verifier.Verify(ctx, proof.NullifierHash, proof.MerkleRoot, proof.Proof, proof.VerificationLevel)
	if err != nil {
		log.Error().Err(err).Msg("world id verifier unreachable")
		return nil, "", nil, fmt.Errorf("%w: proof verification failed", ErrUnauthenticated)
	}
	if !ok {
		return nil, "", nil, fmt.Errorf("%w: invalid world id proof", ErrUnauthenticated)
	}

	if language == "" {
		language = "en"
	}
	user, err := l.userDAO.GetUserByWorldID(proof.NullifierHash)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", nil, err
		}
		user, err = l.userDAO.CreateUser(proof.NullifierHash, language)
		if err != nil {
			return nil, "", nil, err
		}
		log.Info().Uint64("user_id", user.ID).Msg("registered new world id user")
	}

	token, expiresAt, err := l.mintSession(user.ID)
	if err != nil {
		return nil, "", nil, err
	}
	return user, token, expiresAt, nil
}

// resolveSession validates a bearer token: signature first, then the stored
// session row and its expiry.
func (l *AuthLogic) resolveSession(token string) (*models.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return l.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid session token", ErrUnauthenticated)
	}

	session, err := l.sessionDAO.GetSession(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown session token", ErrUnauthenticated)
		}
		return nil, err
	}
	if session.Expired(time.Now()) {
		return nil, fmt.Errorf("%w: session expired", ErrUnauthenticated)
	}

	user, err := l.userDAO.GetUserByID(session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: session user missing", ErrUnauthenticated)
		}
		return nil, err
	}
	return user, nil
}

func (l *AuthLogic) mintSession(userID uint64) (string, *time.Time, error) {
	issuedAt := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     issuedAt.Unix(),
	}
	var expiresAt *time.Time
	if l.sessionTTL != 0 {
		exp := issuedAt.Add(l.sessionTTL)
		claims["exp"] = exp.Unix()
		expiresAt = &exp
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(l.secret)
	if err != nil {
		return "", nil, err
	}
	if _, err := l.sessionDAO.CreateSession(tokenString, userID, issuedAt, expiresAt); err != nil {
		return "", nil, err
	}
	return tokenString, expiresAt, nil
}
