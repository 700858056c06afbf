package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jrsteele09/isp-console/token"
	"github.com/jrsteele09/isp-console/users"
)

const issuer = "isp-console-devserver"

var ErrInvalidAccessToken = errors.New("invalid access token")

// Claims is the verified content of an access token.
type Claims struct {
	Subject   string
	LoginID   string
	UserType  string
	Roles     []string
	ExpiresAt time.Time
	ID        string
}

// Creator issues and verifies access tokens for the dev backend.
type Creator struct {
	signer  token.Signer
	expiry  time.Duration
	nowTime func() time.Time
}

type CreatorOption func(*Creator)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) CreatorOption {
	return func(c *Creator) {
		c.nowTime = nowFunc
	}
}

// NewCreator creates a new JWT creator
func NewCreator(signer token.Signer, expiry time.Duration, options ...CreatorOption) *Creator {
	c := &Creator{
		signer:  signer,
		expiry:  expiry,
		nowTime: time.Now,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// CreateAccessToken creates an access token for user and returns it with its expiry.
func (c *Creator) CreateAccessToken(user *users.User) (string, time.Time, error) {
	now := c.nowTime()
	exp := now.Add(c.expiry)

	roles := append([]string{string(user.UserType)}, user.Roles...)
	claims := jwtlib.MapClaims{
		"iss":       issuer,
		"sub":       user.ID.String(),
		"login_id":  user.LoginID,
		"user_type": string(user.UserType),
		"roles":     roles,
		"iat":       now.Unix(),
		"exp":       exp.Unix(),
		"jti":       uuid.New().String(),
	}

	signed, err := c.signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks the signature and expiry of rawToken.
func (c *Creator) Verify(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, ErrInvalidAccessToken
	}

	parsed, err := jwtlib.Parse(rawToken, c.signer.GetVerificationKey,
		jwtlib.WithValidMethods([]string{c.signer.GetSigningMethod().Alg()}),
		jwtlib.WithIssuer(issuer),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(c.nowTime),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAccessToken, err)
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.New("error extracting claims from token")
	}

	out := &Claims{}
	out.Subject, _ = claims.GetSubject()
	out.LoginID, _ = claims["login_id"].(string)
	out.UserType, _ = claims["user_type"].(string)
	out.ID, _ = claims["jti"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if roles, ok := claims["roles"].([]any); ok {
		for _, r := range roles {
			if s, ok := r.(string); ok {
				out.Roles = append(out.Roles, s)
			}
		}
	}
	return out, nil
}
