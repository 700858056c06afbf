package devserver

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/isp-console/internal/config"
	"github.com/jrsteele09/isp-console/organizations"
	"github.com/jrsteele09/isp-console/roles"
	"github.com/jrsteele09/isp-console/token"
	"github.com/jrsteele09/isp-console/token/jwt"
	"github.com/jrsteele09/isp-console/token/refresh"
	"github.com/jrsteele09/isp-console/users"
)

// APIPrefix is where the REST API is mounted.
const APIPrefix = "/api/v1"

// Repos groups the stores behind the dev backend.
type Repos struct {
	Users         users.UserRepo
	Roles         roles.Repo
	Organizations organizations.Repo
	RefreshTokens refresh.Repo
}

type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	repos   Repos
	access  *jwt.Creator
	refresh *refresh.Manager
	nowTime func() time.Time
}

type Option func(*Server)

// WithNowTime sets the clock used for token issue and expiry (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Server) {
		s.nowTime = nowFunc
	}
}

func New(cfg config.Config, repos Repos, options ...Option) (*Server, error) {
	if repos.Users == nil || repos.Roles == nil || repos.Organizations == nil || repos.RefreshTokens == nil {
		return nil, fmt.Errorf("[devserver.New] every repo is required")
	}

	s := &Server{
		env:     cfg.GetEnv(),
		mux:     http.NewServeMux(),
		config:  cfg,
		repos:   repos,
		nowTime: time.Now,
	}
	for _, option := range options {
		option(s)
	}

	secret := cfg.GetJWTSecret()
	if secret == "" {
		secret = randomHex(32)
		log.Warn().Msg("no devserver.jwt_secret configured, tokens will not survive a restart")
	}
	signer, err := token.NewHMACSigner(secret)
	if err != nil {
		return nil, fmt.Errorf("[devserver.New] %w", err)
	}
	s.access = jwt.NewCreator(signer, cfg.GetAccessTokenExpiry(), jwt.WithNowTime(s.nowTime))
	s.refresh = refresh.NewManager(repos.RefreshTokens, cfg.GetRefreshTokenExpiry(), refresh.WithNowTime(s.nowTime))

	if _, err := s.InitialiseSystem(); err != nil {
		return nil, fmt.Errorf("[devserver.New] failed to initialise the system: %w", err)
	}

	s.initRoutes()
	s.logRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler http.HandlerFunc) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
