package theme

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jrsteele09/isp-console/storage"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == Light || t == Dark
}

func Parse(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid theme %q: must be light or dark", s)
	}
	return t, nil
}

// Preference reports the system theme, or false when it is unknown.
type Preference func() (Theme, bool)

type Service struct {
	repo   storage.Repo
	system Preference
}

type Option func(*Service)

func WithSystemPreference(p Preference) Option {
	return func(s *Service) {
		s.system = p
	}
}

func NewService(repo storage.Repo, options ...Option) *Service {
	s := &Service{repo: repo, system: TerminalPreference}
	for _, o := range options {
		o(s)
	}
	return s
}

// Get returns the stored theme, then the system preference, then Dark.
func (s *Service) Get() Theme {
	if v, err := s.repo.Get(storage.ThemeKey); err == nil {
		if t, err := Parse(v); err == nil {
			return t
		}
	}
	if s.system != nil {
		if t, ok := s.system(); ok {
			return t
		}
	}
	return Dark
}

func (s *Service) Set(t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("invalid theme %q: must be light or dark", t)
	}
	return s.repo.Set(storage.ThemeKey, string(t))
}

func (s *Service) Toggle() (Theme, error) {
	next := Light
	if s.Get() == Light {
		next = Dark
	}
	return next, s.Set(next)
}

// TerminalPreference reads the background colour from COLORFGBG ("fg;bg").
// Backgrounds 7 and 15 are light terminals.
func TerminalPreference() (Theme, bool) {
	v := os.Getenv("COLORFGBG")
	if v == "" {
		return "", false
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return "", false
	}
	if bg == 7 || bg == 15 {
		return Light, true
	}
	return Dark, true
}
