package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hnrobert/envportal/internal/atomicfile"
)

var ErrInvalidConfig = errors.New("invalid site config")

const defaultInstanceTTL = 30 * time.Minute

// NavLink is one entry of the navigation bar.
type NavLink struct {
	Name string `yaml:"name" json:"name"`
	To   string `yaml:"to" json:"to"`
}

// Navigation is the brand plus the links shown next to it.
type Navigation struct {
	Brand NavLink   `yaml:"brand" json:"brand"`
	Links []NavLink `yaml:"links" json:"links"`
}

// Site is the presentation configuration shared by every page.
type Site struct {
	Brand          NavLink       `yaml:"brand"`
	SignedOutLinks []NavLink     `yaml:"signed_out_links"`
	SignedInLinks  []NavLink     `yaml:"signed_in_links"`
	PortalMarkdown string        `yaml:"portal_markdown,omitempty"`
	FooterMarkdown string        `yaml:"footer_markdown,omitempty"`
	InstanceTTL    time.Duration `yaml:"instance_ttl,omitempty"`
}

// Navigation returns the bar for a signed-in or signed-out visitor.
func (s Site) Navigation(signedIn bool) Navigation {
	links := s.SignedOutLinks
	if signedIn {
		links = s.SignedInLinks
	}
	return Navigation{Brand: s.Brand, Links: append([]NavLink(nil), links...)}
}

// Validate checks the fields pages rely on.
func (s Site) Validate() error {
	if strings.TrimSpace(s.Brand.Name) == "" {
		return fmt.Errorf("%w: brand name is required", ErrInvalidConfig)
	}
	for _, group := range [][]NavLink{{s.Brand}, s.SignedOutLinks, s.SignedInLinks} {
		for _, l := range group {
			if strings.TrimSpace(l.Name) == "" {
				return fmt.Errorf("%w: link without name", ErrInvalidConfig)
			}
			if !strings.HasPrefix(l.To, "/") {
				return fmt.Errorf("%w: link %q must point to a local path", ErrInvalidConfig, l.Name)
			}
		}
	}
	if s.InstanceTTL < 0 {
		return fmt.Errorf("%w: instance_ttl must not be negative", ErrInvalidConfig)
	}
	return nil
}

// DefaultSite is written by Ensure when no config file exists.
func DefaultSite() Site {
	return Site{
		Brand: NavLink{Name: "Environment Platform", To: "/"},
		SignedOutLinks: []NavLink{
			{Name: "Home", To: "/"},
			{Name: "Login", To: "/login"},
			{Name: "Signup", To: "/signup"},
		},
		SignedInLinks: []NavLink{
			{Name: "Home", To: "/"},
			{Name: "Reset Password", To: "/passwordreset"},
		},
		PortalMarkdown: "## Welcome\n\nSign in to manage your environments, or create an account to get started.\n",
		FooterMarkdown: "**© Environment Platform, 2020. All rights Reserved.**",
		InstanceTTL:    defaultInstanceTTL,
	}
}

func withDefaults(s Site) Site {
	def := DefaultSite()
	if s.Brand.Name == "" {
		s.Brand = def.Brand
	}
	if s.Brand.To == "" {
		s.Brand.To = "/"
	}
	if s.SignedOutLinks == nil {
		s.SignedOutLinks = def.SignedOutLinks
	}
	if s.SignedInLinks == nil {
		s.SignedInLinks = def.SignedInLinks
	}
	if s.InstanceTTL == 0 {
		s.InstanceTTL = def.InstanceTTL
	}
	return s
}

// Store reads and writes the site config file.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the config location inside dataDir.
func DefaultPath(dataDir string) string {
	if dataDir == "" {
		dataDir = "."
	}
	return filepath.Join(dataDir, "site.yaml")
}

func (s *Store) Path() string {
	return s.path
}

// Ensure writes DefaultSite when the file does not exist yet.
func (s *Store) Ensure() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s.saveLocked(DefaultSite())
		}
		return err
	}
	return nil
}

// Get loads the site config with defaults applied and validates it.
func (s *Store) Get() (Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	site, err := s.getLocked()
	if err != nil {
		return Site{}, err
	}
	if err := site.Validate(); err != nil {
		return Site{}, fmt.Errorf("%s: %w", s.path, err)
	}
	return site, nil
}

// Save validates and atomically replaces the config file.
func (s *Store) Save(site Site) error {
	if err := site.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(site)
}

func (s *Store) getLocked() (Site, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSite(), nil
		}
		return Site{}, err
	}
	if len(b) == 0 {
		return DefaultSite(), nil
	}
	var site Site
	if err := yaml.Unmarshal(b, &site); err != nil {
		return Site{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, s.path, err)
	}
	return withDefaults(site), nil
}

func (s *Store) saveLocked(site Site) error {
	b, err := yaml.Marshal(site)
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(s.path, b, 0o644)
}
