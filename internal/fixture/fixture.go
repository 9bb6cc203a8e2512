// Package fixture holds the immutable values interpolated into canned identity responses.
// A Set is loaded once at process start, either from the embedded identity.yaml or from
// an operator-supplied file, and is never modified afterwards.
package fixture

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed identity.yaml
var defaultYAML []byte

// Validation errors.
var (
	ErrMissingToken          = errors.New("fixture: token is required")
	ErrMissingOrganizationID = errors.New("fixture: organization_id is required")
	ErrMissingUserID         = errors.New("fixture: user_id is required")
	ErrInvalidBaseURL        = errors.New("fixture: base_url must be an absolute URL")
	ErrInvalidRedirectURL    = errors.New("fixture: redirect_url must be an absolute URL")
)

// ServiceAccess is one entry of a SCIM user's lastServiceAccessTime list.
type ServiceAccess struct {
	Type  string `yaml:"type" json:"type"`
	Value string `yaml:"value" json:"value"`
}

// Set is a named, versioned group of response values.
type Set struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`

	Token          string `yaml:"token" json:"token"`
	OrganizationID string `yaml:"organization_id" json:"organization_id"`
	UserID         string `yaml:"user_id" json:"user_id"`
	FirstName      string `yaml:"first_name" json:"first_name"`

	BaseURL     string `yaml:"base_url" json:"base_url"`
	RedirectURL string `yaml:"redirect_url" json:"redirect_url"`

	Schemas []string `yaml:"schemas" json:"schemas"`

	Created      string `yaml:"created" json:"created"`
	LastModified string `yaml:"last_modified" json:"last_modified"`

	EmailCheckVersion string `yaml:"email_check_version" json:"email_check_version"`
	ProfileVersion    string `yaml:"profile_version" json:"profile_version"`

	LastServiceAccess []ServiceAccess `yaml:"last_service_access" json:"last_service_access"`
	Attributes        []string        `yaml:"attributes" json:"attributes"`
}

// Default returns the embedded fixture set.
func Default() (*Set, error) {
	set, err := Parse(defaultYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded fixtures: %w", err)
	}
	return set, nil
}

// Load reads a fixture set from path. An empty path yields the embedded default.
func Load(path string) (*Set, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}

	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fixtures %s: %w", path, err)
	}
	return set, nil
}

// Parse decodes and validates a YAML fixture document. Unknown keys are rejected.
func Parse(data []byte) (*Set, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var set Set
	if err := dec.Decode(&set); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// Validate reports the first missing or malformed value.
func (s *Set) Validate() error {
	switch {
	case s.Token == "":
		return ErrMissingToken
	case s.OrganizationID == "":
		return ErrMissingOrganizationID
	case s.UserID == "":
		return ErrMissingUserID
	case !isAbsoluteURL(s.BaseURL):
		return ErrInvalidBaseURL
	case !isAbsoluteURL(s.RedirectURL):
		return ErrInvalidRedirectURL
	}
	return nil
}

// Ping lets the readiness check treat the fixture set as a dependency.
func (s *Set) Ping(ctx context.Context) error {
	if s == nil {
		return errors.New("fixture: not loaded")
	}
	return s.Validate()
}

// EmailCheckURL is the canonical location of the EmailCheck action.
func (s *Set) EmailCheckURL() string {
	return strings.TrimSuffix(s.BaseURL, "/") + "/identity/config/v2/actions/EmailCheck/invoke"
}

// UserLocation is the canonical SCIM location of the fixture user.
func (s *Set) UserLocation() string {
	return fmt.Sprintf("%s/identity/scim/%s/v1/Users/%s",
		strings.TrimSuffix(s.BaseURL, "/"), s.OrganizationID, s.UserID)
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs() && u.Host != ""
}
