// Package model defines the identity documents the mock returns.
// Field names follow the upstream identity service's JSON exactly.
package model

import "github.com/fcci/mockidentity/internal/fixture"

// Email is one address entry on a profile.
type Email struct {
	Primary bool   `json:"primary"`
	Type    string `json:"type"`
	Value   string `json:"value"`
}

// EmailCheckMeta is the metadata block of an EmailCheck result.
type EmailCheckMeta struct {
	Location     string `json:"location"`
	Created      string `json:"created"`
	LastModified string `json:"lastModified"`
	Version      string `json:"version"`
}

// EmailCheckResult reports whether a profile exists for an address.
type EmailCheckResult struct {
	Entitlements   []string       `json:"entitlements"`
	IsExisted      bool           `json:"isExisted"`
	DomainClaimed  bool           `json:"domainClaimed"`
	HasPassword    bool           `json:"hasPassword"`
	URL            string         `json:"url"`
	OrganizationID string         `json:"organizationid"`
	Emails         Email          `json:"emails"`
	FirstName      string         `json:"firstName"`
	Meta           EmailCheckMeta `json:"meta"`
	Schemas        []string       `json:"schemas"`
	IsOrgSSO       bool           `json:"isOrgSSO"`
	ID             string         `json:"id"`
	IsTransient    bool           `json:"isTransient"`
}

// Name is the SCIM name block.
type Name struct {
	GivenName string `json:"givenName"`
}

// SCIMUserMeta is the metadata block of a SCIM user.
type SCIMUserMeta struct {
	Created               string                  `json:"created"`
	LastModified          string                  `json:"lastModified"`
	Version               string                  `json:"version"`
	LastServiceAccessTime []fixture.ServiceAccess `json:"lastServiceAccessTime"`
	Attributes            []string                `json:"attributes"`
	Location              string                  `json:"location"`
	OrganizationID        string                  `json:"organizationID"`
}

// SCIMUser is a SCIM-shaped user profile.
type SCIMUser struct {
	Schemas           []string     `json:"schemas"`
	UserName          string       `json:"userName"`
	Emails            []Email      `json:"emails"`
	Name              Name         `json:"name"`
	ID                string       `json:"id"`
	Meta              SCIMUserMeta `json:"meta"`
	Active            bool         `json:"active"`
	AvatarSyncEnabled bool         `json:"avatarSyncEnabled"`
}

// SSOStatus reports whether an organization uses single sign-on.
type SSOStatus struct {
	SSOEnabled bool `json:"ssoEnabled"`
}

// PasswordResetInfo points at the password reset page.
type PasswordResetInfo struct {
	URL string `json:"url"`
}
