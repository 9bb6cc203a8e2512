// Package service builds the identity documents served by the mock.
// Every method is a pure function of its input and the fixture set.
package service

import (
	"strings"

	"github.com/fcci/mockidentity/internal/fixture"
	"github.com/fcci/mockidentity/internal/model"
)

// EmailCheckInput carries the decoded EmailCheck request body.
type EmailCheckInput struct {
	Email *string
}

// IdentityService answers identity lookups from a fixed fixture set.
type IdentityService struct {
	fixtures *fixture.Set
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(fixtures *fixture.Set) *IdentityService {
	return &IdentityService{fixtures: fixtures}
}

// Fixtures returns the set the service renders from.
func (s *IdentityService) Fixtures() *fixture.Set {
	return s.fixtures
}

// Authenticate returns the bearer token. Credentials are never inspected.
func (s *IdentityService) Authenticate() string {
	return s.fixtures.Token
}

// EmailCheck reports an existing profile for any address.
func (s *IdentityService) EmailCheck(input EmailCheckInput) (*model.EmailCheckResult, error) {
	if input.Email == nil {
		return nil, &MissingFieldError{Field: "email"}
	}

	f := s.fixtures
	return &model.EmailCheckResult{
		Entitlements:   []string{},
		IsExisted:      true,
		DomainClaimed:  false,
		HasPassword:    true,
		URL:            f.EmailCheckURL(),
		OrganizationID: f.OrganizationID,
		Emails:         model.Email{Primary: true, Type: "work", Value: *input.Email},
		FirstName:      f.FirstName,
		Meta: model.EmailCheckMeta{
			Location:     f.EmailCheckURL(),
			Created:      f.Created,
			LastModified: f.LastModified,
			Version:      f.EmailCheckVersion,
		},
		Schemas:     cloneStrings(f.Schemas),
		IsOrgSSO:    false,
		ID:          f.UserID,
		IsTransient: false,
	}, nil
}

// SCIMUser returns a profile whose address is the last segment of path.
func (s *IdentityService) SCIMUser(path string) *model.SCIMUser {
	email := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		email = path[i+1:]
	}
	givenName, _, _ := strings.Cut(email, "@")

	f := s.fixtures
	return &model.SCIMUser{
		Schemas:  cloneStrings(f.Schemas),
		UserName: email,
		Emails:   []model.Email{{Primary: true, Type: "work", Value: email}},
		Name:     model.Name{GivenName: givenName},
		ID:       f.UserID,
		Meta: model.SCIMUserMeta{
			Created:               f.Created,
			LastModified:          f.LastModified,
			Version:               f.ProfileVersion,
			LastServiceAccessTime: append([]fixture.ServiceAccess{}, f.LastServiceAccess...),
			Attributes:            cloneStrings(f.Attributes),
			Location:              f.UserLocation(),
			OrganizationID:        f.OrganizationID,
		},
		Active:            true,
		AvatarSyncEnabled: false,
	}
}

// SSOStatus reports SSO as disabled for every organization.
func (s *IdentityService) SSOStatus(org string) *model.SSOStatus {
	return &model.SSOStatus{SSOEnabled: false}
}

// PasswordResetInfo returns the fixed reset URL for any lookup path.
func (s *IdentityService) PasswordResetInfo(path string) *model.PasswordResetInfo {
	return &model.PasswordResetInfo{URL: s.fixtures.RedirectURL}
}

// cloneStrings keeps callers from aliasing fixture slices. nil becomes empty so
// documents always encode an array.
func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
