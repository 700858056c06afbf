package devserver

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/isp-console/organizations"
	"github.com/jrsteele09/isp-console/roles"
	"github.com/jrsteele09/isp-console/users"
)

const (
	SystemOrganizationCode = "SYSTEM"
	SystemOrganizationName = "System"
	AdminRoleName          = "Administrator"
)

var defaultRoles = []roles.Role{
	{Name: AdminRoleName, Description: "Full console access", Permissions: []string{"users.manage", "roles.manage", "organizations.manage", "billing.manage", "network.manage"}, IsActive: true},
	{Name: "Support", Description: "Customer support desk", Permissions: []string{"customers.view", "billing.view", "network.view"}, IsActive: true},
	{Name: "Billing", Description: "Invoices and payments", Permissions: []string{"customers.view", "billing.manage"}, IsActive: true},
}

// InitialiseSystem seeds the system organization, the default roles and the
// admin account. It returns the generated admin password on first creation
// (empty string if the admin exists or its password is configured).
func (s *Server) InitialiseSystem() (generatedPassword string, err error) {
	log.Info().Msg("bootstrap: checking system configuration")

	org, err := s.initialiseSystemOrganization()
	if err != nil {
		return "", fmt.Errorf("failed to bootstrap system organization: %w", err)
	}

	adminRole, err := s.initialiseRoles()
	if err != nil {
		return "", fmt.Errorf("failed to bootstrap roles: %w", err)
	}

	generatedPassword, err = s.bootstrapAdmin(org, adminRole)
	if err != nil {
		return "", fmt.Errorf("failed to bootstrap admin: %w", err)
	}

	if generatedPassword != "" {
		log.Warn().
			Str("login_id", s.config.GetAdminLoginID()).
			Str("password", generatedPassword).
			Msg("created admin account, save this password, it will not be displayed again")
	}
	return generatedPassword, nil
}

func (s *Server) initialiseSystemOrganization() (*organizations.Organization, error) {
	const maxList = 100
	for offset := 0; ; offset += maxList {
		list, total, err := s.repos.Organizations.List(offset, maxList)
		if err != nil {
			return nil, fmt.Errorf("failed to list organizations: %w", err)
		}
		for _, o := range list {
			if o.Code == SystemOrganizationCode {
				return o, nil
			}
		}
		if offset+maxList >= total {
			break
		}
	}

	org := &organizations.Organization{
		Name:        SystemOrganizationName,
		Code:        SystemOrganizationCode,
		Description: "Operator of this console",
		IsActive:    true,
	}
	org.CreatedAt.Time = s.nowTime()
	if err := s.repos.Organizations.Upsert(org); err != nil {
		return nil, fmt.Errorf("failed to create system organization: %w", err)
	}
	log.Info().Str("id", org.ID.String()).Msg("created system organization")
	return org, nil
}

// initialiseRoles creates any missing default role and returns the admin role.
func (s *Server) initialiseRoles() (*roles.Role, error) {
	existing, err := s.repos.Roles.List()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*roles.Role, len(existing))
	for _, r := range existing {
		byName[r.Name] = r
	}

	for _, def := range defaultRoles {
		if _, ok := byName[def.Name]; ok {
			continue
		}
		role := def
		role.Permissions = append([]string(nil), def.Permissions...)
		if err := s.repos.Roles.Upsert(&role); err != nil {
			return nil, err
		}
		byName[role.Name] = &role
	}
	return byName[AdminRoleName], nil
}

func (s *Server) bootstrapAdmin(org *organizations.Organization, adminRole *roles.Role) (generatedPassword string, err error) {
	loginID := s.config.GetAdminLoginID()
	if loginID == "" {
		loginID = "admin"
	}
	existing, err := s.repos.Users.GetByLoginID(loginID)
	if err == nil && existing != nil {
		return "", nil
	}
	if err != nil && !errors.Is(err, users.ErrUserNotFound) {
		return "", fmt.Errorf("failed to check for existing admin: %w", err)
	}

	password := s.config.GetAdminPassword()
	if password == "" {
		passwordBytes := make([]byte, 16)
		if _, err := rand.Read(passwordBytes); err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		generatedPassword = base64.RawURLEncoding.EncodeToString(passwordBytes)
		password = generatedPassword
	}

	passwordHash, err := users.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &users.User{
		LoginID:        loginID,
		Name:           "System Administrator",
		Email:          loginID + "@isp.local",
		UserType:       users.UserTypeAdmin,
		IsActive:       true,
		OrganizationID: org.ID,
		PasswordHash:   passwordHash,
	}
	admin.DateJoined.Time = s.nowTime()
	if err := s.repos.Users.Upsert(admin); err != nil {
		return "", fmt.Errorf("failed to create admin: %w", err)
	}
	if adminRole != nil {
		if err := s.repos.Roles.Assign(admin.ID.String(), adminRole.ID.String()); err != nil {
			return "", fmt.Errorf("failed to assign admin role: %w", err)
		}
	}
	log.Info().Str("login_id", loginID).Msg("created admin account")
	return generatedPassword, nil
}
