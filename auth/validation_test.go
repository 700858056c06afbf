package auth_test

import (
	"testing"

	"github.com/jrsteele09/isp-console/auth"
	apperrors "github.com/jrsteele09/isp-console/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name       string
		creds      auth.Credentials
		wantFields map[string]string
	}{
		{"valid", auth.Credentials{LoginID: "alice", Password: "Secret123"}, nil},
		{"missing both", auth.Credentials{}, map[string]string{
			"login_id": "Login ID is required",
			"password": "Password is required",
		}},
		{"short login id", auth.Credentials{LoginID: "al", Password: "Secret123"}, map[string]string{
			"login_id": "Login ID must be at least 3 characters",
		}},
		{"whitespace login id", auth.Credentials{LoginID: "   ", Password: "Secret123"}, map[string]string{
			"login_id": "Login ID is required",
		}},
		{"short password", auth.Credentials{LoginID: "alice", Password: "12345"}, map[string]string{
			"password": "Password must be at least 6 characters",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.ValidateCredentials(tt.creds)
			if tt.wantFields == nil {
				require.NoError(t, err)
				return
			}
			var fe apperrors.FieldErrors
			require.ErrorAs(t, err, &fe)
			require.Equal(t, apperrors.FieldErrors(tt.wantFields), fe)
		})
	}
}
