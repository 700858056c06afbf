package users_test

import (
	"testing"

	apperrors "github.com/jrsteele09/isp-console/internal/errors"
	"github.com/jrsteele09/isp-console/internal/utils"
	"github.com/jrsteele09/isp-console/users"
	"github.com/stretchr/testify/require"
)

func validCreateForm() users.CreateForm {
	return users.CreateForm{
		LoginID:         "carol",
		Name:            "Carol",
		Email:           "carol@isp.test",
		UserType:        users.UserTypeManager,
		Password:        "longenough",
		ConfirmPassword: "longenough",
	}
}

func TestValidateCreate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *users.CreateForm)
		wantField string
	}{
		{"valid", func(*users.CreateForm) {}, ""},
		{"login id missing", func(f *users.CreateForm) { f.LoginID = " " }, "login_id"},
		{"login id short", func(f *users.CreateForm) { f.LoginID = "ab" }, "login_id"},
		{"email malformed", func(f *users.CreateForm) { f.Email = "carol@isp" }, "email"},
		{"name short", func(f *users.CreateForm) { f.Name = "C" }, "name"},
		{"user type unknown", func(f *users.CreateForm) { f.UserType = "root" }, "user_type"},
		{"password short", func(f *users.CreateForm) { f.Password, f.ConfirmPassword = "short", "short" }, "password"},
		{"confirmation differs", func(f *users.CreateForm) { f.ConfirmPassword = "different" }, "confirm_password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validCreateForm()
			tt.mutate(&form)
			err := users.ValidateCreate(form)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			var fe apperrors.FieldErrors
			require.ErrorAs(t, err, &fe)
			require.Contains(t, fe, tt.wantField)
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	require.NoError(t, users.ValidateUpdate(users.UpdateForm{}))
	require.NoError(t, users.ValidateUpdate(users.UpdateForm{Name: utils.Ptr("Carol")}))

	err := users.ValidateUpdate(users.UpdateForm{Email: utils.Ptr("nope"), UserType: utils.Ptr(users.UserType("x"))})
	var fe apperrors.FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Len(t, fe, 2)
}

func TestValidatePasswordChange(t *testing.T) {
	err := users.ValidatePasswordChange(users.PasswordChangeForm{NewPassword: "weak"})
	var fe apperrors.FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Contains(t, fe, "current_password")
	require.Contains(t, fe, "new_password")

	err = users.ValidatePasswordChange(users.PasswordChangeForm{CurrentPassword: "old", NewPassword: "Password123", ConfirmPassword: "Password124"})
	require.ErrorAs(t, err, &fe)
	require.Contains(t, fe, "confirm_password")

	require.NoError(t, users.ValidatePasswordChange(users.PasswordChangeForm{CurrentPassword: "old", NewPassword: "Password123", ConfirmPassword: "Password123"}))
}
