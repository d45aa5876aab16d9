package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthdesk/clinic-api/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", 1)
	account := &model.Account{
		Base: model.Base{ID: uuid.New()},
		Role: model.AccountRoleDoctor,
	}

	token, err := svc.GenerateToken(account)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID.String(), claims.AccountID)
	assert.Equal(t, string(model.AccountRoleDoctor), claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	account := &model.Account{Base: model.Base{ID: uuid.New()}, Role: model.AccountRolePatient}

	token, err := NewJWTService("secret-a", 1).GenerateToken(account)
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", 1).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := NewJWTService("secret", 1).ValidateToken("not.a.token")
	assert.Error(t, err)
}
