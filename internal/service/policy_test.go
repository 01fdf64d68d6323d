package service

import (
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestCanAccessUserResource(t *testing.T) {
	owner := model.Principal{ID: "u1", Role: model.RoleUser}
	admin := model.Principal{ID: "a1", Role: model.RoleAdmin}
	other := model.Principal{ID: "u2", Role: model.RoleUser}

	assert.True(t, CanAccessUserResource(owner, "u1"))
	assert.True(t, CanAccessUserResource(admin, "u1"))
	assert.False(t, CanAccessUserResource(other, "u1"))
}
