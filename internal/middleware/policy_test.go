package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminPolicy(t *testing.T) {
	policy := NewAdminPolicy([]string{"111111111111111111", "222222222222222222", ""})

	assert.True(t, policy.IsAdmin("111111111111111111"))
	assert.True(t, policy.IsAdmin("222222222222222222"))
	assert.False(t, policy.IsAdmin("333333333333333333"))
	assert.False(t, policy.IsAdmin(""))
	assert.Equal(t, 2, policy.Size(), "empty entries are dropped")
}

func TestAdminPolicyEmpty(t *testing.T) {
	policy := NewAdminPolicy(nil)
	assert.False(t, policy.IsAdmin("111111111111111111"))
	assert.Equal(t, 0, policy.Size())
}
