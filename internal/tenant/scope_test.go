package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeValid(t *testing.T) {
	assert.True(t, Scope{OrgID: 1, ClientID: 1}.Valid())
	assert.False(t, Scope{}.Valid())
	assert.False(t, Scope{OrgID: 1}.Valid())
	assert.False(t, Scope{ClientID: 1}.Valid())
	assert.False(t, Scope{OrgID: -1, ClientID: 2}.Valid())
}

func TestRequireRejectsPartialScope(t *testing.T) {
	assert.NoError(t, Require(Scope{OrgID: 3, ClientID: 7}))
	assert.ErrorIs(t, Require(Scope{OrgID: 3}), ErrInvalidScope)
	assert.ErrorIs(t, Require(Scope{}), ErrInvalidScope)
}
