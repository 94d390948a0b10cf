package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceKey(t *testing.T) {
	assert.Equal(t, "account:read:acc1", NewResource(ResourceAccount, ActionRead, "acc1").Key())
	assert.Equal(t, "account:read:*", NewResource(ResourceAccount, ActionRead, "").Key())
	assert.Equal(t, "actor:create", NewResource(ResourceActor, ActionCreate, "").Key())

	// create/list ignore any target supplied
	assert.Equal(t, "actor:create", NewResource(ResourceActor, ActionCreate, "a1").Key())
	assert.Equal(t, "system:upgrade", NewResource(ResourceSystem, ActionUpgrade, "").Key())
}

func TestResourceShape(t *testing.T) {
	specific := NewResource(ResourceAccount, ActionRead, "acc1")
	assert.Equal(t, "account:read:*", specific.ShapeKey())

	// shape of an untargeted action is itself
	create := NewResource(ResourceActor, ActionCreate, "")
	assert.Equal(t, create.Key(), create.ShapeKey())
}

func TestParseResourceKey(t *testing.T) {
	r, err := ParseResourceKey("account:read:acc1")
	assert.NoError(t, err)
	assert.Equal(t, NewResource(ResourceAccount, ActionRead, "acc1"), r)

	r, err = ParseResourceKey("actor:create")
	assert.NoError(t, err)
	assert.Equal(t, NewResource(ResourceActor, ActionCreate, ""), r)

	_, err = ParseResourceKey("account")
	assert.Error(t, err)

	_, err = ParseResourceKey("account:read")
	assert.Error(t, err)

	_, err = ParseResourceKey("actor:create:a1")
	assert.Error(t, err)
}
