package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionOrder(t *testing.T) {
	assert.Equal(t, [4]Condition{
		ConditionBaseline, ConditionMirror, ConditionComplement, ConditionCreative,
	}, ConditionOrder)

	for i, cond := range ConditionOrder {
		assert.Equal(t, i, cond.Index())
		assert.True(t, cond.Valid())
	}
}

func TestCondition_AdoptsPersona(t *testing.T) {
	assert.False(t, ConditionBaseline.AdoptsPersona())
	assert.True(t, ConditionMirror.AdoptsPersona())
	assert.True(t, ConditionComplement.AdoptsPersona())
	assert.True(t, ConditionCreative.AdoptsPersona())
}

func TestParseCondition(t *testing.T) {
	for _, cond := range ConditionOrder {
		got, err := ParseCondition(string(cond))
		require.NoError(t, err)
		assert.Equal(t, cond, got)
	}

	_, err := ParseCondition("bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCondition)

	assert.False(t, Condition("bogus").Valid())
	assert.Equal(t, -1, Condition("bogus").Index())
}
