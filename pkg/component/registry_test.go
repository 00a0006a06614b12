package component_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hplp/oldspot/pkg/component"
)

func TestRegistryAddAssignsDenseIDs(t *testing.T) {
	reg := component.NewRegistry()
	a := reg.Add("a", component.KindUnit, component.Redundancy{Copies: 1})
	b := reg.Add("b", component.KindUnit, component.Redundancy{Copies: 1})
	assert.Equal(t, 0, a.ID)
	assert.Equal(t, 1, b.ID)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistryByNameAndUnits(t *testing.T) {
	reg := component.NewRegistry()
	reg.Add("a", component.KindUnit, component.Redundancy{Copies: 1})
	assert.NotNil(t, reg.ByName("a"))
	assert.Nil(t, reg.ByName("missing"))
	assert.Len(t, reg.Units(), 1)
}
