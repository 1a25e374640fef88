package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()
	assert.Same(t, registry, DefaultRegistry())

	for _, name := range []string{
		"required", "nullable",
		"alphabets", "alphabetsOnly", "alphabetsLowercase", "alphabetsLowercaseOnly",
		"alphabetsUppercase", "alphabetsUppercaseOnly",
		"numbers", "numbersOnly", "specialCharacters", "specialCharactersOnly",
		"stringMin", "stringMax", "stringLength",
		"numberMin", "numberMax", "numberBetween", "numberExact",
		"filesLength", "filesMin", "filesMax",
		"exact", "different",
		"email", "url", "phone", "money", "date", "name", "noSequence",
		"boolean", "array", "true", "false", "file", "files",
		"arrayContains", "arrayDoesntContain",
		"dateAfter", "dateBefore", "dateBetween", "dateExact", "dateFormat",
	} {
		assert.True(t, registry.Has(name), name)
	}
	assert.Equal(t, 44, registry.Len())

	names := registry.Names()
	assert.IsNonDecreasing(t, names)
}

func TestRegistryLookup(t *testing.T) {
	_, err := DefaultRegistry().Lookup("missing")
	var unknown *UnknownRuleError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "missing", unknown.Name)
}

func TestRegistryIsolation(t *testing.T) {
	rules := map[string]Rule{"only": valueRule(func(any, []string) bool { return true }, fixed(""))}
	registry := NewRegistry(rules)

	rules["later"] = rules["only"]
	assert.False(t, registry.Has("later"))

	extended := registry.Extend(map[string]Rule{"extra": rules["only"]})
	assert.True(t, extended.Has("only"))
	assert.True(t, extended.Has("extra"))
	assert.False(t, registry.Has("extra"))
}
