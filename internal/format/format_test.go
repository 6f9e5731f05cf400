package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gabrielmiguelok/validatewhatsapp/internal/format"
)

func arPolicy() format.RegionPolicy {
	return format.RegionPolicy{Trunk: "0", Prefix: "549", Marker: "15"}
}

func TestFormat_NoDigits(t *testing.T) {
	f := format.New(arPolicy())

	for _, raw := range []string{"", "   ", "abc", "+-() ", "número"} {
		assert.Equal(t, "", f.Format(raw), "raw=%q", raw)
	}
}

func TestFormat_DigitsOnlyOutput(t *testing.T) {
	f := format.New(arPolicy())

	for _, raw := range []string{"+54 9 11 2233-4455", "(011) 2233 4455", "tel: 5491122334455"} {
		got := f.Format(raw)
		assert.Regexp(t, `^[0-9]+$`, got, "raw=%q", raw)
	}
}

func TestFormat_RegionalSubstitution(t *testing.T) {
	f := format.New(arPolicy())

	t.Run("Trunk Replaced", func(t *testing.T) {
		assert.Equal(t, "5491122334455", f.Format("01122334455"))
	})

	t.Run("Marker Dropped After Prefix", func(t *testing.T) {
		// "0" -> "549", then the "15" right after the prefix is removed.
		assert.Equal(t, "5491122334455", f.Format("0151122334455"))
	})

	t.Run("Marker Kept Elsewhere", func(t *testing.T) {
		// "15" not adjacent to the prefix is ordinary digits.
		assert.Equal(t, "5491152334455", f.Format("01152334455"))
	})
}

func TestFormat_Idempotent(t *testing.T) {
	f := format.New(arPolicy())

	canonical := f.Format("01122334455")
	assert.Equal(t, canonical, f.Format(canonical))
	assert.Equal(t, "5491122334455", f.Format("5491122334455"))
}

func TestFormat_NilPolicy(t *testing.T) {
	f := format.New(nil)
	assert.Equal(t, "01122334455", f.Format("011-2233-4455"))
}

func TestRegionPolicy_ZeroValue(t *testing.T) {
	var p format.RegionPolicy
	assert.Equal(t, "01122334455", p.Canonicalize("01122334455"))
}
