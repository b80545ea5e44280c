package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("211234567890"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("21A234567890"))
	assert.False(t, IsNumeric("4.123.456-7"))
	assert.False(t, IsNumeric(" 41234567"))
}

func TestIsValidMail(t *testing.T) {
	assert.True(t, IsValidMail("cliente@example.com.uy"))
	assert.True(t, IsValidMail("juan.perez+alta@gmail.com"))
	assert.False(t, IsValidMail(""))
	assert.False(t, IsValidMail("not-a-mail"))
	assert.False(t, IsValidMail("a@b"))
	assert.False(t, IsValidMail("@example.com"))
}

func TestIsValidMobile(t *testing.T) {
	assert.True(t, IsValidMobile("091234567"))
	assert.True(t, IsValidMobile("099999999"))
	assert.False(t, IsValidMobile("91234567"))   // missing leading 0
	assert.False(t, IsValidMobile("0912345678")) // too long
	assert.False(t, IsValidMobile("081234567"))  // not a mobile prefix
	assert.False(t, IsValidMobile(""))
}

func TestIsValidLegalName(t *testing.T) {
	assert.True(t, IsValidLegalName("Juan Pérez Unipersonal"))
	assert.True(t, IsValidLegalName("Almacén El Ombú S.A."))
	assert.False(t, IsValidLegalName(""))
	assert.False(t, IsValidLegalName("   "))
	assert.False(t, IsValidLegalName("***"))

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, IsValidLegalName(string(long)))
}

func TestSimilarNames(t *testing.T) {
	// All owner tokens present.
	assert.True(t, SimilarNames("Juan Pérez", "Juan Pérez Unipersonal"))

	// Accents and case are ignored.
	assert.True(t, SimilarNames("juan perez", "JUAN PÉREZ UNIPERSONAL"))

	// Half the tokens suffice.
	assert.True(t, SimilarNames("Juan Carlos", "Juan Unipersonal"))

	// Less than half does not.
	assert.False(t, SimilarNames("Carlos Rodríguez", "Juan Pérez Unipersonal"))
	assert.False(t, SimilarNames("", "Juan Pérez"))
}
