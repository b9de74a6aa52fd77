package utils

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var testT *testing.T

// SetT sets the test context used by the helpers in this package.
func SetT(t *testing.T) {
	testT = t
}

// NoErr asserts err is nil and returns v.
func NoErr[T any](v T, err error) T {
	require.NoError(testT, err)
	return v
}

// NoErr2 is NoErr for functions returning two values.
func NoErr2[T, U any](v T, u U, err error) (T, U) {
	require.NoError(testT, err)
	return v, u
}

// Err asserts err is not nil and returns it.
func Err[T any](_ T, err error) error {
	require.Error(testT, err)
	return err
}

// ErrIs asserts err matches target and returns it.
func ErrIs[T any](target error) func(T, error) error {
	return func(_ T, err error) error {
		require.ErrorIs(testT, err, target)
		return err
	}
}

// Hex decodes a hex literal that may contain spaces, commas or newlines
// between octets, e.g. "24,00,2b" or "24 00 2b".
func Hex(s string) []byte {
	s = strings.NewReplacer(",", "", " ", "", "\n", "", "\t", "").Replace(s)
	b, err := hex.DecodeString(s)
	require.NoError(testT, err)
	return b
}
