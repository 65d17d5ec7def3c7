package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type signup struct {
	Username string  `json:"username" validate:"required,min=2,max=5"`
	Email    string  `json:"email" validate:"required,email"`
	Bio      *string `json:"bio" validate:"omitempty,min=3"`
	Internal string  `json:"-" validate:"-"`
}

func TestValidateReportsFirstFailureByJSONName(t *testing.T) {
	v := New()

	err := v.Validate(signup{Email: "a@b.io"})
	require.EqualError(t, err, `"username" is not allowed to be empty`)

	err = v.Validate(signup{Username: "x", Email: "a@b.io"})
	require.EqualError(t, err, `"username" length must be at least 2 characters long`)

	err = v.Validate(signup{Username: "abcdefg", Email: "a@b.io"})
	require.EqualError(t, err, `"username" length must be less than or equal to 5 characters long`)

	err = v.Validate(signup{Username: "abc", Email: "nope"})
	require.EqualError(t, err, `"email" must be a valid email`)
}

func TestValidateOptionalPointerFields(t *testing.T) {
	v := New()
	short := "hi"
	long := "hello"

	require.NoError(t, v.Validate(signup{Username: "abc", Email: "a@b.io"}))
	require.NoError(t, v.Validate(signup{Username: "abc", Email: "a@b.io", Bio: &long}))
	require.EqualError(t, v.Validate(signup{Username: "abc", Email: "a@b.io", Bio: &short}),
		`"bio" length must be at least 3 characters long`)
}

type credentials struct {
	Password string  `json:"password" validate:"required,min=8,maxbytes=72"`
	Next     *string `json:"next" validate:"omitempty,min=8,maxbytes=72"`
}

func TestValidateMaxBytesCountsEncodedLength(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(credentials{Password: strings.Repeat("a", 72)}))
	require.EqualError(t, v.Validate(credentials{Password: strings.Repeat("a", 73)}),
		`"password" length must be less than or equal to 72 bytes long`)

	// 40 runes, 80 bytes.
	require.EqualError(t, v.Validate(credentials{Password: strings.Repeat("é", 40)}),
		`"password" length must be less than or equal to 72 bytes long`)

	long := strings.Repeat("b", 80)
	require.EqualError(t, v.Validate(credentials{Password: "password123", Next: &long}),
		`"next" length must be less than or equal to 72 bytes long`)
}
