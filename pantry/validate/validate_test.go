package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Website  string `json:"website" validate:"omitempty,url"`
	Age      int    `json:"age" validate:"age"`
	Card     string `json:"card" validate:"omitempty,creditcard"`
	Born     string `json:"born" validate:"omitempty,date"`
}

func TestStructValid(t *testing.T) {
	s := signup{
		Email:    "user@example.com",
		Password: "adfnASD134#",
		Website:  "https://example.com",
		Age:      30,
		Card:     "1234567890123",
		Born:     "1990-02-30",
	}
	assert.NoError(t, New().Struct(s))
	assert.NoError(t, Struct(&s))
}

func TestStructCollectsErrors(t *testing.T) {
	s := signup{
		Email:    "userexample.com",
		Password: "short",
		Website:  "example.com",
		Age:      17,
		Card:     "123456789012A",
		Born:     "1899-01-01",
	}

	err := New().Struct(s)
	require.Error(t, err)

	errs, ok := err.(Errors)
	require.True(t, ok)
	assert.Len(t, errs, 6)

	m := errs.ToMap()
	assert.Equal(t, []string{"email must be a valid email address"}, m["email"])
	assert.Contains(t, m, "password")
	assert.Contains(t, m, "website")
	assert.Contains(t, m, "age")
	assert.Contains(t, m, "card")
	assert.Contains(t, m, "born")
	assert.Equal(t, "email", errs.First().Rule)
}

func TestStopOnFirstError(t *testing.T) {
	err := New(WithStopOnFirstError()).Struct(signup{})
	require.Error(t, err)
	assert.Len(t, err.(Errors), 1)
	assert.Equal(t, "required", err.(Errors).First().Rule)
}

func TestWithTagName(t *testing.T) {
	type login struct {
		User string `json:"user" check:"required,min=5"`
		Mail string `json:"mail" check:"email" validate:"required"`
	}

	v := New(WithTagName("check"))
	require.NoError(t, v.Struct(login{User: "alice", Mail: "a@b.c"}))

	err := v.Struct(login{User: "bob", Mail: "nope"})
	require.Error(t, err)
	m := err.(Errors).ToMap()
	assert.Contains(t, m, "user")
	assert.Contains(t, m, "mail")

	// The default tag is ignored once another one is chosen.
	assert.NoError(t, v.Struct(login{User: "alice", Mail: ""}))
	assert.Error(t, New().Struct(login{User: "alice", Mail: ""}))
}

func TestNestedSlices(t *testing.T) {
	type parcel struct {
		Method string `yaml:"method" validate:"required,shipping_method"`
	}
	type order struct {
		Parcels []parcel `yaml:"parcels" validate:"required,min=1"`
	}

	err := New().Struct(order{Parcels: []parcel{{Method: "standard"}, {Method: "invalid"}}})
	require.Error(t, err)
	errs := err.(Errors)
	require.Len(t, errs, 1)
	assert.Equal(t, "parcels[1].method", errs[0].Field)
	assert.Equal(t, "parcels[1].method must be standard or express", errs[0].Message)

	err = New().Struct(order{})
	require.Error(t, err)
	assert.Len(t, err.(Errors).FieldErrors("parcels"), 2)
}

func TestVar(t *testing.T) {
	tests := []struct {
		name  string
		value any
		tag   string
		ok    bool
	}{
		{"file size ok", int64(1048576), "filesize", true},
		{"file size too big", 1048577, "filesize", false},
		{"negative file size", -1, "filesize", false},
		{"oneof", "express", "oneof=standard express", true},
		{"oneof miss", "overnight", "oneof=standard express", false},
		{"min length", "abc", "min=5", false},
		{"max length", "abcdef", "max=5", false},
		{"max number", 4, "max=5", true},
		{"known rule", "Validate-Email", "rulename", true},
		{"unknown rule", "validate_phone", "rulename", false},
		{"bad date shape", "2024/01/01", "date", false},
		{"unknown tag ignored", "x", "nosuchrule", true},
		{"empty tag", "x", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Var(tt.value, tt.tag)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestStructRejectsNonStruct(t *testing.T) {
	assert.Error(t, New().Struct(42))
}

func TestMessagesLocale(t *testing.T) {
	m := DefaultMessages()
	m.SetLocale("es")
	v := New(WithMessages(m))

	err := v.Var("", "required")
	require.Error(t, err)
	assert.Equal(t, " es obligatorio", err.Error())

	m.SetLocale("fr")
	assert.Equal(t, "email must be a valid email address", m.Get("email", "email", ""))
	assert.Equal(t, "custom validation failed for x", m.Get("custom", "x", ""))
}

func TestRegisterRuleFunc(t *testing.T) {
	v := New()
	v.RegisterRuleFunc("even", func(value any) bool {
		n, ok := value.(int)
		return ok && n%2 == 0
	}, "even")

	assert.NoError(t, v.Var(4, "even"))
	err := v.Var(3, "even")
	require.Error(t, err)
	assert.Equal(t, "even validation failed for ", err.Error())
}
