package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email        string   `json:"email" validate:"required,email"`
	Age          string   `query:"age" validate:"omitempty,ageband"`
	Jurisdiction []string `json:"jurisdiction" validate:"required,min=1,dive,min=1,max=10"`
	Name         string   `json:"name" validate:"notblank"`
}

func TestStruct_Valid(t *testing.T) {
	errs := Struct(&sample{Email: "a@b.com", Age: "8+", Jurisdiction: []string{"NY"}, Name: "x"})
	assert.Nil(t, errs)
}

func TestStruct_ReportsJSONNames(t *testing.T) {
	errs := Struct(&sample{Email: "bad", Age: "old", Jurisdiction: []string{"TOO-LONG-CODE"}, Name: "  "})
	require.Len(t, errs, 4)
	fields := map[string]string{}
	for _, e := range errs {
		fields[e.Field] = e.Type
	}
	assert.Equal(t, "email", fields["email"])
	assert.Equal(t, "ageband", fields["age"])
	assert.Equal(t, "max", fields["jurisdiction[0]"])
	assert.Equal(t, "notblank", fields["name"])
}

func TestAgeBand(t *testing.T) {
	for _, ok := range []string{"2-4", "5-7", "8+", "3"} {
		assert.Nil(t, Struct(&sample{Email: "a@b.com", Age: ok, Jurisdiction: []string{"NY"}, Name: "x"}), ok)
	}
	for _, bad := range []string{"9-12", "-1", "abc"} {
		assert.NotNil(t, Struct(&sample{Email: "a@b.com", Age: bad, Jurisdiction: []string{"NY"}, Name: "x"}), bad)
	}
}
