package validation_test

import (
	"net/http"
	"testing"

	domainerrors "github.com/litnotes/litnotes/internal/errors"
	"github.com/litnotes/litnotes/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID    string `json:"id" validate:"required"`
	Pages int    `json:"total_pages,omitempty" validate:"gte=0"`
	Goal  int    `json:"reading_goal" validate:"min=1,max=365"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(testRecord{ID: "book-1", Pages: 10, Goal: 12})
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		rec       testRecord
		wantField string
	}{
		{"missing id", testRecord{Goal: 12}, "id"},
		{"negative pages", testRecord{ID: "b", Pages: -1, Goal: 12}, "total_pages"},
		{"goal too large", testRecord{ID: "b", Goal: 400}, "reading_goal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.rec)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())
			assert.Contains(t, domainErr.Details, tt.wantField)
			assert.Contains(t, domainErr.Message, tt.wantField)
		})
	}
}

func TestValidator_JSONFieldNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(testRecord{Pages: -5, Goal: 12})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "total_pages")
	assert.NotContains(t, err.Error(), "Pages")
}

func TestValidateEach(t *testing.T) {
	v := validation.New()

	ok := []testRecord{{ID: "a", Goal: 1}, {ID: "b", Goal: 2}}
	assert.NoError(t, validation.ValidateEach(v, ok))

	bad := []testRecord{{ID: "a", Goal: 1}, {Goal: 2}}
	err := validation.ValidateEach(v, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 1")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
