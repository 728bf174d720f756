package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taghazout/shared/failure"
	"taghazout/shared/validator"
)

type guestForm struct {
	Name   string `json:"name"   validate:"required,min=2"`
	Email  string `json:"email"  validate:"required,email"`
	Guests int    `json:"guests" validate:"min=1,lte=20"`
	Kind   string `json:"kind"   validate:"oneof=listing package"`
}

func validForm() guestForm {
	return guestForm{Name: "Amina", Email: "amina@example.com", Guests: 2, Kind: "listing"}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*guestForm)
		wantFields map[string]string
	}{
		{
			name:   "valid",
			mutate: func(*guestForm) {},
		},
		{
			name:       "short name",
			mutate:     func(f *guestForm) { f.Name = "A" },
			wantFields: map[string]string{"name": "name must be at least 2 characters"},
		},
		{
			name:       "bad email",
			mutate:     func(f *guestForm) { f.Email = "amina" },
			wantFields: map[string]string{"email": "email must be a valid email address"},
		},
		{
			name:       "zero guests",
			mutate:     func(f *guestForm) { f.Guests = 0 },
			wantFields: map[string]string{"guests": "guests must be greater than or equal to 1"},
		},
		{
			name: "several fields at once",
			mutate: func(f *guestForm) {
				f.Name = ""
				f.Kind = "cruise"
			},
			wantFields: map[string]string{
				"name": "name is required",
				"kind": "kind must be one of listing package",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := validator.ValidateStruct(&form)
			if tt.wantFields == nil {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Equal(t, tt.wantFields, failure.GetFields(err))
		})
	}
}

func TestValidateStruct_SummaryIsFirstField(t *testing.T) {
	err := validator.ValidateStruct(&guestForm{})

	require.Error(t, err)
	assert.Equal(t, "name is required", err.Error())
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "valid email", field: "test@example.com", tag: "email"},
		{name: "invalid email", field: "nope", tag: "email", wantErr: true},
		{name: "in range", field: 25, tag: "gte=0,lte=100"},
		{name: "out of range", field: 150, tag: "gte=0,lte=100", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"Amina","email":"amina@example.com","guests":2,"kind":"package"}`},
		{name: "invalid field", body: `{"name":"Amina","email":"x","guests":2,"kind":"package"}`, wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var form guestForm

			err := validator.Validate(strings.NewReader(tt.body), &form)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Amina", form.Name)
		})
	}
}

func TestMimetypeValidation(t *testing.T) {
	type upload struct {
		Image string `json:"image" validate:"required,mimetypes=image/png image/jpeg,maxfilesize=1"`
	}

	err := validator.ValidateStruct(&upload{Image: "data:image/png;base64,iVBORw0KGgo="})
	assert.NoError(t, err)

	err = validator.ValidateStruct(&upload{Image: "data:application/pdf;base64,JVBERi0="})
	require.Error(t, err)
	assert.Contains(t, failure.GetFields(err), "image")
}
