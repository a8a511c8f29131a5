package errors_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumenrisk/entity-screening/pkg/errors"
)

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "COMMON_005", errors.CodeNotFound.String())
	assert.Equal(t, "PROFILE_004", errors.ErrCodeProfileMultipleDefaults.String())
}

func TestErrorCode_HTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		code errors.ErrorCode
		want int
	}{
		{"not found", errors.CodeNotFound, http.StatusNotFound},
		{"profile not found", errors.ErrCodeProfileNotFound, http.StatusNotFound},
		{"profile invalid", errors.ErrCodeProfileInvalid, http.StatusUnprocessableEntity},
		{"multiple defaults", errors.ErrCodeProfileMultipleDefaults, http.StatusConflict},
		{"assessment input", errors.ErrCodeAssessmentInputInvalid, http.StatusBadRequest},
		{"internal", errors.CodeInternal, http.StatusInternalServerError},
		{"unmapped code", errors.ErrorCode("NOPE_999"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.code.HTTPStatus())
		})
	}
}
