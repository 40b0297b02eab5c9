package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExportError
		want string
	}{
		{
			name: "without cause",
			err:  NewContractViolation("header count 3 does not match column count 4"),
			want: "[CONTRACT_VIOLATION] header count 3 does not match column count 4",
		},
		{
			name: "with cause",
			err:  NewPersistError("failed to save document", fmt.Errorf("disk full")),
			want: "[PERSIST_FAILURE] failed to save document: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestExportError_IsMatchesByType(t *testing.T) {
	cause := fmt.Errorf("no such sheet")
	err := fmt.Errorf("export hooks: %w", NewRangeWriteError("failed to address range", cause))

	assert.True(t, errors.Is(err, ErrRangeWrite))
	assert.False(t, errors.Is(err, ErrPersist))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ErrTypeRangeWrite, TypeOf(err))
}

func TestTypeOf_NonExportError(t *testing.T) {
	assert.Equal(t, ErrorType(""), TypeOf(fmt.Errorf("plain")))
	assert.Equal(t, ErrorType(""), TypeOf(nil))
}

func TestExportError_WithContext(t *testing.T) {
	err := (&ExportError{Type: ErrTypeSessionUnavailable, Message: "no app"}).
		WithContext("destination", "out.xlsx").
		WithContext("phase", "activate")

	require.Len(t, err.Context, 2)
	assert.Equal(t, "out.xlsx", err.Context["destination"])
}

func TestStatusForType(t *testing.T) {
	tests := []struct {
		errType ErrorType
		want    int
	}{
		{ErrTypeContractViolation, http.StatusUnprocessableEntity},
		{ErrTypeSessionUnavailable, http.StatusServiceUnavailable},
		{ErrTypeRangeWrite, http.StatusBadRequest},
		{ErrTypeValidation, http.StatusBadRequest},
		{ErrTypeNotFound, http.StatusNotFound},
		{ErrTypePersist, http.StatusInternalServerError},
		{ErrTypeConfig, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.errType), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForType(tt.errType))
		})
	}
}

func TestFromExportError(t *testing.T) {
	exportErr := NewPersistError("failed to save document", fmt.Errorf("permission denied")).
		WithContext("destination", "/tmp/out.xlsx")

	apiErr := FromExportError(exportErr)

	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "PERSIST_FAILURE", apiErr.ErrorCode)
	details, ok := apiErr.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "permission denied", details["cause"])
	assert.Equal(t, "/tmp/out.xlsx", details["destination"])
}
