package errors

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMatchesByCode(t *testing.T) {
	cloned := Clone(ErrEntryNotFound, "entry e1 not found")
	assert.True(t, errors.Is(cloned, ErrEntryNotFound))
	assert.False(t, errors.Is(cloned, ErrNotFound))

	wrapped := fmt.Errorf("load: %w", WithDetails(ErrSchedulingConflict, map[string]interface{}{"conflicting_entries": []string{"e2"}}))
	assert.True(t, errors.Is(wrapped, ErrSchedulingConflict))

	assert.True(t, errors.Is(ErrNoActiveCalendar, ErrPreconditionFailed))
}

func TestWithDetailsCopies(t *testing.T) {
	detailed := WithDetails(ErrSubstituteBusy, "t2")
	assert.Equal(t, "t2", detailed.Details)
	assert.Nil(t, ErrSubstituteBusy.Details)
	assert.Nil(t, WithDetails(nil, "x"))
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	typed := FromError(fmt.Errorf("wrap: %w", ErrForbidden))
	assert.Equal(t, http.StatusForbidden, typed.Status)

	internal := FromError(sql.ErrConnDone)
	require.NotNil(t, internal)
	assert.Equal(t, ErrInternal.Code, internal.Code)
	assert.ErrorIs(t, internal, sql.ErrConnDone)
	assert.Contains(t, internal.Error(), sql.ErrConnDone.Error())
}

func TestCloneKeepsMessageWhenEmpty(t *testing.T) {
	assert.Equal(t, ErrValidation.Message, Clone(ErrValidation, "").Message)
	assert.Equal(t, "page must be an integer", Clone(ErrValidation, "page must be an integer").Message)
	assert.Equal(t, "<nil>", (*Error)(nil).Error())
}
