package internal

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindServerFault, KindOf(nil))
	assert.Equal(t, KindServerFault, KindOf(errors.New("plain")))
	assert.Equal(t, KindNotFound, KindOf(venueNotFound(3)))

	wrapped := errors.Wrap(artistNotFound(3), "while loading")
	assert.Equal(t, KindNotFound, KindOf(wrapped))

	violation := MakeError(KindConstraintViolation, ErrCodeIllegalValue, "bad")
	assert.Equal(t, KindConstraintViolation, KindOf(errors.WithStack(violation)))
}

func TestErrorMessages(t *testing.T) {
	err := repoError("Error while listing venues", errors.New("database is locked"))
	assert.Equal(t, "Error while listing venues", err.Message())
	assert.Contains(t, err.Error(), "database is locked")
	assert.Equal(t, http.StatusInternalServerError, err.Status())
	assert.Equal(t, ErrCodeRepoError, err.ErrorCode())
	assert.Equal(t, "database is locked", errors.Cause(err).Error())

	assert.Equal(t, http.StatusNotFound, venueNotFound(1).Status())
	assert.Equal(t, http.StatusBadRequest, KindConstraintViolation.Status())
	assert.Equal(t, "not found", KindNotFound.String())
}
