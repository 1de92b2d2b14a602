package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestAppError(t *testing.T) {
	err := NewAppError("DB_ERROR", "save failed", ErrDatabase)
	assert.Equal(t, "DB_ERROR: save failed: database error", err.Error())
	assert.ErrorIs(t, err, ErrDatabase)

	bare := NewAppError("CONFIG_ERROR", "missing DSN", nil)
	assert.Equal(t, "CONFIG_ERROR: missing DSN", bare.Error())
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, "nothing"))

	base := errors.New("disk full")
	wrapped := WrapError(base, "save document")
	assert.ErrorIs(t, wrapped, base)
	assert.Equal(t, "save document: disk full", wrapped.Error())
}

func TestGRPCHelpers(t *testing.T) {
	st, ok := status.FromError(InvalidArgumentError("bad root"))
	assert.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())

	st, ok = status.FromError(InternalErrorf("scan %s: boom", "dir"))
	assert.True(t, ok)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, "scan dir: boom", st.Message())

	st, _ = status.FromError(NotFoundError("no such case"))
	assert.Equal(t, codes.NotFound, st.Code())
}
