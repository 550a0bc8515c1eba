package sqlite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstraintClassification(t *testing.T) {
	require.True(t, isForeignKeyViolation(errors.New("constraint failed: FOREIGN KEY constraint failed (787)")))
	require.True(t, isUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)")))

	require.False(t, isForeignKeyViolation(nil))
	require.False(t, isUniqueViolation(nil))
	require.False(t, isForeignKeyViolation(errors.New("disk I/O error")))
	require.False(t, isUniqueViolation(errors.New("FOREIGN KEY constraint failed")))
}
