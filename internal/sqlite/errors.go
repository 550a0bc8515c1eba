package sqlite

import "strings"

// The driver reports constraint failures only through the error text, so
// classification is a substring match on the constraint kind.
func constraintFailed(err error, kind string) bool {
	return err != nil && strings.Contains(err.Error(), kind+" constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return constraintFailed(err, "FOREIGN KEY")
}

func isUniqueViolation(err error) bool {
	return constraintFailed(err, "UNIQUE")
}
