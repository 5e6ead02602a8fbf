package steps

import (
	"fmt"

	"github.com/stretchr/testify/assert"
)

// asserter lets testify assertions report through a step's error
type asserter struct {
	err error
}

func (a *asserter) Errorf(format string, args ...interface{}) {
	a.err = fmt.Errorf(format, args...)
}

// check runs a testify assertion and returns its failure as an error
func check(fn func(t assert.TestingT) bool) error {
	var a asserter
	fn(&a)
	return a.err
}
