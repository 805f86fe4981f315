package usecase

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// sqlite pools close in t.Cleanup, after the test goroutine returns
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
	)
}
