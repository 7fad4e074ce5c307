package dispatch

import (
	"github.com/arthur-debert/apkren/pkg/errors"
)

// elevated reports whether the current process runs with administrator
// rights. Swapped out in tests.
var elevated = isElevated

// CheckPrivileges fails with ErrElevatedProcessRefused when the process is
// elevated
func CheckPrivileges() error {
	ok, err := elevated()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to determine process privileges")
	}
	if ok {
		return errors.New(errors.ErrElevatedProcessRefused,
			"refusing to run package scripts with administrator privileges")
	}
	return nil
}
