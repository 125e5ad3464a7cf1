package errors

import (
	"fmt"
)

var (
	ErrConfigMissing     = fmt.Errorf("assistantchat: config missing")
	ErrRemoteUnavailable = fmt.Errorf("assistantchat: remote unavailable")
	ErrRunFailed         = fmt.Errorf("assistantchat: run failed")
	ErrTimeout           = fmt.Errorf("assistantchat: run timed out")
	ErrThreadBusy        = fmt.Errorf("assistantchat: thread busy")
	ErrInvalidParams     = fmt.Errorf("assistantchat: invalid params")
)
