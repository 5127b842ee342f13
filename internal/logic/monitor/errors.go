package monitor

import "errors"

var ErrUnknownAlertAction = errors.New("unknown alert action")
