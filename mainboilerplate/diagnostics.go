package mainboilerplate

import (
	log "github.com/sirupsen/logrus"
)

// Must fatals if |err| is non-nil, supplying |msg| and |extra| as the
// message and fields of the logged entry. The process exits with status one.
func Must(err error, msg string, extra ...interface{}) {
	if err == nil {
		return
	}
	var f = log.Fields{"err": err}
	for i := 0; i+1 < len(extra); i += 2 {
		f[extra[i].(string)] = extra[i+1]
	}
	log.WithFields(f).Fatal(msg)
}
