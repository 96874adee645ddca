package util

import (
	"fmt"
	"time"
)

// Datetime is the format to use anywhere we need to output a date+time to an user.
func Datetime(iface interface{}) string {
	return asTime(iface).Format("2006-01-02 15h04 MST")
}

// Date is the format to use anywhere we need to output a date to an user.
func Date(iface interface{}) string {
	return asTime(iface).Format("2006-01-02")
}

func asTime(iface interface{}) time.Time {
	switch iface := iface.(type) {
	case time.Time:
		return iface
	case TimeAsDateTimeTZ:
		return iface.Time()
	case TimeAsTimestamp:
		return iface.Time()
	default:
		panic(fmt.Errorf("unexpected type %T", iface))
	}
}
