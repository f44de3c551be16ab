package salary

import "time"

var ComputeStatistics = computeStatistics

func SetClock(s Service, now func() time.Time) {
	s.(*service).now = now
}
