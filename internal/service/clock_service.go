package service

import (
	"strings"
	"time"
	// 容器镜像里可能没有系统时区库
	_ "time/tzdata"

	"billing/pkg/apperr"
)

const (
	TimeFormat12 = "12"
	TimeFormat24 = "24"
)

var countryTimezones = map[string]string{
	"CO": "America/Bogota",
	"MX": "America/Mexico_City",
	"AR": "America/Argentina/Buenos_Aires",
	"BR": "America/Sao_Paulo",
	"PE": "America/Lima",
}

// ClockService 查询国家当前时间
type ClockService struct {
	zones map[string]string
	now   func() time.Time
}

func NewClockService() *ClockService {
	return &ClockService{
		zones: countryTimezones,
		now:   time.Now,
	}
}

// CurrentTime isoCode 不区分大小写，format 只接受 "12" 或 "24"
func (s *ClockService) CurrentTime(isoCode, format string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(isoCode))
	zoneName, ok := s.zones[code]
	if !ok {
		return "", apperr.Validation("Invalid ISO Code")
	}

	if format != TimeFormat12 && format != TimeFormat24 {
		return "", apperr.Validation("Invalid time format")
	}

	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return "", apperr.UnknownTimezone("Invalid timezone")
	}

	now := s.now().In(loc)
	if format == TimeFormat12 {
		return now.Format("03:04:05 PM"), nil
	}
	return now.Format("15:04:05"), nil
}
