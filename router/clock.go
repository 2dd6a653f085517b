package router

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock 将GTFS时间 HH:MM:SS 转换为距参考零点的秒数，小时可以超过24
func ParseClock(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock %q, should be HH:MM:SS", s)
	}
	total := 0
	for i, unit := range []int{3600, 60, 1} {
		v, err := strconv.Atoi(parts[i])
		if err != nil || v < 0 || (i > 0 && v >= 60) {
			return 0, fmt.Errorf("invalid clock %q, should be HH:MM:SS", s)
		}
		total += v * unit
	}
	return float64(total), nil
}

// FormatClock 将秒数格式化为 "1h 2m 3s"
func FormatClock(seconds float64) string {
	sec := int(seconds)
	return fmt.Sprintf("%dh %dm %ds", sec/3600, (sec%3600)/60, sec%60)
}
