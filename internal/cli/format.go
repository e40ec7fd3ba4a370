// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/selforge/internal/model"
)

// FormatKcal formats a calorie count.
// e.g., 1234 -> "1,234 kcal"
func FormatKcal(n int) string {
	return FormatNumber(int64(n)) + " kcal"
}

// FormatSignedKcal formats a calorie balance with an explicit sign.
func FormatSignedKcal(n int) string {
	if n > 0 {
		return "+" + FormatKcal(n)
	}
	return FormatKcal(n)
}

// FormatGrams formats a gram quantity with at most one decimal.
// e.g., 12.0 -> "12g", 12.34 -> "12.3g"
func FormatGrams(g float64) string {
	return strconv.FormatFloat(math.Round(g*10)/10, 'f', -1, 64) + "g"
}

// FormatMinutes formats a duration in minutes.
// e.g., 95 -> "1h 35m", 30 -> "30m"
func FormatMinutes(mins int) string {
	if mins <= 0 {
		return "0m"
	}
	if h := mins / 60; h > 0 {
		if m := mins % 60; m > 0 {
			return fmt.Sprintf("%dh %dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", mins)
}

// FormatDays formats a day count with the right plural.
func FormatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// FormatCountdown renders the days left to the weekly and monthly results.
// A count of 0 reads "today".
func FormatCountdown(c model.Countdown) string {
	left := func(n int) string {
		if n <= 0 {
			return "today"
		}
		return "in " + FormatDays(n)
	}
	return fmt.Sprintf("weekly result %s, monthly %s", left(c.Weekly), left(c.Monthly))
}

// FormatMeasure renders a measurement, or "-" when unset.
func FormatMeasure(v float64, unit string) string {
	if v <= 0 {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + unit
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatGoals renders goal checkboxes in display order. Manually set goals
// are marked with an asterisk.
// e.g., "[x] study  [ ] gym*  ..."
func FormatGoals(done, manual model.Goals) string {
	parts := make([]string, 0, len(model.GoalKeys))
	for _, k := range model.GoalKeys {
		box := "[ ]"
		if done.Get(k) {
			box = "[x]"
		}
		name := string(k)
		if manual.Get(k) {
			name += "*"
		}
		parts = append(parts, box+" "+name)
	}
	return strings.Join(parts, "  ")
}

// FormatSource returns a short provenance badge for a nutrition tier.
func FormatSource(t model.SourceTier) string {
	switch t {
	case model.TierOnline:
		return "off"
	case model.TierRegion:
		return "local"
	case model.TierGeneral:
		return "table"
	case model.TierAI:
		return "ai"
	case model.TierDefault:
		return "guess"
	}
	return "-"
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
