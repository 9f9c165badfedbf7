package service

import (
	"fmt"
	"strings"
	"time"
)

// Формат кода retiro: FADU-YYYY-NNNNN. Коды попадают в напечатанные и
// отправленные подтверждения, менять формат нельзя.
const pickupCodePrefix = "FADU"

func GeneratePickupCode(now time.Time, seq int64) string {
	return fmt.Sprintf("%s-%d-%05d", pickupCodePrefix, now.Year(), seq)
}

// NormalizePickupCode приводит ввод сканера/оператора к каноничному виду.
func NormalizePickupCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
