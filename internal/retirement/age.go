package retirement

import "time"

// CurrentAge возвращает полное число лет на момент now.
// Если день рождения в текущем году еще не наступил, возраст уменьшается на единицу.
func CurrentAge(dateOfBirth, now time.Time) int {
	age := now.Year() - dateOfBirth.Year()

	if now.Month() < dateOfBirth.Month() ||
		(now.Month() == dateOfBirth.Month() && now.Day() < dateOfBirth.Day()) {
		age--
	}

	return age
}
