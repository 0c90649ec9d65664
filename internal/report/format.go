// Package report форматирует результаты расчета для пользователя.
package report

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"retireplan/internal/retirement"
)

const messageTemplate = "To retire at age %d:\nYou will need $%s\nYou will have saved $%s"

var printer = message.NewPrinter(language.English)

// RoundToThousand округляет сумму до ближайшей тысячи; половины округляются к четному.
// Результат остается float64: суммы за пределами int64 не переполняются.
func RoundToThousand(amount float64) float64 {
	return integral(math.RoundToEven(amount/1000) * 1000)
}

// Dollars округляет сумму до тысяч и разделяет разряды запятыми: 1234567 -> "1,235,000".
func Dollars(amount float64) string {
	return grouped(RoundToThousand(amount))
}

// WholeDollars округляет сумму до доллара и разделяет разряды запятыми.
func WholeDollars(amount float64) string {
	return grouped(integral(math.Round(amount)))
}

func grouped(value float64) string {
	return printer.Sprint(number.Decimal(value, number.MaxFractionDigits(0)))
}

// integral убирает отрицательный ноль после округления.
func integral(value float64) float64 {
	if value == 0 {
		return 0
	}
	return value
}

// Message формирует итоговое сообщение для возраста выхода на пенсию.
func Message(retirementAge int, p retirement.Projection) string {
	return fmt.Sprintf(messageTemplate,
		retirementAge,
		Dollars(p.AmountNeededToRetire),
		Dollars(p.ExpectedTotalSavings))
}
