package service

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var arPrinter = message.NewPrinter(language.Spanish)

// FormatARS форматирует сумму в центах как пользовательскую строку в песо
// ("1.500" или "1.500,50") — так сообщения совпадают с тем, что видит клиент.
func FormatARS(cents int64) string {
	whole := cents / 100
	frac := cents % 100
	if frac == 0 {
		return arPrinter.Sprintf("%d", whole)
	}
	return arPrinter.Sprintf("%d", whole) + arPrinter.Sprintf(",%02d", frac)
}
