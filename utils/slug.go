package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Таблица транслитерации закреплена навсегда: по ней уже сгенерированы
// slug'и существующих передач, менять её нельзя.
var cyrillicMap = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "yo", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "sch", 'ы': "y", 'э': "e", 'ю': "yu",
	'я': "ya", 'ь': "", 'ъ': "",
}

const DefaultSlugLength = 32

// GenerateSlug делает из названия URL-безопасный идентификатор:
// нижний регистр, кириллица в латиницу, диакритика убирается, всё
// остальное схлопывается в дефисы. Функция чистая и идемпотентная.
func GenerateSlug(input string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultSlugLength
	}

	var b strings.Builder
	for _, r := range strings.ToLower(input) {
		if mapped, ok := cyrillicMap[r]; ok {
			b.WriteString(mapped)
		} else {
			b.WriteRune(r)
		}
	}

	// Раскладываем акцентированные буквы и выбрасываем комбинируемые знаки
	decomposed := norm.NFD.String(b.String())
	var clean strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		clean.WriteRune(r)
	}

	// Каждый непрерывный участок вне [a-z0-9] становится одним дефисом
	var slug strings.Builder
	pendingHyphen := false
	for _, r := range clean.String() {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && slug.Len() > 0 {
				slug.WriteByte('-')
			}
			pendingHyphen = false
			slug.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}

	result := slug.String()
	if len(result) > maxLength {
		result = result[:maxLength]
	}
	return strings.TrimRight(result, "-")
}
