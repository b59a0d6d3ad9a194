package astro

var planetNames = map[string]string{
	"Sun":       "Солнце",
	"Moon":      "Луна",
	"Mars":      "Марс",
	"Mercury":   "Меркурий",
	"Jupiter":   "Юпитер",
	"Venus":     "Венера",
	"Saturn":    "Сатурн",
	"Rahu":      "Раху",
	"Ketu":      "Кету",
	"Ascendant": "Асцендент",
}

var zodiacSigns = map[string]string{
	"Aries":       "Овен",
	"Taurus":      "Телец",
	"Gemini":      "Близнецы",
	"Cancer":      "Рак",
	"Leo":         "Лев",
	"Virgo":       "Дева",
	"Libra":       "Весы",
	"Scorpio":     "Скорпион",
	"Sagittarius": "Стрелец",
	"Capricorn":   "Козерог",
	"Aquarius":    "Водолей",
	"Pisces":      "Рыбы",
}

// The API is inconsistent about nakshatra spelling, so variants map to the
// same display name.
var nakshatraNames = map[string]string{
	"Ashwini":           "Ашвини",
	"Bharani":           "Бхарани",
	"Bharni":            "Бхарани",
	"Krittika":          "Криттика",
	"Rohini":            "Рохини",
	"Mrigashirsha":      "Мригашира",
	"Mrigashira":        "Мригашира",
	"Ardra":             "Ардра",
	"Punarvasu":         "Пунарвасу",
	"Pushya":            "Пушья",
	"Ashlesha":          "Ашлеша",
	"Magha":             "Магха",
	"Purva Phalguni":    "Пурва Пхалгуни",
	"P.Phalguni":        "Пурва Пхалгуни",
	"Uttara Phalguni":   "Уттара Пхалгуни",
	"U.Phalguni":        "Уттара Пхалгуни",
	"Uttra Phalguni":    "Уттара Пхалгуни",
	"Hasta":             "Хаста",
	"Chitra":            "Читра",
	"Swati":             "Свати",
	"Vishakha":          "Вишакха",
	"Anuradha":          "Анурадха",
	"Jyeshtha":          "Джйештха",
	"Mula":              "Мула",
	"Moola":             "Мула",
	"Purva Ashadha":     "Пурва Ашадха",
	"P.Ashadha":         "Пурва Ашадха",
	"Uttara Ashadha":    "Уттара Ашадха",
	"U.Ashadha":         "Уттара Ашадха",
	"Uttra Ashadha":     "Уттара Ашадха",
	"Uttra Shadha":      "Уттара Ашадха",
	"Shravana":          "Шравана",
	"Shravan":           "Шравана",
	"Dhanishta":         "Дхаништха",
	"Shatabhisha":       "Шатабхиша",
	"Shatabhishak":      "Шатабхиша",
	"Purva Bhadrapada":  "Пурва Бхадрапада",
	"P.Bhadrapada":      "Пурва Бхадрапада",
	"Purva Bhadrapad":   "Пурва Бхадрапада",
	"Uttara Bhadrapada": "Уттара Бхадрапада",
	"U.Bhadrapada":      "Уттара Бхадрапада",
	"Uttra Bhadrapada":  "Уттара Бхадрапада",
	"Revati":            "Ревати",
}

// TranslatePlanet returns the Russian planet name, or name itself when unknown.
func TranslatePlanet(name string) string { return lookup(planetNames, name) }

// TranslateSign returns the Russian zodiac sign, or sign itself when unknown.
func TranslateSign(sign string) string { return lookup(zodiacSigns, sign) }

// TranslateNakshatra returns the Russian lunar mansion, or name itself when unknown.
func TranslateNakshatra(name string) string { return lookup(nakshatraNames, name) }

func lookup(table map[string]string, key string) string {
	if v, ok := table[key]; ok {
		return v
	}
	return key
}
