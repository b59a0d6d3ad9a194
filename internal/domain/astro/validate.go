package astro

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/yanqian/astro-prediction/pkg/errors"
)

const (
	msgBadLayout = "Неверный формат даты или времени. Используйте YYYY-MM-DD и HH:MM"
	msgBadNumber = "Неверный формат данных. Проверьте правильность введённых значений"
	msgNoCoords  = "Укажите широту, долготу и часовой пояс места рождения"
)

// requestMessages is keyed by Request field name.
var requestMessages = map[string]string{
	"BirthDate": msgBadLayout,
	"BirthTime": msgBadLayout,
	"Latitude":  msgNoCoords,
	"Longitude": msgNoCoords,
	"Timezone":  msgNoCoords,
}

// rangeMessages is keyed by BirthInput field name.
var rangeMessages = map[string]string{
	"Day":    "День должен быть от 1 до 31",
	"Month":  "Месяц должен быть от 1 до 12",
	"Year":   "Год должен быть от 1900 до 2100",
	"Hour":   "Час должен быть от 0 до 23",
	"Minute": "Минуты должны быть от 0 до 59",
}

var birthValidator = validator.New()

// ParseBirthInput splits birthDate (YYYY-MM-DD) and birthTime (HH:MM) and
// checks field ranges. The first failing field, in day, month, year, hour,
// minute order, decides the message.
func ParseBirthInput(req Request) (BirthInput, error) {
	if req.Latitude == nil || req.Longitude == nil || req.Timezone == nil {
		return BirthInput{}, apperrors.Wrap(apperrors.CodeInvalidInput, msgNoCoords, nil)
	}
	dateParts := strings.Split(req.BirthDate, "-")
	timeParts := strings.Split(req.BirthTime, ":")
	if len(dateParts) != 3 || len(timeParts) != 2 {
		return BirthInput{}, apperrors.Wrap(apperrors.CodeInvalidInput, msgBadLayout, nil)
	}

	fields := []string{dateParts[2], dateParts[1], dateParts[0], timeParts[0], timeParts[1]}
	values := make([]int, len(fields))
	for i, raw := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return BirthInput{}, apperrors.Wrap(apperrors.CodeInvalidInput, msgBadNumber, err)
		}
		values[i] = v
	}

	in := BirthInput{
		Day:       values[0],
		Month:     values[1],
		Year:      values[2],
		Hour:      values[3],
		Minute:    values[4],
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Timezone:  *req.Timezone,
	}
	if err := birthValidator.Struct(in); err != nil {
		return BirthInput{}, apperrors.Wrap(apperrors.CodeInvalidInput, rangeMessage(err), err)
	}
	return in, nil
}

func rangeMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		if msg, ok := rangeMessages[fieldErrs[0].StructField()]; ok {
			return msg
		}
	}
	return msgBadNumber
}

// BindingMessage localizes a request binding failure, such as a missing or
// empty birthDate. ok is false for errors that are not field validation
// failures on Request.
func BindingMessage(err error) (msg string, ok bool) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "", false
	}
	msg, ok = requestMessages[fieldErrs[0].StructField()]
	return msg, ok
}
