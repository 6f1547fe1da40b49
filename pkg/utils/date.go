package utils

import "time"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// CentsFromDecimalString converte um valor monetário decimal em string
// ("12.34") para centavos inteiros, sem passar por float
func CentsFromDecimalString(value string) (int64, bool) {
	if value == "" {
		return 0, false
	}

	var intPart, fracPart string
	for i := 0; i < len(value); i++ {
		if value[i] == '.' {
			intPart, fracPart = value[:i], value[i+1:]
			break
		}
	}
	if intPart == "" && fracPart == "" {
		intPart = value
	}

	negative := false
	if len(intPart) > 0 && intPart[0] == '-' {
		negative = true
		intPart = intPart[1:]
	}

	// Normaliza a fração para exatamente dois dígitos
	if len(fracPart) > 2 {
		fracPart = fracPart[:2]
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	var cents int64
	for _, part := range []string{intPart, fracPart} {
		for _, ch := range part {
			if ch < '0' || ch > '9' {
				return 0, false
			}
			cents = cents*10 + int64(ch-'0')
		}
	}

	if negative {
		cents = -cents
	}

	return cents, true
}
