package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCentsFromDecimalString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
		ok    bool
	}{
		{name: "valor com duas casas", input: "12.34", want: 1234, ok: true},
		{name: "valor inteiro", input: "7", want: 700, ok: true},
		{name: "uma casa decimal", input: "0.5", want: 50, ok: true},
		{name: "mais de duas casas é truncado", input: "1.999", want: 199, ok: true},
		{name: "zero", input: "0", want: 0, ok: true},
		{name: "negativo", input: "-3.25", want: -325, ok: true},
		{name: "vazio", input: "", want: 0, ok: false},
		{name: "não numérico", input: "abc", want: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CentsFromDecimalString(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-05-10")
	assert.NoError(t, err)
	assert.Equal(t, "2024-05-10", date.Format("2006-01-02"))

	_, err = ParseDate("10/05/2024")
	assert.Error(t, err)
}
