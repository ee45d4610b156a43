package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPercent(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "negativo vira zero", in: -5, want: 0},
		{name: "dentro do intervalo", in: 42, want: 42},
		{name: "acima de cem", in: 180, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampPercent(tt.in))
		})
	}
}

