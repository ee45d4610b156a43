package adsdomain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

var null = []byte("null")

// Enum aceita tanto o código numérico quanto o rótulo textual, pois a API
// devolve um ou outro dependendo do endpoint
type Enum struct {
	Code  int
	Label string
	Set   bool
}

func EnumCode(code int) Enum { return Enum{Code: code, Set: true} }
func EnumLabel(label string) Enum { return Enum{Label: label, Set: true} }

func (e *Enum) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, null) {
		*e = Enum{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		if code, err := strconv.Atoi(label); err == nil {
			*e = EnumCode(code)
			return nil
		}
		*e = EnumLabel(label)
		return nil
	}

	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("enum inválido %s: %w", string(data), err)
	}
	*e = EnumCode(code)
	return nil
}

func (e Enum) String() string {
	if e.Label != "" {
		return e.Label
	}
	return strconv.Itoa(e.Code)
}

// Int64 é um inteiro anulável; int64 chega como string no JSON da API
type Int64 struct {
	Value int64
	Valid bool
}

func NewInt64(v int64) Int64 { return Int64{Value: v, Valid: true} }

func (i *Int64) UnmarshalJSON(data []byte) error {
	v, ok, err := parseNumber(data)
	if err != nil {
		return err
	}
	if !ok {
		*i = Int64{}
		return nil
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			return fmt.Errorf("inteiro inválido %q: %w", v, err)
		}
		n = int64(f)
	}
	*i = NewInt64(n)
	return nil
}

// Micros é um valor monetário em micros (1.000.000 = 1 unidade)
type Micros struct {
	Int64
}

func NewMicros(v int64) Micros { return Micros{Int64: NewInt64(v)} }

// Float é um double anulável (conversões, valor de conversão, ROAS alvo)
type Float struct {
	Value string
	Valid bool
}

func NewFloat(v string) Float { return Float{Value: v, Valid: true} }

func (f *Float) UnmarshalJSON(data []byte) error {
	v, ok, err := parseNumber(data)
	if err != nil {
		return err
	}
	if !ok {
		*f = Float{}
		return nil
	}

	if _, err := strconv.ParseFloat(v, 64); err != nil {
		return fmt.Errorf("número inválido %q: %w", v, err)
	}
	*f = NewFloat(v)
	return nil
}

func parseNumber(data []byte) (string, bool, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, null) {
		return "", false, nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false, err
		}
		if s == "" {
			return "", false, nil
		}
		return s, true, nil
	}

	return string(data), true, nil
}
