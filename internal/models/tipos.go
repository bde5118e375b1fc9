package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const LayoutData = "2006-01-02"

// Data é uma data de calendário serializada como "AAAA-MM-DD".
type Data struct {
	time.Time
}

func NovaData(t time.Time) Data {
	y, m, d := t.Date()
	return Data{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Data) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(LayoutData))
}

// UnmarshalJSON aceita "AAAA-MM-DD" e, em último caso, outros formatos comuns de data/hora.
func (d *Data) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("data deve ser texto no formato %s", LayoutData)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(LayoutData, s); err == nil {
		*d = NovaData(t)
		return nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return fmt.Errorf("data inválida: %q", s)
	}
	*d = NovaData(t)
	return nil
}

// Nota aceita tanto número quanto texto numérico: o formulário de edição envia "4.5".
type Nota float64

func (n *Nota) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, ",", ".")), 64)
		if err != nil {
			return fmt.Errorf("nota inválida: %q", s)
		}
		*n = Nota(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Nota(f)
	return nil
}

func (n *Nota) Float() *float64 {
	if n == nil {
		return nil
	}
	f := float64(*n)
	return &f
}
