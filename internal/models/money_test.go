package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want int64
	}{
		{name: "already in cents", raw: 5432.10, want: 543210},
		{name: "rounds up past half", raw: 12.3456, want: 1235},
		{name: "rounds down below half", raw: 12.3449, want: 1234},
		{name: "half rounds up", raw: 1.005, want: 101},
		{name: "negative rounds away below half", raw: -12.3456, want: -1235},
		{name: "negative half rounds toward zero", raw: -0.125, want: -12},
		{name: "expense", raw: -1234.56, want: -123456},
		{name: "zero", raw: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewMoney(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Cents)
		})
	}
}

func TestNewMoneyRejectsNonFinite(t *testing.T) {
	for _, raw := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := NewMoney(raw)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}

func TestNewMoneyIsIdempotent(t *testing.T) {
	first := MustMoney(12.3456)
	second := MustMoney(first.Float64())
	assert.Equal(t, first, second)
	assert.Equal(t, "12.35", second.String())
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "12.34", want: 1234},
		{in: "12,34", want: 1234},
		{in: "+7", want: 700},
		{in: " -1234.56 ", want: -123456},
		{in: "0.005", want: 1},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMoney(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Cents)
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Cents(-617_28)
	assert.Equal(t, Cents(617_28), a.Abs())
	assert.Equal(t, -1, a.Sign())
	assert.Equal(t, 0, Cents(0).Sign())
	assert.Equal(t, Cents(-1), a.Add(Cents(617_27)))
	assert.InDelta(t, -617.28, a.Float64(), 1e-9)
	assert.Equal(t, "-617.28", a.String())
}

func TestMoneyEncoding(t *testing.T) {
	data, err := json.Marshal(struct {
		Amount Money `json:"amount"`
	}{Amount: Cents(543210)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount": 5432.10}`, string(data))

	var decoded struct {
		Amount Money `json:"amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"amount": 12.3456}`), &decoded))
	assert.Equal(t, Cents(1235), decoded.Amount)

	require.NoError(t, json.Unmarshal([]byte(`{"amount": "-3.10"}`), &decoded))
	assert.Equal(t, Cents(-310), decoded.Amount)

	out, err := yaml.Marshal(map[string]Money{"amount": Cents(-1050)})
	require.NoError(t, err)
	assert.Equal(t, "amount: -10.50\n", string(out))

	var fromYAML map[string]Money
	require.NoError(t, yaml.Unmarshal(out, &fromYAML))
	assert.Equal(t, Cents(-1050), fromYAML["amount"])
}
