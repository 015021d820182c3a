package transform

import (
	"math"
	"strconv"
	"testing"

	"github.com/aretw0/fieldprint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKelvin(t *testing.T) {
	k := Kelvin{Offset: domain.DefaultOffset}

	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "0", want: "273"},
		{in: "25", want: "298"},
		{in: "-273", want: "0"},
		{in: "-300", want: "-27"},
		{in: " 5 ", want: "278"},
		{in: "5\r", want: "278"},
		{in: "+7", want: "280"},
		{in: "abc", wantErr: domain.ErrNotInteger},
		{in: "1.5", wantErr: domain.ErrNotInteger},
		{in: "", wantErr: domain.ErrNotInteger},
		{in: "99999999999999999999", wantErr: domain.ErrOutOfRange},
		{in: strconv.FormatInt(math.MaxInt64, 10), wantErr: domain.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := k.Transform(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKelvin_AllIntegers(t *testing.T) {
	k := Kelvin{Offset: 273}
	for _, n := range []int64{-1000, -1, 0, 1, 42, 100000} {
		got, err := k.Transform(strconv.FormatInt(n, 10))
		require.NoError(t, err)
		assert.Equal(t, strconv.FormatInt(n+273, 10), got)
	}
}

func TestGreeting(t *testing.T) {
	g := Greeting{}

	got, err := g.Transform("Ana")
	require.NoError(t, err)
	assert.Equal(t, "Hola Ana!", got)

	got, err = g.Transform("Ana\r")
	require.NoError(t, err)
	assert.Equal(t, "Hola Ana!", got)

	got, err = g.Transform("")
	require.NoError(t, err)
	assert.Equal(t, "Hola !", got)

	custom := Greeting{Format: "Hello, %s."}
	got, err = custom.Transform("Bob")
	require.NoError(t, err)
	assert.Equal(t, "Hello, Bob.", got)
}

func TestCheckGreeting(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{format: "Hola %s!"},
		{format: "%s"},
		{format: "%s at 100%%"},
		{format: "Hola!", wantErr: true},
		{format: "Hola %d!", wantErr: true},
		{format: "%s and %s", wantErr: true},
		{format: "Hola %s %", wantErr: true},
		{format: "%v", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := CheckGreeting(tt.format)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidGreeting)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestForVariant(t *testing.T) {
	tr, err := ForVariant(domain.VariantConversor, Options{Offset: 273})
	require.NoError(t, err)
	assert.IsType(t, Kelvin{}, tr)

	tr, err = ForVariant(domain.VariantNombre, Options{})
	require.NoError(t, err)
	assert.IsType(t, Greeting{}, tr)

	_, err = ForVariant(domain.VariantNombre, Options{Greeting: "Hola!"})
	assert.ErrorIs(t, err, domain.ErrInvalidGreeting)

	_, err = ForVariant("celsius", Options{})
	assert.ErrorIs(t, err, domain.ErrUnknownVariant)
}
