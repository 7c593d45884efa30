package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeParametersExplicitWins(t *testing.T) {
	merged := MergeParameters(DefaultParameters(), Parameters{ParamTemperature: 0.2})

	assert.Equal(t, 0.2, merged[ParamTemperature])
	assert.Equal(t, DefaultMaxTokens, merged[ParamMaxTokens])
}

func TestMergeParametersDoesNotMutateInputs(t *testing.T) {
	defaults := DefaultParameters()
	_ = MergeParameters(defaults, Parameters{ParamMaxTokens: 1000, "top_p": 0.9})

	assert.Equal(t, DefaultParameters(), defaults)
}

func TestScorePreservesRawScalar(t *testing.T) {
	tests := []struct {
		name string
		in   string
		str  string
	}{
		{name: "number", in: `85`, str: "85"},
		{name: "string", in: `"85"`, str: "85"},
		{name: "out of range passes through", in: `15`, str: "15"},
		{name: "decimal", in: `7.5`, str: "7.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Score
			require.NoError(t, json.Unmarshal([]byte(tt.in), &s))
			assert.Equal(t, tt.str, s.String())

			out, err := json.Marshal(s)
			require.NoError(t, err)
			assert.Equal(t, tt.in, string(out))
		})
	}
}

func TestScoreRejectsNonScalar(t *testing.T) {
	var s Score
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &s))
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &s))
}

func TestZeroScoreMarshalsAsZero(t *testing.T) {
	out, err := json.Marshal(Score{})
	require.NoError(t, err)
	assert.Equal(t, "0", string(out))
	assert.Equal(t, "0", Score{}.String())
}

func TestUseCaseValid(t *testing.T) {
	for _, u := range UseCases {
		assert.True(t, u.Valid(), u)
	}
	assert.False(t, UseCase("appendix").Valid())
	assert.False(t, UseCase("").Valid())
}

func TestErrorTaxonomy(t *testing.T) {
	err := InvalidInputf("topic is required")
	assert.True(t, errors.Is(err, ErrInvalidInput))

	cause := errors.New("connection reset")
	var wrapped error = &TransportError{Op: "chat", Err: cause}
	assert.True(t, errors.Is(wrapped, cause))

	var upstream *UpstreamError
	assert.True(t, errors.As(error(&UpstreamError{StatusCode: 500, Body: "boom"}), &upstream))
	assert.Equal(t, 500, upstream.StatusCode)
}
