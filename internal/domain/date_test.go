package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "iso date", input: "2025-10-07", want: NewDate(2025, time.October, 7)},
		{name: "surrounding spaces", input: " 2025-10-07 ", want: NewDate(2025, time.October, 7)},
		{name: "day first", input: "07/10/2025", wantErr: true},
		{name: "with time", input: "2025-10-07T10:00:00Z", wantErr: true},
		{name: "impossible day", input: "2025-02-30", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	t.Parallel()

	vehicle := Vehicle{ID: 3, Name: "Gol 1.6", Brand: "Volkswagen", RegistrationDate: NewDate(2025, time.October, 7)}

	data, err := json.Marshal(vehicle)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"registrationDate":"2025-10-07"`)

	var decoded Vehicle
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "2025-10-07", decoded.RegistrationDate.String())
	assert.True(t, vehicle.RegistrationDate.Equal(decoded.RegistrationDate))
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	t.Parallel()

	late := time.Date(2025, time.October, 7, 23, 59, 59, 0, time.FixedZone("BRT", -3*60*60))
	assert.Equal(t, "2025-10-07", DateOf(late).String())
}

func TestDateUnmarshalRejectsNonString(t *testing.T) {
	t.Parallel()

	var d Date
	assert.Error(t, json.Unmarshal([]byte(`20251007`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"2025/10/07"`), &d))
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
}
