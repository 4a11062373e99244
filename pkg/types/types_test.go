package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		value   TimeString
		wantErr bool
	}{
		{name: "morning", value: "08:00"},
		{name: "last minute", value: "23:59"},
		{name: "end of day", value: "24:00"},
		{name: "empty", value: "", wantErr: true},
		{name: "single digit hour", value: "8:00", wantErr: true},
		{name: "hour out of range", value: "25:00", wantErr: true},
		{name: "minute out of range", value: "10:60", wantErr: true},
		{name: "with seconds", value: "10:00:00", wantErr: true},
		{name: "letters", value: "ab:cd", wantErr: true},
		{name: "plus sign hour", value: "+9:00", wantErr: true},
		{name: "plus sign with minutes", value: "+8:45", wantErr: true},
		{name: "minus sign hour", value: "-0:30", wantErr: true},
		{name: "plus sign minute", value: "09:+5", wantErr: true},
		{name: "space padded", value: " 9:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.value.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.True(t, TimeString("17:59").IsBefore("18:00"))

	minutes, err := TimeString("17:45").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 17*60+45, minutes)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	got, err := NewTimeStringFromMinutes(10*60 + 15)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	got, err = NewTimeStringFromMinutes(24 * 60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	_, err = NewTimeStringFromMinutes(24*60 + 15)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("10:30:00")))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan("11:15"))
	assert.Equal(t, TimeString("11:15"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 7, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("07:05"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestDateString_Validate(t *testing.T) {
	assert.NoError(t, DateString("2024-05-01").Validate())
	assert.NoError(t, DateString("2024-02-29").Validate())
	assert.ErrorIs(t, DateString("2023-02-29").Validate(), ErrInvalidDateString)
	assert.ErrorIs(t, DateString("01-05-2024").Validate(), ErrInvalidDateString)
	assert.ErrorIs(t, DateString("").Validate(), ErrInvalidDateString)
}

func TestDateString_At(t *testing.T) {
	loc := time.FixedZone("CET", 60*60)

	got, err := DateString("2024-05-01").At("09:30", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 5, 1, 9, 30, 0, 0, loc)))

	_, err = DateString("2024-05-01").At("9:30", loc)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestDateString_Scan(t *testing.T) {
	var ds DateString

	require.NoError(t, ds.Scan(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, DateString("2024-05-01"), ds)

	require.NoError(t, ds.Scan("2024-06-02"))
	assert.Equal(t, DateString("2024-06-02"), ds)

	require.NoError(t, ds.Scan([]byte("2024-06-03T00:00:00Z")))
	assert.Equal(t, DateString("2024-06-03"), ds)
}
