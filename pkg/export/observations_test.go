package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"astro/entities"
)

func TestWriteObservations(t *testing.T) {
	mag, val := "Magnitude", "-2.9"
	rows := []entities.ObservationView{
		{
			Observation: entities.Observation{
				ID:                  2,
				ObservationDatetime: time.Date(2024, 3, 9, 21, 30, 0, 0, time.UTC),
				ObservationText:     "Four moons visible",
				PropertyValue:       &val,
			},
			ObjectName: "Jupiter", PlaceName: "Greenwich", InstrumentName: "Celestron", PropertyName: &mag,
		},
		{
			Observation: entities.Observation{
				ID:                  1,
				ObservationDatetime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				ObservationText:     "Subsurface ocean detected",
			},
			ObjectName: "Europa", PlaceName: "Greenwich", InstrumentName: "Celestron",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteObservations(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, Header, got[0])
	assert.Equal(t, []string{"2", "2024-03-09 21:30:00", "Jupiter", "Greenwich", "Celestron", "Magnitude", "-2.9", "Four moons visible"}, got[1])
	assert.Equal(t, "Europa", got[2][2])
	assert.Equal(t, "Subsurface ocean detected", got[2][7])
}

func TestWriteObservationsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteObservations(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
