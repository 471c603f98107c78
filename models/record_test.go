package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyNormalization(t *testing.T) {
	assert.Equal(t, Key("Heat", "1995"), Key("  heat ", "1995"))
	assert.NotEqual(t, Key("Heat", "1995"), Key("Heat", "2013"))

	record := MovieRecord{Title: "HEAT", Year: "1995"}
	assert.Equal(t, Key("heat", "1995"), record.Key())
}

func TestStringListCSVRoundTrip(t *testing.T) {
	list := StringList{"Action", "Crime", "Drama"}

	data, err := list.MarshalCSV()
	assert.NoError(t, err)
	assert.Equal(t, "Action, Crime, Drama", string(data))

	var decoded StringList
	assert.NoError(t, decoded.UnmarshalCSV(data))
	assert.Equal(t, list, decoded)
}

func TestStringListEmpty(t *testing.T) {
	var list StringList

	data, err := list.MarshalCSV()
	assert.NoError(t, err)
	assert.Equal(t, "", string(data))

	var decoded StringList
	assert.NoError(t, decoded.UnmarshalCSV(nil))
	assert.Nil(t, decoded)
}

func TestStringListTrimsEntries(t *testing.T) {
	var decoded StringList
	assert.NoError(t, decoded.UnmarshalCSV([]byte(" Action ,Crime,  ,Drama")))
	assert.Equal(t, StringList{"Action", "Crime", "Drama"}, decoded)
}
