package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNumberString_UnmarshalJSON(t *testing.T) {
	var body struct {
		A NumberString `json:"a"`
		B NumberString `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"07","b":42}`), &body))
	assert.Equal(t, NumberString("07"), body.A)
	assert.Equal(t, NumberString("42"), body.B)
}

func TestNumberString_UnmarshalJSON_RejectsObjects(t *testing.T) {
	var n NumberString
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &n))
}

func TestNumberString_DecodesLegacyBSON(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"s": "05", "d": 12.0, "i": int32(3), "l": int64(99)})
	require.NoError(t, err)

	var doc struct {
		S NumberString `bson:"s"`
		D NumberString `bson:"d"`
		I NumberString `bson:"i"`
		L NumberString `bson:"l"`
	}
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, NumberString("05"), doc.S)
	assert.Equal(t, NumberString("12"), doc.D)
	assert.Equal(t, NumberString("3"), doc.I)
	assert.Equal(t, NumberString("99"), doc.L)
}

func TestNumberString_Float(t *testing.T) {
	f, err := NumberString("07").Float()
	require.NoError(t, err)
	assert.Equal(t, 7.0, f)

	_, err = NumberString("x").Float()
	assert.Error(t, err)
}
