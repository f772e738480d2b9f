package models

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// NumberString holds a drawn number as text. Clients and the external
// ingester send it either as a JSON string ("07") or a JSON number (7),
// and older documents store it as a BSON double.
type NumberString string

func (n *NumberString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumberString(s)
		return nil
	}
	var f json.Number
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("number must be a string or a number: %w", err)
	}
	*n = NumberString(f.String())
	return nil
}

func (n *NumberString) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v := bsoncore.Value{Type: t, Data: data}
	switch t {
	case bsontype.String:
		*n = NumberString(v.StringValue())
	case bsontype.Double:
		*n = NumberString(strconv.FormatFloat(v.Double(), 'f', -1, 64))
	case bsontype.Int32:
		*n = NumberString(strconv.FormatInt(int64(v.Int32()), 10))
	case bsontype.Int64:
		*n = NumberString(strconv.FormatInt(v.Int64(), 10))
	case bsontype.Null, bsontype.Undefined:
		*n = ""
	default:
		return fmt.Errorf("cannot decode %s into a number", t)
	}
	return nil
}

func (n NumberString) String() string {
	return string(n)
}

// Float parses the number for the numeric root field of grouped documents.
func (n NumberString) Float() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}
