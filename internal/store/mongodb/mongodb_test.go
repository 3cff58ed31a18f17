package mongodb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDocumentConversion_RoundTrip(t *testing.T) {
	in := []byte(`{"studentId":"111111111","fullName":"Ann Lee","age":20,"courses":["101","102"]}`)

	doc, err := fromJSON("111111111", in)
	require.NoError(t, err)
	assert.Equal(t, "111111111", doc["_id"])

	// 模拟驱动读回：经过一次 BSON 编解码
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var decoded bson.M
	require.NoError(t, bson.Unmarshal(raw, &decoded))

	out, err := toDocument(decoded)
	require.NoError(t, err)
	assert.Equal(t, "111111111", out.Key)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Data, &got))
	assert.Equal(t, "Ann Lee", got["fullName"])
	assert.EqualValues(t, 20, got["age"])
	assert.Len(t, got["courses"], 2)
	assert.NotContains(t, got, "_id")
}

func TestToDocument_RequiresStringID(t *testing.T) {
	_, err := toDocument(bson.M{"_id": 42})
	assert.Error(t, err)
}
