package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

// toD convierte un documento a bson.D para las respuestas del mock
func toD(t *testing.T, v interface{}) bson.D {
	raw, err := bson.Marshal(v)
	require.NoError(t, err)

	var d bson.D
	require.NoError(t, bson.Unmarshal(raw, &d))
	return d
}

func cursor(ns string, docs ...bson.D) bson.D {
	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, docs...)
}

func matched(n int) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: n}, bson.E{Key: "nModified", Value: n})
}

func deleted(n int) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: n})
}

func count(n int) bson.D {
	return cursor("test.products", bson.D{{Key: "n", Value: int32(n)}})
}
