package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReferenceUnmarshalString(t *testing.T) {
	var ref Reference
	require.NoError(t, json.Unmarshal([]byte(`"c1"`), &ref))
	require.Equal(t, "c1", ref.Raw)
	require.Nil(t, ref.Object)
	require.False(t, ref.IsZero())
}

func TestReferenceUnmarshalObject(t *testing.T) {
	var ref Reference
	require.NoError(t, json.Unmarshal([]byte(`{"id":"c1","categoryName":"Food"}`), &ref))
	require.NotNil(t, ref.Object)
	require.Equal(t, "c1", ref.Object.RefID())
	require.Equal(t, "Food", ref.Object.CategoryName)
}

func TestReferenceAltID(t *testing.T) {
	var ref Reference
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"b9","name":"Acme","logo":"https://cdn/acme.png"}`), &ref))
	require.Equal(t, "b9", ref.Object.RefID())
	require.Equal(t, "Acme", ref.Object.Name)
	require.Equal(t, "https://cdn/acme.png", ref.Object.Logo)
}

func TestReferenceNullAndAbsent(t *testing.T) {
	var ref Reference
	require.NoError(t, json.Unmarshal([]byte(`null`), &ref))
	require.True(t, ref.IsZero())

	var rec OfferRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id":"o1","title":"t"}`), &rec))
	require.True(t, rec.BrandID.IsZero())
	require.True(t, rec.CategoryID.IsZero())
}

func TestReferenceMarshalRoundTrip(t *testing.T) {
	for _, raw := range []string{`"c1"`, `{"id":"c1","_id":"","name":"","categoryName":"Food","logo":""}`} {
		var ref Reference
		require.NoError(t, json.Unmarshal([]byte(raw), &ref))
		out, err := json.Marshal(ref)
		require.NoError(t, err)
		var again Reference
		require.NoError(t, json.Unmarshal(out, &again))
		require.Equal(t, ref, again)
	}
}

func TestImageListString(t *testing.T) {
	var imgs ImageList
	require.NoError(t, json.Unmarshal([]byte(`"https://cdn/a.png"`), &imgs))
	require.Equal(t, ImageList{"https://cdn/a.png"}, imgs)
	require.Equal(t, "https://cdn/a.png", imgs.Primary())
}

func TestImageListArray(t *testing.T) {
	var imgs ImageList
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &imgs))
	require.Equal(t, ImageList{"a", "b"}, imgs)
	require.Equal(t, "a", imgs.Primary())
}

func TestImageListNull(t *testing.T) {
	var imgs ImageList
	require.NoError(t, json.Unmarshal([]byte(`null`), &imgs))
	require.Empty(t, imgs)
	require.Equal(t, "", imgs.Primary())
}

func TestEnvelopeDecode(t *testing.T) {
	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(`{"isSuccess":true,"message":"ok","data":[{"id":"o1"}],"pagination":{"page":2,"totalPages":5,"totalItems":42}}`), &env))
	require.True(t, env.IsSuccess)
	require.NotNil(t, env.Pagination)
	require.Equal(t, 2, env.Pagination.Page)
	require.Equal(t, 5, env.Pagination.TotalPages)

	var records []OfferRecord
	require.NoError(t, env.Decode(&records))
	require.Len(t, records, 1)
	require.Equal(t, "o1", records[0].ID)
}

func TestEnvelopeDecodeNullData(t *testing.T) {
	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(`{"isSuccess":false,"message":"bad credentials","data":null}`), &env))

	var records []OfferRecord
	require.NoError(t, env.Decode(&records))
	require.Nil(t, records)
}
