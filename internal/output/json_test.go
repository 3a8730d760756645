package output

import (
	"bytes"
	"testing"

	"github.com/ledmatrix/onboard/internal/testutil"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer

	err := WriteJSON(&buf, map[string]string{"id": "SA1"})

	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, buf.String(), "{\n  \"id\": \"SA1\"\n}\n")
}

func TestWritePrettyJSON(t *testing.T) {
	var buf bytes.Buffer

	err := WritePrettyJSON(&buf, []byte(testutil.SampleEmptyListResponse))
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, buf.String(), "[]\n")

	buf.Reset()
	err = WritePrettyJSON(&buf, []byte(`{"route":{"id":"R7"}}`))
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, buf.String(), "\"route\": {")
}

func TestWritePrettyJSON_Invalid(t *testing.T) {
	var buf bytes.Buffer

	err := WritePrettyJSON(&buf, []byte("not json"))

	testutil.AssertError(t, err)
	testutil.AssertContains(t, err.Error(), "invalid JSON response")
}
