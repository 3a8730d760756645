package onboarding

import (
	"encoding/json"
	"testing"

	"github.com/ledmatrix/onboard/internal/testutil"
)

func TestStatus_Predicates(t *testing.T) {
	testutil.AssertTrue(t, Status{}.Empty())
	testutil.AssertTrue(t, errorStatus("boom").IsError())
	testutil.AssertFalse(t, errorStatus("boom").IsSuccess())
	testutil.AssertTrue(t, successStatus(SuccessMessage).IsSuccess())
}

func TestStatusKind_String(t *testing.T) {
	testutil.AssertEqual(t, StatusNone.String(), "none")
	testutil.AssertEqual(t, StatusError.String(), "error")
	testutil.AssertEqual(t, StatusSuccess.String(), "success")
	testutil.AssertEqual(t, StatusKind(9).String(), "unknown")
}

func TestStatus_JSON(t *testing.T) {
	data, err := json.Marshal(successStatus(SuccessMessage))

	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, string(data), `{"kind":"success","message":"Configuration sent to the LED matrix"}`)
}
