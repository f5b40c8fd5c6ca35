package validate_test

import (
	"testing"

	"github.com/ardanlabs/toycoin/foundation/validate"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Check(t *testing.T) {
	type wire struct {
		From   string `json:"from" validate:"required"`
		To     string `json:"to" validate:"required"`
		Amount int64  `json:"amount"`
	}

	t.Log("Given the need to validate request models.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen required fields are missing.", testID)
		{
			err := validate.Check(wire{To: "bob", Amount: -1})
			if !validate.IsFieldErrors(err) {
				t.Fatalf("\t%s\tTest %d:\tShould return field errors, got %v.", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould return field errors.", success, testID)

			fields := validate.GetFieldErrors(err).Fields()
			if _, exists := fields["from"]; !exists || len(fields) != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould report only the from field by its json name: %v", failed, testID, fields)
			}
			t.Logf("\t%s\tTest %d:\tShould report only the from field by its json name.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen the model is valid.", testID)
		{
			if err := validate.Check(wire{From: "alice", To: "bob", Amount: -1}); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould pass validation: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould pass validation.", success, testID)
		}
	}
}
