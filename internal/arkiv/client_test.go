package arkiv

import (
	"errors"
	"testing"
)

func TestClauseString(t *testing.T) {
	cases := []struct {
		clause Clause
		want   string
	}{
		{Clause{Key: "protocol", Value: "aave-v3"}, `protocol = "aave-v3"`},
		{Clause{Key: "txHash", Value: "0xabc"}, `txHash = "0xabc"`},
		{Clause{Key: "user", Value: `0x"quoted"`}, `user = "0x\"quoted\""`},
	}
	for _, tc := range cases {
		if got := tc.clause.String(); got != tc.want {
			t.Errorf("Clause%+v.String() = %s, want %s", tc.clause, got, tc.want)
		}
	}
}

func TestQueryErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := &QueryError{Clause: `protocol = "aave-v3"`, Err: cause}

	if !errors.Is(err, cause) {
		t.Fatalf("QueryError must unwrap to its cause")
	}
	msg := err.Error()
	if msg == "" || msg == cause.Error() {
		t.Fatalf("error message should mention the clause, got %q", msg)
	}
}
