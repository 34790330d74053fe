package clipboard

import (
	"errors"
	"testing"
)

func TestServiceCopy(t *testing.T) {
	writeFailure := errors.New("xclip exited")
	testCases := []struct {
		name        string
		unsupported bool
		writeError  error
		expectError error
		expectText  string
	}{
		{name: "copies text", expectText: "# File Documentation"},
		{name: "unsupported host", unsupported: true, expectError: ErrUnavailable},
		{name: "write failure is wrapped", writeError: writeFailure, expectError: writeFailure, expectText: "# File Documentation"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var written string
			service := &Service{
				write: func(text string) error {
					written = text
					return testCase.writeError
				},
				unsupported: func() bool { return testCase.unsupported },
			}
			err := service.Copy("# File Documentation")
			if !errors.Is(err, testCase.expectError) {
				t.Fatalf("Copy error %v, expected %v", err, testCase.expectError)
			}
			if written != testCase.expectText {
				t.Fatalf("written %q, expected %q", written, testCase.expectText)
			}
		})
	}
}
