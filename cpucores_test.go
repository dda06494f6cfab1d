package facecam

import (
	"reflect"
	"testing"
)

func TestParseCPUCores(t *testing.T) {

	tests := []struct {
		input    string
		expected []int
		err      bool
	}{
		{"", []int{}, false},
		{"4,5,6,7", []int{4, 5, 6, 7}, false},
		{"4-7", []int{4, 5, 6, 7}, false},
		{"0, 4-5, 4", []int{0, 4, 5}, false},
		{"7-4", nil, true},
		{"a", nil, true},
		{"-1", nil, true},
	}

	for _, tc := range tests {
		got, err := ParseCPUCores(tc.input)

		if tc.err {
			if err == nil {
				t.Errorf("%q: expected error", tc.input)
			}
			continue
		}

		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.input, err)
			continue
		}

		if !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("%q: expected %v, got %v", tc.input, tc.expected, got)
		}
	}
}
