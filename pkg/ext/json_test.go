package ext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thc-devops/vulnsummary/pkg/ext"
)

func TestTrimJSONPreamble(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expected      string
		expectedError error
	}{
		{
			name:     "Should return input when it starts with an array",
			input:    `[{"Target":"alpine"}]`,
			expected: `[{"Target":"alpine"}]`,
		},
		{
			name:     "Should return input when it starts with an object",
			input:    `{"Results":[]}`,
			expected: `{"Results":[]}`,
		},
		{
			name:     "Should skip leading blanks",
			input:    "  \n\t{\"Results\":[]}",
			expected: `{"Results":[]}`,
		},
		{
			name: "Should skip log lines printed before the document",
			input: "2021-05-20T10:00:00.000Z\tINFO\tNeed to update DB\n" +
				"2021-05-20T10:00:01.000Z\tINFO\tDetecting Alpine vulnerabilities [1/2]\n" +
				"[\n  {\"Target\": \"alpine\"}\n]\n",
			expected: "[\n  {\"Target\": \"alpine\"}\n]\n",
		},
		{
			name:          "Should return error when there is no document",
			input:         "INFO nothing to see here\n",
			expectedError: ext.ErrNoJSONDocument,
		},
		{
			name:          "Should return error when input is empty",
			input:         "",
			expectedError: ext.ErrNoJSONDocument,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := ext.TrimJSONPreamble([]byte(tc.input))
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(data))
		})
	}
}
