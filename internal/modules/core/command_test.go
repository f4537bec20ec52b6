package core

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_CommandError_Marshals_To_Error_Body(t *testing.T) {
	// Arrange
	err := NewNotFoundError(fmt.Errorf("session not found"))

	// Act
	body, marshalErr := json.Marshal(err)

	// Assert
	require.NoError(t, marshalErr)
	require.JSONEq(t, `{"error":"session not found"}`, string(body))
}

func Test_CommandError_Uses_Reason_When_Payload_Empty(t *testing.T) {
	err := NewCommandError(500, nil, WithReason("something broke"))

	body, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	require.JSONEq(t, `{"error":"something broke"}`, string(body))
}

func Test_Error_Taxonomy_Maps_To_Status_Codes(t *testing.T) {
	require.Equal(t, 400, NewValidationError(fmt.Errorf("bad")).StatusCode)
	require.Equal(t, 404, NewNotFoundError(fmt.Errorf("missing")).StatusCode)
	require.Equal(t, 502, NewUpstreamError(fmt.Errorf("down")).StatusCode)
}
