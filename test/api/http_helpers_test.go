package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, path string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := fixture.client.Post(
		fmt.Sprintf("%s%s", fixture.baseURL, path),
		"application/json",
		bytes.NewReader(payload),
	)
	require.NoError(t, err)

	return resp
}

func getJSON(t *testing.T, path string) *http.Response {
	t.Helper()

	resp, err := fixture.client.Get(fmt.Sprintf("%s%s", fixture.baseURL, path))
	require.NoError(t, err)

	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var decoded T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))

	return decoded
}
