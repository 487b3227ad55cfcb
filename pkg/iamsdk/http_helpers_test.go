package iamsdk

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		want      []string
		malformed bool
	}{
		{name: "array", raw: `["a","b"]`, want: []string{"a", "b"}},
		{name: "empty array", raw: `[]`, want: []string{}},
		{name: "null", raw: `null`, want: []string{}},
		{name: "blank", raw: ` `, want: []string{}},
		{name: "object", raw: `{"items":[]}`, malformed: true},
		{name: "string", raw: `"users"`, malformed: true},
		{name: "wrong element type", raw: `[1,2]`, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeList[string](json.RawMessage(tt.raw))
			if tt.malformed {
				require.ErrorIs(t, err, ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPut, "/roles/1", nil)
	build := func(code int, body string) error {
		return parseErrorResponse(&http.Response{StatusCode: code, Request: req}, []byte(body))
	}

	require.NoError(t, build(http.StatusOK, ""))
	require.NoError(t, build(http.StatusCreated, `{"id":"1"}`))

	err := build(http.StatusNotFound, `{"error":"Role not found"}`)
	require.EqualError(t, err, "PUT /roles/1: HTTP 404: Role not found")

	err = build(http.StatusConflict, `{"message":"already exists"}`)
	require.Contains(t, err.Error(), "already exists")

	err = build(http.StatusBadGateway, "upstream down")
	require.Contains(t, err.Error(), "upstream down")

	err = build(http.StatusInternalServerError, "")
	require.EqualError(t, err, "PUT /roles/1: HTTP 500: Internal Server Error")

	apiErr := err.(*APIError)
	require.False(t, apiErr.Unauthorized())
}

func TestClientURL(t *testing.T) {
	t.Parallel()

	c := New(Config{BaseURL: " http://iam.internal:8080/ "})
	require.Equal(t, "http://iam.internal:8080/audit", c.url("/audit", nil))
	require.Equal(t, "http://iam.internal:8080/audit?page=2", c.url("/audit", (&AuditQuery{Page: 2}).Values()))

	require.Equal(t, DefaultBaseURL, New(Config{}).BaseURL)
	require.Equal(t, "/users/a%20b", resourcePath(usersPath, "a b"))
}
