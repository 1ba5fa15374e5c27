package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNurse_AvatarIndex(t *testing.T) {
	testCases := []struct {
		name     string
		profile  []byte
		expected int
	}{
		{name: "No profile", profile: nil, expected: 0},
		{name: "Valid index", profile: []byte{3}, expected: 3},
		{name: "Last index", profile: []byte{5}, expected: 5},
		{name: "Out of range", profile: []byte{6}, expected: 0},
		{name: "Image bytes", profile: []byte{0x89, 0x50, 0x4e, 0x47}, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n := Nurse{Profile: tc.profile}
			assert.Equal(t, tc.expected, n.AvatarIndex())
		})
	}
}

func TestNurse_JSONWireFormat(t *testing.T) {
	n := Nurse{Name: "Ana", Surname: "Ruiz", Email: "ana@fatfox.com", Username: "ana.r", Password: "pw", Profile: []byte{1, 2, 3}}

	raw, err := json.Marshal(n)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	_, hasID := fields["id"]
	assert.False(t, hasID, "id must be absent before creation")
	assert.Equal(t, "ana.r", fields["user"])
	assert.Equal(t, "AQID", fields["profile"], "profile travels as base64")
}

func TestNurse_PublicClearsPassword(t *testing.T) {
	n := Nurse{ID: 1, Username: "bob.s", Password: "abc123", Profile: []byte{2}}
	p := n.Public()

	assert.Empty(t, p.Password)
	assert.Equal(t, "abc123", n.Password)

	p.Profile[0] = 9
	assert.Equal(t, byte(2), n.Profile[0], "public copy must not alias profile bytes")
}
