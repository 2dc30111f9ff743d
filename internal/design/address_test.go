package design

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"figmcp/internal/errors"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in   string
		want Address
	}{
		{"figma://node/ABC123/4:5", QualifiedAddress{FileKey: "ABC123", NodeID: "4:5"}},
		{"ABC123/4:5", ShortAddress{FileKey: "ABC123", NodeID: "4:5"}},
		{"  ABC123/4:5 ", ShortAddress{FileKey: "ABC123", NodeID: "4:5"}},
		{"ABC123/4:5/extra", ShortAddress{FileKey: "ABC123", NodeID: "4:5/extra"}},
		{"figma://node/ABC123/I1:2/3", QualifiedAddress{FileKey: "ABC123", NodeID: "I1:2/3"}},
		{"4:5", BareID{NodeID: "4:5"}},
		{"not-a-valid-address-at-all", BareID{NodeID: "not-a-valid-address-at-all"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAddress(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAddress_Malformed(t *testing.T) {
	for _, in := range []string{
		"",
		"figma://node/",
		"figma://node/ABC123",
		"figma://node/ABC123/",
		"figma://file/ABC123",
		"https://figma.com/file/ABC",
		"/4:5",
		"ABC/",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseAddress(in)
			require.Error(t, err)
			assert.Equal(t, errors.MalformedAddress, errors.CodeOf(err))
			assertListsShapes(t, err)
		})
	}
}

func assertListsShapes(t *testing.T, err error) {
	t.Helper()
	msg := err.Error()
	for _, example := range []string{"figma://node/ABC123/4:5", "ABC123/4:5", "4:5"} {
		assert.Contains(t, msg, example)
	}

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Subset(t, e.Hints, AddressShapes)
}

func TestResolveAddress(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		active string
		want   NodeRef
	}{
		{"qualified", "figma://node/ABC123/4:5", "", NodeRef{FileKey: "ABC123", NodeID: "4:5"}},
		{"short", "ABC123/4:5", "", NodeRef{FileKey: "ABC123", NodeID: "4:5"}},
		{"qualified ignores active", "figma://node/ABC123/4:5", "XYZ", NodeRef{FileKey: "ABC123", NodeID: "4:5"}},
		{"bare uses active", "4:5", "XYZ", NodeRef{FileKey: "XYZ", NodeID: "4:5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ParseAddress(tt.in)
			require.NoError(t, err)
			got, err := ResolveAddress(addr, tt.active)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveAddress_BareWithoutActive(t *testing.T) {
	addr, err := ParseAddress("not-a-valid-address-at-all")
	require.NoError(t, err)

	_, err = ResolveAddress(addr, "")
	require.Error(t, err)
	assert.Equal(t, errors.MalformedAddress, errors.CodeOf(err))
	assertListsShapes(t, err)
}

func TestParseFileAddress(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"figma://file/ABC123", "ABC123", false},
		{"ABC123", "ABC123", false},
		{"", "", false},
		{"figma://file/", "", true},
		{"figma://node/ABC/1:2", "", true},
		{"ABC/1:2", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFileAddress(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.MalformedAddress, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
