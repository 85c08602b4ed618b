package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComplaintSID(t *testing.T) {
	sid, err := NewComplaintSID()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(sid, "cmp_"))
	assert.Len(t, sid, len("cmp_")+DefaultLength)
	assert.NoError(t, ValidatePrefix(sid, PrefixComplaint))
	assert.Error(t, ValidatePrefix(sid, PrefixUser))
}

func TestNewUserSID(t *testing.T) {
	sid, err := NewUserSID()
	require.NoError(t, err)

	assert.NoError(t, ValidatePrefix(sid, PrefixUser))
	assert.Error(t, ValidatePrefix(sid, PrefixComplaint))
}

func TestGenerateUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		sid, err := NewComplaintSID()
		require.NoError(t, err)
		require.False(t, seen[sid], "duplicate sid %s", sid)
		seen[sid] = true
	}
}

func TestGenerate_AlphabetOnly(t *testing.T) {
	s, err := Generate(0)
	require.NoError(t, err)
	assert.Len(t, s, DefaultLength)
	for _, c := range s {
		assert.True(t, strings.ContainsRune(alphabet, c))
	}
}

func TestValidatePrefix(t *testing.T) {
	tests := []struct {
		name    string
		sid     string
		prefix  string
		wantErr bool
	}{
		{name: "complaint", sid: "cmp_xK9mP2vL3nQ", prefix: PrefixComplaint},
		{name: "user", sid: "usr_student0001", prefix: PrefixUser},
		{name: "wrong prefix", sid: "usr_student0001", prefix: PrefixComplaint, wantErr: true},
		{name: "no separator", sid: "cmpabc", prefix: PrefixComplaint, wantErr: true},
		{name: "empty body", sid: "cmp_", prefix: PrefixComplaint, wantErr: true},
		{name: "second underscore", sid: "usr_a_b", prefix: PrefixUser, wantErr: true},
		{name: "path traversal", sid: "cmp_..%2F", prefix: PrefixComplaint, wantErr: true},
		{name: "empty", sid: "", prefix: PrefixComplaint, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrefix(tt.sid, tt.prefix)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
