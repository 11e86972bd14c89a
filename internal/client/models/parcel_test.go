package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWordAddress_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"hints.sporting.permit", true},
		{"apple.bee.cat", true},
		{"apple.bee", false},
		{"apple..cat", false},
		{"apple.bee.cat.dog", false},
		{"apple bee.cat.dog", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, WordAddress(tt.in).Valid())
		})
	}
}

func TestParseWordAddress(t *testing.T) {
	assert.Equal(t, WordAddress("index.home.raft"), ParseWordAddress("  ///index.home.raft \n"))
	assert.Equal(t, "dog.eel.fox", ParseWordAddress("dog.eel.fox").String())
}

func TestUser_Registered(t *testing.T) {
	assert.False(t, User{}.Registered())
	assert.True(t, User{CreatedAt: time.Unix(1700000000, 0)}.Registered())
}
