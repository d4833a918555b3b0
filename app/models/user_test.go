package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		user    *User
		wantErr bool
	}{
		{
			name: "valid user",
			user: &User{
				ID:           1,
				Username:     "alice",
				Email:        "a@x.com",
				PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
				CreatedAt:    time.Now(),
			},
			wantErr: false,
		},
		{
			name: "username too short",
			user: &User{
				ID:           1,
				Username:     "al",
				Email:        "a@x.com",
				PasswordHash: "hash",
				CreatedAt:    time.Now(),
			},
			wantErr: true,
		},
		{
			name: "bad email",
			user: &User{
				ID:           1,
				Username:     "alice",
				Email:        "not-an-email",
				PasswordHash: "hash",
				CreatedAt:    time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing hash",
			user: &User{
				ID:        1,
				Username:  "alice",
				Email:     "a@x.com",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCredentialsValidation(t *testing.T) {
	valid := Credentials{Username: "alice", Email: "a@x.com", Password: "pw123456"}
	assert.NoError(t, ValidateStruct(valid))

	short := Credentials{Username: "alice", Email: "a@x.com", Password: "pw"}
	assert.Error(t, ValidateStruct(short))

	noEmail := Credentials{Username: "alice", Password: "pw123456"}
	assert.NoError(t, ValidateStruct(noEmail), "email is optional at login time")
}
