package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInput_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateInput
		want    CreateRequest
		wantErr error
	}{
		{
			name:  "numeric string client id is coerced",
			input: CreateInput{ClientID: "42", ProjectName: "Alpha"},
			want:  CreateRequest{ClientID: 42, ProjectName: "Alpha", Status: StatusPending},
		},
		{
			name:  "padded string client id is trimmed",
			input: CreateInput{ClientID: " 7 ", ProjectName: "  Gamma "},
			want:  CreateRequest{ClientID: 7, ProjectName: "Gamma", Status: StatusPending},
		},
		{
			name:  "int client id and explicit status",
			input: CreateInput{ClientID: 3, ProjectName: "Beta", Description: "d", Status: StatusCompleted},
			want:  CreateRequest{ClientID: 3, ProjectName: "Beta", Description: "d", Status: StatusCompleted},
		},
		{
			name:  "leading zero is decimal",
			input: CreateInput{ClientID: "010", ProjectName: "Alpha"},
			want:  CreateRequest{ClientID: 10, ProjectName: "Alpha", Status: StatusPending},
		},
		{
			name:  "leading zero with digits above seven",
			input: CreateInput{ClientID: "08", ProjectName: "Alpha"},
			want:  CreateRequest{ClientID: 8, ProjectName: "Alpha", Status: StatusPending},
		},
		{
			name:    "non-numeric client id",
			input:   CreateInput{ClientID: "acme", ProjectName: "Alpha"},
			wantErr: ErrInvalidClient,
		},
		{
			name:    "hex client id is rejected",
			input:   CreateInput{ClientID: "0x1F", ProjectName: "Alpha"},
			wantErr: ErrInvalidClient,
		},
		{
			name:    "nil client id is rejected",
			input:   CreateInput{ClientID: nil, ProjectName: "Alpha"},
			wantErr: ErrInvalidClient,
		},
		{
			name:    "zero client id is rejected",
			input:   CreateInput{ClientID: 0, ProjectName: "Alpha"},
			wantErr: ErrInvalidClient,
		},
		{
			name:    "negative string client id is rejected",
			input:   CreateInput{ClientID: "-4", ProjectName: "Alpha"},
			wantErr: ErrInvalidClient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.Normalize()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateRequest_Validate(t *testing.T) {
	assert.NoError(t, CreateRequest{ClientID: 1, ProjectName: "Alpha", Status: StatusPending}.Validate())
	assert.Error(t, CreateRequest{ClientID: 0, ProjectName: "Alpha"}.Validate())
	assert.Error(t, CreateRequest{ClientID: 1, ProjectName: ""}.Validate())
	assert.Error(t, CreateRequest{ClientID: 1, ProjectName: "Alpha", Status: "Archived"}.Validate())
}

func TestUpdateInput(t *testing.T) {
	name := "Renamed"
	status := StatusInProgress
	empty := ""
	bad := Status("Archived")

	assert.True(t, UpdateInput{}.IsEmpty())
	assert.NoError(t, UpdateInput{}.Validate())

	in := UpdateInput{ProjectName: &name, Status: &status}
	assert.False(t, in.IsEmpty())
	assert.NoError(t, in.Validate())
	assert.Len(t, in.Setters(), 2)

	assert.Error(t, UpdateInput{ProjectName: &empty}.Validate())
	assert.Error(t, UpdateInput{Status: &bad}.Validate())
}

func TestStatusRequest_Validate(t *testing.T) {
	assert.NoError(t, StatusRequest{Status: StatusCompleted}.Validate())
	assert.Error(t, StatusRequest{}.Validate())
	assert.Error(t, StatusRequest{Status: "Done"}.Validate())
}
