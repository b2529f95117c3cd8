package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	cursor := Cursor{
		Date:      time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC),
		ID:        "7d1c8a52-3f1e-4a33-9d0f-0b3b1c2d4e5f",
	}

	token := EncodeToken(cursor)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, cursor, decoded)

	// Zero time values survive the round trip too
	zero := Cursor{ID: "x"}
	decodedZero, err := DecodeToken(EncodeToken(zero))
	require.NoError(t, err)
	assert.Equal(t, zero, decodedZero)
}

func TestDecodeTokenError(t *testing.T) {
	_, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("notadate|2023-05-15T14:30:45Z|id")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "date parse")

	_, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z|2023-05-15T14:30:45Z|")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")
}

func TestCursorBefore(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	created := day.Add(10 * time.Hour)
	c := Cursor{Date: day, CreatedAt: created, ID: "m"}

	tests := []struct {
		name      string
		date      time.Time
		createdAt time.Time
		id        string
		want      bool
	}{
		{"earlier date", day.AddDate(0, 0, -1), created, "z", true},
		{"later date", day.AddDate(0, 0, 1), created, "a", false},
		{"same date earlier creation", day, created.Add(-time.Minute), "z", true},
		{"same date later creation", day, created.Add(time.Minute), "a", false},
		{"tie broken by id", day, created, "a", true},
		{"the cursor row itself", day, created, "m", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Before(tt.date, tt.createdAt, tt.id))
		})
	}
}
