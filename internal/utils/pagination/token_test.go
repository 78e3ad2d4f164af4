package pagination_test

import (
	"testing"
	"time"

	"github.com/billsphere/billing_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	entryDate := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 4, 15, 10, 30, 45, 123456789, time.UTC)

	token := pagination.EncodeToken(entryDate, createdAt)
	require.NotEmpty(t, token)

	gotDate, gotCreated, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, entryDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeToken("bm8tc2VwYXJhdG9y") // "no-separator"
	assert.Error(t, err)
}

func TestMultiFieldToken(t *testing.T) {
	token := pagination.EncodeMultiFieldToken("Acme Traders", "party-123")

	fields, err := pagination.DecodeMultiFieldToken(token)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "Acme Traders", fields[0])
	assert.Equal(t, "party-123", fields[1])
}
