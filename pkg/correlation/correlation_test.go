package correlation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWithID(t *testing.T) {
	ctx := WithID(context.Background(), "abc")

	assert.Equal(t, "abc", FromContext(ctx))
	assert.Empty(t, FromContext(context.Background()))
}

func TestEnsure(t *testing.T) {
	t.Run("keeps existing ID", func(t *testing.T) {
		ctx, id := Ensure(WithID(context.Background(), "abc"))

		assert.Equal(t, "abc", id)
		assert.Equal(t, "abc", FromContext(ctx))
	})

	t.Run("generates UUID when missing", func(t *testing.T) {
		ctx, id := Ensure(context.Background())

		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, FromContext(ctx))
	})
}

func TestAccept(t *testing.T) {
	long := make([]byte, maxIDLen+1)
	for i := range long {
		long[i] = 'a'
	}

	testCases := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "plain id", header: "req-42", keep: true},
		{name: "uuid", header: "3f1c6f1e-8d0b-4c5e-9a57-2a4c0d1b7e11", keep: true},
		{name: "empty", header: ""},
		{name: "newline", header: "abc\ninjected=1"},
		{name: "space", header: "a b"},
		{name: "non ascii", header: "id-é"},
		{name: "too long", header: string(long)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Accept(tc.header)

			if tc.keep {
				assert.Equal(t, tc.header, got)
				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}
