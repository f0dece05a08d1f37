package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	recs := []Candidate{
		{ID: "1", Name: "Jane Doe"},
		{ID: "2", Name: "Janet Smith"},
		{ID: "3", Name: "jane"},
	}

	got, err := Find(recs, "2")
	require.NoError(t, err)
	assert.Equal(t, "Janet Smith", got[0].Name)

	got, err = Find(recs, "JANE")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)

	got, err = Find(recs, "smith")
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = Find(recs, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Find(recs, "  ")
	assert.ErrorIs(t, err, ErrNotFound)
}
