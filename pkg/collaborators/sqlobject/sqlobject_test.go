package sqlobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLObjectRepresentationsPreferSQLOverRows(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE greetings (word TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO greetings (word) VALUES ('hello'), ('world')`)
	require.NoError(t, err)

	obj := New(db, `SELECT word FROM greetings ORDER BY word`)
	assert.Equal(t, []string{"sql", "rows"}, obj.Representations())

	gotDB, query, args := obj.SQL()
	assert.Same(t, db, gotDB)
	assert.Equal(t, `SELECT word FROM greetings ORDER BY word`, query)
	assert.Empty(t, args)

	rows, err := obj.Rows()
	require.NoError(t, err)
	defer rows.Close()

	var words []string
	for rows.Next() {
		var word string
		require.NoError(t, rows.Scan(&word))
		words = append(words, word)
	}
	assert.Equal(t, []string{"hello", "world"}, words)
}
