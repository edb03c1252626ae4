// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDBSetGet(t *testing.T, db DB) {
	require.NoError(t, db.Set([]byte("aaaaaa/1"), []byte("aaaaaa/1")))
	require.NoError(t, db.Set([]byte("my_key/1"), []byte("my_key/1")))
	require.NoError(t, db.Set([]byte("my_key/2"), []byte("my_key/2")))
	require.NoError(t, db.Set([]byte("my_key/3"), []byte("my_key/3")))
	require.NoError(t, db.SetSync([]byte("zzzzzz/1"), []byte("zzzzzz/1")))

	v, err := db.Get([]byte("aaaaaa/1"))
	require.NoError(t, err)
	assert.Equal(t, "aaaaaa/1", string(v))

	_, err = db.Get([]byte("missing"))
	assert.Equal(t, ErrNotFoundInDb, err)

	require.NoError(t, db.Delete([]byte("aaaaaa/1")))
	_, err = db.Get([]byte("aaaaaa/1"))
	assert.Equal(t, ErrNotFoundInDb, err)

	list, err := db.List([]byte("my_key/"), 0, ListASC)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("my_key/1"), []byte("my_key/2"), []byte("my_key/3")}, list)

	list, err = db.List([]byte("my_key/"), 2, ListDESC)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("my_key/3"), []byte("my_key/2")}, list)

	_, err = db.List([]byte("nothing/"), 0, ListASC)
	assert.Equal(t, ErrNotFoundInDb, err)
}

func testDBBatch(t *testing.T, db DB) {
	batch := db.NewBatch(true)
	batch.Set([]byte("b/1"), []byte("1"))
	batch.Set([]byte("b/2"), []byte("2"))
	batch.Delete([]byte("b/1"))
	assert.Equal(t, 3, batch.ValueSize())
	require.NoError(t, batch.Write())

	_, err := db.Get([]byte("b/1"))
	assert.Equal(t, ErrNotFoundInDb, err)
	v, err := db.Get([]byte("b/2"))
	require.NoError(t, err)
	assert.Equal(t, "2", string(v))

	batch.Reset()
	assert.Equal(t, 0, batch.ValueSize())
	require.NoError(t, batch.Write())
}

func TestGoMemDB(t *testing.T) {
	db, err := NewDB("test", MemDBBackendStr, "", 0)
	require.NoError(t, err)
	defer db.Close()
	testDBSetGet(t, db)
	testDBBatch(t, db)
}

func TestGoLevelDB(t *testing.T) {
	dir, err := os.MkdirTemp("", "goleveldb")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	db, err := NewDB("test", GoLevelDBBackendStr, dir, 16)
	require.NoError(t, err)
	defer db.Close()
	testDBSetGet(t, db)
	testDBBatch(t, db)
}

func TestGoBadgerDB(t *testing.T) {
	dir, err := os.MkdirTemp("", "gobadgerdb")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	db, err := NewDB("test", GoBadgerDBBackendStr, dir, 16)
	require.NoError(t, err)
	defer db.Close()
	testDBSetGet(t, db)
	testDBBatch(t, db)
}

func TestUnknownBackend(t *testing.T) {
	_, err := NewDB("test", "cleveldb", "", 0)
	assert.Error(t, err)
}
