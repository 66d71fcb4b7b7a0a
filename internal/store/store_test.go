// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apidiff/apidiff/internal/config"
)

const testDoc = `[{"key.doc.file":"/src/A.h"}]`

// withConfig swaps in a test configuration and restores the previous one when
// the test finishes.
func withConfig(t *testing.T, data map[string]interface{}) {
	t.Helper()

	saved := config.Config
	config.Config = config.Type{Source: "test", Data: data}
	t.Cleanup(func() { config.Config = saved })
}

func TestNewStore_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.json")
	require.NoError(t, os.WriteFile(path, []byte(testDoc), 0o600))

	st, err := NewStore(context.Background(), nil, path)
	require.NoError(t, err)

	assert.Equal(t, "file", st.Type())
	assert.Equal(t, path, st.String())
}

func TestNewStore_Stdin(t *testing.T) {
	st, err := NewStore(context.Background(), nil, "-")
	require.NoError(t, err)

	assert.Equal(t, "file", st.Type())
	assert.Equal(t, "-", st.String())
}

func TestNewStore_Dir(t *testing.T) {
	dir := t.TempDir()

	st, err := NewStore(context.Background(), nil, dir)
	require.NoError(t, err)

	assert.Equal(t, "local", st.Type())
	assert.Equal(t, dir, st.String())
}

func TestNewStore_S3(t *testing.T) {
	withConfig(t, map[string]interface{}{"log": "info"})

	st, err := NewStore(context.Background(), nil, "s3://api-snapshots/frameworks/ui.json")
	require.NoError(t, err)

	assert.Equal(t, "s3", st.Type())
	assert.Equal(t, "s3://api-snapshots/frameworks/ui.json", st.String())
}

func TestNewStore_S3BadURL(t *testing.T) {
	withConfig(t, map[string]interface{}{"log": "info"})

	_, err := NewStore(context.Background(), nil, "s3://bucket-only")
	assert.ErrorContains(t, err, "bucket and a key")
}

func TestNewStore_Missing(t *testing.T) {
	_, err := NewStore(context.Background(), nil, filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestNewStore_DefaultDir(t *testing.T) {
	dir := t.TempDir()
	withConfig(t, map[string]interface{}{
		"store": map[string]interface{}{"dir": dir},
	})

	st, err := NewStore(context.Background(), nil, "")
	require.NoError(t, err)

	assert.Equal(t, "local", st.Type())
	assert.Equal(t, dir, st.String())
}

func TestNewStore_DefaultS3(t *testing.T) {
	withConfig(t, map[string]interface{}{
		"store": map[string]interface{}{
			"s3": map[string]interface{}{
				"bucket": "api-snapshots",
				"key":    "frameworks/ui.json",
			},
		},
	})

	st, err := NewStore(context.Background(), nil, "")
	require.NoError(t, err)

	assert.Equal(t, "s3", st.Type())
	assert.Equal(t, "s3://api-snapshots/frameworks/ui.json", st.String())
}

func TestNewStore_NoDefault(t *testing.T) {
	withConfig(t, map[string]interface{}{"log": "info"})

	_, err := NewStore(context.Background(), nil, "")
	assert.ErrorContains(t, err, "no snapshot store configured")
}

func TestStoreFile_Snapshots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.json")
	require.NoError(t, os.WriteFile(path, []byte(testDoc), 0o600))

	st := &StoreFile{Ctx: context.Background(), Path: path}

	docs, err := st.Snapshots()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, testDoc, string(docs[0]))

	docs, err = st.Snapshots("latest")
	require.NoError(t, err)
	require.Len(t, docs, 1)

	_, err = st.Snapshots("~1")
	assert.ErrorContains(t, err, "single version")
}

func TestStoreFile_Versions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.json")
	require.NoError(t, os.WriteFile(path, []byte(testDoc), 0o600))

	st := &StoreFile{Ctx: context.Background(), Path: path}

	versions, err := st.Versions()
	require.NoError(t, err)
	require.Len(t, versions, 1)

	assert.Equal(t, "api.json", versions[0].ID)
	assert.Equal(t, int64(len(testDoc)), versions[0].Size)
	assert.Equal(t, path, versions[0].Source)
}

func TestStoreFile_VersionsStdin(t *testing.T) {
	st := &StoreFile{Ctx: context.Background(), Path: "-"}

	versions, err := st.Versions()
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, "-", versions[0].ID)
}
