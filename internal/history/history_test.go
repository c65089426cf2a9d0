// bt - Build and packaging tool for the Kegsmith desktop application
// Copyright (C) 2025 The Kegsmith Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndListRuns(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	started := time.Date(2025, 8, 25, 10, 0, 0, 0, time.UTC)
	id1, err := store.RecordRun(Run{
		Command:    "setup",
		Version:    "0.3.1",
		Platform:   "linux",
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Minute),
		Succeeded:  true,
	})
	require.NoError(t, err)

	id2, err := store.RecordRun(Run{
		Command:    "package",
		Version:    "0.3.1",
		Platform:   "linux",
		StartedAt:  started.Add(time.Hour),
		FinishedAt: started.Add(time.Hour + 5*time.Minute),
		Succeeded:  false,
	})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	require.NoError(t, store.AddArtifact(id2, Artifact{
		FileName:  "kegsmith-3.0.2-1_amd64.deb",
		SHA256:    "abc123",
		SizeBytes: 123456,
	}))

	runs, err := store.Runs(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// Newest first.
	assert.Equal(t, "package", runs[0].Command)
	assert.False(t, runs[0].Succeeded)
	assert.Equal(t, "setup", runs[1].Command)
	assert.True(t, runs[1].Succeeded)

	artifacts, err := store.Artifacts(id2)
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, "kegsmith-3.0.2-1_amd64.deb", artifacts[0].FileName)
	assert.Equal(t, int64(123456), artifacts[0].SizeBytes)

	artifacts, err = store.Artifacts(id1)
	require.NoError(t, err)
	assert.Empty(t, artifacts)
}

func TestRunsLimit(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	for i := 0; i < 5; i++ {
		_, err := store.RecordRun(Run{
			Command:    "setup",
			Version:    "0.3.1",
			Platform:   "linux",
			StartedAt:  time.Now().Add(time.Duration(i) * time.Minute),
			FinishedAt: time.Now().Add(time.Duration(i+1) * time.Minute),
			Succeeded:  true,
		})
		require.NoError(t, err)
	}

	runs, err := store.Runs(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}
